package clicmds

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
	"gitlab.com/driverhelpers/browser"
)

func LeaserFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "socket",
			Usage: "unix socket to listen on",
			Value: browser.DefaultSocket,
		},
		&cli.StringFlag{
			Name:  "chrome",
			Usage: "chrome binary, found automatically when empty",
			Value: "",
		},
	}
}

// Leaser serves local browsers to fill runs configured with leaser_socket
func Leaser(ctx *cli.Context) error {
	leaser := newLocalLeaser(ctx.String("chrome"))
	if _, err := leaser.Cleanup(); err != nil {
		return err
	}

	serveCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(c)
	go func() {
		select {
		case <-c:
			log.Info().Msg("Ctrl-C Pressed, shutting down")
			cancel()
		case <-serveCtx.Done():
		}
	}()

	err := browser.ServeLeaser(serveCtx, ctx.String("socket"), leaser)
	if _, cleanupErr := leaser.Cleanup(); cleanupErr != nil {
		log.Error().Err(cleanupErr).Msg("failed to clean up browsers")
	}
	return err
}
