package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
	"gitlab.com/driverhelpers/clicmds"
)

func main() {
	app := cli.NewApp()
	app.Name = "driverhelpers"
	app.Version = "0.1"
	app.Usage = "Populate web forms through a browser driver"
	app.Flags = []cli.Flag{
		&cli.BoolFlag{
			Name:  "debug",
			Usage: "enable debug logging",
			Value: false,
		},
	}
	app.Before = func(ctx *cli.Context) error {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		if ctx.Bool("debug") {
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
		}
		return nil
	}
	app.Commands = []*cli.Command{
		{
			Name:    "fill",
			Aliases: []string{"f"},
			Usage:   "populate a form",
			Action:  clicmds.Fill,
			Flags:   clicmds.FillFlags(),
		},
		{
			Name:    "leaser",
			Aliases: []string{"l"},
			Usage:   "serve local browsers over a unix socket",
			Action:  clicmds.Leaser,
			Flags:   clicmds.LeaserFlags(),
		},
	}
	err := app.Run(os.Args)
	if err != nil {
		log.Fatal().Err(err).Msg("fill failed")
	}
}
