package browser

import (
	"context"
	"net"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// LeaserHandler exposes leaser over http for SocketLeaser clients
func LeaserHandler(leaser LeaserService) http.Handler {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/acquire", func(c *gin.Context) {
		port, err := leaser.Acquire()
		if err != nil {
			log.Error().Err(err).Msg("failed to acquire browser")
			c.String(http.StatusInternalServerError, err.Error())
			return
		}
		c.String(http.StatusOK, port)
	})
	router.GET("/count", func(c *gin.Context) {
		count, err := leaser.Count()
		if err != nil {
			c.String(http.StatusInternalServerError, err.Error())
			return
		}
		c.String(http.StatusOK, count)
	})
	router.GET("/return", func(c *gin.Context) {
		port := c.Query("port")
		if err := leaser.Return(port); err != nil {
			log.Warn().Err(err).Str("port", port).Msg("failed to return browser")
			c.String(http.StatusNotFound, err.Error())
			return
		}
		c.String(http.StatusOK, "ok")
	})
	router.GET("/cleanup", func(c *gin.Context) {
		resp, err := leaser.Cleanup()
		if err != nil {
			c.String(http.StatusInternalServerError, err.Error())
			return
		}
		c.String(http.StatusOK, resp)
	})
	return router
}

// ServeLeaser on the unix socket sock until ctx is done
func ServeLeaser(ctx context.Context, sock string, leaser LeaserService) error {
	os.Remove(sock)
	l, err := net.Listen("unix", sock)
	if err != nil {
		return err
	}

	srv := &http.Server{Handler: LeaserHandler(leaser)}
	go func() {
		<-ctx.Done()
		srv.Shutdown(context.Background())
	}()

	log.Info().Str("socket", sock).Msg("leaser service listening")
	if err := srv.Serve(l); err != http.ErrServerClosed {
		return err
	}
	return nil
}
