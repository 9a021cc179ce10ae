package clicmds

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"gitlab.com/driverhelpers/browser"
	"gitlab.com/driverhelpers/cdpdriver"
	"gitlab.com/driverhelpers/driverk"
	"gitlab.com/driverhelpers/seldriver"
)

// session is a driver that owns its browser
type session interface {
	driverk.Driver
	Navigate(ctx context.Context, url string) error
	Close() error
}

type gcdSession struct {
	*browser.Tab
	b     *browser.Browser
	local *browser.LocalLeaser // nil when leased from a shared service
}

func (s *gcdSession) Close() error {
	err := s.b.Close()
	if s.local == nil {
		return err
	}
	if _, cleanupErr := s.local.Cleanup(); cleanupErr != nil {
		log.Warn().Err(cleanupErr).Msg("failed to clean up browser profiles")
	}
	return err
}

func openSession(ctx context.Context, cfg *Config) (session, error) {
	switch cfg.Driver {
	case DriverChromedp:
		if cfg.RemoteURL != "" {
			if cfg.InsecureRemote {
				cdpdriver.AllowInsecureRemote()
			}
			return cdpdriver.NewRemote(ctx, cfg.RemoteURL)
		}
		return cdpdriver.NewLocal(ctx, cfg.ChromePath)
	case DriverSelenium:
		return seldriver.NewRemote(cfg.RemoteURL, true)
	}

	if cfg.LeaserSocket != "" {
		b, err := browser.Open(ctx, browser.NewSocketLeaser(cfg.LeaserSocket), time.Second*30)
		if err != nil {
			return nil, err
		}
		return &gcdSession{Tab: b.Tab(), b: b}, nil
	}

	local := newLocalLeaser(cfg.ChromePath)
	b, err := browser.Open(ctx, local, time.Second*30)
	if err != nil {
		local.Cleanup()
		return nil, err
	}
	return &gcdSession{Tab: b.Tab(), b: b, local: local}, nil
}

func newLocalLeaser(chromePath string) *browser.LocalLeaser {
	if chromePath == "" {
		return browser.NewLocalLeaser()
	}
	_, tmp := browser.FindChrome()
	return browser.NewLocalLeaserWithPath(chromePath, tmp)
}
