package clicmds

import (
	"context"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	uuid "github.com/satori/go.uuid"
	"github.com/urfave/cli/v2"
	"gitlab.com/driverhelpers/driverk"
	"gitlab.com/driverhelpers/flow"
	"gitlab.com/driverhelpers/helpers"
)

func FillFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "config",
			Usage: "toml config describing the form",
			Value: "",
		},
		&cli.StringFlag{
			Name:  "url",
			Usage: "url of the page holding the form",
			Value: "",
		},
		&cli.StringFlag{
			Name:  "driver",
			Usage: "gcd, chromedp or selenium",
			Value: "",
		},
		&cli.StringFlag{
			Name:  "remote",
			Usage: "remote devtools or selenium url",
			Value: "",
		},
		&cli.StringFlag{
			Name:  "leaser",
			Usage: "unix socket of a leaser service, gcd only",
			Value: "",
		},
	}
}

// Fill navigates to the configured page and populates its form
func Fill(ctx *cli.Context) error {
	cfg := &Config{}
	if ctx.String("config") != "" {
		var err error
		if cfg, err = LoadConfig(ctx.String("config")); err != nil {
			return err
		}
	}

	if cfg.URL == "" && ctx.String("url") != "" {
		cfg.URL = ctx.String("url")
	}
	if cfg.Driver == "" || ctx.IsSet("driver") {
		cfg.Driver = ctx.String("driver")
	}
	if cfg.RemoteURL == "" && ctx.String("remote") != "" {
		cfg.RemoteURL = ctx.String("remote")
	}
	if cfg.LeaserSocket == "" && ctx.String("leaser") != "" {
		cfg.LeaserSocket = ctx.String("leaser")
	}
	cfg.setDefaults()
	if err := cfg.validate(); err != nil {
		return err
	}
	if cfg.URL == "" {
		return errors.New("url is required")
	}

	logger := log.With().Str("run_id", uuid.NewV4().String()).Logger()
	runCtx, cancel := context.WithCancel(logger.WithContext(context.Background()))
	defer cancel()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(c)
	go func() {
		select {
		case <-c:
			logger.Info().Msg("Ctrl-C Pressed, shutting down")
			cancel()
		case <-runCtx.Done():
		}
	}()

	return Run(runCtx, cfg)
}

// Run a fill with an already loaded config
func Run(ctx context.Context, cfg *Config) error {
	logger := log.Ctx(ctx)
	logger.Info().Str("driver", cfg.Driver).Str("url", cfg.URL).Msg("starting fill")

	s, err := openSession(ctx, cfg)
	if err != nil {
		return errors.Wrap(err, "failed to open driver")
	}
	defer s.Close()

	if err := s.Navigate(ctx, cfg.URL); err != nil {
		return errors.Wrapf(err, "failed to navigate to %s", cfg.URL)
	}

	f := flow.New()
	defer f.Close()
	h := helpers.New(s, f, helpers.WithStaleTimeout(cfg.StaleTimeout()))

	if err := waitForElements(ctx, s, cfg); err != nil {
		return err
	}

	if err := h.PopulateElements(ctx, cfg.Form); err != nil {
		return err
	}
	logger.Info().Int("fields", len(cfg.Form)).Msg("populated form")

	for _, find := range cfg.Find {
		ele, err := h.FindElementInCollectionByText(driverk.CSS(find.Collection), driverk.CSS(find.Criteria), find.Text)(ctx)
		if err != nil {
			return err
		}
		logger.Info().Str("collection", find.Collection).Str("text", find.Text).Msg("found element")
		if find.Click {
			if err := ele.Click(ctx); err != nil {
				return errors.Wrapf(err, "failed to click %s", find.Text)
			}
		}
	}

	if cfg.Submit == "" {
		return nil
	}
	submit, err := s.FindElement(ctx, helpers.LocatorFor(cfg.Submit))
	if err != nil {
		return errors.Wrap(err, "failed to find submit")
	}
	if err := submit.Click(ctx); err != nil {
		return errors.Wrap(err, "failed to submit")
	}
	logger.Info().Msg("submitted form")

	if cfg.AvoidStale {
		h.AvoidStaleElement(ctx)
	}
	return nil
}

// waitForElements until every form key matches at least one element
func waitForElements(ctx context.Context, d driverk.Driver, cfg *Config) error {
	keys := make([]string, 0, len(cfg.Form))
	for key := range cfg.Form {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		loc := helpers.LocatorFor(key)
		err := d.Wait(ctx, func(ctx context.Context) (bool, error) {
			elements, err := d.FindElements(ctx, loc)
			return len(elements) > 0, err
		}, cfg.ElementTimeout())
		if err != nil {
			return errors.Wrapf(err, "waiting for %s", key)
		}
	}
	return nil
}
