package browser

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/wirepair/gcd"
)

// Browser is a leased chrome process and the tab we drive in it
type Browser struct {
	g       *gcd.Gcd
	port    string
	leaser  LeaserService
	tab     *Tab
	closing int32
}

// Open leases a browser and attaches to its first tab. startTimeout bounds how
// long gcd waits for the devtools endpoint, zero keeps the gcd default.
func Open(ctx context.Context, leaser LeaserService, startTimeout time.Duration) (*Browser, error) {
	port, err := leaser.Acquire()
	if err != nil {
		return nil, err
	}

	g := gcd.NewChromeDebugger()
	if startTimeout > 0 {
		g.SetTimeout(startTimeout)
	}
	if err := g.ConnectToInstance("localhost", port); err != nil {
		leaser.Return(port)
		return nil, errors.Wrap(err, "failed to connect to instance")
	}

	target, err := g.GetFirstTab()
	if err != nil {
		leaser.Return(port)
		return nil, errors.Wrap(err, "failed to get first tab")
	}

	log.Ctx(ctx).Info().Str("port", port).Msg("acquired browser")
	return &Browser{
		g:      g,
		port:   port,
		leaser: leaser,
		tab:    NewTab(ctx, target),
	}, nil
}

// Tab being driven
func (b *Browser) Tab() *Tab {
	return b.tab
}

// Port of the devtools endpoint
func (b *Browser) Port() string {
	return b.port
}

// Close the tab and return the browser to the leaser
func (b *Browser) Close() error {
	if !atomic.CompareAndSwapInt32(&b.closing, 0, 1) {
		return ErrBrowserClosing
	}
	b.tab.Close()
	return b.leaser.Return(b.port)
}
