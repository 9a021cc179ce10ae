// Package cdpdriver implements driverk.Driver on top of chromedp
package cdpdriver

import (
	"context"
	"crypto/tls"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/chromedp"
	"github.com/gobwas/ws"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gitlab.com/driverhelpers/driverk"
)

// ErrXPathScoped is returned when searching descendants of an element by xpath
var ErrXPathScoped = errors.New("xpath locators can not be scoped to an element")

// AllowInsecureRemote skips certificate verification when dialing remote
// devtools endpoints served with self signed certificates.
func AllowInsecureRemote() {
	ws.DefaultDialer.TLSConfig = &tls.Config{InsecureSkipVerify: true}
}

// Driver runs chromedp actions against a single browser tab
type Driver struct {
	allocCtx    context.Context
	allocCancel context.CancelFunc
	ctx         context.Context
	cancel      context.CancelFunc
}

var _ driverk.Driver = (*Driver)(nil)

// NewLocal starts a headless chrome, chromePath may be empty to let chromedp find one
func NewLocal(ctx context.Context, chromePath string, opts ...chromedp.ExecAllocatorOption) (*Driver, error) {
	allocOpts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	allocOpts = append(allocOpts, chromedp.Flag("ignore-certificate-errors", true))
	if chromePath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(chromePath))
	}
	allocOpts = append(allocOpts, opts...)

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, allocOpts...)
	return start(allocCtx, allocCancel)
}

// NewRemote attaches to an already running browser's devtools websocket url
func NewRemote(ctx context.Context, url string) (*Driver, error) {
	allocCtx, allocCancel := chromedp.NewRemoteAllocator(ctx, url)
	return start(allocCtx, allocCancel)
}

func start(allocCtx context.Context, allocCancel context.CancelFunc) (*Driver, error) {
	browserCtx, browserCancel := chromedp.NewContext(allocCtx,
		chromedp.WithLogf(func(format string, v ...interface{}) {
			log.Debug().Str("driver", "chromedp").Msgf(format, v...)
		}),
		chromedp.WithErrorf(func(format string, v ...interface{}) {
			log.Warn().Str("driver", "chromedp").Msgf(format, v...)
		}),
	)
	d := &Driver{
		allocCtx:    allocCtx,
		allocCancel: allocCancel,
		ctx:         browserCtx,
		cancel:      browserCancel,
	}
	// allocates the browser and the first tab
	if err := chromedp.Run(browserCtx); err != nil {
		d.Close()
		return nil, errors.Wrap(err, "failed to start browser")
	}
	return d, nil
}

// Close the tab and the browser it was allocated from
func (d *Driver) Close() error {
	d.cancel()
	d.allocCancel()
	return nil
}

// Navigate to url and wait for the load event
func (d *Driver) Navigate(ctx context.Context, url string) error {
	return d.run(ctx, chromedp.Navigate(url))
}

// Location of the current document
func (d *Driver) Location(ctx context.Context) (string, error) {
	var url string
	err := d.run(ctx, chromedp.Location(&url))
	return url, err
}

// FindElement returns the first element matched by loc
func (d *Driver) FindElement(ctx context.Context, loc driverk.Locator) (driverk.Element, error) {
	elements, err := d.find(ctx, loc, nil)
	if err != nil {
		return nil, err
	}
	if len(elements) == 0 {
		return nil, &driverk.ElementNotFoundErr{Message: loc.String()}
	}
	return elements[0], nil
}

// FindElements returns every element matched by loc, possibly none
func (d *Driver) FindElements(ctx context.Context, loc driverk.Locator) ([]driverk.Element, error) {
	return d.find(ctx, loc, nil)
}

// Wait polls cond until it holds or timeout
func (d *Driver) Wait(ctx context.Context, cond driverk.Condition, timeout time.Duration) error {
	return driverk.Poll(ctx, cond, timeout, driverk.DefaultPollInterval)
}

func (d *Driver) find(ctx context.Context, loc driverk.Locator, from *cdp.Node) ([]driverk.Element, error) {
	opts := []chromedp.QueryOption{chromedp.AtLeast(0)}
	switch {
	case loc.IsXPath() && from != nil:
		return nil, ErrXPathScoped
	case loc.IsXPath():
		opts = append(opts, chromedp.BySearch)
	default:
		opts = append(opts, chromedp.ByQueryAll)
	}
	if from != nil {
		opts = append(opts, chromedp.FromNode(from))
	}

	var nodes []*cdp.Node
	if err := d.run(ctx, chromedp.Nodes(loc.Selector(), &nodes, opts...)); err != nil {
		return nil, errors.Wrapf(err, "failed to query %s", loc)
	}

	elements := make([]driverk.Element, 0, len(nodes))
	for _, node := range nodes {
		elements = append(elements, &Element{driver: d, node: node})
	}
	return elements, nil
}

// run actions on the tab, giving up when either ctx or the tab is done
func (d *Driver) run(ctx context.Context, actions ...chromedp.Action) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	runCtx, cancel := context.WithCancel(d.ctx)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	err := chromedp.Run(runCtx, actions...)
	if err != nil && ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}
