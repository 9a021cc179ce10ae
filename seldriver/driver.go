// Package seldriver implements driverk.Driver over a selenium remote end
package seldriver

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/tebeka/selenium"
	"github.com/tebeka/selenium/chrome"
	"gitlab.com/driverhelpers/driverk"
)

// ByMap of locator strategies to their webdriver wire names
var ByMap = map[driverk.By]string{
	driverk.ByID:        selenium.ByID,
	driverk.ByName:      selenium.ByName,
	driverk.ByTagName:   selenium.ByTagName,
	driverk.ByClassName: selenium.ByClassName,
	driverk.ByCSS:       selenium.ByCSSSelector,
	driverk.ByXPath:     selenium.ByXPATH,
}

// legacy json wire status for a missing element
const noSuchElementCode = 7

// Driver adapts a selenium.WebDriver
type Driver struct {
	wd selenium.WebDriver
}

var _ driverk.Driver = (*Driver)(nil)

// New wraps an existing session
func New(wd selenium.WebDriver) *Driver {
	return &Driver{wd: wd}
}

// NewRemote opens a chrome session on the selenium server at url
func NewRemote(url string, headless bool) (*Driver, error) {
	caps := selenium.Capabilities{"browserName": "chrome"}
	chromeCaps := chrome.Capabilities{Args: []string{"--ignore-certificate-errors"}}
	if headless {
		chromeCaps.Args = append(chromeCaps.Args, "--headless", "--no-sandbox")
	}
	caps.AddChrome(chromeCaps)

	wd, err := selenium.NewRemote(caps, url)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create selenium session")
	}
	log.Debug().Str("remote", url).Msg("selenium session started")
	return New(wd), nil
}

// WebDriver session being driven
func (d *Driver) WebDriver() selenium.WebDriver {
	return d.wd
}

// Close ends the session
func (d *Driver) Close() error {
	return d.wd.Quit()
}

// Navigate to url
func (d *Driver) Navigate(ctx context.Context, url string) error {
	return do(ctx, func() error {
		return d.wd.Get(url)
	})
}

// Location of the current document
func (d *Driver) Location(ctx context.Context) (string, error) {
	var url string
	err := do(ctx, func() error {
		var err error
		url, err = d.wd.CurrentURL()
		return err
	})
	return url, err
}

// FindElement returns the first element matched by loc
func (d *Driver) FindElement(ctx context.Context, loc driverk.Locator) (driverk.Element, error) {
	var ele selenium.WebElement
	err := do(ctx, func() error {
		var err error
		ele, err = d.wd.FindElement(ByMap[loc.By], loc.Value)
		return err
	})
	if err != nil {
		return nil, wrap(err, loc)
	}
	return &Element{ele: ele}, nil
}

// FindElements returns every element matched by loc, possibly none
func (d *Driver) FindElements(ctx context.Context, loc driverk.Locator) ([]driverk.Element, error) {
	var found []selenium.WebElement
	err := do(ctx, func() error {
		var err error
		found, err = d.wd.FindElements(ByMap[loc.By], loc.Value)
		return err
	})
	if err != nil {
		if driverk.IsNotFound(wrap(err, loc)) {
			return []driverk.Element{}, nil
		}
		return nil, err
	}
	elements := make([]driverk.Element, 0, len(found))
	for _, ele := range found {
		elements = append(elements, &Element{ele: ele})
	}
	return elements, nil
}

// Wait polls cond until it holds or timeout
func (d *Driver) Wait(ctx context.Context, cond driverk.Condition, timeout time.Duration) error {
	return driverk.Poll(ctx, cond, timeout, driverk.DefaultPollInterval)
}

// do runs a blocking webdriver call, returning early if ctx is done first
func do(ctx context.Context, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- fn()
	}()
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// wrap maps the remote end's missing element responses to driverk.ElementNotFoundErr
func wrap(err error, loc driverk.Locator) error {
	var selErr *selenium.Error
	if errors.As(err, &selErr) && (selErr.Err == "no such element" || selErr.LegacyCode == noSuchElementCode) {
		return &driverk.ElementNotFoundErr{Message: loc.String() + ": " + selErr.Message}
	}
	return err
}
