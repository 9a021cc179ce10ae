package mock

import (
	"context"
	"sync"
	"time"

	"gitlab.com/driverhelpers/driverk"
)

// Driver stubs a driverk.Driver
type Driver struct {
	mu sync.Mutex

	FindElementFn     func(ctx context.Context, loc driverk.Locator) (driverk.Element, error)
	FindElementCalled bool

	FindElementsFn     func(ctx context.Context, loc driverk.Locator) ([]driverk.Element, error)
	FindElementsCalled bool

	WaitFn     func(ctx context.Context, cond driverk.Condition, timeout time.Duration) error
	WaitCalled bool

	locators []driverk.Locator
}

func (d *Driver) FindElement(ctx context.Context, loc driverk.Locator) (driverk.Element, error) {
	d.mu.Lock()
	d.FindElementCalled = true
	d.locators = append(d.locators, loc)
	fn := d.FindElementFn
	d.mu.Unlock()
	return fn(ctx, loc)
}

func (d *Driver) FindElements(ctx context.Context, loc driverk.Locator) ([]driverk.Element, error) {
	d.mu.Lock()
	d.FindElementsCalled = true
	d.locators = append(d.locators, loc)
	fn := d.FindElementsFn
	d.mu.Unlock()
	return fn(ctx, loc)
}

func (d *Driver) Wait(ctx context.Context, cond driverk.Condition, timeout time.Duration) error {
	d.mu.Lock()
	d.WaitCalled = true
	fn := d.WaitFn
	d.mu.Unlock()
	return fn(ctx, cond, timeout)
}

// Locators passed to FindElement and FindElements, in order
func (d *Driver) Locators() []driverk.Locator {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]driverk.Locator(nil), d.locators...)
}
