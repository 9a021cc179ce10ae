// Package helpers wraps a driverk.Driver with the element location and form
// population shortcuts integration tests use most.
//
//	h := helpers.New(driver, flow.New())
//	err := h.PopulateElements(ctx, helpers.FormValues{
//		"#login-email":    email,
//		"#login-password": password,
//	})
//	...
//	btn, err := h.ByID(ctx, "login-submit-btn")
package helpers

import (
	"context"
	"time"

	"gitlab.com/driverhelpers/driverk"
)

// Defaults for AvoidStaleElement
const (
	DefaultStaleTimeout    = 3 * time.Second
	DefaultStaleIterations = 3
)

// Option configures Helpers
type Option func(h *Helpers)

// WithStaleTimeout bounds how long AvoidStaleElement waits
func WithStaleTimeout(timeout time.Duration) Option {
	return func(h *Helpers) {
		h.staleTimeout = timeout
	}
}

// WithStaleIterations sets how many times AvoidStaleElement polls before returning
func WithStaleIterations(iterations int) Option {
	return func(h *Helpers) {
		h.staleIterations = iterations
	}
}

// Helpers holds the driver and control flow every shortcut is issued against
type Helpers struct {
	driver          driverk.Driver
	flow            driverk.Sequencer
	staleTimeout    time.Duration
	staleIterations int
	strategies      map[driverk.FormKind]populateFunc
}

// New helpers for driver, steps that must be ordered are submitted to flow
func New(driver driverk.Driver, flow driverk.Sequencer, opts ...Option) *Helpers {
	h := &Helpers{
		driver:          driver,
		flow:            flow,
		staleTimeout:    DefaultStaleTimeout,
		staleIterations: DefaultStaleIterations,
	}
	h.strategies = map[driverk.FormKind]populateFunc{
		driverk.KindSelect:    h.populateSelect,
		driverk.KindTextArea:  h.populateText,
		driverk.KindTextInput: h.populateText,
		driverk.KindRadio:     h.populateRadio,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Driver these helpers issue calls against
func (h *Helpers) Driver() driverk.Driver {
	return h.driver
}

// ByName is sugar for driver.FindElement(ctx, driverk.Name(name))
func (h *Helpers) ByName(ctx context.Context, name string) (driverk.Element, error) {
	return h.driver.FindElement(ctx, driverk.Name(name))
}

// ByID is sugar for driver.FindElement(ctx, driverk.ID(id))
func (h *Helpers) ByID(ctx context.Context, id string) (driverk.Element, error) {
	return h.driver.FindElement(ctx, driverk.ID(id))
}

// ByTag is sugar for driver.FindElement(ctx, driverk.TagName(tag))
func (h *Helpers) ByTag(ctx context.Context, tag string) (driverk.Element, error) {
	return h.driver.FindElement(ctx, driverk.TagName(tag))
}

// ByClass is sugar for driver.FindElement(ctx, driverk.ClassName(class))
func (h *Helpers) ByClass(ctx context.Context, class string) (driverk.Element, error) {
	return h.driver.FindElement(ctx, driverk.ClassName(class))
}
