package driverk

import (
	"context"
	"time"
)

// Condition is polled by Driver.Wait until it returns true, an error, or the timeout expires
type Condition func(ctx context.Context) (bool, error)

// Driver resolves locators against the current document
type Driver interface {
	// FindElement returns the first element matching loc or an *ElementNotFoundErr
	FindElement(ctx context.Context, loc Locator) (Element, error)
	// FindElements returns every element matching loc, possibly none
	FindElements(ctx context.Context, loc Locator) ([]Element, error)
	// Wait polls cond until it is true or timeout elapses
	Wait(ctx context.Context, cond Condition, timeout time.Duration) error
}

// Element is a driver owned reference to a DOM node
type Element interface {
	Text(ctx context.Context) (string, error)
	Attribute(ctx context.Context, name string) (string, error)
	TagName(ctx context.Context) (string, error)
	SendKeys(ctx context.Context, keys string) error
	Click(ctx context.Context) error
	// FindElement scoped to the descendants of this element
	FindElement(ctx context.Context, loc Locator) (Element, error)
}

// Step is a unit of work submitted to a Sequencer
type Step func(ctx context.Context) error

// Pending is the eventual result of a submitted Step
type Pending interface {
	Wait(ctx context.Context) error
	Done() <-chan struct{}
}

// Sequencer executes submitted steps in submission order
type Sequencer interface {
	Execute(ctx context.Context, step Step) Pending
}
