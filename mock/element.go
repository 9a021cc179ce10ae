package mock

import (
	"context"
	"sync"

	"gitlab.com/driverhelpers/driverk"
)

// Element stubs a driverk.Element. Every call is recorded before the matching Fn
// (if set) is called.
type Element struct {
	mu sync.Mutex

	TextFn     func(ctx context.Context) (string, error)
	TextCalled bool

	AttributeFn     func(ctx context.Context, name string) (string, error)
	AttributeCalled bool

	TagNameFn     func(ctx context.Context) (string, error)
	TagNameCalled bool

	SendKeysFn     func(ctx context.Context, keys string) error
	SendKeysCalled bool

	ClickFn     func(ctx context.Context) error
	ClickCalled bool

	FindElementFn     func(ctx context.Context, loc driverk.Locator) (driverk.Element, error)
	FindElementCalled bool

	keys     []string
	clicks   int
	locators []driverk.Locator
	children map[driverk.Locator]*Element
}

func (e *Element) Text(ctx context.Context) (string, error) {
	e.mu.Lock()
	e.TextCalled = true
	fn := e.TextFn
	e.mu.Unlock()
	if fn == nil {
		return "", nil
	}
	return fn(ctx)
}

func (e *Element) Attribute(ctx context.Context, name string) (string, error) {
	e.mu.Lock()
	e.AttributeCalled = true
	fn := e.AttributeFn
	e.mu.Unlock()
	if fn == nil {
		return "", nil
	}
	return fn(ctx, name)
}

func (e *Element) TagName(ctx context.Context) (string, error) {
	e.mu.Lock()
	e.TagNameCalled = true
	fn := e.TagNameFn
	e.mu.Unlock()
	if fn == nil {
		return "", nil
	}
	return fn(ctx)
}

func (e *Element) SendKeys(ctx context.Context, keys string) error {
	e.mu.Lock()
	e.SendKeysCalled = true
	e.keys = append(e.keys, keys)
	fn := e.SendKeysFn
	e.mu.Unlock()
	if fn == nil {
		return nil
	}
	return fn(ctx, keys)
}

func (e *Element) Click(ctx context.Context) error {
	e.mu.Lock()
	e.ClickCalled = true
	e.clicks++
	fn := e.ClickFn
	e.mu.Unlock()
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

func (e *Element) FindElement(ctx context.Context, loc driverk.Locator) (driverk.Element, error) {
	e.mu.Lock()
	e.FindElementCalled = true
	e.locators = append(e.locators, loc)
	fn := e.FindElementFn
	e.mu.Unlock()
	if fn == nil {
		return nil, &driverk.ElementNotFoundErr{Message: loc.String()}
	}
	return fn(ctx, loc)
}

// AddChild makes child resolvable from e by loc
func (e *Element) AddChild(loc driverk.Locator, child *Element) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.children == nil {
		e.children = make(map[driverk.Locator]*Element)
	}
	e.children[loc] = child
	e.FindElementFn = e.findChild
}

func (e *Element) findChild(ctx context.Context, loc driverk.Locator) (driverk.Element, error) {
	e.mu.Lock()
	child, ok := e.children[loc]
	e.mu.Unlock()
	if !ok {
		return nil, &driverk.ElementNotFoundErr{Message: loc.String()}
	}
	return child, nil
}

// Keys sent to this element, in order
func (e *Element) Keys() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.keys...)
}

// Clicks received
func (e *Element) Clicks() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.clicks
}

// Locators passed to FindElement, in order
func (e *Element) Locators() []driverk.Locator {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]driverk.Locator(nil), e.locators...)
}
