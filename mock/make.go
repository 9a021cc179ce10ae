package mock

import (
	"context"
	"sync"
	"time"

	"gitlab.com/driverhelpers/driverk"
)

// MakeElement returns an element with a tag, text and attributes given as name, value pairs
func MakeElement(tag, text string, attrs ...string) *Element {
	attributes := make(map[string]string, len(attrs)/2)
	for i := 0; i+1 < len(attrs); i += 2 {
		attributes[attrs[i]] = attrs[i+1]
	}

	e := &Element{}
	e.TagNameFn = func(ctx context.Context) (string, error) {
		return tag, nil
	}
	e.TextFn = func(ctx context.Context) (string, error) {
		return text, nil
	}
	e.AttributeFn = func(ctx context.Context, name string) (string, error) {
		return attributes[name], nil
	}
	return e
}

// MakeInput of inputType with a value attribute and a name
func MakeInput(inputType, name, value string) *Element {
	return MakeElement("input", "", "type", inputType, "name", name, "value", value)
}

// MakeSelect with one option child per value, returned in the same order
func MakeSelect(values ...string) (*Element, []*Element) {
	sel := MakeElement("select", "")
	options := make([]*Element, 0, len(values))
	for _, v := range values {
		opt := MakeElement("option", v, "value", v)
		sel.AddChild(driverk.CSS(driverk.AttributeEquals("option", "value", v)), opt)
		options = append(options, opt)
	}
	return sel, options
}

// Page maps locators to the elements a MakeDriver driver returns for them
type Page struct {
	mu       sync.Mutex
	elements map[driverk.Locator][]*Element
}

// NewPage with no elements
func NewPage() *Page {
	return &Page{elements: make(map[driverk.Locator][]*Element)}
}

// Add elements that loc resolves to
func (p *Page) Add(loc driverk.Locator, elements ...*Element) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.elements[loc] = append(p.elements[loc], elements...)
}

// Get the elements currently resolvable by loc
func (p *Page) Get(loc driverk.Locator) []*Element {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]*Element(nil), p.elements[loc]...)
}

// MakeDriver resolves locators against page, Wait polls with a 1ms interval
func MakeDriver(page *Page) *Driver {
	d := &Driver{}
	d.FindElementFn = func(ctx context.Context, loc driverk.Locator) (driverk.Element, error) {
		found := page.Get(loc)
		if len(found) == 0 {
			return nil, &driverk.ElementNotFoundErr{Message: loc.String()}
		}
		return found[0], nil
	}
	d.FindElementsFn = func(ctx context.Context, loc driverk.Locator) ([]driverk.Element, error) {
		found := page.Get(loc)
		elements := make([]driverk.Element, len(found))
		for i, e := range found {
			elements[i] = e
		}
		return elements, nil
	}
	d.WaitFn = func(ctx context.Context, cond driverk.Condition, timeout time.Duration) error {
		return driverk.Poll(ctx, cond, timeout, time.Millisecond)
	}
	return d
}
