package seldriver

import (
	"context"
	"strings"

	"github.com/tebeka/selenium"
	"gitlab.com/driverhelpers/driverk"
)

const errNilValue = "nil return value"

// Element adapts a selenium.WebElement
type Element struct {
	ele selenium.WebElement
}

var _ driverk.Element = (*Element)(nil)

// WebElement being driven
func (e *Element) WebElement() selenium.WebElement {
	return e.ele
}

func (e *Element) Text(ctx context.Context) (string, error) {
	var text string
	err := do(ctx, func() error {
		var err error
		text, err = e.ele.Text()
		return err
	})
	return text, err
}

// Attribute value, empty if the attribute is not set
func (e *Element) Attribute(ctx context.Context, name string) (string, error) {
	var value string
	err := do(ctx, func() error {
		var err error
		value, err = e.ele.GetAttribute(name)
		return err
	})
	// unset attributes come back as a null value
	if err != nil && err.Error() == errNilValue {
		return "", nil
	}
	return value, err
}

// TagName in lower case
func (e *Element) TagName(ctx context.Context) (string, error) {
	var tag string
	err := do(ctx, func() error {
		var err error
		tag, err = e.ele.TagName()
		return err
	})
	return strings.ToLower(tag), err
}

func (e *Element) SendKeys(ctx context.Context, keys string) error {
	return do(ctx, func() error {
		return e.ele.SendKeys(keys)
	})
}

func (e *Element) Click(ctx context.Context) error {
	return do(ctx, func() error {
		return e.ele.Click()
	})
}

// FindElement scoped to this element's descendants
func (e *Element) FindElement(ctx context.Context, loc driverk.Locator) (driverk.Element, error) {
	var child selenium.WebElement
	err := do(ctx, func() error {
		var err error
		child, err = e.ele.FindElement(ByMap[loc.By], loc.Value)
		return err
	})
	if err != nil {
		return nil, wrap(err, loc)
	}
	return &Element{ele: child}, nil
}
