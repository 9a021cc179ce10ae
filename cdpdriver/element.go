package cdpdriver

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/dom"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
	"github.com/pkg/errors"
	"gitlab.com/driverhelpers/driverk"
)

// Element is a node returned by a chromedp query
type Element struct {
	driver *Driver
	node   *cdp.Node
}

var _ driverk.Element = (*Element)(nil)

// Node as it was when the element was found
func (e *Element) Node() *cdp.Node {
	return e.node
}

// Text is the rendered text of the element
func (e *Element) Text(ctx context.Context) (string, error) {
	var text string
	err := e.callFunctionOn(ctx, driverk.TextFunction, &text)
	return text, err
}

// Attribute value, empty if the attribute is not set
func (e *Element) Attribute(ctx context.Context, name string) (string, error) {
	var attributes []string
	err := e.driver.run(ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		var err error
		attributes, err = dom.GetAttributes(e.node.NodeID).Do(ctx)
		return err
	}))
	if err != nil {
		return "", e.wrap(err)
	}
	for i := 0; i+1 < len(attributes); i += 2 {
		if strings.EqualFold(attributes[i], name) {
			return attributes[i+1], nil
		}
	}
	return "", nil
}

// TagName in lower case
func (e *Element) TagName(ctx context.Context) (string, error) {
	if e.node.LocalName != "" {
		return e.node.LocalName, nil
	}
	return strings.ToLower(e.node.NodeName), nil
}

// SendKeys focuses the element and types keys
func (e *Element) SendKeys(ctx context.Context, keys string) error {
	return e.driver.run(ctx, chromedp.SendKeys(e.ids(), keys, chromedp.ByNodeID))
}

// Click the element, options are picked through their select
func (e *Element) Click(ctx context.Context) error {
	if tag, _ := e.TagName(ctx); tag == "option" {
		return e.callFunctionOn(ctx, driverk.ClickFunction, nil)
	}
	return e.driver.run(ctx, chromedp.Click(e.ids(), chromedp.ByNodeID))
}

// FindElement scoped to this element's descendants
func (e *Element) FindElement(ctx context.Context, loc driverk.Locator) (driverk.Element, error) {
	elements, err := e.driver.find(ctx, loc, e.node)
	if err != nil {
		return nil, err
	}
	if len(elements) == 0 {
		return nil, &driverk.ElementNotFoundErr{Message: loc.String()}
	}
	return elements[0], nil
}

func (e *Element) ids() []cdp.NodeID {
	return []cdp.NodeID{e.node.NodeID}
}

// callFunctionOn the element, decoding the by value result into res when not nil
func (e *Element) callFunctionOn(ctx context.Context, function string, res interface{}) error {
	return e.driver.run(ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		obj, err := dom.ResolveNode().WithNodeID(e.node.NodeID).Do(ctx)
		if err != nil {
			return e.wrap(err)
		}
		defer runtime.ReleaseObject(obj.ObjectID).Do(ctx)

		v, exp, err := runtime.CallFunctionOn(function).
			WithObjectID(obj.ObjectID).
			WithReturnByValue(true).
			WithSilent(true).
			Do(ctx)
		if err != nil {
			return err
		}
		if exp != nil {
			return errors.Errorf("script error on node %d: %s", e.node.NodeID, exp.Text)
		}
		if res == nil || len(v.Value) == 0 {
			return nil
		}
		return json.Unmarshal([]byte(v.Value), res)
	}))
}

func (e *Element) wrap(err error) error {
	return &driverk.ElementNotFoundErr{Message: errors.Wrapf(err, "node %d", e.node.NodeID).Error()}
}
