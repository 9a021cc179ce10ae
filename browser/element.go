package browser

import (
	"context"
	"fmt"
	"strings"

	"github.com/wirepair/gcd/gcdapi"
	"gitlab.com/driverhelpers/driverk"
)

// Element is a node of a Tab's document, it implements driverk.Element
type Element struct {
	tab    *Tab
	nodeID int
}

var _ driverk.Element = (*Element)(nil)

func newElement(tab *Tab, nodeID int) *Element {
	return &Element{tab: tab, nodeID: nodeID}
}

// NodeID of this element in the current document
func (e *Element) NodeID() int {
	return e.nodeID
}

// Text is the rendered text of the element
func (e *Element) Text(ctx context.Context) (string, error) {
	v, err := e.tab.callFunctionOn(ctx, e.nodeID, driverk.TextFunction)
	if err != nil {
		return "", err
	}
	text, _ := v.(string)
	return text, nil
}

// Attribute value, empty if the attribute is not set
func (e *Element) Attribute(ctx context.Context, name string) (string, error) {
	if err := e.tab.ready(ctx); err != nil {
		return "", err
	}
	attributes, err := e.tab.t.DOM.GetAttributes(e.nodeID)
	if err != nil {
		return "", e.wrap(err)
	}
	value, _ := AttributeValue(attributes, name)
	return value, nil
}

// TagName in lower case
func (e *Element) TagName(ctx context.Context) (string, error) {
	if err := e.tab.ready(ctx); err != nil {
		return "", err
	}
	node, err := e.tab.t.DOM.DescribeNodeWithParams(&gcdapi.DOMDescribeNodeParams{NodeId: e.nodeID})
	if err != nil {
		return "", e.wrap(err)
	}
	if node.LocalName != "" {
		return node.LocalName, nil
	}
	return strings.ToLower(node.NodeName), nil
}

// SendKeys focuses the element and types keys
func (e *Element) SendKeys(ctx context.Context, keys string) error {
	if err := e.tab.ready(ctx); err != nil {
		return err
	}
	if _, err := e.tab.t.DOM.FocusWithParams(&gcdapi.DOMFocusParams{NodeId: e.nodeID}); err != nil {
		return e.wrap(err)
	}
	return e.tab.SendKeys(keys)
}

// Click the center of the element, falls back to a script click when the
// element has no box (hidden or an option)
func (e *Element) Click(ctx context.Context) error {
	if _, err := e.tab.callFunctionOn(ctx, e.nodeID, driverk.ScrollFunction); err != nil {
		return err
	}

	box, err := e.tab.t.DOM.GetBoxModelWithParams(&gcdapi.DOMGetBoxModelParams{NodeId: e.nodeID})
	if err == nil && box != nil {
		if x, y, ok := boxCenter(box.Content); ok && !e.isOption(ctx) {
			return e.tab.Click(x, y)
		}
	}
	_, err = e.tab.callFunctionOn(ctx, e.nodeID, driverk.ClickFunction)
	return err
}

// FindElement scoped to this element's descendants
func (e *Element) FindElement(ctx context.Context, loc driverk.Locator) (driverk.Element, error) {
	if loc.IsXPath() {
		return nil, ErrXPathScoped
	}
	return e.tab.querySelector(ctx, e.nodeID, loc)
}

func (e *Element) isOption(ctx context.Context) bool {
	tag, err := e.TagName(ctx)
	return err == nil && tag == "option"
}

func (e *Element) wrap(err error) error {
	return &driverk.ElementNotFoundErr{Message: fmt.Sprintf("node %d: %s", e.nodeID, err)}
}
