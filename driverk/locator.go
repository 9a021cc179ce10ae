package driverk

import (
	"strconv"
)

// By is the search strategy of a Locator
type By int8

// revive:disable:var-naming
const (
	ByID By = iota
	ByName
	ByTagName
	ByClassName
	ByCSS
	ByXPath
)

// ByMap for displaying the strategy the same way the webdriver wire protocol names them
var ByMap = map[By]string{
	ByID:        "id",
	ByName:      "name",
	ByTagName:   "tagName",
	ByClassName: "className",
	ByCSS:       "css",
	ByXPath:     "xpath",
}

func (b By) String() string {
	if s, ok := ByMap[b]; ok {
		return s
	}
	return "unknown"
}

// Locator identifies how to find one or more elements
type Locator struct {
	By    By
	Value string
}

// ID locates by the id attribute
func ID(id string) Locator {
	return Locator{By: ByID, Value: id}
}

// Name locates by the name attribute
func Name(name string) Locator {
	return Locator{By: ByName, Value: name}
}

// TagName locates by element tag
func TagName(tag string) Locator {
	return Locator{By: ByTagName, Value: tag}
}

// ClassName locates by a single class name
func ClassName(class string) Locator {
	return Locator{By: ByClassName, Value: class}
}

// CSS locates by a raw css selector
func CSS(selector string) Locator {
	return Locator{By: ByCSS, Value: selector}
}

// XPath locates by an xpath expression
func XPath(expr string) Locator {
	return Locator{By: ByXPath, Value: expr}
}

// Selector converts the locator into an equivalent css selector. XPath locators
// have no css form and are returned as is, check IsXPath first.
func (l Locator) Selector() string {
	switch l.By {
	case ByID:
		return "[id=" + QuoteCSS(l.Value) + "]"
	case ByName:
		return "[name=" + QuoteCSS(l.Value) + "]"
	case ByClassName:
		return "." + EscapeCSSIdent(l.Value)
	}
	return l.Value
}

// IsXPath is true if this locator can only be resolved by an xpath search
func (l Locator) IsXPath() bool {
	return l.By == ByXPath
}

// String renders {"css":"div.people"} so locators read well in error messages
func (l Locator) String() string {
	return "{" + strconv.Quote(l.By.String()) + ":" + strconv.Quote(l.Value) + "}"
}
