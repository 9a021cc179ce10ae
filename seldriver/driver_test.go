package seldriver_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/pkg/errors"
	"github.com/tebeka/selenium"
	"gitlab.com/driverhelpers/driverk"
	"gitlab.com/driverhelpers/flow"
	"gitlab.com/driverhelpers/helpers"
	"gitlab.com/driverhelpers/seldriver"
)

type fakeElement struct {
	selenium.WebElement
	tag      string
	text     string
	attrs    map[string]string
	children map[string]*fakeElement
	keys     []string
	clicks   int
}

func (e *fakeElement) Text() (string, error)    { return e.text, nil }
func (e *fakeElement) TagName() (string, error) { return e.tag, nil }
func (e *fakeElement) Click() error             { e.clicks++; return nil }

func (e *fakeElement) SendKeys(keys string) error {
	e.keys = append(e.keys, keys)
	return nil
}

func (e *fakeElement) GetAttribute(name string) (string, error) {
	v, ok := e.attrs[name]
	if !ok {
		return "", fmt.Errorf("nil return value")
	}
	return v, nil
}

func (e *fakeElement) FindElement(by, value string) (selenium.WebElement, error) {
	child, ok := e.children[by+"="+value]
	if !ok {
		return nil, &selenium.Error{Err: "no such element", Message: value, HTTPCode: 404}
	}
	return child, nil
}

type fakeWebDriver struct {
	selenium.WebDriver
	elements map[string][]*fakeElement
	queries  []string
}

func (wd *fakeWebDriver) FindElement(by, value string) (selenium.WebElement, error) {
	wd.queries = append(wd.queries, by+"="+value)
	found := wd.elements[by+"="+value]
	if len(found) == 0 {
		return nil, &selenium.Error{Err: "no such element", Message: value, HTTPCode: 404}
	}
	return found[0], nil
}

func (wd *fakeWebDriver) FindElements(by, value string) ([]selenium.WebElement, error) {
	wd.queries = append(wd.queries, by+"="+value)
	found := make([]selenium.WebElement, 0)
	for _, ele := range wd.elements[by+"="+value] {
		found = append(found, ele)
	}
	return found, nil
}

func TestByMap(t *testing.T) {
	var byTests = []struct {
		loc      driverk.Locator
		expected string
	}{
		{driverk.ID("a"), "id"},
		{driverk.Name("a"), "name"},
		{driverk.TagName("a"), "tag name"},
		{driverk.ClassName("a"), "class name"},
		{driverk.CSS("a"), "css selector"},
		{driverk.XPath("//a"), "xpath"},
	}
	for _, tt := range byTests {
		if by := seldriver.ByMap[tt.loc.By]; by != tt.expected {
			t.Fatalf("%s expected %s got %s\n", tt.loc, tt.expected, by)
		}
	}
}

func TestFindElementNotFound(t *testing.T) {
	d := seldriver.New(&fakeWebDriver{})

	_, err := d.FindElement(context.Background(), driverk.ID("missing"))
	if !driverk.IsNotFound(err) {
		t.Fatalf("expected no such element to map to not found, got: %v\n", err)
	}

	wd := &fakeWebDriver{}
	d = seldriver.New(&failingWebDriver{wd})
	_, err = d.FindElement(context.Background(), driverk.ID("missing"))
	if driverk.IsNotFound(err) || errors.Cause(err) != errSessionGone {
		t.Fatalf("other errors must pass through, got: %v\n", err)
	}
}

var errSessionGone = errors.New("invalid session id")

type failingWebDriver struct {
	*fakeWebDriver
}

func (wd *failingWebDriver) FindElement(by, value string) (selenium.WebElement, error) {
	return nil, errSessionGone
}

func TestAttributeUnset(t *testing.T) {
	wd := &fakeWebDriver{elements: map[string][]*fakeElement{
		"id=a": {{tag: "INPUT", attrs: map[string]string{"type": "radio"}}},
	}}
	d := seldriver.New(wd)
	ctx := context.Background()

	ele, err := d.FindElement(ctx, driverk.ID("a"))
	if err != nil {
		t.Fatalf("error finding element: %s\n", err)
	}
	if v, err := ele.Attribute(ctx, "value"); err != nil || v != "" {
		t.Fatalf("expected empty value for unset attribute, got %q (%v)\n", v, err)
	}
	if tag, _ := ele.TagName(ctx); tag != "input" {
		t.Fatalf("expected lower case tag got %s\n", tag)
	}
}

func TestHelpersOverSelenium(t *testing.T) {
	options := map[string]*fakeElement{
		"css selector=option[value='US']": {tag: "option", attrs: map[string]string{"value": "US"}},
	}
	people := []*fakeElement{
		{tag: "div", children: map[string]*fakeElement{"class name=name": {tag: "p", text: "Annie Edison"}}},
		{tag: "div", children: map[string]*fakeElement{"class name=name": {tag: "p", text: "Jeff Winger"}}},
	}
	email := &fakeElement{tag: "input", attrs: map[string]string{"type": "email"}}
	wd := &fakeWebDriver{elements: map[string][]*fakeElement{
		"id=country":                        {{tag: "select", children: options}},
		"id=email":                          {email},
		"css selector=div.people > .person": people,
	}}

	f := flow.New()
	defer f.Close()
	h := helpers.New(seldriver.New(wd), f)
	ctx := context.Background()

	err := h.PopulateElements(ctx, helpers.FormValues{
		"#country": "US",
		"#email":   "user@example.com",
	})
	if err != nil {
		t.Fatalf("error populating: %s\n", err)
	}
	if options["css selector=option[value='US']"].clicks != 1 {
		t.Fatalf("option was not clicked")
	}
	if len(email.keys) != 1 || email.keys[0] != "user@example.com" {
		t.Fatalf("expected email keys got %v\n", email.keys)
	}

	found, err := h.FindElementInCollectionByText(driverk.CSS("div.people > .person"), driverk.ClassName("name"), "Jeff Winger")(ctx)
	if err != nil {
		t.Fatalf("error searching: %s\n", err)
	}
	if found.(*seldriver.Element).WebElement() != people[1] {
		t.Fatalf("expected second person")
	}
}
