package browser_test

import (
	"testing"

	"gitlab.com/driverhelpers/browser"
)

func TestAttributeValue(t *testing.T) {
	attributes := []string{"href", "blah", "Type", "radio", "value", ""}

	if v, ok := browser.AttributeValue(attributes, "type"); !ok || v != "radio" {
		t.Fatalf("expected type=radio, case insensitive")
	}
	if v, ok := browser.AttributeValue(attributes, "value"); !ok || v != "" {
		t.Fatalf("expected empty value to be found")
	}
	if _, ok := browser.AttributeValue(attributes, "name"); ok {
		t.Fatalf("name should not be found")
	}
	if _, ok := browser.AttributeValue([]string{"dangling"}, "dangling"); ok {
		t.Fatalf("an attribute without a value should not be found")
	}
}
