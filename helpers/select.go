package helpers

import (
	"context"

	"gitlab.com/driverhelpers/driverk"
)

// SelectByValue clicks the option of the select found by loc whose value attribute is value
func (h *Helpers) SelectByValue(ctx context.Context, loc driverk.Locator, value string) error {
	sel, err := h.driver.FindElement(ctx, loc)
	if err != nil {
		return err
	}
	return clickOption(ctx, sel, value)
}

// RadioByValue clicks input[name=name][value=value], the pair must be unique in the document
func (h *Helpers) RadioByValue(ctx context.Context, name, value string) error {
	radio, err := h.driver.FindElement(ctx, driverk.CSS(driverk.AttributeEquals("input", "name", name, "value", value)))
	if err != nil {
		return err
	}
	return radio.Click(ctx)
}

func clickOption(ctx context.Context, sel driverk.Element, value string) error {
	option, err := sel.FindElement(ctx, driverk.CSS(driverk.AttributeEquals("option", "value", value)))
	if err != nil {
		return err
	}
	return option.Click(ctx)
}
