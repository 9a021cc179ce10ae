package helpers

import (
	"context"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gitlab.com/driverhelpers/driverk"
)

// FormValues maps a css locator to a string, or to a []string (or []interface{}
// of strings) for a group of dynamically added text boxes.
type FormValues map[string]interface{}

// Action is a deferred population returned by PopulateTextBox
type Action func(ctx context.Context) error

type populateFunc func(ctx context.Context, ele driverk.Element, value string) error

// LocatorFor turns a PopulateElements key into a locator. A single word starting
// with # is looked up by id, anything else is a css selector.
func LocatorFor(key string) driverk.Locator {
	if !strings.Contains(key, " ") && strings.HasPrefix(key, "#") {
		return driverk.ID(key[1:])
	}
	return driverk.CSS(key)
}

// PopulateElements sets every form element in values. Each entry is submitted
// to the control flow and the first failure is returned once all have run.
//
//	h.PopulateElements(ctx, helpers.FormValues{
//		"input[name='gender'][value='M']": "M",
//		"#country": "United States",
//		"#age":     "34",
//		"#comment": "example msg",
//	})
func (h *Helpers) PopulateElements(ctx context.Context, values FormValues) error {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pending := make([]driverk.Pending, len(keys))
	for i, key := range keys {
		loc := LocatorFor(key)
		value := values[key]
		log.Ctx(ctx).Debug().Str("locator", loc.String()).Msg("populating")
		pending[i] = h.flow.Execute(ctx, func(ctx context.Context) error {
			return h.PopulateElement(ctx, loc, value)
		})
	}

	var first error
	for i, p := range pending {
		if err := p.Wait(ctx); err != nil && first == nil {
			first = errors.Wrapf(err, "populating %s", keys[i])
		}
	}
	return first
}

// PopulateElement sets the value of every element loc matches. Supported
// elements are select, textarea and input (text, email, password, radio);
// radios are only clicked if their value attribute equals value. Every element
// is attempted, the first failure is returned. A non string value is handed to
// PopulateTextBox.
func (h *Helpers) PopulateElement(ctx context.Context, loc driverk.Locator, value interface{}) error {
	str, ok := value.(string)
	if !ok {
		// a group of dynamically added text boxes, aka. multi-list
		action, err := h.PopulateTextBox(loc, value)
		if err != nil {
			return err
		}
		return action(ctx)
	}

	elements, err := h.driver.FindElements(ctx, loc)
	if err != nil {
		return err
	}

	// a failing element does not keep its siblings from being populated
	var first error
	for i, ele := range elements {
		if err := h.populateOne(ctx, ele, str); err != nil {
			log.Ctx(ctx).Debug().Err(err).Int("index", i).Str("locator", loc.String()).Msg("failed to populate element")
			if first == nil {
				first = err
			}
		}
	}
	return first
}

func (h *Helpers) populateOne(ctx context.Context, ele driverk.Element, value string) error {
	kind, err := h.formKind(ctx, ele)
	if err != nil {
		return err
	}
	return h.strategies[kind](ctx, ele, value)
}

// formKind inspects the tag and (for inputs) the type attribute
func (h *Helpers) formKind(ctx context.Context, ele driverk.Element) (driverk.FormKind, error) {
	tag, err := ele.TagName(ctx)
	if err != nil {
		return driverk.KindUnsupported, err
	}

	if !driverk.IsInputTag(tag) {
		kind := driverk.TagKind(tag)
		if kind == driverk.KindUnsupported {
			return kind, &driverk.UnsupportedElementErr{Tag: tag}
		}
		return kind, nil
	}

	inputType, err := ele.Attribute(ctx, "type")
	if err != nil {
		return driverk.KindUnsupported, err
	}
	kind := driverk.InputKind(inputType)
	if kind == driverk.KindUnsupported {
		return kind, &driverk.UnsupportedInputTypeErr{Type: inputType}
	}
	return kind, nil
}

func (h *Helpers) populateSelect(ctx context.Context, ele driverk.Element, value string) error {
	return clickOption(ctx, ele, value)
}

func (h *Helpers) populateText(ctx context.Context, ele driverk.Element, value string) error {
	return ele.SendKeys(ctx, value)
}

func (h *Helpers) populateRadio(ctx context.Context, ele driverk.Element, value string) error {
	radioValue, err := ele.Attribute(ctx, "value")
	if err != nil {
		return err
	}
	if radioValue != value {
		return nil
	}
	return ele.Click(ctx)
}

// PopulateTextBox returns an action that fills text box(es). For a string the
// first match of loc gets the keys. For a sequence loc is assumed to match a
// group of same-named boxes: the first value goes to the first box, then each
// following value is a new control flow step that finds the boxes again, so a
// page may add the next box only after the previous one got a value.
//
//	action, err := h.PopulateTextBox(driverk.ClassName("friends-mlText"), []string{"Abed", "Troy"})
func (h *Helpers) PopulateTextBox(loc driverk.Locator, values interface{}) (Action, error) {
	if str, ok := values.(string); ok {
		return func(ctx context.Context) error {
			return h.flow.Execute(ctx, func(ctx context.Context) error {
				return h.sendKeys(ctx, loc, str)
			}).Wait(ctx)
		}, nil
	}

	strs, err := toStrings(values)
	if err != nil {
		return nil, err
	}

	return func(ctx context.Context) error {
		if err := h.flow.Execute(ctx, func(ctx context.Context) error {
			return h.sendKeys(ctx, loc, strs[0])
		}).Wait(ctx); err != nil {
			return err
		}

		for i := 1; i < len(strs); i++ {
			i := i
			if err := h.flow.Execute(ctx, func(ctx context.Context) error {
				return h.sendKeysAt(ctx, loc, i, strs[i])
			}).Wait(ctx); err != nil {
				return err
			}
		}
		return nil
	}, nil
}

func (h *Helpers) sendKeys(ctx context.Context, loc driverk.Locator, keys string) error {
	ele, err := h.driver.FindElement(ctx, loc)
	if err != nil {
		return err
	}
	return ele.SendKeys(ctx, keys)
}

func (h *Helpers) sendKeysAt(ctx context.Context, loc driverk.Locator, index int, keys string) error {
	collection, err := h.driver.FindElements(ctx, loc)
	if err != nil {
		return err
	}
	if index >= len(collection) {
		return &driverk.IndexOutOfRangeErr{Value: keys, Index: index, Found: len(collection)}
	}
	return collection[index].SendKeys(ctx, keys)
}

// toStrings accepts []string or []interface{} holding only strings, as decoded from config
func toStrings(values interface{}) ([]string, error) {
	var strs []string
	switch v := values.(type) {
	case []string:
		strs = v
	case []interface{}:
		strs = make([]string, len(v))
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, errors.Wrapf(driverk.ErrInvalidArgument, "element %d is %T", i, item)
			}
			strs[i] = s
		}
	default:
		return nil, errors.Wrapf(driverk.ErrInvalidArgument, "got %T", values)
	}

	if len(strs) == 0 {
		return nil, errors.Wrap(driverk.ErrInvalidArgument, "no values")
	}
	return strs, nil
}
