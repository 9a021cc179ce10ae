package driverk

import (
	"fmt"

	"github.com/pkg/errors"
)

// revive:exported
var (
	ErrInvalidArgument    = errors.New("invalid type for parameter 'strings'")
	ErrTimedOut           = errors.New("request timed out")
	ErrNavigationTimedOut = errors.New("navigation timed out")
	ErrNavigating         = errors.New("error in navigation")
	ErrTabCrashed         = errors.New("tab crashed")
	ErrTabClosing         = errors.New("closing")
)

// ElementNotFoundErr when a driver is unable to find an element
type ElementNotFoundErr struct {
	Message string
}

func (e *ElementNotFoundErr) Error() string {
	return "Unable to find element " + e.Message
}

// IsNotFound is true when err is, or wraps, an *ElementNotFoundErr
func IsNotFound(err error) bool {
	var notFound *ElementNotFoundErr
	return errors.As(err, &notFound)
}

// UnsupportedElementErr when a form element tag has no population strategy
type UnsupportedElementErr struct {
	Tag string
}

func (e *UnsupportedElementErr) Error() string {
	return "Unsupported form element '" + e.Tag + "'"
}

// UnsupportedInputTypeErr when an input's type attribute has no population strategy
type UnsupportedInputTypeErr struct {
	Type string
}

func (e *UnsupportedInputTypeErr) Error() string {
	return "Unsupported input type '" + e.Type + "'"
}

// IndexOutOfRangeErr when a re-resolved multi-list is shorter than the value's position
type IndexOutOfRangeErr struct {
	Value string
	Index int
	Found int
}

func (e *IndexOutOfRangeErr) Error() string {
	return fmt.Sprintf("failed to locate text box for target string '%s' (index %d, found %d)", e.Value, e.Index, e.Found)
}

// CollectionSearchErr when no collection member's criteria text matched
type CollectionSearchErr struct {
	Collection Locator
	Criteria   Locator
	Text       string
}

func (e *CollectionSearchErr) Error() string {
	return "failed to find target element " + e.Collection.String() + e.Criteria.String() + e.Text
}
