package driverk

import "strings"

// FormKind is the closed set of form elements that can be populated
type FormKind int8

// revive:disable:var-naming
const (
	KindUnsupported FormKind = iota
	KindSelect
	KindTextArea
	KindTextInput
	KindRadio
)

// FormKindMap to display the kind
var FormKindMap = map[FormKind]string{
	KindUnsupported: "KindUnsupported",
	KindSelect:      "KindSelect",
	KindTextArea:    "KindTextArea",
	KindTextInput:   "KindTextInput",
	KindRadio:       "KindRadio",
}

func (k FormKind) String() string {
	return FormKindMap[k]
}

// TagKindMap for taking in a tag name and outputting its FormKind, input
// tags are resolved further by InputKindMap
var TagKindMap = map[string]FormKind{
	"select":   KindSelect,
	"textarea": KindTextArea,
}

// InputKindMap for taking in an input type attribute and outputting its FormKind
var InputKindMap = map[string]FormKind{
	"radio":    KindRadio,
	"text":     KindTextInput,
	"email":    KindTextInput,
	"password": KindTextInput,
}

// IsInputTag since drivers disagree on tag name case
func IsInputTag(tag string) bool {
	return strings.EqualFold(tag, "input")
}

// TagKind returns the kind of a non input tag
func TagKind(tag string) FormKind {
	if kind, ok := TagKindMap[strings.ToLower(tag)]; ok {
		return kind
	}
	return KindUnsupported
}

// InputKind returns the kind of an input given its type attribute. A missing
// type attribute is a text input.
func InputKind(inputType string) FormKind {
	if inputType == "" {
		return KindTextInput
	}
	if kind, ok := InputKindMap[strings.ToLower(inputType)]; ok {
		return kind
	}
	return KindUnsupported
}
