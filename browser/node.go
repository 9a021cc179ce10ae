package browser

import (
	"strings"
)

// AttributeValue looks up attr in a flat name, value attribute list as
// returned by DOM.getAttributes
func AttributeValue(attributes []string, attr string) (string, bool) {
	attr = strings.ToLower(attr)
	for i := 0; i+1 < len(attributes); i += 2 {
		if strings.ToLower(attributes[i]) == attr {
			return attributes[i+1], true
		}
	}
	return "", false
}

// boxCenter of a DOM.getBoxModel content quad (x1,y1 .. x4,y4)
func boxCenter(quad []float64) (float64, float64, bool) {
	if len(quad) < 8 {
		return 0, 0, false
	}
	var x, y float64
	for i := 0; i < 8; i += 2 {
		x += quad[i]
		y += quad[i+1]
	}
	return x / 4, y / 4, true
}
