package browser

import "github.com/wirepair/gcd/gcdapi"

// Click issues a left click at the x, y coords provided.
func (t *Tab) Click(x, y float64) error {
	return t.click(x, y, 1)
}

func (t *Tab) click(x, y float64, clickCount int) error {
	// "mousePressed", "mouseReleased", "mouseMoved"
	// enum": ["none", "left", "middle", "right"]

	mousePressedParams := &gcdapi.InputDispatchMouseEventParams{TheType: "mousePressed",
		X:          x,
		Y:          y,
		Button:     "left",
		ClickCount: clickCount,
	}

	if _, err := t.t.Input.DispatchMouseEventWithParams(mousePressedParams); err != nil {
		return err
	}

	mouseReleasedParams := &gcdapi.InputDispatchMouseEventParams{TheType: "mouseReleased",
		X:          x,
		Y:          y,
		Button:     "left",
		ClickCount: clickCount,
	}

	if _, err := t.t.Input.DispatchMouseEventWithParams(mouseReleasedParams); err != nil {
		return err
	}
	return nil
}

// SendKeys to whatever is focused, best called from Element.SendKeys which will
// focus on the element first. Use \n for Enter, \b for backspace or \t for Tab.
func (t *Tab) SendKeys(text string) error {
	inputParams := &gcdapi.InputDispatchKeyEventParams{TheType: "char"}

	// loop over input, looking for system keys and handling them
	for _, inputchar := range text {
		input := string(inputchar)

		// check system keys
		switch input {
		case "\r", "\n", "\t", "\b":
			if err := t.pressSystemKey(input); err != nil {
				return err
			}
			continue
		}
		inputParams.Text = input
		_, err := t.t.Input.DispatchKeyEventWithParams(inputParams)
		if err != nil {
			return err
		}
	}
	return nil
}

var systemKeyCodes = map[string]int{
	"\b": 8,
	"\t": 9,
	"\r": 13,
	"\n": 13,
}

func (t *Tab) pressSystemKey(systemKey string) error {
	text := systemKey
	if text == "\n" {
		text = "\r"
	}
	code := systemKeyCodes[systemKey]
	inputParams := &gcdapi.InputDispatchKeyEventParams{
		TheType:               "rawKeyDown",
		UnmodifiedText:        text,
		Text:                  text,
		WindowsVirtualKeyCode: code,
		NativeVirtualKeyCode:  code,
	}

	for _, phase := range []string{"rawKeyDown", "char", "keyUp"} {
		inputParams.TheType = phase
		if _, err := t.t.Input.DispatchKeyEventWithParams(inputParams); err != nil {
			return err
		}
	}
	return nil
}
