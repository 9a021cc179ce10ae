package driverk

// Functions bound to an element with Runtime.callFunctionOn, shared by the
// devtools backed drivers.
const (
	TextFunction = `function() {
	return this.innerText !== undefined ? this.innerText : this.textContent;
}`

	ScrollFunction = `function() {
	this.scrollIntoView({block: "center", inline: "center"});
	return true;
}`

	// options are not clickable, select them like a user picking from the list would
	ClickFunction = `function() {
	if (this.tagName === "OPTION") {
		var sel = this.closest("select");
		this.selected = true;
		if (sel) {
			sel.dispatchEvent(new Event("input", {bubbles: true}));
			sel.dispatchEvent(new Event("change", {bubbles: true}));
		}
		return true;
	}
	this.click();
	return true;
}`
)
