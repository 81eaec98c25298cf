package chromedp

import (
	"encoding/json"
	"fmt"
)

const (
	scrollToScript = `(() => {
	const sel = %s;
	const el = sel ? document.querySelector(sel) : null;
	if (el) {
		el.scrollIntoView({behavior: "smooth", block: "center"});
		return true;
	}
	window.scrollTo(0, 0);
	return false;
})()`

	exportScript = `(() => {
	const el = document.querySelector(%s);
	if (!el || typeof el.toDataURL !== "function") return "";
	return el.toDataURL("image/png");
})()`
)

// jsString quotes s as a JavaScript string literal.
func jsString(s string) string {
	b, err := json.Marshal(s)
	if err != nil {
		// Marshalling a string cannot fail.
		panic(err)
	}
	return string(b)
}

// scrollTo returns an expression that centres the element matching
// selector, or scrolls to the top when selector is empty or unmatched.
func scrollTo(selector string) string {
	return fmt.Sprintf(scrollToScript, jsString(selector))
}

// export returns an expression yielding the PNG data URL of the canvas
// matching selector, or "" when there is none.
func export(selector string) string {
	return fmt.Sprintf(exportScript, jsString(selector))
}
