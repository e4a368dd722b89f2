package browser

import (
	"time"

	"github.com/playwright-community/playwright-go"
)

// scrollScript moves the container (and the window, for pages that scroll the body) to the bottom
const scrollScript = `sel => {
	const el = document.querySelector(sel);
	if (el) {
		el.scrollTo(0, el.scrollHeight);
	}
	window.scrollTo(0, document.body.scrollHeight);
}`

// LazyScroll scrolls the element matching selector to its bottom `iterations` times,
// pausing after each scroll so lazily loaded cards can render. It does not check whether
// new cards arrived.
func LazyScroll(page playwright.Page, selector string, iterations int, pause time.Duration) error {
	for i := 0; i < iterations; i++ {
		if _, err := page.Evaluate(scrollScript, selector); err != nil {
			return err
		}
		time.Sleep(pause)
	}
	return nil
}
