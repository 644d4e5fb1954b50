package teaser

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// processContent runs the second pass: anchor normalization. External links
// are marked to open in a new browsing context with the safe-opener policy,
// and anchors without an explicit title attribute get one from their visible
// text. Existing title attributes are never overwritten.
func (d *Decorator) processContent(root *goquery.Selection) {
	root.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		if href == "" {
			return
		}

		if d.page != nil && d.page.IsExternal(href) {
			a.SetAttr("target", "_blank")
			a.SetAttr("rel", "noopener noreferrer")
		}

		if _, ok := a.Attr("title"); !ok {
			if text := strings.TrimSpace(a.Text()); text != "" {
				a.SetAttr("title", text)
			}
		}
	})
}
