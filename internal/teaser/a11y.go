package teaser

import (
	"github.com/PuerkitoBio/goquery"

	"github.com/blocksmith-io/teaserdecor/internal/dom"
)

// ariaLabelPrefix introduces the block's accessible name when a title is
// present.
const ariaLabelPrefix = "Read more about: "

// enhanceAccessibility runs the fourth pass: image name fallback, block
// focus and role for interactive blocks, and a unique id for the title.
func (d *Decorator) enhanceAccessibility(root *goquery.Selection, c *classification, b *Binding) {
	if c.image != nil {
		d.ensureImageLabel(c.image)
	}

	if b.primary != nil {
		root.SetAttr("tabindex", "0")
		root.SetAttr("role", "article")
		if c.title != nil {
			root.SetAttr("aria-label", ariaLabelPrefix+dom.TrimmedText(c.title))
		}
	}

	if c.title != nil {
		if _, ok := c.title.Attr("id"); !ok {
			c.title.SetAttr("id", d.ids.NewID())
		}
	}
}

// ensureImageLabel gives an image with neither an aria-label nor alt text a
// generic accessible name.
func (d *Decorator) ensureImageLabel(img *goquery.Selection) {
	if _, ok := img.Attr("aria-label"); ok {
		return
	}
	if alt, _ := img.Attr("alt"); alt != "" {
		return
	}
	img.SetAttr("aria-label", d.opts.AltFallback)
}
