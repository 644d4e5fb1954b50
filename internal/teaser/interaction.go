package teaser

import (
	"github.com/PuerkitoBio/goquery"

	"github.com/blocksmith-io/teaserdecor/internal/analytics"
	"github.com/blocksmith-io/teaserdecor/internal/browse"
	"github.com/blocksmith-io/teaserdecor/internal/dom"
)

// Keyboard keys that activate a focused block.
const (
	KeyEnter = "Enter"
	KeySpace = " "
)

// PrimaryLink is the block's primary navigation target: the first anchor
// with a destination URL.
type PrimaryLink struct {
	// URL is the absolute destination.
	URL string

	// NewContext reports whether activation opens a new browsing context
	// with the safe-opener policy.
	NewContext bool
}

// Binding models the event wiring a decorated block carries: pointer hover
// over the plain link, whole-block click navigation, and keyboard
// activation. The host runtime dispatches events into it; each dispatch runs
// synchronously to completion.
type Binding struct {
	root      *goquery.Selection
	image     *goquery.Selection
	hoverLink *goquery.Selection
	primary   *PrimaryLink

	title string
	topic string

	hoverClass string
	nav        browse.Navigator
	sink       analytics.Sink
}

// bindInteraction runs the third pass: it resolves the primary link, sets
// the pointer affordance on the block, and pairs the image with the plain
// link for hover.
func (d *Decorator) bindInteraction(root *goquery.Selection, c *classification) *Binding {
	b := &Binding{
		root:       root,
		hoverClass: d.opts.Classes.ImageHover,
		nav:        d.nav,
		sink:       d.sink,
		topic:      c.topic,
	}
	if c.title != nil {
		b.title = dom.TrimmedText(c.title)
	}
	if c.image != nil && c.firstLink != nil {
		b.image = c.image
		b.hoverLink = c.firstLink
	}

	anchor := root.Find("a[href]").First()
	href, _ := anchor.Attr("href")
	if href == "" {
		return b
	}

	url := href
	if d.page != nil {
		url = d.page.Resolve(href)
	}
	target, _ := anchor.Attr("target")
	b.primary = &PrimaryLink{URL: url, NewContext: target == "_blank"}

	dom.SetStyle(root, "cursor", "pointer")
	return b
}

// Interactive reports whether the block has a primary link.
func (b *Binding) Interactive() bool {
	return b.primary != nil
}

// Primary returns the block's primary link, or nil when the block has no
// anchor with a destination URL.
func (b *Binding) Primary() *PrimaryLink {
	return b.primary
}

// HoverEnter adds the hover class to the classified image. It is a no-op
// unless the block has both a classified image and a classified plain link.
func (b *Binding) HoverEnter() {
	if b.image != nil && b.hoverLink != nil {
		b.image.AddClass(b.hoverClass)
	}
}

// HoverLeave removes the hover class added by HoverEnter.
func (b *Binding) HoverLeave() {
	if b.image != nil && b.hoverLink != nil {
		b.image.RemoveClass(b.hoverClass)
	}
}

// Click dispatches a pointer click originating at target, which may be nil
// for a click on the block body. Clicks on anchors or buttons, or on their
// descendants, are left to native handling. Otherwise the primary link is
// navigated and a teaser_click event is pushed. The return value reports
// whether navigation ran.
func (b *Binding) Click(target *goquery.Selection) bool {
	if b.primary == nil {
		return false
	}
	if target != nil && target.Closest("a, button").Length() > 0 {
		return false
	}

	if b.primary.NewContext {
		b.nav.OpenNew(b.primary.URL)
	} else {
		b.nav.Navigate(b.primary.URL)
	}
	b.sink.Push(analytics.NewTeaserClick(b.title, b.topic, b.primary.URL))
	return true
}

// Keydown dispatches a key press on the focused block. Enter and Space
// re-enter the click path; every other key is ignored.
func (b *Binding) Keydown(key string) bool {
	if key != KeyEnter && key != KeySpace {
		return false
	}
	return b.Click(nil)
}
