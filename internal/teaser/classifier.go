package teaser

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"github.com/blocksmith-io/teaserdecor/internal/dom"
)

// classification captures what the classifier pass found in a block. Later
// passes read it instead of re-querying the subtree.
type classification struct {
	noImage bool
	dark    bool

	image         *goquery.Selection // the classified img element
	textContainer *goquery.Selection
	title         *goquery.Selection
	description   *goquery.Selection
	firstLink     *goquery.Selection // first plain (non-button) anchor

	topic string
	date  string
}

// classify runs the first pass: semantic and style classes for the image,
// text, title, description, meta and link elements.
func (d *Decorator) classify(root *goquery.Selection) *classification {
	cl := d.opts.Classes
	c := &classification{
		noImage: root.HasClass(cl.FlagNoImage),
		dark:    root.HasClass(cl.FlagDark),
	}

	root.AddClass(cl.Wrapper)

	// The no-image flag wins over an image subtree that happens to exist;
	// that is an authoring error we tolerate, not validate.
	if !c.noImage {
		d.classifyImage(root, c)
	}

	if tc := d.findTextContainer(root); tc != nil {
		c.textContainer = tc
		d.classifyMeta(tc, c)
		d.classifyTitle(tc, c)
		d.classifyDescription(tc, c)
	}

	d.classifyLinks(root, c)
	return c
}

func (d *Decorator) classifyImage(root *goquery.Selection, c *classification) {
	cl := d.opts.Classes
	wrapper := root.Find("picture, figure").First()
	if wrapper.Length() == 0 {
		return
	}
	wrapper.AddClass(cl.ImageWrapper)
	wrapper.Parent().AddClass(cl.ImageContainer)

	img := wrapper.Find("img").First()
	if img.Length() == 0 {
		return
	}
	img.AddClass(cl.Image)
	c.image = img
}

// findTextContainer returns the first descendant container that holds a
// heading or paragraph and no image, or nil when the block has none.
func (d *Decorator) findTextContainer(root *goquery.Selection) *goquery.Selection {
	var found *goquery.Selection
	root.Find("div, section, article, aside").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if s.Find("h1, h2, h3, h4, h5, h6, p").Length() == 0 {
			return true
		}
		if s.Find("img").Length() > 0 {
			return true
		}
		found = s
		return false
	})
	return found
}

// classifyMeta inspects the text container's first child element only. The
// line qualifies as meta when its trimmed text splits on "|" into exactly
// two parts; it is then rewritten to topic, divider and date spans,
// discarding whatever markup it held before.
func (d *Decorator) classifyMeta(tc *goquery.Selection, c *classification) {
	cl := d.opts.Classes
	line := tc.Children().First()
	if line.Length() == 0 {
		return
	}

	// An already rewritten line keeps its spans.
	if line.HasClass(cl.Meta) {
		c.topic = dom.TrimmedText(line.Find("." + cl.Topic))
		c.date = dom.TrimmedText(line.Find("." + cl.Date))
		return
	}

	parts := strings.Split(dom.TrimmedText(line), "|")
	if len(parts) != 2 {
		return
	}
	topic := strings.TrimSpace(parts[0])
	date := strings.TrimSpace(parts[1])

	line.AddClass(cl.Meta)
	line.Empty()
	line.AppendNodes(
		dom.Span(cl.Topic, topic),
		dom.Span(cl.Divider, "|"),
		dom.Span(cl.Date, date),
	)
	c.topic = topic
	c.date = date
}

// classifyTitle sizes the first heading of any level in the text container.
// Without an image the size tracks the title length; with an image the title
// is always small.
func (d *Decorator) classifyTitle(tc *goquery.Selection, c *classification) {
	cl := d.opts.Classes
	title := tc.Find("h1, h2, h3, h4, h5, h6").First()
	if title.Length() == 0 {
		return
	}

	title.AddClass(cl.Title)
	size := cl.TitleSmall
	if c.noImage {
		// Length is the rendered text content in runes, whitespace included.
		if utf8.RuneCountInString(title.Text()) < d.opts.TitleThreshold {
			size = cl.TitleLarge
		} else {
			size = cl.TitleMedium
		}
	}
	title.AddClass(size)
	c.title = title
}

// classifyDescription marks the first paragraph that is neither the meta
// line nor the button wrapper.
func (d *Decorator) classifyDescription(tc *goquery.Selection, c *classification) {
	cl := d.opts.Classes
	tc.Find("p").EachWithBreak(func(_ int, p *goquery.Selection) bool {
		if p.HasClass(cl.Meta) || p.HasClass(cl.MarkButtonContainer) {
			return true
		}
		p.AddClass(cl.Description)
		c.description = p
		return false
	})
}

// classifyLinks gives every anchor exactly one of the button or plain link
// classes, keyed off the authoring-side button marker.
func (d *Decorator) classifyLinks(root *goquery.Selection, c *classification) {
	cl := d.opts.Classes
	root.Find("a").Each(func(_ int, a *goquery.Selection) {
		if a.HasClass(cl.MarkButton) {
			a.AddClass(cl.Button)
			return
		}
		a.AddClass(cl.Link)
		if c.firstLink == nil {
			c.firstLink = a
		}
	})
}
