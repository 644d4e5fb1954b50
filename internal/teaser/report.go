package teaser

import (
	"github.com/PuerkitoBio/goquery"

	"github.com/blocksmith-io/teaserdecor/internal/dom"
)

// Report describes how a block was classified. It is the structured output
// of the inspect command.
type Report struct {
	NoImage           bool   `json:"no_image"`
	Dark              bool   `json:"dark"`
	HasImage          bool   `json:"has_image"`
	Title             string `json:"title,omitempty"`
	TitleSize         string `json:"title_size,omitempty"`
	TitleID           string `json:"title_id,omitempty"`
	Topic             string `json:"topic,omitempty"`
	Date              string `json:"date,omitempty"`
	HasDescription    bool   `json:"has_description"`
	Links             []Link `json:"links,omitempty"`
	PrimaryURL        string `json:"primary_url,omitempty"`
	PrimaryNewContext bool   `json:"primary_new_context,omitempty"`
}

// Link describes one anchor in a block.
type Link struct {
	Href     string `json:"href"`
	Text     string `json:"text,omitempty"`
	Button   bool   `json:"button"`
	External bool   `json:"external"`
}

// Inspect decorates the block rooted at root and reports how it was
// classified.
func (d *Decorator) Inspect(root *goquery.Selection) *Report {
	r := &Report{}
	if root == nil || root.Length() == 0 {
		return r
	}

	c := d.classify(root)
	d.processContent(root)
	b := d.bindInteraction(root, c)
	d.enhanceAccessibility(root, c, b)

	cl := d.opts.Classes
	r.NoImage = c.noImage
	r.Dark = c.dark
	r.HasImage = c.image != nil
	r.Topic = c.topic
	r.Date = c.date
	r.HasDescription = c.description != nil

	if c.title != nil {
		r.Title = dom.TrimmedText(c.title)
		r.TitleID, _ = c.title.Attr("id")
		switch {
		case c.title.HasClass(cl.TitleLarge):
			r.TitleSize = "large"
		case c.title.HasClass(cl.TitleMedium):
			r.TitleSize = "medium"
		case c.title.HasClass(cl.TitleSmall):
			r.TitleSize = "small"
		}
	}

	root.Find("a").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		link := Link{
			Href:   href,
			Text:   dom.TrimmedText(a),
			Button: a.HasClass(cl.Button),
		}
		if d.page != nil && href != "" {
			link.External = d.page.IsExternal(href)
		}
		r.Links = append(r.Links, link)
	})

	if b.primary != nil {
		r.PrimaryURL = b.primary.URL
		r.PrimaryNewContext = b.primary.NewContext
	}
	return r
}

// InspectPage decorates and reports every teaser block in doc in document
// order.
func (d *Decorator) InspectPage(doc *goquery.Document) []*Report {
	var reports []*Report
	doc.Find(d.opts.Selector).Each(func(_ int, s *goquery.Selection) {
		reports = append(reports, d.Inspect(s))
	})
	return reports
}
