// Package teaser decorates content-teaser blocks: it augments
// server-rendered markup with presentation classes, restructures the meta
// line, models hover and click interactivity, and adds accessibility
// attributes. Decoration runs as four sequential in-place passes over a
// block subtree: classify, process content, bind interaction, enhance
// accessibility.
package teaser

import (
	"github.com/PuerkitoBio/goquery"

	"github.com/blocksmith-io/teaserdecor/internal/analytics"
	"github.com/blocksmith-io/teaserdecor/internal/browse"
	"github.com/blocksmith-io/teaserdecor/internal/idgen"
)

// Classes is the class vocabulary the decorator reads and writes. The Flag
// and Mark fields are the authoring-side input markers; everything else is
// written as output.
type Classes struct {
	Wrapper        string
	ImageWrapper   string
	ImageContainer string
	Image          string
	ImageHover     string
	Meta           string
	Topic          string
	Divider        string
	Date           string
	Title          string
	TitleLarge     string
	TitleMedium    string
	TitleSmall     string
	Description    string
	Link           string
	Button         string

	// Input markers produced by the authoring system.
	FlagNoImage         string
	FlagDark            string
	MarkButton          string
	MarkButtonContainer string
}

// DefaultClasses returns the standard class vocabulary.
func DefaultClasses() Classes {
	return Classes{
		Wrapper:        "teaser",
		ImageWrapper:   "teaser__image-wrapper",
		ImageContainer: "teaser__image-container",
		Image:          "teaser__image",
		ImageHover:     "teaser__image--hover",
		Meta:           "teaser__meta",
		Topic:          "teaser__topic",
		Divider:        "teaser__divider",
		Date:           "teaser__date",
		Title:          "teaser__title",
		TitleLarge:     "teaser__title--large",
		TitleMedium:    "teaser__title--medium",
		TitleSmall:     "teaser__title--small",
		Description:    "teaser__description",
		Link:           "teaser__link",
		Button:         "teaser__button",

		FlagNoImage:         "no-image",
		FlagDark:            "dark",
		MarkButton:          "button",
		MarkButtonContainer: "button-container",
	}
}

const (
	// DefaultTitleThreshold is the rune count at which a no-image title
	// drops from the large size to the medium size.
	DefaultTitleThreshold = 53

	// DefaultAltFallback is the accessible name given to images that carry
	// neither an aria-label nor alt text.
	DefaultAltFallback = "Teaser image"

	// DefaultSelector locates teaser block roots within a page.
	DefaultSelector = `[data-component="teaser"]`
)

// Options configures a Decorator. The zero value selects defaults for every
// field.
type Options struct {
	// Classes overrides the class vocabulary. The zero value selects
	// DefaultClasses.
	Classes Classes

	// TitleThreshold is the no-image title length boundary in runes.
	TitleThreshold int

	// AltFallback is the accessible-name fallback for unlabeled images.
	AltFallback string

	// Selector locates block roots for DecoratePage and InspectPage.
	Selector string

	// Navigator receives navigation requests on block activation. Nil
	// discards them.
	Navigator browse.Navigator

	// Sink receives analytics events. Nil drops them silently.
	Sink analytics.Sink

	// IDs generates ids for title elements. Nil selects the nanoid
	// generator.
	IDs idgen.Generator
}

// DefaultOptions returns the default decorator options.
func DefaultOptions() Options {
	return Options{
		Classes:        DefaultClasses(),
		TitleThreshold: DefaultTitleThreshold,
		AltFallback:    DefaultAltFallback,
		Selector:       DefaultSelector,
	}
}

// Decorator decorates teaser blocks against a page context.
type Decorator struct {
	opts Options
	page *browse.Page
	nav  browse.Navigator
	sink analytics.Sink
	ids  idgen.Generator
}

// New creates a Decorator for blocks on the given page. A nil page disables
// host comparison and URL resolution; hrefs are then used as written.
func New(page *browse.Page, opts Options) *Decorator {
	if opts.Classes == (Classes{}) {
		opts.Classes = DefaultClasses()
	}
	if opts.TitleThreshold <= 0 {
		opts.TitleThreshold = DefaultTitleThreshold
	}
	if opts.AltFallback == "" {
		opts.AltFallback = DefaultAltFallback
	}
	if opts.Selector == "" {
		opts.Selector = DefaultSelector
	}

	d := &Decorator{
		opts: opts,
		page: page,
		nav:  opts.Navigator,
		sink: opts.Sink,
		ids:  opts.IDs,
	}
	if d.nav == nil {
		d.nav = browse.Discard
	}
	if d.sink == nil {
		d.sink = analytics.Discard
	}
	if d.ids == nil {
		d.ids = &idgen.Nano{}
	}
	return d
}

// Decorate runs the four decoration passes over the block rooted at root and
// returns the block's interaction binding. Absent or malformed pieces of the
// block are skipped silently; Decorate never fails. Decorating an already
// decorated block is a safe no-op for every pass.
func (d *Decorator) Decorate(root *goquery.Selection) *Binding {
	if root == nil || root.Length() == 0 {
		return &Binding{}
	}
	c := d.classify(root)
	d.processContent(root)
	b := d.bindInteraction(root, c)
	d.enhanceAccessibility(root, c, b)
	return b
}

// DecoratePage decorates every teaser block in doc, in document order, and
// returns one binding per block.
func (d *Decorator) DecoratePage(doc *goquery.Document) []*Binding {
	var bindings []*Binding
	doc.Find(d.opts.Selector).Each(func(_ int, s *goquery.Selection) {
		bindings = append(bindings, d.Decorate(s))
	})
	return bindings
}

// Options returns the decorator's effective options.
func (d *Decorator) Options() Options {
	return d.opts
}
