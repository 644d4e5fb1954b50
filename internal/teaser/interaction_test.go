package teaser

import (
	"strings"
	"testing"

	"github.com/blocksmith-io/teaserdecor/internal/analytics"
	"github.com/blocksmith-io/teaserdecor/internal/browse"
	"github.com/blocksmith-io/teaserdecor/internal/idgen"
)

const interactiveBlock = `
<div data-component="teaser">
  <div class="media">
    <picture><img src="/content/teaser.jpg"></picture>
  </div>
  <div class="content">
    <p>Healthcare | February 17, 2023</p>
    <h2>Short title</h2>
    <p>A short description.</p>
  </div>
  <a href="/news/article">Read more</a>
</div>`

// wiredDecorator builds a decorator with a recording navigator and an
// in-memory analytics queue.
func wiredDecorator(t *testing.T) (*Decorator, *browse.Recorder, *analytics.Queue) {
	t.Helper()
	page, err := browse.NewPage("https://www.example.com/news/index.html")
	if err != nil {
		t.Fatalf("failed to parse page URL: %v", err)
	}
	rec := &browse.Recorder{}
	queue := analytics.NewQueue()
	d := New(page, Options{
		Navigator: rec,
		Sink:      queue,
		IDs:       idgen.NewSequence("t"),
	})
	return d, rec, queue
}

func TestInteraction_ClickOnBody(t *testing.T) {
	d, rec, queue := wiredDecorator(t)
	root := parseBlock(t, interactiveBlock)

	b := d.Decorate(root)

	if !b.Interactive() {
		t.Fatal("expected block with primary link to be interactive")
	}
	if !b.Click(root.Find("h2")) {
		t.Fatal("expected click on block body to navigate")
	}

	calls := rec.Calls()
	if len(calls) != 1 {
		t.Fatalf("expected 1 navigation, got %d", len(calls))
	}
	if calls[0].URL != "https://www.example.com/news/article" {
		t.Errorf("expected resolved absolute URL, got %s", calls[0].URL)
	}
	if calls[0].NewContext {
		t.Error("expected same-context navigation for an internal link")
	}

	events := queue.Events()
	if len(events) != 1 {
		t.Fatalf("expected exactly 1 analytics event, got %d", len(events))
	}
	e := events[0]
	if e.Event != "teaser_click" {
		t.Errorf("expected event 'teaser_click', got %s", e.Event)
	}
	if e.TeaserTitle != "Short title" {
		t.Errorf("expected title 'Short title', got %q", e.TeaserTitle)
	}
	if e.TeaserTopic != "Healthcare" {
		t.Errorf("expected topic 'Healthcare', got %q", e.TeaserTopic)
	}
	if e.TeaserURL != "https://www.example.com/news/article" {
		t.Errorf("expected absolute URL, got %s", e.TeaserURL)
	}
	if e.Component != "teaser" {
		t.Errorf("expected component 'teaser', got %s", e.Component)
	}
}

func TestInteraction_ClickOnAnchorIsNative(t *testing.T) {
	d, rec, queue := wiredDecorator(t)
	root := parseBlock(t, interactiveBlock)

	b := d.Decorate(root)

	if b.Click(root.Find("a")) {
		t.Error("expected click on an anchor to be left to native handling")
	}
	if len(rec.Calls()) != 0 {
		t.Error("expected no navigation for a click on an anchor")
	}
	if queue.Len() != 0 {
		t.Error("expected no analytics event for a click on an anchor")
	}
}

func TestInteraction_ClickOnAnchorDescendant(t *testing.T) {
	d, rec, _ := wiredDecorator(t)
	root := parseBlock(t, `
<div data-component="teaser" class="no-image">
  <div class="content"><h2>Short title</h2></div>
  <a href="/read"><span class="label">Read more</span></a>
  <button type="button"><span class="icon"></span></button>
</div>`)

	b := d.Decorate(root)

	if b.Click(root.Find("a .label")) {
		t.Error("expected click inside an anchor to be left to native handling")
	}
	if b.Click(root.Find("button .icon")) {
		t.Error("expected click inside a button to be left to native handling")
	}
	if len(rec.Calls()) != 0 {
		t.Errorf("expected no navigation, got %d", len(rec.Calls()))
	}
}

func TestInteraction_ExternalPrimaryOpensNewContext(t *testing.T) {
	d, rec, _ := wiredDecorator(t)
	root := parseBlock(t, `
<div data-component="teaser" class="no-image">
  <div class="content"><h2>Short title</h2></div>
  <a href="https://other.org/story">Read more</a>
</div>`)

	b := d.Decorate(root)

	if p := b.Primary(); p == nil || !p.NewContext {
		t.Fatal("expected external primary link to open in a new context")
	}
	if !b.Click(nil) {
		t.Fatal("expected click to activate the primary link")
	}

	calls := rec.Calls()
	if len(calls) != 1 || !calls[0].NewContext {
		t.Fatalf("expected one new-context navigation, got %+v", calls)
	}
	if calls[0].URL != "https://other.org/story" {
		t.Errorf("unexpected URL: %s", calls[0].URL)
	}
}

func TestInteraction_Keyboard(t *testing.T) {
	tests := []struct {
		name string
		key  string
		want bool
	}{
		{"enter activates", KeyEnter, true},
		{"space activates", KeySpace, true},
		{"letter is ignored", "a", false},
		{"escape is ignored", "Escape", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d, rec, queue := wiredDecorator(t)
			root := parseBlock(t, interactiveBlock)
			b := d.Decorate(root)

			if got := b.Keydown(tc.key); got != tc.want {
				t.Errorf("Keydown(%q) = %v, want %v", tc.key, got, tc.want)
			}

			wantCalls := 0
			if tc.want {
				wantCalls = 1
			}
			if len(rec.Calls()) != wantCalls {
				t.Errorf("expected %d navigation(s), got %d", wantCalls, len(rec.Calls()))
			}
			if queue.Len() != wantCalls {
				t.Errorf("expected %d analytics event(s), got %d", wantCalls, queue.Len())
			}
		})
	}
}

func TestInteraction_Hover(t *testing.T) {
	d, _, _ := wiredDecorator(t)
	root := parseBlock(t, interactiveBlock)

	b := d.Decorate(root)
	img := root.Find("img")

	b.HoverEnter()
	if !img.HasClass("teaser__image--hover") {
		t.Error("expected hover class after HoverEnter")
	}

	b.HoverLeave()
	if img.HasClass("teaser__image--hover") {
		t.Error("expected hover class removed after HoverLeave")
	}
}

func TestInteraction_HoverWithoutImage(t *testing.T) {
	d, _, _ := wiredDecorator(t)
	root := parseBlock(t, `
<div data-component="teaser" class="no-image">
  <div class="content"><h2>Short title</h2></div>
  <a href="/read">Read more</a>
</div>`)

	b := d.Decorate(root)

	// Must not panic and must not mark anything.
	b.HoverEnter()
	if root.Find(".teaser__image--hover").Length() != 0 {
		t.Error("expected no hover marking without a classified image")
	}
}

func TestInteraction_CursorAffordance(t *testing.T) {
	d, _, _ := wiredDecorator(t)
	root := parseBlock(t, interactiveBlock)

	d.Decorate(root)

	style, _ := root.Attr("style")
	if !strings.Contains(style, "cursor: pointer") {
		t.Errorf("expected pointer cursor on interactive block, got style %q", style)
	}
}

func TestInteraction_NoPrimaryLink(t *testing.T) {
	d, rec, queue := wiredDecorator(t)
	root := parseBlock(t, `
<div data-component="teaser" class="no-image">
  <div class="content"><h2>Short title</h2></div>
  <a>No destination</a>
</div>`)

	b := d.Decorate(root)

	if b.Interactive() {
		t.Error("expected block without destination URL to stay non-interactive")
	}
	if b.Click(nil) {
		t.Error("expected click on non-interactive block to do nothing")
	}
	if b.Keydown(KeyEnter) {
		t.Error("expected keydown on non-interactive block to do nothing")
	}
	if len(rec.Calls()) != 0 || queue.Len() != 0 {
		t.Error("expected no navigation or analytics without a primary link")
	}
	if style, ok := root.Attr("style"); ok && strings.Contains(style, "cursor") {
		t.Error("expected no cursor affordance without a primary link")
	}
}

func TestInteraction_NilSinkDropsEvents(t *testing.T) {
	page, err := browse.NewPage("https://www.example.com/")
	if err != nil {
		t.Fatalf("failed to parse page URL: %v", err)
	}
	rec := &browse.Recorder{}
	d := New(page, Options{Navigator: rec, IDs: idgen.NewSequence("t")})
	root := parseBlock(t, interactiveBlock)

	b := d.Decorate(root)

	// Navigation still runs; the event is dropped silently.
	if !b.Click(nil) {
		t.Fatal("expected click to navigate")
	}
	if len(rec.Calls()) != 1 {
		t.Errorf("expected 1 navigation, got %d", len(rec.Calls()))
	}
}
