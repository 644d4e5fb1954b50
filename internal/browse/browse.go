// Package browse models the browsing context a teaser block lives in:
// the current page location and the navigation capability invoked when a
// block's primary link is activated.
package browse

import (
	"fmt"
	"net/url"
	"strings"
	"sync"
)

// Page represents the location of the page being decorated. Link hosts are
// compared against it and relative hrefs are resolved against it.
type Page struct {
	url *url.URL
}

// NewPage parses rawURL and returns the page location.
func NewPage(rawURL string) (*Page, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page URL: %w", err)
	}
	return &Page{url: u}, nil
}

// URL returns the parsed page URL.
func (p *Page) URL() *url.URL {
	return p.url
}

// Host returns the page host.
func (p *Page) Host() string {
	return p.url.Host
}

// IsExternal reports whether href points at a different host than the page.
// Relative hrefs and hrefs on the same host are not external. An href that
// does not parse is treated as not external.
func (p *Page) IsExternal(href string) bool {
	u, err := url.Parse(href)
	if err != nil {
		return false
	}
	if u.Host == "" {
		return false
	}
	return !strings.EqualFold(u.Host, p.url.Host)
}

// Resolve resolves href against the page URL and returns the absolute form.
// An href that does not parse is returned unchanged.
func (p *Page) Resolve(href string) string {
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	return p.url.ResolveReference(u).String()
}

// Navigator is the navigation capability used when a decorated block is
// activated.
type Navigator interface {
	// Navigate loads url in the current browsing context.
	Navigate(url string)

	// OpenNew opens url in a new browsing context with the
	// noopener/noreferrer policy applied.
	OpenNew(url string)
}

// Call records a single navigation request.
type Call struct {
	URL        string
	NewContext bool
}

// Recorder is a Navigator that records every navigation request. It is the
// deterministic stand-in for a real browsing runtime in tests and tooling.
type Recorder struct {
	mu    sync.Mutex
	calls []Call
}

// Navigate implements Navigator.
func (r *Recorder) Navigate(url string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, Call{URL: url})
}

// OpenNew implements Navigator.
func (r *Recorder) OpenNew(url string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, Call{URL: url, NewContext: true})
}

// Calls returns a copy of the recorded navigation requests in order.
func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Call, len(r.calls))
	copy(out, r.calls)
	return out
}

// Discard is a Navigator that ignores every navigation request.
var Discard Navigator = discard{}

type discard struct{}

func (discard) Navigate(string) {}
func (discard) OpenNew(string)  {}
