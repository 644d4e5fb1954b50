// Package analytics models the page-level event queue (the dataLayer) that
// teaser interaction events are pushed to.
package analytics

import "sync"

const (
	// EventTeaserClick is emitted when a block's primary link is activated.
	EventTeaserClick = "teaser_click"

	// ComponentTeaser identifies the emitting component.
	ComponentTeaser = "teaser"
)

// Event is a single analytics payload.
type Event struct {
	Event       string `json:"event"`
	TeaserTitle string `json:"teaser_title"`
	TeaserTopic string `json:"teaser_topic"`
	TeaserURL   string `json:"teaser_url"`
	Component   string `json:"component"`
}

// NewTeaserClick builds the event emitted on primary-link activation. Title
// and topic may be empty when the block carries no title or meta line.
func NewTeaserClick(title, topic, url string) Event {
	return Event{
		Event:       EventTeaserClick,
		TeaserTitle: title,
		TeaserTopic: topic,
		TeaserURL:   url,
		Component:   ComponentTeaser,
	}
}

// Sink consumes analytics events.
type Sink interface {
	Push(Event)
}

// Queue is an in-memory Sink, the stand-in for the page's dataLayer.
type Queue struct {
	mu     sync.Mutex
	events []Event
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Push implements Sink.
func (q *Queue) Push(e Event) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.events = append(q.events, e)
}

// Events returns a copy of the queued events in push order.
func (q *Queue) Events() []Event {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]Event, len(q.events))
	copy(out, q.events)
	return out
}

// Len returns the number of queued events.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}

// Drain returns the queued events and empties the queue.
func (q *Queue) Drain() []Event {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.events
	q.events = nil
	return out
}

// Discard is a Sink that drops every event, modeling a page without an
// analytics queue.
var Discard Sink = discard{}

type discard struct{}

func (discard) Push(Event) {}
