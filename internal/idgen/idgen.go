// Package idgen provides the unique-id capability used when decorating
// title elements.
package idgen

import (
	"fmt"
	"sync/atomic"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Generator produces element ids.
type Generator interface {
	NewID() string
}

const (
	// idAlphabet is the character set used for generated ids.
	idAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	// idLength is the length of the random id segment.
	idLength = 8
	// idPrefix namespaces generated ids within the page.
	idPrefix = "teaser-title-"
)

// Nano generates nanoid-backed ids of the form "teaser-title-x8d3k2ab".
// Collisions are possible but not guarded against; ids are only referenced
// within a page, never verified unique programmatically.
type Nano struct {
	fallback uint64
}

// NewID implements Generator.
func (n *Nano) NewID() string {
	id, err := gonanoid.Generate(idAlphabet, idLength)
	if err != nil {
		// gonanoid only fails when the platform random source does.
		return fmt.Sprintf("%s%08d", idPrefix, atomic.AddUint64(&n.fallback, 1))
	}
	return idPrefix + id
}

// Sequence is a deterministic Generator for tests: prefix followed by an
// incrementing counter starting at 1.
type Sequence struct {
	prefix string
	n      uint64
}

// NewSequence creates a Sequence with the given prefix.
func NewSequence(prefix string) *Sequence {
	return &Sequence{prefix: prefix}
}

// NewID implements Generator.
func (s *Sequence) NewID() string {
	return fmt.Sprintf("%s%d", s.prefix, atomic.AddUint64(&s.n, 1))
}
