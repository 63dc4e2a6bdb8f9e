package i18n

import (
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Comparator orders strings by the rules of one language.
type Comparator struct {
	mu sync.Mutex
	c  *collate.Collator
}

// NewComparator creates a Comparator for tag.
func NewComparator(tag language.Tag) *Comparator {
	return &Comparator{c: collate.New(tag)}
}

// Less reports whether a sorts before b.
func (c *Comparator) Less(a, b string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.c.CompareString(a, b) < 0
}

// Sort orders ss in place.
func (c *Comparator) Sort(ss []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.c.SortStrings(ss)
}
