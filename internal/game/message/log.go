// Package message holds the player-visible message log.
package message

import (
	"fmt"
	"sync"
)

// Kind classifies a message for colouring.
type Kind int

const (
	Neutral Kind = iota
	Good
	Bad
	Info
	Warning
)

// String returns a lowercase kind name.
func (k Kind) String() string {
	switch k {
	case Good:
		return "good"
	case Bad:
		return "bad"
	case Info:
		return "info"
	case Warning:
		return "warning"
	default:
		return "neutral"
	}
}

// ParseKind maps a kind name back to its Kind; unknown names are Neutral.
func ParseKind(s string) Kind {
	for _, k := range []Kind{Good, Bad, Info, Warning} {
		if k.String() == s {
			return k
		}
	}
	return Neutral
}

// Printer formats a message through the active translation catalog.
type Printer interface {
	Sprintf(format string, args ...any) string
}

type untranslated struct{}

func (untranslated) Sprintf(format string, args ...any) string { return fmt.Sprintf(format, args...) }

// Entry is one logged message.
type Entry struct {
	Kind Kind
	Text string
}

// Log is an append-only list of messages. It is safe for concurrent use.
type Log struct {
	mu      sync.Mutex
	printer Printer
	entries []Entry
	unread  int
}

// NewLog creates a log formatting through p; nil formats untranslated.
func NewLog(p Printer) *Log {
	if p == nil {
		p = untranslated{}
	}
	return &Log{printer: p}
}

// SetPrinter switches the translation used for subsequent messages.
func (l *Log) SetPrinter(p Printer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if p == nil {
		p = untranslated{}
	}
	l.printer = p
}

// Add translates format, formats it with args, and appends the result.
func (l *Log) Add(kind Kind, format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, Entry{Kind: kind, Text: l.printer.Sprintf(format, args...)})
	l.unread++
}

// Sprintf translates and formats without logging.
func (l *Log) Sprintf(format string, args ...any) string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.printer.Sprintf(format, args...)
}

// Entries returns a snapshot of every message.
func (l *Log) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Entry(nil), l.entries...)
}

// Last returns the most recent entry.
func (l *Log) Last() (Entry, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.entries) == 0 {
		return Entry{}, false
	}
	return l.entries[len(l.entries)-1], true
}

// Unread returns the messages added since the previous call.
func (l *Log) Unread() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := append([]Entry(nil), l.entries[len(l.entries)-l.unread:]...)
	l.unread = 0
	return out
}

// Texts returns the text of every message, oldest first.
func (l *Log) Texts() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.entries))
	for i, e := range l.entries {
		out[i] = e.Text
	}
	return out
}
