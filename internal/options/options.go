// Package options holds the player's game options and persists them through
// a pluggable Store.
package options

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"sync"

	"go.uber.org/zap"
)

// Option names.
const (
	UseLang      = "USE_LANG"
	AutoFeatures = "AUTO_FEATURES"
	AutoMining   = "AUTO_MINING"
	SafeMode     = "SAFEMODE"
)

// ErrOptionNotFound is returned for an option name that was never defined.
var ErrOptionNotFound = errors.New("option not found")

// ErrInvalidValue is returned when a value does not fit the option.
var ErrInvalidValue = errors.New("invalid option value")

// Kind is an option's value type.
type Kind int

const (
	KindBool Kind = iota
	KindString
)

// Item is one selectable value of a string option.
type Item struct {
	ID   string
	Name string
}

// Option is a single named setting.
type Option struct {
	Name        string
	Description string
	Kind        Kind
	Default     string
	// Items restricts a string option to these ids when non-empty.
	Items []Item

	value string
}

// Value returns the current value.
func (o *Option) Value() string { return o.value }

func (o *Option) accepts(v string) bool {
	switch o.Kind {
	case KindBool:
		_, err := strconv.ParseBool(v)
		return err == nil
	default:
		if len(o.Items) == 0 {
			return true
		}
		for _, it := range o.Items {
			if it.ID == v {
				return true
			}
		}
		return false
	}
}

// Store loads and saves option values by name.
type Store interface {
	Load(ctx context.Context) (map[string]string, error)
	Save(ctx context.Context, values map[string]string) error
}

// Defaults returns the standard option set. langs lists the selectable
// languages; the empty id stands for the system language.
func Defaults(langs []Item) []Option {
	items := append([]Item{{ID: "", Name: "System language"}}, langs...)
	return []Option{
		{Name: UseLang, Description: "Language", Kind: KindString, Items: items},
		{Name: AutoFeatures, Description: "Additional auto features", Kind: KindBool, Default: "true"},
		{Name: AutoMining, Description: "Auto mining", Kind: KindBool, Default: "true"},
		{Name: SafeMode, Description: "Safe mode", Kind: KindBool, Default: "true"},
	}
}

// Manager holds the live option values. It is safe for concurrent use.
type Manager struct {
	mu     sync.RWMutex
	opts   map[string]*Option
	order  []string
	store  Store
	logger *zap.Logger
}

// NewManager creates a Manager with every option at its default.
//
// Precondition: store and logger are non-nil; option names are unique.
func NewManager(store Store, logger *zap.Logger, defs ...Option) *Manager {
	m := &Manager{opts: make(map[string]*Option, len(defs)), store: store, logger: logger}
	for _, d := range defs {
		o := d
		o.value = o.Default
		m.opts[o.Name] = &o
		m.order = append(m.order, o.Name)
	}
	return m
}

// Load replaces current values with the stored ones. Unknown names and
// values that no longer fit are logged and skipped.
//
// Postcondition: on error the current values are unchanged.
func (m *Manager) Load(ctx context.Context) error {
	values, err := m.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading options: %w", err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		o, ok := m.opts[name]
		if !ok {
			m.logger.Warn("ignoring unknown stored option", zap.String("option", name))
			continue
		}
		if v := values[name]; o.accepts(v) {
			o.value = v
		} else {
			m.logger.Warn("ignoring invalid stored option value",
				zap.String("option", name),
				zap.String("value", v),
			)
		}
	}
	m.logger.Debug("options loaded", zap.Int("stored", len(values)))
	return nil
}

// Save writes every current value to the store.
func (m *Manager) Save(ctx context.Context) error {
	m.mu.RLock()
	values := make(map[string]string, len(m.opts))
	for name, o := range m.opts {
		values[name] = o.value
	}
	m.mu.RUnlock()
	if err := m.store.Save(ctx, values); err != nil {
		return fmt.Errorf("saving options: %w", err)
	}
	return nil
}

// Set changes an option's value.
//
// Postcondition: returns ErrOptionNotFound or ErrInvalidValue (wrapped) and
// leaves the value unchanged on failure.
func (m *Manager) Set(name, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.opts[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrOptionNotFound, name)
	}
	if !o.accepts(value) {
		return fmt.Errorf("%w: %s=%q", ErrInvalidValue, name, value)
	}
	o.value = value
	return nil
}

// String returns an option's value, or "" when it is not defined.
func (m *Manager) String(name string) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if o, ok := m.opts[name]; ok {
		return o.value
	}
	m.logger.Error("unknown option", zap.String("option", name))
	return ""
}

// Bool returns a boolean option; anything unparsable reads as false.
func (m *Manager) Bool(name string) bool {
	b, _ := strconv.ParseBool(m.String(name))
	return b
}

// Items returns the selectable values of a string option.
func (m *Manager) Items(name string) []Item {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if o, ok := m.opts[name]; ok {
		return append([]Item(nil), o.Items...)
	}
	return nil
}

// All returns copies of every option in definition order.
func (m *Manager) All() []Option {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Option, 0, len(m.order))
	for _, name := range m.order {
		out = append(out, *m.opts[name])
	}
	return out
}
