package inventory

import (
	"fmt"
	"sort"
)

// Registry holds all loaded item definitions indexed by ID.
type Registry struct {
	items map[string]*ItemDef
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{items: make(map[string]*ItemDef)}
}

// RegisterItem adds d to the registry.
//
// Precondition:  d must not be nil.
// Postcondition: Item(d.ID) returns (d, true); returns error if d.ID already registered.
func (r *Registry) RegisterItem(d *ItemDef) error {
	if _, exists := r.items[d.ID]; exists {
		return fmt.Errorf("inventory: Registry.RegisterItem: item ID %q already registered", d.ID)
	}
	r.items[d.ID] = d
	return nil
}

// Item returns the ItemDef for the given id and whether it was found.
func (r *Registry) Item(id string) (*ItemDef, bool) {
	d, ok := r.items[id]
	return d, ok
}

// Create instantiates the definition registered under id.
//
// Postcondition: returns an error iff id is not registered.
func (r *Registry) Create(id string) (*Item, error) {
	d, ok := r.items[id]
	if !ok {
		return nil, fmt.Errorf("inventory: unknown item %q", id)
	}
	return New(d), nil
}

// AllItems returns every definition sorted by ID.
func (r *Registry) AllItems() []*ItemDef {
	out := make([]*ItemDef, 0, len(r.items))
	for _, d := range r.items {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// LoadRegistry loads every item file in dir into a new Registry.
//
// Postcondition: returns an error on the first unreadable, invalid, or duplicate definition.
func LoadRegistry(dir string) (*Registry, error) {
	defs, err := LoadItems(dir)
	if err != nil {
		return nil, err
	}
	r := NewRegistry()
	for _, d := range defs {
		if err := r.RegisterItem(d); err != nil {
			return nil, err
		}
	}
	return r, nil
}
