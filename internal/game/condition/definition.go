// Package condition models the timed and permanent status effects carried by
// the avatar and by creatures (stunned, on fire, pacified, ...).
package condition

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Effect identifiers the action rules look for.
const (
	Amigara   = "amigara"
	Downed    = "downed"
	Glowing   = "glowing"
	Grabbed   = "grabbed"
	Harnessed = "harnessed"
	OnFire    = "onfire"
	Pet       = "pet"
	RelaxGas  = "relax_gas"
	Ridden    = "ridden"
	Stuck     = "stuck"
	Stunned   = "stunned"
)

// Duration types.
const (
	DurationTurns     = "turns"
	DurationPermanent = "permanent"
)

// ConditionDef is the static definition of a condition, loaded from YAML.
type ConditionDef struct {
	ID           string `yaml:"id"`
	Name         string `yaml:"name"`
	Description  string `yaml:"description"`
	DurationType string `yaml:"duration_type"` // "turns" | "permanent"
	MaxStacks    int    `yaml:"max_stacks"`    // 0 = unstackable
}

// Validate checks the definition's invariants.
//
// Postcondition: Returns nil iff ID and Name are set and DurationType is known.
func (d *ConditionDef) Validate() error {
	var errs []error
	if d.ID == "" {
		errs = append(errs, errors.New("id must not be empty"))
	}
	if d.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	if d.DurationType != DurationTurns && d.DurationType != DurationPermanent {
		errs = append(errs, fmt.Errorf("duration_type must be turns or permanent, got %q", d.DurationType))
	}
	if d.MaxStacks < 0 {
		errs = append(errs, errors.New("max_stacks must be >= 0"))
	}
	return errors.Join(errs...)
}

// Registry holds all known ConditionDefs keyed by ID.
type Registry struct {
	defs map[string]*ConditionDef
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]*ConditionDef)}
}

// Register adds def to the registry, overwriting any existing entry with the same ID.
// Precondition: def must not be nil and def.ID must not be empty.
func (r *Registry) Register(def *ConditionDef) {
	r.defs[def.ID] = def
}

// Get returns the ConditionDef for id, or (nil, false) if not found.
func (r *Registry) Get(id string) (*ConditionDef, bool) {
	d, ok := r.defs[id]
	return d, ok
}

// Lookup returns the registered definition for id. Unknown ids resolve to a
// permanent, unstackable definition named after the id so that rules code can
// always apply an effect.
//
// Postcondition: Returns a non-nil def with def.ID == id.
func (r *Registry) Lookup(id string) *ConditionDef {
	if d, ok := r.defs[id]; ok {
		return d
	}
	return &ConditionDef{ID: id, Name: id, DurationType: DurationPermanent}
}

// All returns a snapshot slice of all registered ConditionDefs.
func (r *Registry) All() []*ConditionDef {
	out := make([]*ConditionDef, 0, len(r.defs))
	for _, d := range r.defs {
		out = append(out, d)
	}
	return out
}

// LoadDirectory reads every *.yaml file in dir, parses each as a ConditionDef,
// and returns a populated Registry.
// Precondition: dir must be a readable directory.
// Postcondition: Returns a non-nil Registry, or an error if any file fails to parse or validate.
func LoadDirectory(dir string) (*Registry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading condition dir %q: %w", dir, err)
	}
	reg := NewRegistry()
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}
		var def ConditionDef
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&def); err != nil {
			return nil, fmt.Errorf("parsing %q: %w", path, err)
		}
		if err := def.Validate(); err != nil {
			return nil, fmt.Errorf("invalid condition in %q: %w", path, err)
		}
		reg.Register(&def)
	}
	return reg, nil
}
