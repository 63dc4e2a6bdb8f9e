// Package inventory provides item definitions, item instances, and the
// containers and locations items live in.
package inventory

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Item flags consulted by the action rules.
const (
	FlagAllowsRemoteUse = "ALLOWS_REMOTE_USE"
	FlagDigTool         = "DIG_TOOL"
	FlagNoUnwield       = "NO_UNWIELD"
	FlagTwoHanded       = "TWO_HANDED"
	FlagFoodContainer   = "FOOD_CONTAINER"
	FlagIron            = "IRON"
)

// Use methods an item can be invoked with.
const (
	UseJackhammer = "JACKHAMMER"
	UsePickaxe    = "PICKAXE"
	UseBurrow     = "BURROW"
)

// Item definition ids the rules create or look for.
const (
	IDGrass         = "grass"
	IDUnderbrush    = "underbrush"
	IDSwimFins      = "swim_fins"
	IDFakeBurrowing = "fake_burrowing"
)

// ComestibleDef holds the nutrition of an edible item.
type ComestibleDef struct {
	Kcal int `yaml:"kcal"`
}

// AmmoDef marks an item as ammunition of the given type.
type AmmoDef struct {
	Type string `yaml:"type"`
}

// ItemDef defines the static properties of an item loaded from YAML.
type ItemDef struct {
	ID             string         `yaml:"id"`
	Name           string         `yaml:"name"`
	NamePlural     string         `yaml:"name_plural"`
	Description    string         `yaml:"description"`
	Weight         float64        `yaml:"weight"` // kilograms
	Volume         int            `yaml:"volume"` // millilitres
	Flags          []string       `yaml:"flags"`
	Uses           []string       `yaml:"uses"`
	CountByCharges bool           `yaml:"count_by_charges"`
	InitialCharges int            `yaml:"initial_charges"`
	ChargesPerUse  int            `yaml:"charges_per_use"`
	Reach          int            `yaml:"reach"`
	Damage         int            `yaml:"damage"` // melee damage die; 0 strikes as unarmed
	Wearable       bool           `yaml:"wearable"`
	Gunmod         bool           `yaml:"gunmod"`
	Value          int            `yaml:"value"`
	Gun            *GunDef        `yaml:"gun"`
	Ammo           *AmmoDef       `yaml:"ammo"`
	Comestible     *ComestibleDef `yaml:"comestible"`
}

// HasFlag reports whether the definition carries flag.
func (d *ItemDef) HasFlag(flag string) bool {
	for _, f := range d.Flags {
		if f == flag {
			return true
		}
	}
	return false
}

// CanUse reports whether the definition supports the use method.
func (d *ItemDef) CanUse(method string) bool {
	for _, u := range d.Uses {
		if u == method {
			return true
		}
	}
	return false
}

// Validate checks that the ItemDef satisfies its invariants.
//
// Precondition: d is non-nil.
// Postcondition: returns nil iff all fields are valid.
func (d *ItemDef) Validate() error {
	var errs []error
	if d.ID == "" {
		errs = append(errs, errors.New("ID must not be empty"))
	}
	if d.Name == "" {
		errs = append(errs, errors.New("Name must not be empty"))
	}
	if d.Weight < 0 {
		errs = append(errs, errors.New("Weight must be >= 0"))
	}
	if d.Volume < 0 {
		errs = append(errs, errors.New("Volume must be >= 0"))
	}
	if d.Damage < 0 {
		errs = append(errs, errors.New("Damage must be >= 0"))
	}
	if d.InitialCharges < 0 || d.ChargesPerUse < 0 {
		errs = append(errs, errors.New("charges must be >= 0"))
	}
	if d.Gun != nil && d.Gunmod {
		errs = append(errs, errors.New("an item cannot be both a gun and a gunmod"))
	}
	if d.Gun != nil {
		if err := d.Gun.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	if d.Ammo != nil && d.Ammo.Type == "" {
		errs = append(errs, errors.New("Ammo.Type must not be empty"))
	}
	if d.Comestible != nil && d.Comestible.Kcal < 0 {
		errs = append(errs, errors.New("Comestible.Kcal must be >= 0"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("item validation failed: %v", errs)
	}
	return nil
}

// LoadItems reads all *.yaml and *.yml files from dir. Each file holds a list
// of ItemDefs; every def is validated.
//
// Precondition: dir is a readable directory path.
// Postcondition: returns all valid ItemDefs or the first encountered error.
func LoadItems(dir string) ([]*ItemDef, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("LoadItems: cannot read directory %q: %w", dir, err)
	}

	var items []*ItemDef
	for _, entry := range entries {
		ext := filepath.Ext(entry.Name())
		if entry.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("LoadItems: cannot read file %q: %w", path, err)
		}
		var defs []*ItemDef
		if err := yaml.Unmarshal(data, &defs); err != nil {
			return nil, fmt.Errorf("LoadItems: cannot parse file %q: %w", path, err)
		}
		for _, d := range defs {
			if err := d.Validate(); err != nil {
				return nil, fmt.Errorf("LoadItems: invalid item %q in %q: %w", d.ID, path, err)
			}
			items = append(items, d)
		}
	}
	return items, nil
}
