package world

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/underbrush/internal/game/geom"
	"github.com/cory-johannsen/underbrush/internal/game/inventory"
	"github.com/cory-johannsen/underbrush/internal/game/vehicle"
)

// LegendEntry maps one level glyph to terrain and optional furniture.
type LegendEntry struct {
	Ter  string `yaml:"ter"`
	Furn string `yaml:"furn"`
}

// Layer is the grid of glyphs for one z-level; row 0 is y = 0.
type Layer struct {
	Z    int      `yaml:"z"`
	Rows []string `yaml:"rows"`
}

// ItemSpawn places an item on a tile.
type ItemSpawn struct {
	ID      string `yaml:"id"`
	X       int    `yaml:"x"`
	Y       int    `yaml:"y"`
	Z       int    `yaml:"z"`
	Charges int    `yaml:"charges"`
}

// CreatureSpawn describes a creature for the game state to create.
type CreatureSpawn struct {
	Kind     string   `yaml:"kind"` // monster | npc
	ID       string   `yaml:"id"`
	Name     string   `yaml:"name"`
	X        int      `yaml:"x"`
	Y        int      `yaml:"y"`
	Z        int      `yaml:"z"`
	HP       int      `yaml:"hp"`
	Defense  int      `yaml:"defense"`
	Friendly bool     `yaml:"friendly"`
	Attitude string   `yaml:"attitude"`
	Size     string   `yaml:"size"`
	Flags    []string `yaml:"flags"`
	Effects  []string `yaml:"effects"`
	Weapon   string   `yaml:"weapon"`
	Swims    bool     `yaml:"swims"`
	Level    int      `yaml:"difficulty"`
}

// PartSpec describes one vehicle part.
type PartSpec struct {
	Name     string   `yaml:"name"`
	X        int      `yaml:"x"`
	Y        int      `yaml:"y"`
	Features []string `yaml:"features"`
	Open     bool     `yaml:"open"`
	// Gun arms a TURRET part; Charges loads it.
	Gun     string `yaml:"gun"`
	Charges int    `yaml:"charges"`
}

// VehicleSpec describes a vehicle placed on the level.
type VehicleSpec struct {
	Name     string     `yaml:"name"`
	X        int        `yaml:"x"`
	Y        int        `yaml:"y"`
	Z        int        `yaml:"z"`
	Owner    string     `yaml:"owner"`
	Velocity int        `yaml:"velocity"`
	InWater  bool       `yaml:"in_water"`
	Drained  bool       `yaml:"drained"`
	Parts    []PartSpec `yaml:"parts"`
}

// Level is a hand-authored map.
type Level struct {
	ID             string                 `yaml:"id"`
	Name           string                 `yaml:"name"`
	DefaultTerrain string                 `yaml:"default_terrain"`
	Start          geom.Tripoint          `yaml:"start"`
	Legend         map[string]LegendEntry `yaml:"legend"`
	Layers         []Layer                `yaml:"layers"`
	Items          []ItemSpawn            `yaml:"items"`
	Creatures      []CreatureSpawn        `yaml:"creatures"`
	Vehicles       []VehicleSpec          `yaml:"vehicles"`
}

type yamlLevelFile struct {
	Level Level `yaml:"level"`
}

// Validate checks level invariants against defs.
//
// Postcondition: returns nil iff every glyph and id resolves.
func (l *Level) Validate(defs *Definitions) error {
	var errs []error
	if l.ID == "" {
		errs = append(errs, errors.New("level id must not be empty"))
	}
	if _, ok := defs.Terrain(l.DefaultTerrain); !ok {
		errs = append(errs, fmt.Errorf("level %q: unknown default terrain %q", l.ID, l.DefaultTerrain))
	}
	for glyph, e := range l.Legend {
		if len([]rune(glyph)) != 1 {
			errs = append(errs, fmt.Errorf("level %q: legend key %q must be one character", l.ID, glyph))
		}
		if _, ok := defs.Terrain(e.Ter); !ok {
			errs = append(errs, fmt.Errorf("level %q: glyph %q: unknown terrain %q", l.ID, glyph, e.Ter))
		}
		if e.Furn != "" {
			if _, ok := defs.Furniture(e.Furn); !ok {
				errs = append(errs, fmt.Errorf("level %q: glyph %q: unknown furniture %q", l.ID, glyph, e.Furn))
			}
		}
	}
	for _, layer := range l.Layers {
		for y, row := range layer.Rows {
			for x, r := range row {
				if _, ok := l.Legend[string(r)]; !ok {
					errs = append(errs, fmt.Errorf("level %q: z=%d (%d,%d): glyph %q not in legend", l.ID, layer.Z, x, y, r))
				}
			}
		}
	}
	return errors.Join(errs...)
}

// LoadLevelFromBytes parses a level and validates it against defs.
func LoadLevelFromBytes(data []byte, defs *Definitions) (*Level, error) {
	var file yamlLevelFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing level YAML: %w", err)
	}
	l := &file.Level
	if err := l.Validate(defs); err != nil {
		return nil, fmt.Errorf("validating level: %w", err)
	}
	return l, nil
}

// LoadLevelFromFile reads and validates a single level file.
func LoadLevelFromFile(path string, defs *Definitions) (*Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading level file %s: %w", path, err)
	}
	return LoadLevelFromBytes(data, defs)
}

// Build lays the level out on a new Map, placing items and vehicles.
// Creatures are left to the caller.
//
// Precondition: l has been validated against defs.
func (l *Level) Build(defs *Definitions, items *inventory.Registry) (*Map, error) {
	m, err := NewMap(defs, l.DefaultTerrain)
	if err != nil {
		return nil, err
	}
	for _, layer := range l.Layers {
		for y, row := range layer.Rows {
			x := 0
			for _, r := range row {
				e := l.Legend[string(r)]
				p := geom.Tripoint{X: x, Y: y, Z: layer.Z}
				if err := m.SetTer(p, e.Ter); err != nil {
					return nil, err
				}
				if e.Furn != "" {
					if err := m.SetFurn(p, e.Furn); err != nil {
						return nil, err
					}
				}
				x++
			}
		}
	}
	for _, s := range l.Items {
		it, err := items.Create(s.ID)
		if err != nil {
			return nil, fmt.Errorf("level %q: %w", l.ID, err)
		}
		if s.Charges > 0 {
			it.Charges = s.Charges
		}
		m.AddItem(geom.Tripoint{X: s.X, Y: s.Y, Z: s.Z}, it)
	}
	for _, vs := range l.Vehicles {
		v := &vehicle.Vehicle{
			Name:     vs.Name,
			Origin:   geom.Tripoint{X: vs.X, Y: vs.Y, Z: vs.Z},
			Owner:    vs.Owner,
			Velocity: vs.Velocity,
			InWater:  vs.InWater,
			Drained:  vs.Drained,
		}
		for _, ps := range vs.Parts {
			part := &vehicle.Part{
				Name:     ps.Name,
				Mount:    geom.Point{X: ps.X, Y: ps.Y},
				Features: ps.Features,
				Open:     ps.Open,
			}
			if ps.Gun != "" {
				gun, err := items.Create(ps.Gun)
				if err != nil {
					return nil, fmt.Errorf("level %q: vehicle %q: %w", l.ID, vs.Name, err)
				}
				gun.Charges = ps.Charges
				part.Gun = gun
			}
			v.Parts = append(v.Parts, part)
		}
		m.AddVehicle(v)
	}
	return m, nil
}
