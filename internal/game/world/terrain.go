// Package world provides the tile map: terrain and furniture definitions,
// the sparse three-dimensional map, and the level loader.
package world

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Tile flags.
const (
	FlagRampUp          = "RAMP_UP"
	FlagRampDown        = "RAMP_DOWN"
	FlagRamp            = "RAMP"
	FlagRampEnd         = "RAMP_END"
	FlagMineable        = "MINEABLE"
	FlagSwimmable       = "SWIMMABLE"
	FlagDeepWater       = "DEEP_WATER"
	FlagDoor            = "DOOR"
	FlagOpenCloseInside = "OPENCLOSE_INSIDE"
	FlagNoFloor         = "NO_FLOOR"
	FlagIndoors         = "INDOORS"
)

// Terrain ids the rules refer to.
const (
	TerNull               = "t_null"
	TerFault              = "t_fault"
	TerDoorLocked         = "t_door_locked"
	TerDoorLockedPeep     = "t_door_locked_peep"
	TerDoorLockedAlarm    = "t_door_locked_alarm"
	TerDoorLockedInterior = "t_door_locked_interior"
	TerDoorBarLocked      = "t_door_bar_locked"
	TerUnderbrush         = "t_underbrush"
	TerShrub              = "t_shrub"
	TerGrass              = "t_grass"
	TerGrassLong          = "t_grass_long"
	TerGrassTall          = "t_grass_tall"
	TerGrassGolf          = "t_grass_golf"
	TerGrassDead          = "t_grass_dead"
	TerGrassWhite         = "t_grass_white"
	TerDirt               = "t_dirt"
)

// FurnSafeC is the closed safe, which is never opened by walking into it.
const FurnSafeC = "f_safe_c"

// TileDef is the shared shape of terrain and furniture definitions.
type TileDef struct {
	ID    string   `yaml:"id"`
	Name  string   `yaml:"name"`
	Flags []string `yaml:"flags"`
	// MoveCost is the cost of entering the tile in moves / 50; 0 is impassable.
	MoveCost int `yaml:"move_cost"`
	// Open is the id this tile becomes when opened; empty when not openable.
	Open string `yaml:"open"`
	// Light is the luminance the tile emits.
	Light int `yaml:"light"`
}

// HasFlag reports whether the definition carries flag.
func (d *TileDef) HasFlag(flag string) bool {
	for _, f := range d.Flags {
		if f == flag {
			return true
		}
	}
	return false
}

// Validate checks the definition's invariants.
func (d *TileDef) Validate() error {
	var errs []error
	if d.ID == "" {
		errs = append(errs, errors.New("id must not be empty"))
	}
	if d.Name == "" {
		errs = append(errs, fmt.Errorf("%q: name must not be empty", d.ID))
	}
	if d.MoveCost < 0 {
		errs = append(errs, fmt.Errorf("%q: move_cost must be >= 0", d.ID))
	}
	return errors.Join(errs...)
}

// TerrainDef defines a terrain type.
type TerrainDef struct {
	TileDef `yaml:",inline"`
}

// FurnitureDef defines a furniture type.
type FurnitureDef struct {
	TileDef `yaml:",inline"`
}

// Definitions indexes terrain and furniture by id.
type Definitions struct {
	terrain   map[string]*TerrainDef
	furniture map[string]*FurnitureDef
}

// NewDefinitions returns an empty index holding only t_null.
//
// Postcondition: Terrain(TerNull) is defined and impassable.
func NewDefinitions() *Definitions {
	d := &Definitions{
		terrain:   make(map[string]*TerrainDef),
		furniture: make(map[string]*FurnitureDef),
	}
	d.terrain[TerNull] = &TerrainDef{TileDef{ID: TerNull, Name: "nothing"}}
	return d
}

// AddTerrain registers t, replacing any previous definition with its id.
func (d *Definitions) AddTerrain(t *TerrainDef) { d.terrain[t.ID] = t }

// AddFurniture registers f, replacing any previous definition with its id.
func (d *Definitions) AddFurniture(f *FurnitureDef) { d.furniture[f.ID] = f }

// Terrain returns the terrain registered under id.
func (d *Definitions) Terrain(id string) (*TerrainDef, bool) {
	t, ok := d.terrain[id]
	return t, ok
}

// Furniture returns the furniture registered under id.
func (d *Definitions) Furniture(id string) (*FurnitureDef, bool) {
	f, ok := d.furniture[id]
	return f, ok
}

type yamlDefinitionsFile struct {
	Terrain   []*TerrainDef   `yaml:"terrain"`
	Furniture []*FurnitureDef `yaml:"furniture"`
}

// LoadDefinitions reads every YAML file in dir. Each file may hold a
// terrain list and a furniture list.
//
// Precondition: dir must be a readable directory.
// Postcondition: returns the populated Definitions, or the first parse or
// validation error.
func LoadDefinitions(dir string) (*Definitions, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading terrain directory %s: %w", dir, err)
	}
	defs := NewDefinitions()
	for _, entry := range entries {
		ext := filepath.Ext(entry.Name())
		if entry.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading terrain file %s: %w", path, err)
		}
		var file yamlDefinitionsFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parsing terrain file %s: %w", path, err)
		}
		for _, t := range file.Terrain {
			if err := t.Validate(); err != nil {
				return nil, fmt.Errorf("terrain in %s: %w", path, err)
			}
			defs.AddTerrain(t)
		}
		for _, f := range file.Furniture {
			if err := f.Validate(); err != nil {
				return nil, fmt.Errorf("furniture in %s: %w", path, err)
			}
			defs.AddFurniture(f)
		}
	}
	return defs, nil
}
