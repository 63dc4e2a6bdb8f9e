package world

import (
	"fmt"
	"sync"

	"github.com/cory-johannsen/underbrush/internal/game/geom"
	"github.com/cory-johannsen/underbrush/internal/game/inventory"
	"github.com/cory-johannsen/underbrush/internal/game/vehicle"
)

type tile struct {
	ter  *TerrainDef
	furn *FurnitureDef
}

// Map is a sparse three-dimensional tile store. Tiles never set read as the
// default terrain. It is thread-safe via sync.RWMutex.
type Map struct {
	mu       sync.RWMutex
	defs     *Definitions
	fallback *TerrainDef
	tiles    map[geom.Tripoint]tile
	lo, hi   geom.Tripoint
	bounded  bool
	vehicles []*vehicle.Vehicle
	floor    *inventory.Floor
	lum      map[geom.Tripoint]int
}

// NewMap creates an empty map whose unset tiles read as defaultTer.
//
// Precondition: defs must not be nil.
// Postcondition: returns an error when defaultTer is not defined.
func NewMap(defs *Definitions, defaultTer string) (*Map, error) {
	t, ok := defs.Terrain(defaultTer)
	if !ok {
		return nil, fmt.Errorf("world: unknown default terrain %q", defaultTer)
	}
	return &Map{
		defs:     defs,
		fallback: t,
		tiles:    make(map[geom.Tripoint]tile),
		floor:    inventory.NewFloor(),
		lum:      make(map[geom.Tripoint]int),
	}, nil
}

// Definitions returns the terrain and furniture index backing the map.
func (m *Map) Definitions() *Definitions { return m.defs }

func (m *Map) at(p geom.Tripoint) tile {
	t, ok := m.tiles[p]
	if !ok {
		return tile{ter: m.fallback}
	}
	return t
}

func (m *Map) grow(p geom.Tripoint) {
	if !m.bounded {
		m.lo, m.hi, m.bounded = p, p, true
		return
	}
	m.lo = geom.Tripoint{X: min(m.lo.X, p.X), Y: min(m.lo.Y, p.Y), Z: min(m.lo.Z, p.Z)}
	m.hi = geom.Tripoint{X: max(m.hi.X, p.X), Y: max(m.hi.Y, p.Y), Z: max(m.hi.Z, p.Z)}
}

// Ter returns the terrain at p.
func (m *Map) Ter(p geom.Tripoint) *TerrainDef {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.at(p).ter
}

// SetTer replaces the terrain at p.
//
// Postcondition: returns an error and leaves the map unchanged when id is unknown.
func (m *Map) SetTer(p geom.Tripoint, id string) error {
	t, ok := m.defs.Terrain(id)
	if !ok {
		return fmt.Errorf("world: unknown terrain %q", id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cur := m.at(p)
	cur.ter = t
	m.tiles[p] = cur
	m.grow(p)
	return nil
}

// Furn returns the furniture at p, or nil.
func (m *Map) Furn(p geom.Tripoint) *FurnitureDef {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.at(p).furn
}

// FurnID returns the id of the furniture at p, or "".
func (m *Map) FurnID(p geom.Tripoint) string {
	if f := m.Furn(p); f != nil {
		return f.ID
	}
	return ""
}

// SetFurn places furniture at p; an empty id clears it.
func (m *Map) SetFurn(p geom.Tripoint, id string) error {
	var f *FurnitureDef
	if id != "" {
		var ok bool
		if f, ok = m.defs.Furniture(id); !ok {
			return fmt.Errorf("world: unknown furniture %q", id)
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cur := m.at(p)
	cur.furn = f
	m.tiles[p] = cur
	m.grow(p)
	return nil
}

// HasFlag reports whether the terrain or furniture at p carries flag.
func (m *Map) HasFlag(flag string, p geom.Tripoint) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t := m.at(p)
	return t.ter.HasFlag(flag) || (t.furn != nil && t.furn.HasFlag(flag))
}

// MoveCostTerFurn returns the combined terrain and furniture move cost at p;
// 0 means impassable.
func (m *Map) MoveCostTerFurn(p geom.Tripoint) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t := m.at(p)
	if t.ter.MoveCost == 0 {
		return 0
	}
	cost := t.ter.MoveCost
	if t.furn != nil {
		if t.furn.MoveCost == 0 {
			return 0
		}
		cost += t.furn.MoveCost
	}
	return cost
}

// PassableTerFurn reports whether terrain and furniture allow entering p.
func (m *Map) PassableTerFurn(p geom.Tripoint) bool {
	return m.MoveCostTerFurn(p) > 0
}

// Passable additionally accounts for vehicle parts at p.
func (m *Map) Passable(p geom.Tripoint) bool {
	if !m.PassableTerFurn(p) {
		return false
	}
	if v, _, ok := m.VehAt(p); ok && v.Blocks(p) {
		return false
	}
	return true
}

// HasFloor reports whether p has a floor of its own.
func (m *Map) HasFloor(p geom.Tripoint) bool {
	return !m.HasFlag(FlagNoFloor, p)
}

// HasFloorOrSupport reports whether something at p can be stood on: a floor
// or a vehicle part.
func (m *Map) HasFloorOrSupport(p geom.Tripoint) bool {
	if m.HasFloor(p) {
		return true
	}
	_, _, ok := m.VehAt(p)
	return ok
}

// IsOutside reports whether p is open to the sky.
func (m *Map) IsOutside(p geom.Tripoint) bool {
	return !m.HasFlag(FlagIndoors, p)
}

// OpenDoor opens the furniture or terrain door at p. Doors flagged
// OPENCLOSE_INSIDE only open for someone standing inside.
//
// Postcondition: returns true iff a door was opened.
func (m *Map) OpenDoor(p geom.Tripoint, inside bool) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := m.at(p)
	if f := t.furn; f != nil && f.Open != "" {
		if f.HasFlag(FlagOpenCloseInside) && !inside {
			return false
		}
		opened, ok := m.defs.Furniture(f.Open)
		if !ok {
			return false
		}
		t.furn = opened
		m.tiles[p] = t
		return true
	}
	if t.ter.Open != "" {
		if t.ter.HasFlag(FlagOpenCloseInside) && !inside {
			return false
		}
		opened, ok := m.defs.Terrain(t.ter.Open)
		if !ok {
			return false
		}
		t.ter = opened
		m.tiles[p] = t
		m.grow(p)
		return true
	}
	return false
}

// TerName returns the terrain name at p.
func (m *Map) TerName(p geom.Tripoint) string {
	return m.Ter(p).Name
}

// ObstacleName names whatever is at p: a vehicle part, furniture, or terrain.
func (m *Map) ObstacleName(p geom.Tripoint) string {
	if v, part, ok := m.VehAt(p); ok {
		return v.Part(part).Name
	}
	if f := m.Furn(p); f != nil {
		return f.Name
	}
	return m.TerName(p)
}

// Bounds returns the inclusive box around every tile ever set.
//
// Postcondition: ok is false for a map with no explicit tiles.
func (m *Map) Bounds() (lo, hi geom.Tripoint, ok bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lo, m.hi, m.bounded
}

// ClosestTer returns the distance from p to the nearest tile with terrain id
// on level z within the map bounds.
//
// Postcondition: ok is false when no such tile exists.
func (m *Map) ClosestTer(id string, z int, p geom.Tripoint) (dist int, ok bool) {
	lo, hi, bounded := m.Bounds()
	if !bounded || z < lo.Z || z > hi.Z {
		return 0, false
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, pt := range geom.PointsInRectangle(lo.WithZ(z), hi.WithZ(z)) {
		if m.at(pt).ter.ID != id {
			continue
		}
		if d := geom.Dist(pt, p); !ok || d < dist {
			dist, ok = d, true
		}
	}
	return dist, ok
}

// AddVehicle places v on the map.
func (m *Map) AddVehicle(v *vehicle.Vehicle) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vehicles = append(m.vehicles, v)
}

// Vehicles returns every vehicle on the map.
func (m *Map) Vehicles() []*vehicle.Vehicle {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*vehicle.Vehicle(nil), m.vehicles...)
}

// VehAt returns the vehicle and the first of its parts at p.
func (m *Map) VehAt(p geom.Tripoint) (*vehicle.Vehicle, int, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, v := range m.vehicles {
		if parts := v.PartsAt(p); len(parts) > 0 {
			return v, parts[0], true
		}
	}
	return nil, -1, false
}

// BoardVehicle seats passenger on the boardable part at p.
func (m *Map) BoardVehicle(p geom.Tripoint, passenger string) bool {
	v, _, ok := m.VehAt(p)
	return ok && v.Board(p, passenger)
}

// UnboardVehicle clears the passenger seated at p.
func (m *Map) UnboardVehicle(p geom.Tripoint) {
	if v, _, ok := m.VehAt(p); ok {
		v.Unboard(p)
	}
}

// AddItem drops it at p.
func (m *Map) AddItem(p geom.Tripoint, it *inventory.Item) {
	m.floor.Drop(p, it)
}

// RemoveItem removes it from p.
func (m *Map) RemoveItem(p geom.Tripoint, it *inventory.Item) bool {
	return m.floor.Remove(p, it)
}

// ItemsAt returns a snapshot of the items lying at p.
func (m *Map) ItemsAt(p geom.Tripoint) []*inventory.Item {
	return m.floor.ItemsAt(p)
}

// ItemLocation returns a Location for an item lying at p.
func (m *Map) ItemLocation(p geom.Tripoint, it *inventory.Item) inventory.Location {
	return inventory.OnMap(m.floor.Tile(p), p, it)
}

// MakeActive marks the item at loc for per-turn processing.
func (m *Map) MakeActive(loc inventory.Location) bool {
	return m.floor.MakeActive(loc.Position(), loc.Get())
}

// ActiveItemCount returns how many map items are active.
func (m *Map) ActiveItemCount() int { return m.floor.ActiveCount() }

// UpdateLum adds or removes the light contributed by the item at loc.
func (m *Map) UpdateLum(loc inventory.Location, add bool) {
	it := loc.Get()
	if it == nil || !it.Active {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if add {
		m.lum[loc.Position()]++
		return
	}
	if m.lum[loc.Position()] > 0 {
		m.lum[loc.Position()]--
	}
}

// Lum returns the number of lit items at p.
func (m *Map) Lum(p geom.Tripoint) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lum[p]
}
