package inventory

import (
	"sync"

	"github.com/cory-johannsen/underbrush/internal/game/geom"
)

// Floor tracks items lying on map tiles and which of them are active.
// It is thread-safe via sync.RWMutex.
type Floor struct {
	mu     sync.RWMutex
	tiles  map[geom.Tripoint][]*Item
	active map[*Item]geom.Tripoint
}

// NewFloor creates an empty Floor.
func NewFloor() *Floor {
	return &Floor{
		tiles:  make(map[geom.Tripoint][]*Item),
		active: make(map[*Item]geom.Tripoint),
	}
}

// Drop places it on the tile at p.
//
// Precondition: it must not be nil.
// Postcondition: it is the last item at p.
func (f *Floor) Drop(p geom.Tripoint, it *Item) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tiles[p] = append(f.tiles[p], it)
	if it.Active {
		f.active[it] = p
	}
}

// Remove takes it off the tile at p.
//
// Postcondition: returns true iff it was at p; it is no longer active.
func (f *Floor) Remove(p geom.Tripoint, it *Item) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	items := f.tiles[p]
	for i, have := range items {
		if have == it {
			items = append(items[:i], items[i+1:]...)
			if len(items) == 0 {
				delete(f.tiles, p)
			} else {
				f.tiles[p] = items
			}
			delete(f.active, it)
			return true
		}
	}
	return false
}

// PickupAll removes and returns every item at p.
//
// Postcondition: the tile is empty.
func (f *Floor) PickupAll(p geom.Tripoint) []*Item {
	f.mu.Lock()
	defer f.mu.Unlock()
	items := f.tiles[p]
	delete(f.tiles, p)
	for _, it := range items {
		delete(f.active, it)
	}
	return items
}

// ItemsAt returns a snapshot of the items at p.
//
// Postcondition: returned slice is a copy; mutations do not affect internal state.
func (f *Floor) ItemsAt(p geom.Tripoint) []*Item {
	f.mu.RLock()
	defer f.mu.RUnlock()
	items := f.tiles[p]
	out := make([]*Item, len(items))
	copy(out, items)
	return out
}

// MakeActive marks it at p for per-turn processing.
//
// Postcondition: returns false when it is not at p.
func (f *Floor) MakeActive(p geom.Tripoint, it *Item) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, have := range f.tiles[p] {
		if have == it {
			it.Active = true
			f.active[it] = p
			return true
		}
	}
	return false
}

// ActiveCount returns how many floor items are active.
func (f *Floor) ActiveCount() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.active)
}

// Tile returns a Container view of the tile at p.
func (f *Floor) Tile(p geom.Tripoint) Container {
	return floorTile{floor: f, pos: p}
}

type floorTile struct {
	floor *Floor
	pos   geom.Tripoint
}

func (t floorTile) RemoveItem(it *Item) bool { return t.floor.Remove(t.pos, it) }
