package console

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/cory-johannsen/underbrush/internal/game/creature"
	"github.com/cory-johannsen/underbrush/internal/game/geom"
	"github.com/cory-johannsen/underbrush/internal/game/state"
	"github.com/cory-johannsen/underbrush/internal/game/world"
)

const (
	viewRadiusX = 10
	viewRadiusY = 5
)

// View draws the map around the avatar using the level's own legend.
type View struct {
	glyphs map[string]rune
	color  bool
}

// NewView indexes the level legend by terrain and furniture.
func NewView(level *world.Level, color bool) *View {
	v := &View{glyphs: make(map[string]rune, len(level.Legend)), color: color}
	for g, e := range level.Legend {
		r := []rune(g)[0]
		key := e.Ter + "|" + e.Furn
		// Lowest glyph wins so drawing is stable across map iteration.
		if have, ok := v.glyphs[key]; !ok || r < have {
			v.glyphs[key] = r
		}
	}
	return v
}

// Render returns the rows of the view centred on the avatar.
func (v *View) Render(st *state.State) []string {
	center := st.Avatar.Pos()
	critters := make(map[geom.Tripoint]creature.Creature)
	for _, c := range st.Creatures() {
		critters[c.Pos()] = c
	}

	rows := make([]string, 0, 2*viewRadiusY+1)
	for dy := -viewRadiusY; dy <= viewRadiusY; dy++ {
		var sb strings.Builder
		for dx := -viewRadiusX; dx <= viewRadiusX; dx++ {
			p := center.Add(geom.Tripoint{X: dx, Y: dy})
			sb.WriteString(v.cell(st, p, critters[p]))
		}
		rows = append(rows, sb.String())
	}
	return rows
}

func (v *View) cell(st *state.State, p geom.Tripoint, c creature.Creature) string {
	switch {
	case p == st.Avatar.Pos():
		return v.paint(Bold, "@")
	case c != nil:
		return v.paint(critterColor(c), string(critterGlyph(c)))
	}
	if _, _, ok := st.Map.VehAt(p); ok {
		return v.paint(Blue, "+")
	}
	if len(st.Map.ItemsAt(p)) > 0 {
		return v.paint(Yellow, "*")
	}
	if g, ok := v.glyphs[st.Map.Ter(p).ID+"|"+st.Map.FurnID(p)]; ok {
		return string(g)
	}
	if g, ok := v.glyphs[st.Map.Ter(p).ID+"|"]; ok {
		return string(g)
	}
	if st.Map.Ter(p).ID == world.TerNull {
		return " "
	}
	return "?"
}

func (v *View) paint(color, s string) string {
	if !v.color {
		return s
	}
	return Colorize(color, s)
}

// critterGlyph is the creature's initial: upper case for NPCs, lower for monsters.
func critterGlyph(c creature.Creature) rune {
	r := []rune(c.Name())
	if len(r) == 0 {
		return 'Z'
	}
	if c.IsNPC() {
		return unicode.ToUpper(r[0])
	}
	return unicode.ToLower(r[0])
}

func critterColor(c creature.Creature) string {
	switch c := c.(type) {
	case *creature.Monster:
		if c.Friendly != 0 {
			return Green
		}
		return Red
	case *creature.NPC:
		if c.IsEnemy() {
			return Red
		}
		return Cyan
	}
	return ""
}

// Status is the one-line summary under the map.
func Status(st *state.State) string {
	u := st.Avatar
	p := u.Pos()
	return fmt.Sprintf("[turn %d] %s  (%d,%d,%d)  moves %d  stamina %d/%d  kcal %d  %s",
		st.Turn(), st.Map.TerName(p), p.X, p.Y, p.Z, u.Moves, u.Stamina, u.MaxStamina, u.StoredKcal, u.Mode)
}
