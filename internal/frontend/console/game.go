package console

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/underbrush/internal/config"
	"github.com/cory-johannsen/underbrush/internal/game/action"
	"github.com/cory-johannsen/underbrush/internal/game/command"
	"github.com/cory-johannsen/underbrush/internal/game/condition"
	"github.com/cory-johannsen/underbrush/internal/game/dice"
	"github.com/cory-johannsen/underbrush/internal/game/geom"
	"github.com/cory-johannsen/underbrush/internal/game/inventory"
	"github.com/cory-johannsen/underbrush/internal/game/message"
	"github.com/cory-johannsen/underbrush/internal/game/rules"
	"github.com/cory-johannsen/underbrush/internal/game/state"
	"github.com/cory-johannsen/underbrush/internal/game/world"
	"github.com/cory-johannsen/underbrush/internal/options"
	"github.com/cory-johannsen/underbrush/internal/scripting"
)

// Content is the read-only game data every session starts from.
type Content struct {
	Terrain     *world.Definitions
	Items       *inventory.Registry
	Conditions  *condition.Registry
	Level       *world.Level
	ScriptDir   string
	ScriptLimit int
}

// LoadContent reads the definitions and level named by cfg.
//
// Postcondition: the level has been validated against the terrain.
func LoadContent(cfg config.GameConfig) (*Content, error) {
	terrain, err := world.LoadDefinitions(cfg.TerrainDir())
	if err != nil {
		return nil, fmt.Errorf("loading terrain: %w", err)
	}
	items, err := inventory.LoadRegistry(cfg.ItemDir())
	if err != nil {
		return nil, fmt.Errorf("loading items: %w", err)
	}
	conds, err := condition.LoadDirectory(cfg.ConditionDir())
	if err != nil {
		return nil, fmt.Errorf("loading conditions: %w", err)
	}
	level, err := world.LoadLevelFromFile(cfg.LevelPath(), terrain)
	if err != nil {
		return nil, fmt.Errorf("loading level: %w", err)
	}
	return &Content{
		Terrain:     terrain,
		Items:       items,
		Conditions:  conds,
		Level:       level,
		ScriptDir:   cfg.ScriptDir(),
		ScriptLimit: cfg.ScriptInstructionLimit,
	}, nil
}

// Options are the game options a session reads.
type Options interface {
	Bool(name string) bool
}

// Settings are the per-session switches.
type Settings struct {
	Action action.Config
	// Color enables ANSI colours.
	Color bool
}

// NewSession builds a fresh game from content and wires it to term.
//
// Precondition: every argument is non-nil.
// Postcondition: the caller must Close the session.
func NewSession(term Terminal, content *Content, settings Settings, opts Options, lang Language,
	src dice.Source, logger *zap.Logger) (*Session, error) {
	log := message.NewLog(lang.Translator())
	roller := dice.NewRoller(src, logger)
	commands := command.DefaultRegistry()
	ui := NewUI(term, log, commands, logger)
	ui.color = settings.Color

	st, err := state.New(content.Level, content.Terrain, content.Items, content.Conditions, ui, log, logger)
	if err != nil {
		return nil, err
	}
	st.SafeMode = opts.Bool(options.SafeMode)

	scripts := scripting.NewManager(roller, logger)
	scripts.Message = func(kind, text string) {
		log.Add(message.ParseKind(kind), "%s", text)
	}
	scripts.SetTer = func(x, y, z int, id string) error {
		return st.Map.SetTer(geom.Tripoint{X: x, Y: y, Z: z}, id)
	}
	if err := scripts.Load(content.ScriptDir, content.ScriptLimit); err != nil {
		return nil, err
	}

	r := rules.New(st, scripts, roller, log, logger)
	d := action.New(settings.Action, st, ui, r, opts, content.Items, roller, log, logger)
	st.SetRampHook(func(p geom.Tripoint) bool {
		return d.RampMove(st.Avatar, st.Map, p)
	})

	return &Session{
		term:     term,
		ui:       ui,
		state:    st,
		dispatch: d,
		commands: commands,
		lang:     lang,
		view:     NewView(content.Level, settings.Color),
		log:      log,
		color:    settings.Color,
		logger:   logger,
		closers:  []func(){scripts.Close},
	}, nil
}
