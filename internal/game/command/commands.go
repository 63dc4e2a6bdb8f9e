// Package command provides the command registry, parser, and built-in command
// definitions of the console.
package command

import "github.com/cory-johannsen/underbrush/internal/game/world"

// Categories for organizing commands.
const (
	CategoryMovement = "movement"
	CategoryCombat   = "combat"
	CategoryItems    = "items"
	CategorySystem   = "system"
)

// Handler identifiers mapping commands to dispatcher actions.
const (
	HandlerMove      = "move"
	HandlerAttack    = "attack"
	HandlerFire      = "fire"
	HandlerTurret    = "turret"
	HandlerThrow     = "throw"
	HandlerUse       = "use"
	HandlerEat       = "eat"
	HandlerGraze     = "graze"
	HandlerUnload    = "unload"
	HandlerMend      = "mend"
	HandlerWield     = "wield"
	HandlerWear      = "wear"
	HandlerTakeOff   = "takeoff"
	HandlerEquipment = "equipment"
	HandlerWait      = "wait"
	HandlerLook      = "look"
	HandlerMessages  = "messages"
	HandlerLanguage  = "language"
	HandlerHelp      = "help"
	HandlerQuit      = "quit"
	HandlerGet       = "get"
	HandlerDrop      = "drop"
)

// Command defines a player-invocable command.
type Command struct {
	// Name is the canonical command name.
	Name string
	// Aliases are alternate names for this command.
	Aliases []string
	// Help is the short help text displayed to players.
	Help     string
	Category string
	// Handler names the action the console runs.
	Handler string
}

// BuiltinCommands returns all built-in commands for the game.
func BuiltinCommands() []Command {
	return []Command{
		// Movement commands
		{Name: "north", Aliases: []string{"n", "k"}, Help: "Move north", Category: CategoryMovement, Handler: HandlerMove},
		{Name: "south", Aliases: []string{"s", "j"}, Help: "Move south", Category: CategoryMovement, Handler: HandlerMove},
		{Name: "east", Aliases: []string{"e", "l"}, Help: "Move east", Category: CategoryMovement, Handler: HandlerMove},
		{Name: "west", Aliases: []string{"w", "h"}, Help: "Move west", Category: CategoryMovement, Handler: HandlerMove},
		{Name: "northeast", Aliases: []string{"ne", "u"}, Help: "Move northeast", Category: CategoryMovement, Handler: HandlerMove},
		{Name: "northwest", Aliases: []string{"nw", "y"}, Help: "Move northwest", Category: CategoryMovement, Handler: HandlerMove},
		{Name: "southeast", Aliases: []string{"se", "m"}, Help: "Move southeast", Category: CategoryMovement, Handler: HandlerMove},
		{Name: "southwest", Aliases: []string{"sw", "b"}, Help: "Move southwest", Category: CategoryMovement, Handler: HandlerMove},
		{Name: "up", Aliases: []string{"<"}, Help: "Climb up", Category: CategoryMovement, Handler: HandlerMove},
		{Name: "down", Aliases: []string{">"}, Help: "Climb or dive down", Category: CategoryMovement, Handler: HandlerMove},

		// Combat commands
		{Name: "attack", Aliases: []string{"tab", "att"}, Help: "Attack the best target in reach", Category: CategoryCombat, Handler: HandlerAttack},
		{Name: "fire", Aliases: []string{"f"}, Help: "Fire your wielded weapon", Category: CategoryCombat, Handler: HandlerFire},
		{Name: "turret", Aliases: []string{"tur"}, Help: "Fire a vehicle turret at your position", Category: CategoryCombat, Handler: HandlerTurret},
		{Name: "throw", Aliases: []string{"t"}, Help: "Throw an item (throw [item])", Category: CategoryCombat, Handler: HandlerThrow},

		// Item commands
		{Name: "use", Aliases: []string{"a", "apply"}, Help: "Use an item (use [item])", Category: CategoryItems, Handler: HandlerUse},
		{Name: "eat", Aliases: []string{"E"}, Help: "Eat or drink something", Category: CategoryItems, Handler: HandlerEat},
		{Name: "graze", Aliases: nil, Help: "Eat the plants underfoot", Category: CategoryItems, Handler: HandlerGraze},
		{Name: "unload", Aliases: []string{"U"}, Help: "Unload a gun or container", Category: CategoryItems, Handler: HandlerUnload},
		{Name: "mend", Aliases: nil, Help: "Mend your wielded item", Category: CategoryItems, Handler: HandlerMend},
		{Name: "wield", Aliases: []string{"wi"}, Help: "Wield an item (wield <item>)", Category: CategoryItems, Handler: HandlerWield},
		{Name: "wear", Aliases: []string{"W"}, Help: "Wear an item (wear <item>)", Category: CategoryItems, Handler: HandlerWear},
		{Name: "takeoff", Aliases: []string{"T", "remove"}, Help: "Take off a worn item (takeoff <item>)", Category: CategoryItems, Handler: HandlerTakeOff},
		{Name: "get", Aliases: []string{"g", "pickup"}, Help: "Pick up items here (get [item])", Category: CategoryItems, Handler: HandlerGet},
		{Name: "drop", Aliases: []string{"d"}, Help: "Drop a carried item (drop <item>)", Category: CategoryItems, Handler: HandlerDrop},
		{Name: "equipment", Aliases: []string{"i", "inv", "gear"}, Help: "Show what you carry", Category: CategoryItems, Handler: HandlerEquipment},

		// System commands
		{Name: "wait", Aliases: []string{".", "pause"}, Help: "Wait a turn", Category: CategorySystem, Handler: HandlerWait},
		{Name: "look", Aliases: []string{"x"}, Help: "Describe your surroundings", Category: CategorySystem, Handler: HandlerLook},
		{Name: "messages", Aliases: []string{"log"}, Help: "Show recent messages", Category: CategorySystem, Handler: HandlerMessages},
		{Name: "language", Aliases: []string{"lang"}, Help: "Choose the interface language", Category: CategorySystem, Handler: HandlerLanguage},
		{Name: "help", Aliases: []string{"?"}, Help: "Show available commands", Category: CategorySystem, Handler: HandlerHelp},
		{Name: "quit", Aliases: []string{"q", "exit"}, Help: "Leave the game", Category: CategorySystem, Handler: HandlerQuit},
	}
}

// IsMovementCommand reports whether the command name is a movement direction.
func IsMovementCommand(name string) bool {
	_, ok := MovementDirection(name)
	return ok
}

// MovementDirection maps a canonical movement command to its direction.
//
// Postcondition: ok is false for anything but the ten movement commands.
func MovementDirection(name string) (world.Direction, bool) {
	d := world.Direction(name)
	if !d.IsStandard() {
		return "", false
	}
	return d, true
}
