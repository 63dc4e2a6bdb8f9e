package console

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/cory-johannsen/underbrush/internal/game/action"
	"github.com/cory-johannsen/underbrush/internal/game/avatar"
	"github.com/cory-johannsen/underbrush/internal/game/command"
	"github.com/cory-johannsen/underbrush/internal/game/geom"
	"github.com/cory-johannsen/underbrush/internal/game/inventory"
	"github.com/cory-johannsen/underbrush/internal/game/vehicle"
)

// Printer translates the console's own strings.
type Printer interface {
	Sprintf(format string, args ...any) string
}

// UI asks the player questions over a Terminal. It implements action.UI,
// state.Prompter and i18n.Prompter.
//
// Terminal failures cannot be returned through those interfaces; the first
// one is kept, every later question is answered negatively, and Err reports it.
type UI struct {
	term     Terminal
	printer  Printer
	commands *command.Registry
	logger   *zap.Logger

	// color enables ANSI emphasis.
	color bool
	// fullscreen is false while a targeting prompt owns the terminal.
	fullscreen bool
	err        error
}

var _ action.UI = (*UI)(nil)

// NewUI creates a UI.
//
// Precondition: every argument is non-nil.
func NewUI(term Terminal, printer Printer, commands *command.Registry, logger *zap.Logger) *UI {
	return &UI{term: term, printer: printer, commands: commands, logger: logger, fullscreen: true}
}

// Err returns the first terminal error, or nil.
func (u *UI) Err() error { return u.err }

// Fullscreen reports whether the map view is active.
func (u *UI) Fullscreen() bool { return u.fullscreen }

func (u *UI) fail(err error) {
	if err != nil && u.err == nil {
		u.err = err
		u.logger.Debug("terminal failed", zap.Error(err))
	}
}

func (u *UI) writeLine(text string) {
	if u.err == nil {
		u.fail(u.term.WriteLine(text))
	}
}

// ask writes prompt and reads the answer; ok is false once the terminal failed.
func (u *UI) ask(prompt string) (string, bool) {
	if u.err != nil {
		return "", false
	}
	if err := u.term.WritePrompt(prompt); err != nil {
		u.fail(err)
		return "", false
	}
	line, err := u.term.ReadLine()
	if err != nil {
		u.fail(err)
		return "", false
	}
	return strings.TrimSpace(line), true
}

// QueryYN asks until the player answers y or n.
func (u *UI) QueryYN(prompt string) bool {
	for {
		ans, ok := u.ask(prompt + " (y/n) ")
		if !ok {
			return false
		}
		switch strings.ToLower(ans) {
		case "y", "yes":
			return true
		case "n", "no":
			return false
		}
	}
}

// Popup shows text emphasised.
func (u *UI) Popup(text string) {
	if u.color {
		text = Colorize(Bold, text)
	}
	u.writeLine(text)
}

// KeyFor names the shortest command bound to the action.
func (u *UI) KeyFor(act string) string {
	name := act
	switch act {
	case action.KeyMoveUp:
		name = "up"
	case action.KeyMoveDown:
		name = "down"
	}
	cmd, ok := u.commands.Resolve(name)
	if !ok {
		return act
	}
	key := cmd.Name
	for _, a := range cmd.Aliases {
		if len(a) < len(key) {
			key = a
		}
	}
	return key
}

// PickItem lists candidates and asks for one by number.
func (u *UI) PickItem(title string, candidates []inventory.Location) (inventory.Location, bool) {
	if len(candidates) == 0 {
		return inventory.Location{}, false
	}
	u.writeLine(title)
	for i, loc := range candidates {
		u.writeLine(fmt.Sprintf("  %2d) %s%s", i+1, loc.Get().Name(), u.whereSuffix(loc)))
	}
	for {
		ans, ok := u.ask(u.printer.Sprintf("Which? (number, blank to cancel) "))
		if !ok || ans == "" {
			return inventory.Location{}, false
		}
		if n, err := strconv.Atoi(ans); err == nil && n >= 1 && n <= len(candidates) {
			return candidates[n-1], true
		}
	}
}

func (u *UI) whereSuffix(loc inventory.Location) string {
	switch loc.Where() {
	case inventory.Map:
		return u.printer.Sprintf(" (nearby)")
	case inventory.Vehicle:
		return u.printer.Sprintf(" (in vehicle)")
	default:
		return ""
	}
}

// Choose lists entries and asks until one is picked; there is no cancel.
func (u *UI) Choose(title string, entries []string) int {
	u.writeLine(title)
	for i, e := range entries {
		u.writeLine(fmt.Sprintf("  %2d) %s", i+1, e))
	}
	for {
		ans, ok := u.ask("> ")
		if !ok {
			return -1
		}
		if n, err := strconv.Atoi(ans); err == nil && n >= 1 && n <= len(entries) {
			return n - 1
		}
	}
}

// TargetThrow asks where to throw it and returns the line to the target.
func (u *UI) TargetThrow(av *avatar.Avatar, it *inventory.Item, blind bool) []geom.Tripoint {
	prompt := u.printer.Sprintf("Throw the %s where? ", it.Name())
	if blind {
		prompt = u.printer.Sprintf("Throw the %s blind, where? ", it.Name())
	}
	return u.target(av.Pos(), prompt)
}

// TargetTurret asks where to aim t and returns the line from the turret.
func (u *UI) TargetTurret(_ *avatar.Avatar, t *vehicle.Turret) []geom.Tripoint {
	return u.target(t.Position(), u.printer.Sprintf("Aim the %s where? ", t.Name()))
}

func (u *UI) target(from geom.Tripoint, prompt string) []geom.Tripoint {
	for {
		ans, ok := u.ask(prompt + u.printer.Sprintf("(direction [distance], or dx dy; blank cancels) "))
		if !ok || ans == "" {
			return nil
		}
		if off, ok := u.parseOffset(ans); ok {
			return geom.Line(from, from.Add(off))
		}
	}
}

// parseOffset reads "dir [n]" or "dx dy".
func (u *UI) parseOffset(s string) (geom.Tripoint, bool) {
	f := strings.Fields(s)
	if len(f) == 0 || len(f) > 2 {
		return geom.Tripoint{}, false
	}
	if dx, err := strconv.Atoi(f[0]); err == nil {
		if len(f) != 2 {
			return geom.Tripoint{}, false
		}
		dy, err := strconv.Atoi(f[1])
		if err != nil || (dx == 0 && dy == 0) {
			return geom.Tripoint{}, false
		}
		return geom.Tripoint{X: dx, Y: dy}, true
	}
	cmd, ok := u.commands.Resolve(command.Parse(f[0]).Command)
	if !ok {
		return geom.Tripoint{}, false
	}
	dir, ok := command.MovementDirection(cmd.Name)
	if !ok || dir.Offset().Z != 0 {
		return geom.Tripoint{}, false
	}
	n := 1
	if len(f) == 2 {
		var err error
		if n, err = strconv.Atoi(f[1]); err != nil || n < 1 {
			return geom.Tripoint{}, false
		}
	}
	off := dir.Offset()
	return geom.Tripoint{X: off.X * n, Y: off.Y * n}, true
}

// TempExitFullscreen hands the terminal to a targeting prompt.
func (u *UI) TempExitFullscreen() {
	u.fullscreen = false
}

// ReenterFullscreen returns to the map view.
func (u *UI) ReenterFullscreen() {
	u.fullscreen = true
}
