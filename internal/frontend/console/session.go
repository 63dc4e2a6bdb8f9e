package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/cory-johannsen/underbrush/internal/game/action"
	"github.com/cory-johannsen/underbrush/internal/game/command"
	"github.com/cory-johannsen/underbrush/internal/game/inventory"
	"github.com/cory-johannsen/underbrush/internal/game/message"
	"github.com/cory-johannsen/underbrush/internal/game/state"
	"github.com/cory-johannsen/underbrush/internal/i18n"
)

// historySize is how many messages the messages command shows.
const historySize = 10

// Language switches the interface language.
type Language interface {
	SelectLanguage(ctx context.Context, p i18n.Prompter) error
	SetLanguage() error
	UpdateGlobalLocale()
	Translator() *i18n.Translator
}

// Session is one player's game on one terminal.
type Session struct {
	term     Terminal
	ui       *UI
	state    *state.State
	dispatch *action.Dispatcher
	commands *command.Registry
	lang     Language
	view     *View
	log      *message.Log
	color    bool
	logger   *zap.Logger
	closers  []func()

	quit bool
}

// State returns the live game.
func (s *Session) State() *state.State { return s.state }

// Close releases the session's script VM.
func (s *Session) Close() {
	for _, fn := range s.closers {
		fn()
	}
	s.closers = nil
}

// Run plays until the player quits, the input ends, or ctx is cancelled.
//
// Postcondition: returns nil on quit or end of input; a terminal failure or
// ctx error otherwise.
func (s *Session) Run(ctx context.Context) error {
	welcome := s.log.Sprintf("Welcome to underbrush.  Type help for a list of commands.")
	if s.color {
		welcome = Colorize(Bold, welcome)
	}
	s.say(welcome)
	s.look()
	for !s.quit {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.term.WritePrompt("> "); err != nil {
			return err
		}
		line, err := s.term.ReadLine()
		if errors.Is(err, io.EOF) {
			s.logger.Info("input closed", zap.Int("turn", s.state.Turn()))
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading command: %w", err)
		}
		s.Execute(ctx, line)
		if err := s.ui.Err(); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
	s.logger.Info("player quit", zap.Int("turn", s.state.Turn()))
	return nil
}

// Execute runs one input line, repeating it when it starts with a count,
// and prints the resulting messages.
func (s *Session) Execute(ctx context.Context, line string) {
	res := command.Parse(line)
	if res.Command == "" {
		return
	}
	cmd, ok := s.commands.Resolve(res.Command)
	if !ok {
		s.say(s.log.Sprintf("Unknown command %q.  Type help for a list.", res.Command))
		return
	}
	s.logger.Debug("command",
		zap.String("command", cmd.Name),
		zap.String("args", res.RawArgs),
		zap.Int("count", res.Count),
	)
	redraw := false
	for i := 0; i < res.Count && !s.quit && s.ui.Err() == nil; i++ {
		if s.run(ctx, cmd, res) {
			redraw = true
		}
		if s.state.Avatar.Moves <= 0 {
			s.state.EndTurn()
		}
	}
	s.flush()
	if redraw && s.ui.Fullscreen() {
		s.look()
	}
}

// run executes cmd once; true means the map may have changed.
func (s *Session) run(ctx context.Context, cmd *command.Command, res command.ParseResult) bool {
	u, m := s.state.Avatar, s.state.Map
	switch cmd.Handler {
	case command.HandlerMove:
		dir, _ := command.MovementDirection(cmd.Name)
		s.dispatch.Move(u, m, dir.Offset())
		return true
	case command.HandlerAttack:
		s.dispatch.Autoattack(u, m)
		return true
	case command.HandlerFire:
		s.fire()
	case command.HandlerTurret:
		s.turret()
		return true
	case command.HandlerThrow:
		if loc, ok := s.heldLocation(res.RawArgs); ok {
			s.dispatch.Throw(u, m, loc, nil)
			return true
		}
	case command.HandlerUse:
		if loc, ok := s.heldLocation(res.RawArgs); ok {
			s.dispatch.UseItem(u, m, loc)
			return true
		}
	case command.HandlerEat:
		if res.RawArgs != "" {
			if loc, ok := s.heldLocation(res.RawArgs); ok {
				s.dispatch.EatLocation(u, loc)
			}
		} else if !s.dispatch.EatHere(u, m) {
			s.dispatch.Eat(u, m)
		}
		return true
	case command.HandlerGraze:
		if !s.dispatch.EatHere(u, m) {
			s.log.Add(message.Info, "There is nothing here you can graze on.")
		}
		return true
	case command.HandlerUnload:
		s.dispatch.Unload(u, m)
	case command.HandlerMend:
		if loc, ok := s.heldLocation(res.RawArgs); ok {
			s.dispatch.Mend(u, loc)
		}
	case command.HandlerWield:
		s.say(command.HandleWield(u, res.RawArgs))
	case command.HandlerWear:
		s.say(command.HandleWear(u, res.RawArgs))
	case command.HandlerTakeOff:
		s.say(command.HandleTakeOff(u, res.RawArgs))
	case command.HandlerGet:
		s.say(command.HandleGet(u, m, res.RawArgs))
	case command.HandlerDrop:
		s.say(command.HandleDrop(u, m, res.RawArgs))
		return true
	case command.HandlerEquipment:
		s.say(command.HandleEquipment(u))
	case command.HandlerWait:
		u.Pause()
	case command.HandlerLook:
		s.look()
	case command.HandlerMessages:
		s.history()
	case command.HandlerLanguage:
		s.chooseLanguage(ctx)
	case command.HandlerHelp:
		s.say(s.commands.HelpText())
	case command.HandlerQuit:
		s.quit = s.ui.QueryYN(s.log.Sprintf("Really quit?"))
	default:
		s.logger.Error("command has no handler",
			zap.String("command", cmd.Name),
			zap.String("handler", cmd.Handler),
		)
	}
	return false
}

// heldLocation resolves an item argument; an empty one leaves the choice to
// the dispatcher.
func (s *Session) heldLocation(arg string) (inventory.Location, bool) {
	if strings.TrimSpace(arg) == "" {
		return inventory.Location{}, true
	}
	it := command.FindHeld(s.state.Avatar, arg)
	if it == nil {
		s.say(s.log.Sprintf("You don't have a %s.", arg))
		return inventory.Location{}, false
	}
	return s.state.Avatar.ItemLocation(it), true
}

func (s *Session) fire() {
	u := s.state.Avatar
	w := u.Weapon
	switch {
	case w == nil:
		s.log.Add(message.Info, "You're not wielding anything.")
		return
	case !w.IsGun() && !w.IsGunmod():
		s.log.Add(message.Info, "You can't fire your %s.", w.Name())
		return
	case w.IsGun() && !s.dispatch.CanFireWeapon(u, s.state.Map, w):
		return
	}
	s.dispatch.FireWieldedWeapon(u)
	if u.Activity != nil {
		s.log.Add(message.Neutral, "You take aim with your %s.", w.Name())
		u.CancelActivity()
	}
}

func (s *Session) turret() {
	u, m := s.state.Avatar, s.state.Map
	p := u.Pos()
	v, _, ok := m.VehAt(p)
	if !ok {
		s.log.Add(message.Info, "There is no turret here.")
		return
	}
	t, err := v.MountedTurret(p)
	if err != nil {
		s.logger.Debug("no turret", zap.Error(err))
		s.log.Add(message.Info, "There is no turret here.")
		return
	}
	s.dispatch.FireTurretManual(u, m, t)
}

func (s *Session) chooseLanguage(ctx context.Context) {
	if err := s.lang.SelectLanguage(ctx, s.ui); err != nil {
		s.logger.Warn("language not selected", zap.Error(err))
		s.say(s.log.Sprintf("Language unchanged."))
		return
	}
	if err := s.lang.SetLanguage(); err != nil {
		s.logger.Error("setting language", zap.Error(err))
		s.say(s.log.Sprintf("Language unchanged."))
		return
	}
	s.lang.UpdateGlobalLocale()
	s.log.SetPrinter(s.lang.Translator())
}

func (s *Session) look() {
	for _, row := range s.view.Render(s.state) {
		s.say(row)
	}
	s.say(Status(s.state))
}

func (s *Session) history() {
	entries := s.log.Entries()
	if len(entries) > historySize {
		entries = entries[len(entries)-historySize:]
	}
	for _, e := range entries {
		s.say(formatEntry(e, s.color))
	}
}

// flush prints the messages logged since the last flush.
func (s *Session) flush() {
	for _, e := range s.log.Unread() {
		s.say(formatEntry(e, s.color))
	}
}

func (s *Session) say(text string) {
	for _, line := range strings.Split(text, "\n") {
		s.ui.writeLine(line)
	}
}
