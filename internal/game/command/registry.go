package command

import (
	"fmt"
	"sort"
	"strings"
)

// categoryOrder is the display order of HelpText.
var categoryOrder = []string{CategoryMovement, CategoryCombat, CategoryItems, CategorySystem}

// Registry maps command names and aliases to Command definitions.
type Registry struct {
	commands map[string]*Command // canonical name → command
	aliases  map[string]string   // alias → canonical name
}

// NewRegistry creates a Registry populated with the given commands.
//
// Precondition: No two commands may share a canonical name or alias.
// Postcondition: Returns a Registry or an error on name/alias collisions.
func NewRegistry(cmds []Command) (*Registry, error) {
	r := &Registry{
		commands: make(map[string]*Command, len(cmds)),
		aliases:  make(map[string]string),
	}
	for i := range cmds {
		cmd := &cmds[i]
		if _, exists := r.commands[cmd.Name]; exists {
			return nil, fmt.Errorf("duplicate command name: %q", cmd.Name)
		}
		if owner, exists := r.aliases[cmd.Name]; exists {
			return nil, fmt.Errorf("command name %q conflicts with an alias of %q", cmd.Name, owner)
		}
		r.commands[cmd.Name] = cmd
		for _, alias := range cmd.Aliases {
			if _, exists := r.commands[alias]; exists {
				return nil, fmt.Errorf("alias %q of %q conflicts with a command name", alias, cmd.Name)
			}
			if existing, exists := r.aliases[alias]; exists {
				return nil, fmt.Errorf("duplicate alias %q: used by %q and %q", alias, existing, cmd.Name)
			}
			r.aliases[alias] = cmd.Name
		}
	}
	return r, nil
}

// DefaultRegistry creates a Registry with all built-in commands.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(BuiltinCommands())
	if err != nil {
		panic(fmt.Sprintf("building default registry: %v", err))
	}
	return r
}

// Resolve looks up a command by name or alias.
//
// Postcondition: Returns (command, true) if found, or (nil, false).
func (r *Registry) Resolve(input string) (*Command, bool) {
	if cmd, ok := r.commands[input]; ok {
		return cmd, true
	}
	if canonical, ok := r.aliases[input]; ok {
		return r.commands[canonical], true
	}
	return nil, false
}

// Commands returns all registered commands sorted by name.
func (r *Registry) Commands() []*Command {
	result := make([]*Command, 0, len(r.commands))
	for _, cmd := range r.commands {
		result = append(result, cmd)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}

// HelpText renders every command grouped by category, one per line.
func (r *Registry) HelpText() string {
	byCat := make(map[string][]*Command)
	for _, cmd := range r.Commands() {
		byCat[cmd.Category] = append(byCat[cmd.Category], cmd)
	}
	var sb strings.Builder
	for _, cat := range categoryOrder {
		cmds := byCat[cat]
		if len(cmds) == 0 {
			continue
		}
		fmt.Fprintf(&sb, "== %s ==\n", cat)
		for _, cmd := range cmds {
			name := cmd.Name
			if len(cmd.Aliases) > 0 {
				name += " (" + strings.Join(cmd.Aliases, ", ") + ")"
			}
			fmt.Fprintf(&sb, "  %-28s %s\n", name, cmd.Help)
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}
