package console

import "github.com/cory-johannsen/underbrush/internal/game/message"

// ANSI escape codes used by the console.
const (
	Reset  = "\033[0m"
	Bold   = "\033[1m"
	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
	Blue   = "\033[34m"
	Cyan   = "\033[36m"
	Gray   = "\033[90m"
)

// kindColor is the colour of each message kind; Neutral is uncoloured.
var kindColor = map[message.Kind]string{
	message.Good:    Green,
	message.Bad:     Red,
	message.Info:    Cyan,
	message.Warning: Yellow,
}

// Colorize wraps text with color and a reset suffix. An empty color leaves
// text unchanged.
func Colorize(color, text string) string {
	if color == "" {
		return text
	}
	return color + text + Reset
}

// StripANSI removes all ANSI escape sequences from a string.
//
// Postcondition: Returns text with all \033[...m sequences removed.
func StripANSI(s string) string {
	result := make([]byte, 0, len(s))
	i := 0
	for i < len(s) {
		if s[i] == '\033' && i+1 < len(s) && s[i+1] == '[' {
			j := i + 2
			for j < len(s) && s[j] != 'm' {
				j++
			}
			if j < len(s) {
				i = j + 1
				continue
			}
		}
		result = append(result, s[i])
		i++
	}
	return string(result)
}

// formatEntry renders a log entry, coloured by kind when color is set.
func formatEntry(e message.Entry, color bool) string {
	if !color {
		return e.Text
	}
	return Colorize(kindColor[e.Kind], e.Text)
}
