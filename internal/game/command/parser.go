package command

import (
	"strconv"
	"strings"
)

// maxRepeat caps the repeat count of one input line.
const maxRepeat = 99

// ParseResult holds the parsed command name and arguments from a text line.
type ParseResult struct {
	// Command is the command word. Single-character words keep their case so
	// that "E" and "e" stay distinct; longer words are lowercased.
	Command string
	// Args are the remaining words after the command.
	Args []string
	// RawArgs is the text after the command with inner spacing kept, used
	// as an item name.
	RawArgs string
	// Count is how many times to repeat the command; a leading number sets it.
	Count int
}

// Parse splits a text line into an optional repeat count, a command, and
// arguments.
//
// Postcondition: Count >= 1. If line is empty, Command is empty.
func Parse(line string) ParseResult {
	res := ParseResult{Count: 1}
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return res
	}
	rest := strings.TrimSpace(line)
	if n, err := strconv.Atoi(fields[0]); err == nil && len(fields) > 1 {
		res.Count = min(max(n, 1), maxRepeat)
		rest = strings.TrimSpace(rest[len(fields[0]):])
		fields = fields[1:]
	}

	cmd := fields[0]
	if len(cmd) > 1 {
		cmd = strings.ToLower(cmd)
	}
	res.Command = cmd
	if len(fields) > 1 {
		res.Args = fields[1:]
		res.RawArgs = strings.TrimSpace(rest[len(fields[0]):])
	}
	return res
}
