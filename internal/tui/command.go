package tui

import "strings"

// Command is a parsed ":" command.
type Command struct {
	Name string
	Args string
}

// ParseCommand parses a command string, with or without the leading ':'.
func ParseCommand(input string) Command {
	input = strings.TrimPrefix(strings.TrimSpace(input), ":")
	parts := strings.SplitN(strings.TrimSpace(input), " ", 2)
	cmd := Command{Name: strings.ToLower(parts[0])}
	if len(parts) > 1 {
		cmd.Args = strings.ToLower(strings.TrimSpace(parts[1]))
	}
	return cmd
}

// canonical maps command aliases to their full name.
var canonical = map[string]string{
	"bless":    "bless",
	"b":        "bless",
	"theme":    "theme",
	"t":        "theme",
	"lang":     "lang",
	"language": "lang",
	"l":        "lang",
	"help":     "help",
	"h":        "help",
	"quit":     "quit",
	"q":        "quit",
}

// Canonical returns the full command name for an alias, or "" if unknown.
func (c Command) Canonical() string {
	return canonical[c.Name]
}
