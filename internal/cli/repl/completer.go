package repl

import (
	"sort"
	"strings"
)

// builtins are handled by the loop itself.
var builtins = []string{"exit", "quit", "history"}

// Completer provides command suggestions for the REPL.
type Completer struct {
	commands []string
}

// NewCompleter creates a Completer over commands plus the loop built-ins.
// Duplicates are dropped and the result is kept sorted.
func NewCompleter(commands ...string) *Completer {
	seen := make(map[string]struct{})
	var all []string
	for _, cmd := range append(append([]string{}, commands...), builtins...) {
		cmd = strings.TrimSpace(cmd)
		if cmd == "" {
			continue
		}
		if _, ok := seen[cmd]; ok {
			continue
		}
		seen[cmd] = struct{}{}
		all = append(all, cmd)
	}
	sort.Strings(all)
	return &Completer{commands: all}
}

// Complete returns completion suggestions for the given prefix.
func (c *Completer) Complete(prefix string) []string {
	var suggestions []string
	for _, cmd := range c.commands {
		if strings.HasPrefix(cmd, prefix) {
			suggestions = append(suggestions, cmd)
		}
	}
	return suggestions
}

// Commands returns every known command.
func (c *Completer) Commands() []string {
	return append([]string(nil), c.commands...)
}
