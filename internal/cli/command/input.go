package command

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/yndnr/llmops-go/internal/cli/output"
)

// Terminal hooks, replaced in tests.
var (
	readPassword = term.ReadPassword
	isTerminal   = term.IsTerminal
)

// terminalFd returns the descriptor behind v when it is an interactive terminal.
func terminalFd(v any) (int, bool) {
	f, ok := v.(*os.File)
	if !ok {
		return 0, false
	}
	fd := int(f.Fd())
	return fd, isTerminal(fd)
}

// promptLine prints label on stderr and reads one trimmed line.
func promptLine(rt *Runtime, label string) (string, error) {
	fmt.Fprint(rt.Stderr, label)

	line, err := rt.In.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		if errors.Is(err, io.EOF) {
			return "", errors.New("no input")
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// promptPassword reads a password without echo on a terminal, or a plain
// line when input is redirected.
func promptPassword(rt *Runtime, label string) (string, error) {
	fd, ok := terminalFd(rt.stdin)
	if !ok {
		return promptLine(rt, label)
	}

	fmt.Fprint(rt.Stderr, label)
	b, err := readPassword(fd)
	fmt.Fprintln(rt.Stderr)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimSpace(string(b)), nil
}

// confirm asks a yes/no question; anything but y or yes declines.
func confirm(rt *Runtime, question string) (bool, error) {
	answer, err := promptLine(rt, question+" [y/N]: ")
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

// startSpinner animates message on a terminal stderr while active reports
// true. It returns a stop function; on other writers nothing is drawn.
func startSpinner(rt *Runtime, message string, active func() bool) func() {
	if _, ok := terminalFd(rt.Stderr); !ok {
		return func() {}
	}
	s := output.NewSpinner(rt.Stderr, message).While(active)
	s.Start()
	return s.Stop
}
