// Package notify provides the user-facing notification sink of the console
// client.
//
// Notifications are fire-and-forget: a Notifier never returns an error and
// never blocks the caller on delivery. The request dispatcher and the auth
// session manager receive a Notifier by injection, so tests substitute a
// Recorder and headless callers substitute Nop.
package notify

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/yndnr/llmops-go/internal/telemetry/logger"
)

// Level is the severity of a notification.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notifier shows short messages to the user.
type Notifier interface {
	Success(text string)
	Error(text string)
}

// Nop discards every notification.
type Nop struct{}

func (Nop) Success(string) {}
func (Nop) Error(string)   {}

// WriterNotifier prints notifications as single lines, successes to Out and
// errors to Err.
type WriterNotifier struct {
	mu  sync.Mutex
	Out io.Writer
	Err io.Writer
}

// NewWriterNotifier creates a notifier printing to stdout and stderr.
func NewWriterNotifier() *WriterNotifier {
	return &WriterNotifier{Out: os.Stdout, Err: os.Stderr}
}

// Success prints text to Out.
func (n *WriterNotifier) Success(text string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	fmt.Fprintf(n.Out, "ok: %s\n", text)
}

// Error prints text to Err.
func (n *WriterNotifier) Error(text string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	fmt.Fprintf(n.Err, "error: %s\n", text)
}

// LogNotifier forwards notifications to a structured logger.
type LogNotifier struct {
	log logger.Logger
}

// NewLogNotifier creates a notifier backed by l.
func NewLogNotifier(l logger.Logger) *LogNotifier {
	return &LogNotifier{log: l}
}

func (n *LogNotifier) Success(text string) {
	n.log.Info("notification", "level", string(LevelSuccess), "text", text)
}

func (n *LogNotifier) Error(text string) {
	n.log.Warn("notification", "level", string(LevelError), "text", text)
}

// Multi fans a notification out to several notifiers in order.
type Multi []Notifier

func (m Multi) Success(text string) {
	for _, n := range m {
		n.Success(text)
	}
}

func (m Multi) Error(text string) {
	for _, n := range m {
		n.Error(text)
	}
}
