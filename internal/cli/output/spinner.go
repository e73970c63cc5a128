// Package output renders command results for llmops-cli.
package output

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// DefaultSpinnerInterval is the frame period.
const DefaultSpinnerInterval = 100 * time.Millisecond

// Spinner animates a message on a terminal line while work is in flight.
type Spinner struct {
	w        io.Writer
	message  string
	frames   []string
	interval time.Duration
	active   func() bool

	mu      sync.Mutex
	started bool
	done    chan struct{}
	stopped chan struct{}
	once    sync.Once
}

// NewSpinner creates a new spinner.
func NewSpinner(w io.Writer, message string) *Spinner {
	return &Spinner{
		w:        w,
		message:  message,
		frames:   []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
		interval: DefaultSpinnerInterval,
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}
}

// While makes the spinner draw only while active reports true, for example
// AuthService.LoginLoading.
func (s *Spinner) While(active func() bool) *Spinner {
	s.active = active
	return s
}

// Start starts the spinner animation.
func (s *Spinner) Start() {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return
	}
	s.started = true
	s.mu.Unlock()

	go func() {
		defer close(s.stopped)

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for i := 0; ; {
			if s.active == nil || s.active() {
				s.mu.Lock()
				fmt.Fprintf(s.w, "\r%s %s", s.frames[i%len(s.frames)], s.message)
				s.mu.Unlock()
				i++
			}

			select {
			case <-s.done:
				return
			case <-ticker.C:
			}
		}
	}()
}

// halt stops the animation goroutine and waits for it to exit.
func (s *Spinner) halt() {
	s.once.Do(func() { close(s.done) })

	s.mu.Lock()
	started := s.started
	s.mu.Unlock()
	if started {
		<-s.stopped
	}
}

// Stop stops the spinner and clears the line.
func (s *Spinner) Stop() {
	s.halt()
	fmt.Fprint(s.w, "\r\033[K")
}

// Success stops the spinner with a success message.
func (s *Spinner) Success(message string) {
	s.halt()
	fmt.Fprintf(s.w, "\r\033[K✓ %s\n", message)
}

// Fail stops the spinner with a failure message.
func (s *Spinner) Fail(message string) {
	s.halt()
	fmt.Fprintf(s.w, "\r\033[K✗ %s\n", message)
}
