package notify

import "sync"

// Entry is one recorded notification.
type Entry struct {
	Level Level
	Text  string
}

// Recorder keeps every notification in memory. It is safe for concurrent use
// and intended for tests.
type Recorder struct {
	mu      sync.Mutex
	entries []Entry
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Success(text string) {
	r.add(LevelSuccess, text)
}

func (r *Recorder) Error(text string) {
	r.add(LevelError, text)
}

func (r *Recorder) add(level Level, text string) {
	r.mu.Lock()
	r.entries = append(r.entries, Entry{Level: level, Text: text})
	r.mu.Unlock()
}

// Entries returns a copy of the recorded notifications.
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Count returns the number of recorded notifications at level.
func (r *Recorder) Count(level Level) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.entries {
		if e.Level == level {
			n++
		}
	}
	return n
}

// Reset drops all recorded notifications.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.entries = nil
	r.mu.Unlock()
}
