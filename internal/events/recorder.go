package events

import (
	"sync"

	"github.com/cipherplay/cipherrps/internal/model"
)

// Recorder is a Publisher that collects published events in memory.
// It is intended for tests.
type Recorder struct {
	mu     sync.Mutex
	events []model.Event
}

// Ensure Recorder implements Publisher
var _ Publisher = (*Recorder)(nil)

// NewRecorder creates a new Recorder
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Publish records the event
func (r *Recorder) Publish(event model.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

// Events returns a copy of the recorded events in publication order
func (r *Recorder) Events() []model.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Event, len(r.events))
	copy(out, r.events)
	return out
}

// Reset clears the recorded events
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}
