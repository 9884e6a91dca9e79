package mocks

import (
	"github.com/cipherplay/cipherrps/internal/dependencies/entropy"
)

// MockBeacon is a mock implementation of Beacon for testing
type MockBeacon struct {
	// Values is a queue of entropy values to return
	Values [][]byte
	index  int
}

// Ensure MockBeacon implements Beacon
var _ entropy.Beacon = (*MockBeacon)(nil)

// NewMockBeacon creates a new MockBeacon
func NewMockBeacon() *MockBeacon {
	return &MockBeacon{}
}

// Entropy returns the next queued value, or a fixed value if none remaining
func (b *MockBeacon) Entropy() []byte {
	if b.index >= len(b.Values) {
		return []byte("mock-entropy")
	}
	v := b.Values[b.index]
	b.index++
	return v
}

// Queue adds entropy values to the queue
func (b *MockBeacon) Queue(values ...[]byte) {
	b.Values = append(b.Values, values...)
}

// Reset clears all queued values
func (b *MockBeacon) Reset() {
	b.Values = nil
	b.index = 0
}
