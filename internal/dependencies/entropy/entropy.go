package entropy

import (
	"encoding/binary"
	"sync/atomic"
	"time"
)

// Beacon supplies the public entropy the house opponent draws its moves
// from. It stands in for the unpredictable-but-public values (timestamps,
// randomness beacons) the protocol mixes into the move derivation.
type Beacon interface {
	// Entropy returns a fresh per-call entropy value
	Entropy() []byte
}

// ClockBeacon derives entropy from the wall clock and a per-process
// counter. This matches the protocol's public entropy source and inherits
// its known weakness: anyone who can predict the beacon value ahead of the
// consuming call can predict the house move. It is not a secure RNG and is
// deliberately not fixed here; see SecureBeacon for the hardened option.
type ClockBeacon struct {
	counter atomic.Uint64
}

// New creates a new ClockBeacon
func New() *ClockBeacon {
	return &ClockBeacon{}
}

// Entropy returns the current time in nanoseconds concatenated with a
// process-scoped counter
func (b *ClockBeacon) Entropy() []byte {
	var buf [16]byte
	binary.BigEndian.PutUint64(buf[:8], uint64(time.Now().UnixNano()))
	binary.BigEndian.PutUint64(buf[8:], b.counter.Add(1))
	return buf[:]
}
