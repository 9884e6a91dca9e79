package entropy

import "crypto/rand"

// SecureBeacon draws entropy from crypto/rand. It removes the
// predictability weakness of ClockBeacon at the cost of no longer being a
// public, externally auditable source; deployments choose the trade-off.
type SecureBeacon struct{}

// NewSecure creates a new SecureBeacon
func NewSecure() *SecureBeacon {
	return &SecureBeacon{}
}

// Entropy returns 16 random bytes
func (b *SecureBeacon) Entropy() []byte {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms
		return buf
	}
	return buf
}
