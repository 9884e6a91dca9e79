// Package fhe defines the boundary to the homomorphic encryption runtime.
//
// The game core never handles plaintext moves: it receives verified
// ciphertext handles, combines them with homomorphic add/sub, and grants
// decrypt permission on results. Everything behind the Scheme interface is
// the runtime's responsibility; the core treats it as a black box.
package fhe

import (
	"context"
	"errors"
)

// Ciphertext is an opaque handle to an encrypted value held by the runtime.
// It carries no plaintext and exposes no accessor for one; only the runtime
// can resolve a handle, and only for identities holding decrypt permission.
type Ciphertext struct {
	Handle string `json:"handle"`
}

// IsZero reports whether the handle is unset.
func (c Ciphertext) IsZero() bool {
	return c.Handle == ""
}

// Scheme is the capability surface the game core requires from the
// encryption runtime.
type Scheme interface {
	// VerifyAndImport checks the zero-knowledge proof accompanying an
	// externally produced ciphertext and returns a verified handle. The
	// proof must attest that the ciphertext was produced by submitter and
	// that the underlying plaintext lies in [min, max].
	VerifyAndImport(ctx context.Context, raw, proof []byte, submitter string, min, max uint64) (Ciphertext, error)

	// EncryptConstant encrypts a public constant.
	EncryptConstant(ctx context.Context, value uint64) (Ciphertext, error)

	// Add returns a handle to the homomorphic sum of a and b.
	Add(ctx context.Context, a, b Ciphertext) (Ciphertext, error)

	// Sub returns a handle to the homomorphic difference a - b.
	Sub(ctx context.Context, a, b Ciphertext) (Ciphertext, error)

	// GrantDecrypt allows identity to decrypt the value behind ct.
	GrantDecrypt(ctx context.Context, ct Ciphertext, identity string) error

	// Decrypt resolves a handle for an identity holding decrypt permission.
	// This is the client-side path; the game core never calls it.
	Decrypt(ctx context.Context, ct Ciphertext, identity string) (uint64, error)
}

var (
	// ErrVerificationFailed is returned when a submitted ciphertext's proof
	// does not verify. The game core propagates it unmodified.
	ErrVerificationFailed = errors.New("ciphertext proof verification failed")

	// ErrInvalidCiphertext is returned when a handle does not resolve to a
	// value held by the runtime.
	ErrInvalidCiphertext = errors.New("invalid ciphertext handle")

	// ErrDecryptDenied is returned when an identity without decrypt
	// permission attempts to resolve a handle.
	ErrDecryptDenied = errors.New("decrypt permission denied")
)
