// Package enclave is a process-local implementation of the encryption
// runtime boundary. Plaintexts are sealed at rest with nacl/secretbox under
// a runtime key held only by the scheme, proofs are SHA3 digests binding a
// raw ciphertext to its submitter and claimed range, and decrypt access is
// tracked per handle.
//
// This stands in for an external FHE coprocessor in development and tests.
// Arithmetic is performed on unsealed values inside the scheme, which is an
// implementation detail nothing outside this package may rely on: callers
// see only the fhe.Scheme capability surface.
package enclave

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/nacl/secretbox"
	"golang.org/x/crypto/sha3"

	"github.com/cipherplay/cipherrps/internal/fhe"
)

// Scheme implements fhe.Scheme with in-process sealed storage.
type Scheme struct {
	mu     sync.RWMutex
	key    [32]byte
	values map[string][]byte          // handle -> sealed plaintext
	grants map[string]map[string]bool // handle -> identity -> allowed
}

// Ensure Scheme implements the runtime boundary
var _ fhe.Scheme = (*Scheme)(nil)

// New creates a Scheme with a freshly generated runtime key.
func New() (*Scheme, error) {
	var key [32]byte
	if _, err := rand.Read(key[:]); err != nil {
		return nil, fmt.Errorf("generating runtime key: %w", err)
	}
	return NewWithKey(key), nil
}

// NewWithKey creates a Scheme with the given runtime key (for testing).
func NewWithKey(key [32]byte) *Scheme {
	return &Scheme{
		key:    key,
		values: make(map[string][]byte),
		grants: make(map[string]map[string]bool),
	}
}

// Seal is the client-side encryption path: it encrypts value under the
// runtime key and produces the proof binding it to submitter and the range
// it claims to lie in. In a production deployment this runs in the client
// SDK against the runtime's public key.
func (s *Scheme) Seal(value uint64, submitter string, min, max uint64) (raw, proof []byte, err error) {
	if value < min || value > max {
		return nil, nil, fmt.Errorf("value %d outside claimed range [%d, %d]", value, min, max)
	}
	raw, err = s.seal(value)
	if err != nil {
		return nil, nil, err
	}
	return raw, s.proofDigest(raw, submitter, min, max), nil
}

// VerifyAndImport checks the proof, unseals the raw ciphertext, verifies the
// range, and stores the value under a fresh handle.
func (s *Scheme) VerifyAndImport(ctx context.Context, raw, proof []byte, submitter string, min, max uint64) (fhe.Ciphertext, error) {
	want := s.proofDigest(raw, submitter, min, max)
	if subtle.ConstantTimeCompare(proof, want) != 1 {
		return fhe.Ciphertext{}, fhe.ErrVerificationFailed
	}

	value, err := s.open(raw)
	if err != nil {
		return fhe.Ciphertext{}, fhe.ErrVerificationFailed
	}
	if value < min || value > max {
		return fhe.Ciphertext{}, fhe.ErrVerificationFailed
	}

	return s.store(value)
}

// EncryptConstant encrypts a public constant under a fresh handle.
func (s *Scheme) EncryptConstant(ctx context.Context, value uint64) (fhe.Ciphertext, error) {
	return s.store(value)
}

// Add returns a handle to the homomorphic sum of a and b.
func (s *Scheme) Add(ctx context.Context, a, b fhe.Ciphertext) (fhe.Ciphertext, error) {
	va, err := s.resolve(a)
	if err != nil {
		return fhe.Ciphertext{}, err
	}
	vb, err := s.resolve(b)
	if err != nil {
		return fhe.Ciphertext{}, err
	}
	// Unsigned wraparound, matching the runtime's modular arithmetic
	return s.store(va + vb)
}

// Sub returns a handle to the homomorphic difference a - b.
func (s *Scheme) Sub(ctx context.Context, a, b fhe.Ciphertext) (fhe.Ciphertext, error) {
	va, err := s.resolve(a)
	if err != nil {
		return fhe.Ciphertext{}, err
	}
	vb, err := s.resolve(b)
	if err != nil {
		return fhe.Ciphertext{}, err
	}
	return s.store(va - vb)
}

// GrantDecrypt allows identity to decrypt the value behind ct.
func (s *Scheme) GrantDecrypt(ctx context.Context, ct fhe.Ciphertext, identity string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.values[ct.Handle]; !ok {
		return fhe.ErrInvalidCiphertext
	}
	if s.grants[ct.Handle] == nil {
		s.grants[ct.Handle] = make(map[string]bool)
	}
	s.grants[ct.Handle][identity] = true
	return nil
}

// Decrypt resolves a handle for an identity holding decrypt permission.
func (s *Scheme) Decrypt(ctx context.Context, ct fhe.Ciphertext, identity string) (uint64, error) {
	s.mu.RLock()
	sealed, ok := s.values[ct.Handle]
	allowed := s.grants[ct.Handle][identity]
	s.mu.RUnlock()

	if !ok {
		return 0, fhe.ErrInvalidCiphertext
	}
	if !allowed {
		return 0, fhe.ErrDecryptDenied
	}
	return s.open(sealed)
}

// store seals a value and records it under a fresh handle with no grants.
func (s *Scheme) store(value uint64) (fhe.Ciphertext, error) {
	sealed, err := s.seal(value)
	if err != nil {
		return fhe.Ciphertext{}, err
	}

	handle := uuid.NewString()

	s.mu.Lock()
	s.values[handle] = sealed
	s.mu.Unlock()

	return fhe.Ciphertext{Handle: handle}, nil
}

// resolve unseals the value behind a handle.
func (s *Scheme) resolve(ct fhe.Ciphertext) (uint64, error) {
	s.mu.RLock()
	sealed, ok := s.values[ct.Handle]
	s.mu.RUnlock()

	if !ok {
		return 0, fhe.ErrInvalidCiphertext
	}
	return s.open(sealed)
}

// seal encrypts an 8-byte big-endian value with a random nonce prefix.
func (s *Scheme) seal(value uint64) ([]byte, error) {
	var nonce [24]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return nil, fmt.Errorf("generating nonce: %w", err)
	}

	var plain [8]byte
	binary.BigEndian.PutUint64(plain[:], value)

	return secretbox.Seal(nonce[:], plain[:], &nonce, &s.key), nil
}

// open decrypts a sealed value produced by seal.
func (s *Scheme) open(sealed []byte) (uint64, error) {
	if len(sealed) < 24 {
		return 0, fhe.ErrInvalidCiphertext
	}

	var nonce [24]byte
	copy(nonce[:], sealed[:24])

	plain, ok := secretbox.Open(nil, sealed[24:], &nonce, &s.key)
	if !ok || len(plain) != 8 {
		return 0, fhe.ErrInvalidCiphertext
	}
	return binary.BigEndian.Uint64(plain), nil
}

// proofDigest computes the SHA3 digest binding a raw ciphertext to its
// submitter and claimed range. The runtime key is mixed in so only holders
// of the sealing capability can produce a valid proof.
func (s *Scheme) proofDigest(raw []byte, submitter string, min, max uint64) []byte {
	h := sha3.New256()
	h.Write(s.key[:])
	h.Write(raw)
	h.Write([]byte(submitter))

	var bounds [16]byte
	binary.BigEndian.PutUint64(bounds[:8], min)
	binary.BigEndian.PutUint64(bounds[8:], max)
	h.Write(bounds[:])

	return h.Sum(nil)
}
