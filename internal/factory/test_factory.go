package factory

import (
	"time"

	"github.com/cipherplay/cipherrps/internal/dependencies/mocks"
	"github.com/cipherplay/cipherrps/internal/fhe/enclave"
	"github.com/cipherplay/cipherrps/internal/storage/memory"
	"github.com/cipherplay/cipherrps/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
	MockBeacon *mocks.MockBeacon
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() (*TestApp, error) {
	store := memory.New()
	scheme, err := enclave.New()
	if err != nil {
		return nil, err
	}

	mockClock := mocks.NewMockClock(time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()
	mockBeacon := mocks.NewMockBeacon()

	app := newWithDependencies(store, scheme, mockClock, mockRandom, mockBeacon, testutil.NopLogger())

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
		MockBeacon: mockBeacon,
	}, nil
}
