package factory

import (
	"time"

	"github.com/partybox-games/roomserver/internal/dependencies/mocks"
	"github.com/partybox-games/roomserver/internal/storage/memory"
	"github.com/partybox-games/roomserver/internal/testutil"
)

// TestApp wraps App with mock dependencies for testing
type TestApp struct {
	*App

	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an application wired against the in-memory store
// with controllable clock and randomness.
func NewTestApp() *TestApp {
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	app := newWithDependencies(memory.New(), mockClock, mockRandom, testutil.NopLogger())
	app.Dispatcher.BackoffBase = 0

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}
