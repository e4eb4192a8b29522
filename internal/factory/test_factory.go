package factory

import (
	"time"

	"github.com/mcoot/patchworkgame-go/internal/dependencies/mocks"
	"github.com/mcoot/patchworkgame-go/internal/services/catalog"
	"github.com/mcoot/patchworkgame-go/internal/storage/memory"
	"github.com/mcoot/patchworkgame-go/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies
// and the classic catalog
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	app := newWithDependencies(store, catalog.Classic(), mockClock, mockRandom, testutil.NopLogger())

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}
