package clock

import "time"

// Clock provides time operations that can be mocked for testing
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the system clock
type RealClock struct{}

var _ Clock = (*RealClock)(nil)

// New creates a new RealClock
func New() *RealClock {
	return &RealClock{}
}

// Now returns the current time in UTC. The result carries no monotonic
// reading, so match timestamps compare equal after a storage round trip.
func (c *RealClock) Now() time.Time {
	return time.Now().UTC()
}
