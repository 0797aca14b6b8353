package engine

import "time"

// TimeProvider abstracts the clock so loop timing is testable
type TimeProvider interface {
	Now() time.Time
}

// MonotonicTimeProvider returns real time with monotonic clock readings
type MonotonicTimeProvider struct{}

func NewMonotonicTimeProvider() *MonotonicTimeProvider {
	return &MonotonicTimeProvider{}
}

func (p *MonotonicTimeProvider) Now() time.Time {
	return time.Now()
}

// MockTimeProvider is a manually advanced clock for tests
type MockTimeProvider struct {
	current time.Time
}

func NewMockTimeProvider(start time.Time) *MockTimeProvider {
	return &MockTimeProvider{current: start}
}

func (p *MockTimeProvider) Now() time.Time {
	return p.current
}

// Advance moves the mock clock forward
func (p *MockTimeProvider) Advance(d time.Duration) {
	p.current = p.current.Add(d)
}
