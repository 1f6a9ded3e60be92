// Package time contains time helpers and the injectable clock used by the
// analytics and alert engines
package time

import "time"

// Clock supplies "now" so temporal rules can be evaluated against an
// injected reference instant in tests
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in UTC
type SystemClock struct{}

// Now returns the current UTC time
func (SystemClock) Now() time.Time { return time.Now().UTC() }

// FixedClock always returns the same instant
type FixedClock struct{ At time.Time }

// Now returns the fixed instant
func (c FixedClock) Now() time.Time { return c.At }

// Ptr returns a pointer to t or nil if t is zero
func Ptr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

// DaysBetween returns whole days from a to b, flooring the millisecond
// difference. Negative when b precedes a
func DaysBetween(a, b time.Time) int {
	const dayMs = 86_400_000
	ms := b.UnixMilli() - a.UnixMilli()
	if ms < 0 {
		return -int((-ms) / dayMs)
	}
	return int(ms / dayMs)
}
