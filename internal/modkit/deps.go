// Package modkit provides module wiring and core deps
package modkit

import (
	"herdpulse/internal/modkit/repokit"
	"herdpulse/internal/platform/config"
	"herdpulse/internal/platform/logger"
	ptime "herdpulse/internal/platform/time"
)

// Deps holds core dependencies passed to modules
// this is wiring only and does not introduce new abstractions
type Deps struct {
	Log   logger.Logger
	Cfg   config.Conf
	PG    repokit.TxRunner
	Clock ptime.Clock
}

// Now returns the current time from the configured clock, falling back to the system clock
func (d Deps) Now() ptime.Clock {
	if d.Clock != nil {
		return d.Clock
	}
	return ptime.SystemClock{}
}

// ZeroOK returns true when deps are safe to use with zero values in tests
// consumers should still nil check for optional stores
func (d Deps) ZeroOK() bool { return true }
