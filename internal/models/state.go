package models

import "time"

// Phase is the gate's current step.
type Phase int

const (
	PhaseAwaitingInput Phase = iota
	PhaseDenied
	PhaseTimeLocked
	PhaseUnlocked
)

func (p Phase) String() string {
	switch p {
	case PhaseAwaitingInput:
		return "awaiting_input"
	case PhaseDenied:
		return "denied"
	case PhaseTimeLocked:
		return "time_locked"
	case PhaseUnlocked:
		return "unlocked"
	default:
		return "unknown"
	}
}

// UnlockCause records how the gate was opened.
type UnlockCause string

const (
	UnlockBypass   UnlockCause = "bypass"
	UnlockOnTime   UnlockCause = "on_time"
	UnlockTimeLock UnlockCause = "time_lock_expired"
)

// State is an immutable snapshot of the gate. The gate replaces it
// wholesale on every change; a State is never partially updated.
type State struct {
	Phase Phase

	// Reason is set only in PhaseDenied.
	Reason error

	// Countdown and Remaining are meaningful only in PhaseTimeLocked.
	Countdown string
	Remaining time.Duration
	// Arrived is set once a time-locked gate has seen the deadline
	// pass and is waiting out the settle delay.
	Arrived bool

	// Cause is set only in PhaseUnlocked.
	Cause UnlockCause

	// Revision increases with every replacement.
	Revision uint64
}

// Newer reports whether s supersedes other.
func (s State) Newer(other State) bool {
	return s.Revision > other.Revision
}
