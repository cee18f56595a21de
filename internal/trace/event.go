package trace

import "time"

// Scope indicates the granularity of an event. Lower values are coarser.
type Scope uint8

const (
	// ScopePhase covers pipeline phases (load, analyze, emit).
	ScopePhase Scope = iota + 1
	// ScopeFunction covers per-function analysis.
	ScopeFunction
	// ScopeBlock covers per-block detail.
	ScopeBlock
)

// String returns the string representation of Scope.
func (s Scope) String() string {
	switch s {
	case ScopePhase:
		return "phase"
	case ScopeFunction:
		return "function"
	case ScopeBlock:
		return "block"
	default:
		return "unknown"
	}
}

// Event is a single trace record.
type Event struct {
	Time   time.Time
	Scope  Scope
	Name   string
	Detail string
}
