package service

// State is a phase of an ingestion run.
type State int

const (
	StateIdle State = iota
	StateRunStarted
	StatePerLocation
	StateFinalizing
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunStarted:
		return "run_started"
	case StatePerLocation:
		return "per_location"
	case StateFinalizing:
		return "finalizing"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}
