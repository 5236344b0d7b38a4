package ui

// State is the controller's position in the submission lifecycle:
// Idle -> Loading -> (success | failure) -> Idle.
type State int

const (
	StateIdle State = iota
	StateLoading
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	default:
		return "unknown"
	}
}
