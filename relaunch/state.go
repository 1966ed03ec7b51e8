package relaunch

import "fmt"

// State is a step of the relaunch protocol.
type State int

const (
	StateInitial State = iota
	StateSpawningWorker
	StateWorkerPerformingOperation
	StateWorkerRequestingCleanup
	StateCleaningUp
	StateDone
)

func (s State) String() string {
	switch s {
	case StateInitial:
		return "Initial"
	case StateSpawningWorker:
		return "SpawningWorker"
	case StateWorkerPerformingOperation:
		return "WorkerPerformingOperation"
	case StateWorkerRequestingCleanup:
		return "WorkerRequestingCleanup"
	case StateCleaningUp:
		return "CleaningUp"
	case StateDone:
		return "Done"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}
