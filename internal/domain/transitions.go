package domain

// ProcessEvent is an operator action applied to a process.
type ProcessEvent string

const (
	EventStart    ProcessEvent = "START"
	EventComplete ProcessEvent = "COMPLETE"
)

// processTransitions is the closed transition table. Statuses only move
// forward; anything absent from the table is an illegal transition.
var processTransitions = map[ProcessStatus]map[ProcessEvent]ProcessStatus{
	ProcessNotStarted: {
		EventStart: ProcessInProgress,
	},
	ProcessInProgress: {
		EventComplete: ProcessCompleted,
	},
	ProcessCompleted: {},
}

// NextProcessStatus resolves the status after applying event, or an
// InvalidState error when the table has no entry.
func NextProcessStatus(current ProcessStatus, event ProcessEvent) (ProcessStatus, error) {
	next, ok := processTransitions[current][event]
	if !ok {
		return current, InvalidState("cannot apply %s to process in status %s", event, current)
	}
	return next, nil
}
