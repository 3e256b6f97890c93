package domain

// =============================================================================
// Dispatch Status
// =============================================================================

// DispatchState represents the lifecycle of one booking submission.
type DispatchState string

const (
	// DispatchIdle indicates no submission is in progress.
	DispatchIdle DispatchState = "idle"

	// DispatchSending indicates a delivery call is in flight. At most one
	// submission per form may be in this state.
	DispatchSending DispatchState = "sending"

	// DispatchSuccess indicates the delivery collaborator confirmed the send.
	DispatchSuccess DispatchState = "success"

	// DispatchError indicates validation or delivery failed; the entered
	// form values are preserved for a user-initiated retry.
	DispatchError DispatchState = "error"
)

// String returns the string representation of the state.
func (s DispatchState) String() string {
	return string(s)
}

// CanTransitionTo checks if the dispatch can move to the target state.
//
// Valid transitions:
// - idle -> sending (submit) or error (submit rejected by validation)
// - sending -> success | error (delivery result)
// - success | error -> sending (next submit) or idle (status cleared)
func (s DispatchState) CanTransitionTo(target DispatchState) bool {
	switch s {
	case DispatchIdle:
		return target == DispatchSending || target == DispatchError
	case DispatchSending:
		return target == DispatchSuccess || target == DispatchError
	case DispatchSuccess, DispatchError:
		return target == DispatchSending || target == DispatchIdle
	}
	return false
}

// DispatchStatus pairs the state with a display message. The message has
// no contract beyond UI display. Ref is set once a submission has been
// accepted for delivery.
type DispatchStatus struct {
	State   DispatchState
	Message string
	Ref     string
}
