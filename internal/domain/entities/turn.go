package entities

// TurnStatus is the outcome of a debounce wait.
type TurnStatus string

const (
	// TurnWaiting means no burst was observed: either another caller already
	// consumed it or none was ever buffered. Observing it must be side-effect
	// free.
	TurnWaiting TurnStatus = "waiting"
	// TurnComplete means the burst was consumed and every fragment succeeded.
	TurnComplete TurnStatus = "complete"
	// TurnInternalFailure means the burst was consumed but at least one
	// fragment failed extraction.
	TurnInternalFailure TurnStatus = "internal_failure"
)

// TurnResult is the assembled outcome of one burst, handed downstream as a
// single logical message.
type TurnResult struct {
	Status         TurnStatus
	Text           string
	FailureContext string
	Fragments      []Fragment
}
