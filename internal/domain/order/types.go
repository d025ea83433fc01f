package order

type Status string

const (
	StatusProcessing            Status = "Processing"
	StatusShipped               Status = "Shipped"
	StatusDelivered             Status = "Delivered"
	StatusCancelled             Status = "Cancelled"
	StatusCancellationRequested Status = "CancellationRequested"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled, StatusCancellationRequested:
		return true
	default:
		return false
	}
}

// Delivered and Cancelled are terminal: no further transitions.
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// adminTransitions is the operator-driven part of the state machine.
// CancellationRequested is never a target here: only the order owner can
// enter it, and leaving it goes through the approval operation.
var adminTransitions = map[Status][]Status{
	StatusProcessing: {StatusShipped, StatusDelivered, StatusCancelled},
	StatusShipped:    {StatusDelivered, StatusCancelled},
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range adminTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// CanRequestCancellation reports whether the owner may still open a
// cancellation request. Once shipped-and-delivered or cancelled, no.
func (s Status) CanRequestCancellation() bool {
	return s == StatusProcessing || s == StatusShipped
}

func NewStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}
