package segdeque

// Side selects an end of the deque.
type Side uint8

const (
	// Front is the end holding the first element.
	Front Side = iota
	// Back is the end one past the last element.
	Back
)

func (s Side) String() string {
	switch s {
	case Front:
		return "front"
	case Back:
		return "back"
	default:
		return "unknown"
	}
}
