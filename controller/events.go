package controller

// Event is an abstract input from whichever front end is driving the calibration
type Event int

const (
	EventNone Event = iota
	EventIncrement
	EventDecrement
	EventAdvance
	EventSelectNext
	EventSelectPrev
	EventQuit
)

func (e Event) String() string {
	switch e {
	case EventIncrement:
		return "Increment"
	case EventDecrement:
		return "Decrement"
	case EventAdvance:
		return "Advance"
	case EventSelectNext:
		return "SelectNext"
	case EventSelectPrev:
		return "SelectPrev"
	case EventQuit:
		return "Quit"
	default:
		return "None"
	}
}
