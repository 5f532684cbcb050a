package console

import (
	"fmt"
	"io"

	"github.com/calvinmclean/servoset/controller"
)

// Command maps a key to an Event. Keys that start a multi-byte sequence read InputSize more bytes
// and resolve the Event from them.
type Command struct {
	Flag        byte
	InputSize   uint
	Event       func(input []byte) controller.Event
	Description string
}

func event(e controller.Event) func([]byte) controller.Event {
	return func([]byte) controller.Event { return e }
}

var (
	IncrementCommand = &Command{
		Flag:        'w',
		Event:       event(controller.EventIncrement),
		Description: "White: increase the value being edited, or select the previous lever when idle.",
	}
	DecrementCommand = &Command{
		Flag:        'y',
		Event:       event(controller.EventDecrement),
		Description: "Yellow: decrease the value being edited, or select the next lever when idle.",
	}
	AdvanceCommand = &Command{
		Flag:        'g',
		Event:       event(controller.EventAdvance),
		Description: "Green: set any change on the board and move to the next calibration mode.",
	}
	SelectNextCommand = &Command{
		Flag:        'n',
		Event:       event(controller.EventSelectNext),
		Description: "Select the next lever.",
	}
	SelectPrevCommand = &Command{
		Flag:        'p',
		Event:       event(controller.EventSelectPrev),
		Description: "Select the previous lever.",
	}
	QuitCommand = &Command{
		Flag:        'q',
		Event:       event(controller.EventQuit),
		Description: "Red: save the frame and quit.",
	}
	InterruptCommand = &Command{
		Flag:        0x03,
		Event:       event(controller.EventQuit),
		Description: "Ctrl-C: save the frame and quit.",
	}
	ArrowCommand = &Command{
		Flag:      0x1B,
		InputSize: 2,
		Event: func(b []byte) controller.Event {
			if b[0] != '[' {
				return controller.EventNone
			}
			switch b[1] {
			case 'A':
				return controller.EventIncrement
			case 'B':
				return controller.EventDecrement
			case 'C':
				return controller.EventAdvance
			}
			return controller.EventNone
		},
		Description: "Arrow keys: up increases, down decreases, right advances.",
	}
)

var commands = []*Command{
	IncrementCommand,
	DecrementCommand,
	AdvanceCommand,
	SelectNextCommand,
	SelectPrevCommand,
	QuitCommand,
	InterruptCommand,
	ArrowCommand,
}

// helpFlag prints the command list instead of producing an Event
const helpFlag = 'h'

// PrintHelp writes a description of every key
func PrintHelp(w io.Writer) {
	fmt.Fprint(w, "Available Commands:\r\n")
	for _, cmd := range commands {
		fmt.Fprintf(w, "%s: %s\r\n", flagString(cmd.Flag), cmd.Description)
	}
	fmt.Fprintf(w, "%s: Show this help.\r\n", flagString(helpFlag))
}

func flagString(b byte) string {
	if b >= 32 && b <= 126 {
		return string(b)
	}
	return fmt.Sprintf("0x%02X", b)
}
