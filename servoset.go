package servoset

import (
	"fmt"

	"github.com/pkg/errors"
)

// FrameSize is the fixed length of every frame sent to the servo board
const FrameSize = 5

const (
	Sentinel        byte = 0x00
	CommandBase     byte = 0x41
	CommandActivate byte = 0x40
	CommandReset    byte = 0x23
)

// Channels is the number of servo connectors on one board
const Channels = 4

var ErrInvalidFrame = errors.New("invalid frame")

// Direction selects which end of travel a command applies to
type Direction int

const (
	DirectionNormal Direction = iota
	DirectionReversed
)

func (d Direction) String() string {
	switch d {
	case DirectionNormal:
		return "normal"
	case DirectionReversed:
		return "reversed"
	default:
		return "unknown"
	}
}

// Function selects whether a command sets a position or a speed
type Function int

const (
	FunctionPosition Function = iota
	FunctionSpeed
)

func (f Function) String() string {
	switch f {
	case FunctionPosition:
		return "position"
	case FunctionSpeed:
		return "speed"
	default:
		return "unknown"
	}
}

// CommandFor returns the command byte addressing a channel's function and direction
func CommandFor(channel int, fn Function, dir Direction) byte {
	return CommandBase + byte(channel*4) + byte(fn*2) + byte(dir)
}

// Frame is a single wire frame: sentinel, command, then three ASCII decimal digits
type Frame [FrameSize]byte

// Encode builds the frame for command and value. value is always written as three digits.
func Encode(command, value byte) Frame {
	return Frame{
		Sentinel,
		command,
		'0' + value/100,
		'0' + (value/10)%10,
		'0' + value%10,
	}
}

// Activate tells the board to apply the most recently sent settings
func Activate() Frame {
	return Encode(CommandActivate, 0)
}

// ResetAll tells the board to reset every channel
func ResetAll() Frame {
	return Encode(CommandReset, 0)
}

// Bytes returns the frame as a slice for writing
func (f Frame) Bytes() []byte {
	return f[:]
}

// Command returns the frame's command byte
func (f Frame) Command() byte {
	return f[1]
}

func (f Frame) String() string {
	desc := "unknown"
	if m, err := Decode(f[:]); err == nil {
		desc = m.describe()
	}
	return fmt.Sprintf("%02x %02x %q %s", f[0], f[1], string(f[2:]), desc)
}

// Message is a decoded frame
type Message struct {
	Command byte
	Value   byte
}

// Decode parses raw frame bytes back into a Message
func Decode(raw []byte) (Message, error) {
	if len(raw) != FrameSize {
		return Message{}, errors.Wrapf(ErrInvalidFrame, "expected %d bytes, got %d", FrameSize, len(raw))
	}
	if raw[0] != Sentinel {
		return Message{}, errors.Wrapf(ErrInvalidFrame, "missing sentinel: 0x%02x", raw[0])
	}

	value := 0
	for _, d := range raw[2:] {
		if d < '0' || d > '9' {
			return Message{}, errors.Wrapf(ErrInvalidFrame, "non-digit value byte 0x%02x", d)
		}
		value = value*10 + int(d-'0')
	}
	if value > 255 {
		return Message{}, errors.Wrapf(ErrInvalidFrame, "value %d out of range", value)
	}

	return Message{Command: raw[1], Value: byte(value)}, nil
}

// Channel reports which channel, function and direction a per-channel command addresses.
// ok is false for control commands and bytes outside the per-channel range.
func (m Message) Channel() (channel int, fn Function, dir Direction, ok bool) {
	if m.Command < CommandBase || m.Command >= CommandBase+Channels*4 {
		return 0, 0, 0, false
	}
	offset := int(m.Command - CommandBase)
	return offset / 4, Function((offset % 4) / 2), Direction(offset % 2), true
}

func (m Message) describe() string {
	switch m.Command {
	case CommandActivate:
		return "set"
	case CommandReset:
		return "reset"
	}
	channel, fn, dir, ok := m.Channel()
	if !ok {
		return "unknown"
	}
	return fmt.Sprintf("ch%d %s %s", channel, fn, dir)
}
