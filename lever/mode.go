package lever

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/calvinmclean/servoset"
)

// Mode is the calibration value currently being edited on a Lever
type Mode int

const (
	ModeIdle Mode = iota
	ModeNormal
	ModeReversed
	ModeReturn
	ModePull

	numModes
)

// EditableModes lists the modes that hold a value, in cycle order
var EditableModes = []Mode{ModeNormal, ModeReversed, ModeReturn, ModePull}

func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "Idle"
	case ModeNormal:
		return "Normal"
	case ModeReversed:
		return "Reversed"
	case ModeReturn:
		return "Return"
	case ModePull:
		return "Pull"
	default:
		return "Unknown"
	}
}

// Next returns the following mode, wrapping from Pull back to Idle
func (m Mode) Next() Mode {
	return (m + 1) % numModes
}

// Editable is true for every mode except Idle
func (m Mode) Editable() bool {
	return m > ModeIdle && m < numModes
}

type modeCommand struct {
	direction servoset.Direction
	function  servoset.Function
}

// modeCommands maps each editable mode to the board function it drives
var modeCommands = map[Mode]modeCommand{
	ModeNormal:   {servoset.DirectionNormal, servoset.FunctionPosition},
	ModeReversed: {servoset.DirectionReversed, servoset.FunctionPosition},
	ModeReturn:   {servoset.DirectionNormal, servoset.FunctionSpeed},
	ModePull:     {servoset.DirectionReversed, servoset.FunctionSpeed},
}

var ErrUnknownMode = errors.New("unknown mode")

// ParseMode converts a mode name, ignoring case, into one of the editable modes
func ParseMode(s string) (Mode, error) {
	for _, m := range EditableModes {
		if strings.EqualFold(s, m.String()) {
			return m, nil
		}
	}
	return ModeIdle, errors.Wrapf(ErrUnknownMode, "%q", s)
}

// ModeCommand returns the command byte that sets mode m's value on channel. ok is false for Idle.
func ModeCommand(channel int, m Mode) (cmd byte, ok bool) {
	mc, ok := modeCommands[m]
	if !ok {
		return 0, false
	}
	return servoset.CommandFor(channel, mc.function, mc.direction), true
}
