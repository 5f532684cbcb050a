// Package board is the hardware independent part of the servo board firmware. It applies decoded
// frames to four servo channels.
package board

import (
	"github.com/pkg/errors"

	"github.com/calvinmclean/servoset"
)

// DefaultPosition is the centre of travel used after a reset
const DefaultPosition = 128

var ErrUnknownCommand = errors.New("unknown command")

// Actuator moves a servo. value is the full 0-255 travel range.
type Actuator interface {
	SetPosition(channel int, value uint8) error
}

// Settings are the calibrated values of one channel
type Settings struct {
	Position [2]uint8 // indexed by servoset.Direction
	Speed    [2]uint8 // indexed by servoset.Direction
}

func defaultSettings() Settings {
	return Settings{
		Position: [2]uint8{DefaultPosition, DefaultPosition},
	}
}

// Board holds the working settings being edited and the saved settings applied by the last set
type Board struct {
	actuator Actuator
	working  [servoset.Channels]Settings
	saved    [servoset.Channels]Settings

	// OnSave is called with the saved settings after every set command
	OnSave func([servoset.Channels]Settings)
}

// New creates a Board starting from saved settings
func New(actuator Actuator, saved [servoset.Channels]Settings) *Board {
	return &Board{
		actuator: actuator,
		working:  saved,
		saved:    saved,
	}
}

// Defaults returns the settings of a board that has been reset
func Defaults() [servoset.Channels]Settings {
	var s [servoset.Channels]Settings
	for i := range s {
		s[i] = defaultSettings()
	}
	return s
}

// Working returns the settings being edited
func (b *Board) Working() [servoset.Channels]Settings {
	return b.working
}

// Saved returns the settings stored by the last set command
func (b *Board) Saved() [servoset.Channels]Settings {
	return b.saved
}

// Apply carries out one decoded command. Position commands move the servo straight away so the
// operator can see the effect; speed commands are only stored.
func (b *Board) Apply(m servoset.Message) error {
	switch m.Command {
	case servoset.CommandActivate:
		b.saved = b.working
		if b.OnSave != nil {
			b.OnSave(b.saved)
		}
		return nil
	case servoset.CommandReset:
		b.working = Defaults()
		for ch := range b.working {
			err := b.actuator.SetPosition(ch, b.working[ch].Position[servoset.DirectionNormal])
			if err != nil {
				return errors.Wrapf(err, "error moving channel %d", ch)
			}
		}
		return nil
	}

	ch, fn, dir, ok := m.Channel()
	if !ok {
		return errors.Wrapf(ErrUnknownCommand, "0x%02x", m.Command)
	}

	switch fn {
	case servoset.FunctionPosition:
		b.working[ch].Position[dir] = m.Value
		err := b.actuator.SetPosition(ch, m.Value)
		if err != nil {
			return errors.Wrapf(err, "error moving channel %d", ch)
		}
	case servoset.FunctionSpeed:
		b.working[ch].Speed[dir] = m.Value
	}
	return nil
}
