package lever

import (
	"github.com/sirupsen/logrus"

	"github.com/calvinmclean/servoset"
)

// Sender delivers frames to the servo board
type Sender interface {
	Send(servoset.Frame) error
}

// Values are the four calibrated settings of a lever
type Values struct {
	Normal   uint8
	Reversed uint8
	Return   uint8
	Pull     uint8
}

// Get returns the value stored for an editable mode. Idle has no value and returns 0.
func (v Values) Get(m Mode) uint8 {
	switch m {
	case ModeNormal:
		return v.Normal
	case ModeReversed:
		return v.Reversed
	case ModeReturn:
		return v.Return
	case ModePull:
		return v.Pull
	default:
		return 0
	}
}

func (v *Values) ref(m Mode) *uint8 {
	switch m {
	case ModeNormal:
		return &v.Normal
	case ModeReversed:
		return &v.Reversed
	case ModeReturn:
		return &v.Return
	case ModePull:
		return &v.Pull
	default:
		return nil
	}
}

// Config is the persisted description of a lever
type Config struct {
	// Index is the label shown on the lever plate
	Index       string
	Board       int
	Connector   int
	Kind        Kind
	Values      Values
	Description string
}

// Status is a read-only snapshot of a lever for rendering
type Status struct {
	Config
	Mode  Mode
	Dirty bool
}

// Lever is the calibration state machine for one point or signal
type Lever struct {
	cfg   Config
	mode  Mode
	dirty bool
	link  Sender
}

// New creates a Lever in Idle mode that sends its commands through link
func New(cfg Config, link Sender) *Lever {
	return &Lever{
		cfg:  cfg,
		mode: ModeIdle,
		link: link,
	}
}

// Channel is the board connector the lever's commands address
func (l *Lever) Channel() int {
	return l.cfg.Connector
}

func (l *Lever) Mode() Mode {
	return l.mode
}

func (l *Lever) Dirty() bool {
	return l.dirty
}

// Value returns the current value for an editable mode
func (l *Lever) Value(m Mode) uint8 {
	return l.cfg.Values.Get(m)
}

// Config returns the lever's configuration with its current values
func (l *Lever) Config() Config {
	return l.cfg
}

// Status returns a snapshot of the lever for rendering
func (l *Lever) Status() Status {
	return Status{Config: l.cfg, Mode: l.mode, Dirty: l.dirty}
}

// Increment raises the value of the current mode by one. It reports whether the event was consumed:
// false means the lever is Idle and the caller may use the event to move the selection instead.
func (l *Lever) Increment() bool {
	return l.adjust(+1)
}

// Decrement lowers the value of the current mode by one. See Increment for the return value.
func (l *Lever) Decrement() bool {
	return l.adjust(-1)
}

// Advance commits any pending change to the board and moves to the next mode
func (l *Lever) Advance() {
	if l.mode != ModeIdle && l.dirty {
		l.send(servoset.Activate())
		l.dirty = false
	}
	l.mode = l.mode.Next()
}

func (l *Lever) adjust(step int) bool {
	if !l.mode.Editable() {
		return false
	}

	v := l.cfg.Values.ref(l.mode)
	switch {
	case step > 0 && *v < 255:
		*v++
	case step < 0 && *v > 0:
		*v--
	default:
		// clamped, nothing to send
		return true
	}

	l.send(l.command())
	l.dirty = true
	return true
}

// command encodes the current mode's value for the lever's channel
func (l *Lever) command() servoset.Frame {
	cmd, _ := ModeCommand(l.cfg.Connector, l.mode)
	return servoset.Encode(cmd, l.cfg.Values.Get(l.mode))
}

func (l *Lever) send(f servoset.Frame) {
	if l.link == nil {
		return
	}
	err := l.link.Send(f)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"lever":   l.cfg.Index,
			"channel": l.cfg.Connector,
			"frame":   f.String(),
		}).WithError(err).Warn("failed to send frame")
	}
}
