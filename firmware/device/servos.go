//go:build tinygo

package device

import (
	"errors"

	"tinygo.org/x/drivers/servo"

	"github.com/calvinmclean/servoset"
	"github.com/calvinmclean/servoset/firmware/board"
)

// Servos drives the board's four servo connectors
type Servos struct {
	servos [servoset.Channels]servo.Servo
	pulse  PulseConfig
}

var _ board.Actuator = &Servos{}

// New configures a servo on each connector. Connectors with an empty config are left unused.
func New(cfgs [servoset.Channels]ServoConfig, pulse PulseConfig) (*Servos, error) {
	s := &Servos{pulse: pulse}
	for i, cfg := range cfgs {
		if cfg == (ServoConfig{}) {
			continue
		}
		myServo, err := servo.New(cfg.PWM, cfg.Pin)
		if err != nil {
			return nil, errors.New("error creating servo: " + err.Error())
		}
		s.servos[i] = myServo
	}
	return s, nil
}

// SetPosition moves a connector's servo, scaling value across the configured pulse range
func (s *Servos) SetPosition(channel int, value uint8) error {
	if channel < 0 || channel >= len(s.servos) {
		return errors.New("invalid channel")
	}
	span := int32(s.pulse.MaxMicroseconds - s.pulse.MinMicroseconds)
	us := s.pulse.MinMicroseconds + int16(span*int32(value)/255)
	s.servos[channel].SetMicroseconds(us)
	return nil
}
