//go:build tinygo

package device

import (
	"machine"

	"tinygo.org/x/drivers/servo"
)

// ServoConfig has device-level values for setting up one Servo
type ServoConfig struct {
	Pin machine.Pin
	PWM servo.PWM
}

// PulseConfig is the pulse width range mapped onto the 0-255 board value
type PulseConfig struct {
	MinMicroseconds int16
	MaxMicroseconds int16
}
