package controller

import (
	"time"

	"github.com/calvinmclean/servoset/servolink"
)

// Config has everything needed to start a calibration session
type Config struct {
	SerialPort   string        `mapstructure:"serial-port"`
	BaudRate     int           `mapstructure:"baud-rate"`
	WriteTimeout time.Duration `mapstructure:"write-timeout"`
	FrameFile    string        `mapstructure:"frame-file"`
}

// Link returns the servolink configuration
func (c Config) Link() servolink.Config {
	return servolink.Config{
		Port:         c.SerialPort,
		BaudRate:     c.BaudRate,
		WriteTimeout: c.WriteTimeout,
	}
}
