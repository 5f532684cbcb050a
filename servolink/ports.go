package servolink

import (
	"github.com/pkg/errors"
	"go.bug.st/serial"
	"go.bug.st/serial/enumerator"
)

var ErrNoUSBSerial = errors.New("no serial ports found")

// GetSerialPorts lists the names of the serial ports on this machine
func GetSerialPorts() ([]string, error) {
	ports, err := serial.GetPortsList()
	if err != nil {
		return nil, errors.Wrap(err, "error listing serial ports")
	}
	if len(ports) == 0 {
		return nil, ErrNoUSBSerial
	}
	return ports, nil
}

// PortDetails describes a serial port, including USB identifiers when available
type PortDetails struct {
	Name         string
	IsUSB        bool
	VID          string
	PID          string
	SerialNumber string
	Product      string
}

// GetPortDetails lists serial ports with their USB details
func GetPortDetails() ([]PortDetails, error) {
	ports, err := enumerator.GetDetailedPortsList()
	if err != nil {
		return nil, errors.Wrap(err, "error listing serial ports")
	}
	if len(ports) == 0 {
		return nil, ErrNoUSBSerial
	}

	details := make([]PortDetails, 0, len(ports))
	for _, p := range ports {
		details = append(details, PortDetails{
			Name:         p.Name,
			IsUSB:        p.IsUSB,
			VID:          p.VID,
			PID:          p.PID,
			SerialNumber: p.SerialNumber,
			Product:      p.Product,
		})
	}
	return details, nil
}
