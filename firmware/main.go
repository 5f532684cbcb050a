//go:build tinygo

package main

import (
	"fmt"
	"machine"

	"github.com/calvinmclean/servoset"
	"github.com/calvinmclean/servoset/firmware/board"
	"github.com/calvinmclean/servoset/firmware/device"
)

type serialReader struct {
	uart *machine.UART
}

// ReadByte blocks until a byte is available
func (s serialReader) ReadByte() (byte, error) {
	for {
		b, err := s.uart.ReadByte()
		if err == nil {
			return b, nil
		}
	}
}

func main() {
	uart := machine.UART1
	err := uart.Configure(machine.UARTConfig{
		BaudRate: 9600,
		TX:       machine.UART1_TX_PIN,
		RX:       machine.UART1_RX_PIN,
	})
	if err != nil {
		panic(err)
	}

	servos, err := device.New([servoset.Channels]device.ServoConfig{
		{PWM: machine.PWM0, Pin: machine.GP0},
		{PWM: machine.PWM0, Pin: machine.GP1},
		{PWM: machine.PWM1, Pin: machine.GP2},
		{PWM: machine.PWM1, Pin: machine.GP3},
	}, device.PulseConfig{
		MinMicroseconds: 1000,
		MaxMicroseconds: 2000,
	})
	if err != nil {
		panic(err)
	}

	b := board.New(servos, board.Defaults())
	for ch, s := range b.Saved() {
		_ = servos.SetPosition(ch, s.Position[servoset.DirectionNormal])
	}

	err = board.Run(serialReader{uart}, b, func(format string, args ...any) {
		// machine.Serial is the USB console, separate from the frame UART
		println(fmt.Sprintf(format, args...))
	})
	panic(err)
}
