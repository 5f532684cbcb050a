package main_test

import (
	"bufio"
	"os"
	"strings"
	"testing"
	"time"

	"go.bug.st/serial"

	"github.com/calvinmclean/servoset"
	"github.com/calvinmclean/servoset/servolink"
)

// These tests need a flashed board: SERVOSET_TEST_PORT is the adapter wired to the board's frame
// UART and SERVOSET_TEST_CONSOLE is the board's USB console where it echoes applied frames.
func ports(t *testing.T) (string, string) {
	t.Helper()
	port, console := os.Getenv("SERVOSET_TEST_PORT"), os.Getenv("SERVOSET_TEST_CONSOLE")
	if port == "" || console == "" {
		t.Skip("SERVOSET_TEST_PORT and SERVOSET_TEST_CONSOLE are required")
	}
	return port, console
}

func readLines(t *testing.T, port serial.Port, n int) []string {
	t.Helper()
	err := port.SetReadTimeout(1 * time.Second)
	if err != nil {
		t.Fatalf("unexpected error setting read timeout: %v", err)
	}

	var lines []string
	scanner := bufio.NewScanner(port)
	deadline := time.Now().Add(2 * time.Second)
	for len(lines) < n && time.Now().Before(deadline) && scanner.Scan() {
		line := strings.TrimSpace(strings.Trim(scanner.Text(), "\x00"))
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func TestSerial(t *testing.T) {
	portName, consoleName := ports(t)

	console, err := serial.Open(consoleName, &serial.Mode{BaudRate: 115200})
	if err != nil {
		t.Fatalf("unexpected error opening console: %v", err)
	}
	defer console.Close()

	link, err := servolink.Open(servolink.Config{Port: portName}, nil)
	if err != nil {
		t.Fatalf("unexpected error opening serial connection: %v", err)
	}
	defer link.Close()

	tests := []struct {
		name     string
		frames   []servoset.Frame
		expected []string
	}{
		{
			"PositionThenSet",
			[]servoset.Frame{
				servoset.Encode(servoset.CommandFor(0, servoset.FunctionPosition, servoset.DirectionNormal), 100),
				servoset.Activate(),
			},
			[]string{
				`00 41 "100" ch0 position normal`,
				`00 40 "000" set`,
			},
		},
		{
			"Reset",
			[]servoset.Frame{servoset.ResetAll()},
			[]string{`00 23 "000" reset`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, f := range tt.frames {
				if err := link.Send(f); err != nil {
					t.Fatalf("unexpected error writing serial: %v", err)
				}
			}

			got := readLines(t, console, len(tt.expected))
			if strings.Join(got, "\n") != strings.Join(tt.expected, "\n") {
				t.Errorf("expected=%q, got=%q", tt.expected, got)
			}
		})
	}
}
