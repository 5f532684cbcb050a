package servolink

import (
	"io"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"go.bug.st/serial"

	"github.com/calvinmclean/servoset"
)

const (
	// SerialPortNone selects dry-run mode without touching any device
	SerialPortNone = "none"

	DefaultBaudRate     = 9600
	DefaultWriteTimeout = 250 * time.Millisecond
)

var ErrWriteTimeout = errors.New("serial write timed out")

// Config describes how to reach the servo board
type Config struct {
	Port         string
	BaudRate     int
	WriteTimeout time.Duration
}

// Link forwards frames to the servo board. A Link without a port is a no-op sink: it still traces
// every frame but performs no I/O.
type Link struct {
	port    io.WriteCloser
	name    string
	tracer  Tracer
	timeout time.Duration
}

// Open opens the serial port described by cfg. It always returns a usable Link: when the port
// cannot be opened the error is returned alongside a no-op Link.
func Open(cfg Config, tracer Tracer) (*Link, error) {
	if cfg.Port == "" || cfg.Port == SerialPortNone {
		return New(nil, "", tracer, cfg.WriteTimeout), nil
	}

	baud := cfg.BaudRate
	if baud == 0 {
		baud = DefaultBaudRate
	}
	mode := &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}

	port, err := serial.Open(cfg.Port, mode)
	if err != nil {
		return New(nil, "", tracer, cfg.WriteTimeout), errors.Wrapf(err, "error opening serial port %s", cfg.Port)
	}

	return New(port, cfg.Port, tracer, cfg.WriteTimeout), nil
}

// New creates a Link writing to w. A nil w creates a no-op sink.
func New(w io.WriteCloser, name string, tracer Tracer, timeout time.Duration) *Link {
	if tracer == nil {
		tracer = TraceFunc(func(servoset.Frame) {})
	}
	if timeout <= 0 {
		timeout = DefaultWriteTimeout
	}
	return &Link{
		port:    w,
		name:    name,
		tracer:  tracer,
		timeout: timeout,
	}
}

// Connected is false when the Link is a no-op sink
func (l *Link) Connected() bool {
	return l.port != nil
}

// Name is the serial port the Link writes to
func (l *Link) Name() string {
	return l.name
}

// Send traces the frame and writes it to the port. A write that does not complete within the
// timeout closes the port and degrades the Link to a no-op sink.
func (l *Link) Send(f servoset.Frame) error {
	l.tracer.Trace(f)
	if l.port == nil {
		return nil
	}

	done := make(chan error, 1)
	go func(port io.Writer) {
		_, err := port.Write(f.Bytes())
		done <- err
	}(l.port)

	timer := time.NewTimer(l.timeout)
	defer timer.Stop()

	select {
	case err := <-done:
		if err != nil {
			return errors.Wrapf(err, "error writing to %s", l.name)
		}
		return nil
	case <-timer.C:
		logrus.WithFields(logrus.Fields{
			"port":    l.name,
			"timeout": l.timeout,
		}).Warn("serial write timed out, continuing without device")
		l.degrade()
		return errors.Wrap(ErrWriteTimeout, l.name)
	}
}

// Close closes the underlying port, if any
func (l *Link) Close() error {
	if l.port == nil {
		return nil
	}
	err := l.port.Close()
	l.port = nil
	return err
}

func (l *Link) degrade() {
	// closing unblocks the pending write
	err := l.port.Close()
	if err != nil {
		logrus.WithField("port", l.name).WithError(err).Debug("error closing port")
	}
	l.port = nil
}
