package servolink

import (
	"github.com/sirupsen/logrus"

	"github.com/calvinmclean/servoset"
)

// Tracer receives a copy of every frame sent, for diagnostics
type Tracer interface {
	Trace(servoset.Frame)
}

// TraceFunc adapts a function to a Tracer
type TraceFunc func(servoset.Frame)

func (f TraceFunc) Trace(frame servoset.Frame) {
	f(frame)
}

// LogTracer logs frames at debug level
type LogTracer struct{}

var _ Tracer = LogTracer{}

func (LogTracer) Trace(f servoset.Frame) {
	logrus.WithField("frame", f.String()).Debug("send")
}

type multiTracer []Tracer

func (m multiTracer) Trace(f servoset.Frame) {
	for _, t := range m {
		t.Trace(f)
	}
}

// Tracers fans frames out to every non-nil tracer
func Tracers(tracers ...Tracer) Tracer {
	var m multiTracer
	for _, t := range tracers {
		if t != nil {
			m = append(m, t)
		}
	}
	return m
}
