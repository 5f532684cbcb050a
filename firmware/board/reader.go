package board

import (
	"io"

	"github.com/calvinmclean/servoset"
)

// ReadFrame reads bytes until a complete frame has been received. Bytes before the sentinel are
// dropped, and a sentinel inside a frame restarts it, so the reader resynchronises after noise.
func ReadFrame(r io.ByteReader) (servoset.Frame, error) {
	var f servoset.Frame
	n := 0
	for n < servoset.FrameSize {
		b, err := r.ReadByte()
		if err != nil {
			return servoset.Frame{}, err
		}

		switch {
		case b == servoset.Sentinel:
			f[0] = b
			n = 1
		case n == 0:
			// waiting for sentinel
		default:
			f[n] = b
			n++
		}
	}
	return f, nil
}

// Run reads frames from r and applies them to b until r fails. Invalid frames are reported through
// logf and skipped.
func Run(r io.ByteReader, b *Board, logf func(string, ...any)) error {
	for {
		f, err := ReadFrame(r)
		if err != nil {
			return err
		}

		m, err := servoset.Decode(f.Bytes())
		if err != nil {
			logf("error: %v", err)
			continue
		}

		err = b.Apply(m)
		if err != nil {
			logf("error: %v", err)
			continue
		}
		logf("%s", f)
	}
}
