package board

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calvinmclean/servoset"
)

type move struct {
	channel int
	value   uint8
}

type fakeActuator struct {
	moves []move
	err   error
}

func (f *fakeActuator) SetPosition(channel int, value uint8) error {
	f.moves = append(f.moves, move{channel, value})
	return f.err
}

func message(t *testing.T, f servoset.Frame) servoset.Message {
	t.Helper()
	m, err := servoset.Decode(f.Bytes())
	require.NoError(t, err)
	return m
}

func TestApplyPositionMovesServo(t *testing.T) {
	act := &fakeActuator{}
	b := New(act, Defaults())

	cmd := servoset.CommandFor(1, servoset.FunctionPosition, servoset.DirectionReversed)
	require.NoError(t, b.Apply(message(t, servoset.Encode(cmd, 200))))

	assert.Equal(t, []move{{1, 200}}, act.moves)
	assert.Equal(t, uint8(200), b.Working()[1].Position[servoset.DirectionReversed])
	assert.Equal(t, uint8(DefaultPosition), b.Saved()[1].Position[servoset.DirectionReversed], "not saved until set")
}

func TestApplySpeedIsStored(t *testing.T) {
	act := &fakeActuator{}
	b := New(act, Defaults())

	cmd := servoset.CommandFor(3, servoset.FunctionSpeed, servoset.DirectionNormal)
	require.NoError(t, b.Apply(message(t, servoset.Encode(cmd, 4))))

	assert.Empty(t, act.moves)
	assert.Equal(t, uint8(4), b.Working()[3].Speed[servoset.DirectionNormal])
}

func TestApplyActivateSaves(t *testing.T) {
	b := New(&fakeActuator{}, Defaults())
	var saved [servoset.Channels]Settings
	b.OnSave = func(s [servoset.Channels]Settings) { saved = s }

	cmd := servoset.CommandFor(0, servoset.FunctionPosition, servoset.DirectionNormal)
	require.NoError(t, b.Apply(message(t, servoset.Encode(cmd, 90))))
	require.NoError(t, b.Apply(message(t, servoset.Activate())))

	assert.Equal(t, uint8(90), b.Saved()[0].Position[servoset.DirectionNormal])
	assert.Equal(t, b.Saved(), saved)
}

func TestApplyReset(t *testing.T) {
	act := &fakeActuator{}
	saved := Defaults()
	saved[2].Position[servoset.DirectionNormal] = 10
	b := New(act, saved)

	require.NoError(t, b.Apply(message(t, servoset.ResetAll())))
	assert.Equal(t, Defaults(), b.Working())
	assert.Equal(t, saved, b.Saved(), "reset does not save")
	assert.Equal(t, []move{{0, 128}, {1, 128}, {2, 128}, {3, 128}}, act.moves)
}

func TestApplyErrors(t *testing.T) {
	b := New(&fakeActuator{}, Defaults())
	err := b.Apply(servoset.Message{Command: 0x7A})
	assert.ErrorIs(t, err, ErrUnknownCommand)

	act := &fakeActuator{err: errors.New("pwm")}
	b = New(act, Defaults())
	assert.Error(t, b.Apply(message(t, servoset.Encode(0x41, 1))))
}

func TestReadFrameResync(t *testing.T) {
	stream := []byte{'x', 'y'}
	stream = append(stream, 0x00, 0x41, '1') // interrupted frame
	stream = append(stream, servoset.Encode(0x42, 12).Bytes()...)
	stream = append(stream, servoset.Activate().Bytes()...)
	r := bytes.NewReader(stream)

	f, err := ReadFrame(r)
	require.NoError(t, err)
	assert.Equal(t, servoset.Encode(0x42, 12), f)

	f, err = ReadFrame(r)
	require.NoError(t, err)
	assert.Equal(t, servoset.Activate(), f)

	_, err = ReadFrame(r)
	assert.ErrorIs(t, err, io.EOF)
}

func TestRun(t *testing.T) {
	act := &fakeActuator{}
	b := New(act, Defaults())

	var stream []byte
	stream = append(stream, servoset.Encode(0x45, 77).Bytes()...)
	stream = append(stream, 0x00, 0x41, '9', '9', '9') // out of range
	stream = append(stream, servoset.Activate().Bytes()...)

	var logs []string
	err := Run(bytes.NewReader(stream), b, func(format string, args ...any) {
		logs = append(logs, fmt.Sprintf(format, args...))
	})
	assert.ErrorIs(t, err, io.EOF)

	assert.Equal(t, []move{{1, 77}}, act.moves)
	assert.Equal(t, uint8(77), b.Saved()[1].Position[servoset.DirectionNormal])
	require.Len(t, logs, 3)
	assert.Equal(t, `00 45 "077" ch1 position normal`, logs[0])
	assert.Contains(t, logs[1], "error:")
	assert.Equal(t, `00 40 "000" set`, logs[2])
}
