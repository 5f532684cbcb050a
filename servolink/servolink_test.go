package servolink

import (
	"bytes"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calvinmclean/servoset"
)

type bufferPort struct {
	mu     sync.Mutex
	buf    bytes.Buffer
	closed bool
	err    error
}

func (b *bufferPort) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.err != nil {
		return 0, b.err
	}
	return b.buf.Write(p)
}

func (b *bufferPort) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	return nil
}

// blockingPort never completes a write until closed
type blockingPort struct {
	closed chan struct{}
	once   sync.Once
}

func (b *blockingPort) Write(p []byte) (int, error) {
	<-b.closed
	return 0, errors.New("port closed")
}

func (b *blockingPort) Close() error {
	b.once.Do(func() { close(b.closed) })
	return nil
}

type frameRecorder struct {
	frames []servoset.Frame
}

func (r *frameRecorder) Trace(f servoset.Frame) {
	r.frames = append(r.frames, f)
}

func TestSendWritesRawFrame(t *testing.T) {
	port := &bufferPort{}
	rec := &frameRecorder{}
	l := New(port, "test", rec, time.Second)
	require.True(t, l.Connected())

	require.NoError(t, l.Send(servoset.Encode(0x42, 37)))
	require.NoError(t, l.Send(servoset.Activate()))

	assert.Equal(t, []byte{0x00, 0x42, '0', '3', '7', 0x00, 0x40, '0', '0', '0'}, port.buf.Bytes())
	assert.Equal(t, []servoset.Frame{servoset.Encode(0x42, 37), servoset.Activate()}, rec.frames)

	require.NoError(t, l.Close())
	assert.True(t, port.closed)
	assert.False(t, l.Connected())
}

func TestSendWriteError(t *testing.T) {
	port := &bufferPort{err: errors.New("boom")}
	l := New(port, "test", nil, time.Second)

	err := l.Send(servoset.ResetAll())
	assert.Error(t, err)
	assert.True(t, l.Connected(), "write errors do not degrade the link")
}

func TestSendTimeoutDegrades(t *testing.T) {
	port := &blockingPort{closed: make(chan struct{})}
	rec := &frameRecorder{}
	l := New(port, "stuck", rec, 20*time.Millisecond)

	err := l.Send(servoset.Activate())
	assert.ErrorIs(t, err, ErrWriteTimeout)
	assert.False(t, l.Connected())

	// further sends are traced but do no I/O
	require.NoError(t, l.Send(servoset.ResetAll()))
	assert.Len(t, rec.frames, 2)
}

func TestOpenDryRun(t *testing.T) {
	for _, port := range []string{"", SerialPortNone} {
		rec := &frameRecorder{}
		l, err := Open(Config{Port: port}, rec)
		require.NoError(t, err)
		assert.False(t, l.Connected())

		require.NoError(t, l.Send(servoset.Activate()))
		assert.Len(t, rec.frames, 1)
		require.NoError(t, l.Close())
	}
}

func TestOpenFailureDegrades(t *testing.T) {
	rec := &frameRecorder{}
	l, err := Open(Config{Port: "/dev/servoset-does-not-exist"}, rec)
	require.Error(t, err)
	require.NotNil(t, l)
	assert.False(t, l.Connected())

	assert.NoError(t, l.Send(servoset.Encode(0x41, 1)))
	assert.Len(t, rec.frames, 1)
}

func TestTracers(t *testing.T) {
	a, b := &frameRecorder{}, &frameRecorder{}
	var count int
	tr := Tracers(a, nil, b, TraceFunc(func(servoset.Frame) { count++ }), LogTracer{})

	tr.Trace(servoset.Activate())
	assert.Len(t, a.frames, 1)
	assert.Len(t, b.frames, 1)
	assert.Equal(t, 1, count)
}
