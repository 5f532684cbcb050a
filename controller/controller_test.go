package controller

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calvinmclean/servoset"
	"github.com/calvinmclean/servoset/frame"
	"github.com/calvinmclean/servoset/lever"
)

type fakeLink struct {
	frames []servoset.Frame
	closed bool
}

func (f *fakeLink) Send(fr servoset.Frame) error {
	f.frames = append(f.frames, fr)
	return nil
}
func (f *fakeLink) Connected() bool { return true }
func (f *fakeLink) Name() string    { return "fake" }
func (f *fakeLink) Close() error    { f.closed = true; return nil }

type fakeStore struct {
	saves [][]lever.Config
}

func (f *fakeStore) Load() ([]lever.Config, error) { return nil, nil }
func (f *fakeStore) Save(c []lever.Config) error {
	f.saves = append(f.saves, c)
	return nil
}

type recordingRenderer struct {
	views []View
}

func (r *recordingRenderer) Render(v View) {
	r.views = append(r.views, v)
}

func newTestController(t *testing.T, n int) (*Controller, *fakeLink, *fakeStore, *recordingRenderer) {
	t.Helper()
	link := &fakeLink{}
	levers := make([]*lever.Lever, n)
	for i := range levers {
		levers[i] = lever.New(lever.Config{
			Index:     string(rune('1' + i)),
			Connector: i,
			Values:    lever.Values{Normal: 100, Reversed: 150, Return: 2, Pull: 3},
		}, link)
	}
	set, err := lever.NewSet(levers)
	require.NoError(t, err)

	store := &fakeStore{}
	renderer := &recordingRenderer{}
	return New(set, link, store, renderer), link, store, renderer
}

func TestHandleRouting(t *testing.T) {
	c, link, _, renderer := newTestController(t, 3)

	// idle lever: decrement moves to the next lever, increment to the previous one
	c.Handle(EventDecrement)
	assert.Equal(t, 1, c.Set().SelectedIndex())
	c.Handle(EventDecrement)
	c.Handle(EventDecrement)
	assert.Equal(t, 2, c.Set().SelectedIndex())
	c.Handle(EventIncrement)
	assert.Equal(t, 1, c.Set().SelectedIndex())
	assert.Empty(t, link.frames)

	// editing lever 1: increment and decrement adjust the value instead
	c.Handle(EventAdvance)
	c.Handle(EventIncrement)
	c.Handle(EventIncrement)
	c.Handle(EventDecrement)
	assert.Equal(t, 1, c.Set().SelectedIndex())
	assert.Equal(t, uint8(101), c.Set().Selected().Value(lever.ModeNormal))
	assert.Len(t, link.frames, 3)

	// explicit selection works in any mode
	c.Handle(EventSelectNext)
	assert.Equal(t, 2, c.Set().SelectedIndex())
	c.Handle(EventSelectPrev)
	c.Handle(EventSelectPrev)
	c.Handle(EventSelectPrev)
	assert.Equal(t, 0, c.Set().SelectedIndex())

	last := renderer.views[len(renderer.views)-1]
	assert.Equal(t, 0, last.Selected)
	require.Len(t, last.Levers, 3)
	assert.Equal(t, lever.ModeNormal, last.Levers[1].Mode)
	assert.True(t, last.Levers[1].Dirty)
	assert.True(t, last.Connected)
}

func TestHandleQuit(t *testing.T) {
	c, _, store, renderer := newTestController(t, 1)
	assert.True(t, c.Handle(EventQuit))
	assert.False(t, c.Handle(EventNone))
	assert.Empty(t, renderer.views)
	assert.Empty(t, store.saves, "handle never saves")
}

func TestRunSavesOnceAfterQuit(t *testing.T) {
	c, link, store, renderer := newTestController(t, 2)

	events := make(chan Event, 10)
	for _, ev := range []Event{EventAdvance, EventIncrement, EventAdvance, EventQuit, EventIncrement} {
		events <- ev
	}

	require.NoError(t, c.Run(context.Background(), events))

	require.Len(t, store.saves, 1)
	assert.Equal(t, uint8(101), store.saves[0][0].Values.Normal)
	assert.Equal(t, []servoset.Frame{
		servoset.Encode(0x41, 101),
		servoset.Activate(),
	}, link.frames)
	assert.Len(t, events, 1, "events after quit are not processed")
	assert.Len(t, renderer.views, 4, "initial render plus one per handled event")

	require.NoError(t, c.Save())
	assert.Len(t, store.saves, 1, "save runs exactly once")
}

func TestRunStopsOnClosedChannel(t *testing.T) {
	c, _, store, _ := newTestController(t, 1)
	events := make(chan Event)
	close(events)

	require.NoError(t, c.Run(context.Background(), events))
	assert.Len(t, store.saves, 1)
}

func TestRunStopsOnCancel(t *testing.T) {
	c, _, store, _ := newTestController(t, 1)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	require.NoError(t, c.Run(ctx, make(chan Event)))
	assert.Len(t, store.saves, 1)
}

func TestReset(t *testing.T) {
	c, link, _, _ := newTestController(t, 1)
	require.NoError(t, c.Reset())
	assert.Equal(t, []servoset.Frame{servoset.ResetAll()}, link.frames)

	require.NoError(t, c.Close())
	assert.True(t, link.closed)
}

func TestNewFromConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "layout.frame")
	input := "# test\n1,0,0,S,10,20,1,2,Home\n2,0,1,P,30,40,3,4\n3,0,1,P,30,40,3,4,Points\n"
	require.NoError(t, os.WriteFile(path, []byte(input), 0o644))

	renderer := &recordingRenderer{}
	c, err := NewFromConfig(Config{FrameFile: path, SerialPort: "none"}, renderer, nil)
	require.NoError(t, err)
	defer c.Close()

	require.Equal(t, 2, c.Set().Len())
	assert.False(t, c.View().Connected)

	events := make(chan Event, 4)
	events <- EventDecrement
	events <- EventAdvance
	events <- EventIncrement
	events <- EventQuit
	require.NoError(t, c.Run(context.Background(), events))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Equal(t, []string{
		frame.Header,
		"1,0,0,S,10,20,1,2,Home",
		"3,0,1,P,31,40,3,4,Points",
	}, lines)
}

func TestNewFromConfigErrors(t *testing.T) {
	_, err := NewFromConfig(Config{}, nil, nil)
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "empty.frame")
	require.NoError(t, os.WriteFile(path, []byte("# nothing\n"), 0o644))
	_, err = NewFromConfig(Config{FrameFile: path}, nil, nil)
	assert.ErrorIs(t, err, frame.ErrEmptyConfiguration)
}
