package controller

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/calvinmclean/servoset"
	"github.com/calvinmclean/servoset/frame"
	"github.com/calvinmclean/servoset/lever"
	"github.com/calvinmclean/servoset/servolink"
)

// Link is the connection to the servo board
type Link interface {
	lever.Sender
	Connected() bool
	Name() string
	Close() error
}

// Store persists the lever configurations
type Store interface {
	Load() ([]lever.Config, error)
	Save([]lever.Config) error
}

// Controller runs a calibration session. It routes events to the selected lever, keeps the front end
// up to date and saves the frame exactly once when the session ends. It is not safe for concurrent use:
// all events are processed by the goroutine calling Run.
type Controller struct {
	set      *lever.Set
	link     Link
	store    Store
	renderer Renderer

	saveOnce sync.Once
	saveErr  error
}

// New creates a Controller for an already loaded set of levers
func New(set *lever.Set, link Link, store Store, renderer Renderer) *Controller {
	if renderer == nil {
		renderer = noopRenderer{}
	}
	return &Controller{
		set:      set,
		link:     link,
		store:    store,
		renderer: renderer,
	}
}

// NewFromConfig loads the frame file and opens the servo link. A link that cannot be opened is
// reported and replaced by a no-op sink; only a missing or empty frame is an error.
func NewFromConfig(cfg Config, renderer Renderer, tracer servolink.Tracer) (*Controller, error) {
	if cfg.FrameFile == "" {
		return nil, errors.New("frame file is required")
	}

	store := frame.NewStore(cfg.FrameFile)
	configs, err := store.Load()
	if err != nil {
		return nil, err
	}

	link, err := servolink.Open(cfg.Link(), tracer)
	if err != nil {
		logrus.WithError(err).Warn("continuing without servo board")
	}

	levers := make([]*lever.Lever, 0, len(configs))
	for _, c := range configs {
		levers = append(levers, lever.New(c, link))
	}

	set, err := lever.NewSet(levers)
	if err != nil {
		link.Close()
		return nil, err
	}

	return New(set, link, store, renderer), nil
}

// Set returns the levers being calibrated
func (c *Controller) Set() *lever.Set {
	return c.set
}

// View returns a snapshot of the current state
func (c *Controller) View() View {
	statuses := make([]lever.Status, 0, c.set.Len())
	for _, l := range c.set.Levers() {
		statuses = append(statuses, l.Status())
	}
	return View{
		Selected:  c.set.SelectedIndex(),
		Levers:    statuses,
		Connected: c.link.Connected(),
		Port:      c.link.Name(),
	}
}

// Handle processes a single event and reports whether it ends the session
func (c *Controller) Handle(ev Event) bool {
	current := c.set.Selected()

	switch ev {
	case EventIncrement:
		if !current.Increment() {
			c.set.SelectPrev()
		}
	case EventDecrement:
		if !current.Decrement() {
			c.set.SelectNext()
		}
	case EventAdvance:
		current.Advance()
	case EventSelectNext:
		c.set.SelectNext()
	case EventSelectPrev:
		c.set.SelectPrev()
	case EventQuit:
		return true
	default:
		return false
	}

	logrus.WithFields(logrus.Fields{
		"event":    ev.String(),
		"selected": c.set.SelectedIndex(),
		"mode":     c.set.Selected().Mode().String(),
	}).Trace("handled event")

	c.renderer.Render(c.View())
	return false
}

// Run processes events until Quit is received, the channel is closed or ctx is cancelled, and then
// saves the frame.
func (c *Controller) Run(ctx context.Context, events <-chan Event) error {
	c.renderer.Render(c.View())

loop:
	for {
		select {
		case <-ctx.Done():
			logrus.Info("stopping calibration")
			break loop
		case ev, ok := <-events:
			if !ok || c.Handle(ev) {
				break loop
			}
		}
	}

	return c.Save()
}

// Save writes the frame file. Only the first call writes; later calls return the first result.
func (c *Controller) Save() error {
	c.saveOnce.Do(func() {
		c.saveErr = c.store.Save(c.set.Configs())
	})
	return c.saveErr
}

// Reset sends the reset command for every channel on the board
func (c *Controller) Reset() error {
	return c.link.Send(servoset.ResetAll())
}

// Close releases the servo link
func (c *Controller) Close() error {
	return c.link.Close()
}
