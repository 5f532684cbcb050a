package ui

import (
	"context"

	"github.com/calvinmclean/servoset/controller"
)

// controllerWrapper forwards button presses to the controller's event loop
type controllerWrapper struct {
	ctx    context.Context
	events chan<- controller.Event
}

func (c *controllerWrapper) Send(ev controller.Event) {
	select {
	case c.events <- ev:
	case <-c.ctx.Done():
	}
}

func (c *controllerWrapper) sender(ev controller.Event) func() {
	return func() { c.Send(ev) }
}
