package controller

import "github.com/calvinmclean/servoset/lever"

// View is what a front end needs to draw the frame
type View struct {
	Selected  int
	Levers    []lever.Status
	Connected bool
	Port      string
}

// Renderer draws a View after each processed event
type Renderer interface {
	Render(View)
}

type noopRenderer struct{}

var _ Renderer = noopRenderer{}

// Render implements Renderer.
func (noopRenderer) Render(View) {}
