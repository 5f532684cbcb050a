package ui

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/calvinmclean/servoset"
	"github.com/calvinmclean/servoset/controller"
	"github.com/calvinmclean/servoset/lever"
	"github.com/calvinmclean/servoset/servolink"
)

const maxTraceLines = 200

// FrameUI draws the lever frame and turns button presses into controller events. Render and Trace
// may be called from any goroutine.
type FrameUI struct {
	app    fyne.App
	window fyne.Window

	strip   *fyne.Container
	handles []*canvas.Rectangle

	title       *widget.Label
	location    *widget.Label
	description *widget.Label
	values      map[lever.Mode]*widget.Label
	status      *widget.Label

	traceMtx   sync.Mutex
	traceLines []string
	trace      *widget.Label
	traceView  *container.Scroll
}

var (
	_ controller.Renderer = &FrameUI{}
	_ servolink.Tracer    = &FrameUI{}
)

func New(app fyne.App) *FrameUI {
	ui := &FrameUI{
		app:         app,
		strip:       container.NewHBox(),
		title:       widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		location:    widget.NewLabel(""),
		description: widget.NewLabel(""),
		values:      map[lever.Mode]*widget.Label{},
		status:      widget.NewLabel(""),
		trace:       widget.NewLabel(""),
	}
	for _, m := range lever.EditableModes {
		ui.values[m] = widget.NewLabel("")
	}
	ui.traceView = container.NewVScroll(ui.trace)
	ui.traceView.SetMinSize(fyne.NewSize(300, 100))
	return ui
}

// Render implements controller.Renderer.
func (ui *FrameUI) Render(v controller.View) {
	fyne.Do(func() {
		ui.render(v)
	})
}

func (ui *FrameUI) render(v controller.View) {
	if len(v.Levers) == 0 {
		return
	}
	if len(ui.handles) != len(v.Levers) {
		ui.buildStrip(v.Levers)
	}

	for i, l := range v.Levers {
		ui.handles[i].FillColor = kindColor(l.Kind)
		ui.handles[i].StrokeWidth = 0
		if i == v.Selected {
			ui.handles[i].StrokeColor = colorSelect
			ui.handles[i].StrokeWidth = 3
		}
		ui.handles[i].Refresh()
	}

	l := v.Levers[v.Selected]
	ui.title.SetText(fmt.Sprintf("Lever %s (%s)", l.Index, l.Kind))
	ui.location.SetText(fmt.Sprintf("Board %d, Connector %d", l.Board, l.Connector))
	ui.description.SetText(l.Description)

	for _, m := range lever.EditableModes {
		text := fmt.Sprintf("%s: %d", modeLabel(m), l.Values.Get(m))
		if m == l.Mode {
			text = "▶ " + text
			if l.Dirty {
				text += " (not set)"
			}
		}
		ui.values[m].SetText(text)
	}

	status := "Editing: " + modeLabel(l.Mode)
	if v.Connected {
		status += " | " + v.Port
	} else {
		status += " | dry-run, no servo board"
	}
	ui.status.SetText(status)
}

func (ui *FrameUI) buildStrip(levers []lever.Status) {
	ui.handles = make([]*canvas.Rectangle, len(levers))

	objects := make([]fyne.CanvasObject, 0, len(levers))
	for i, l := range levers {
		handle := canvas.NewRectangle(kindColor(l.Kind))
		handle.SetMinSize(fyne.NewSize(24, 80))

		plate := canvas.NewText(l.Index, colorSpare)
		plate.Alignment = fyne.TextAlignCenter

		ui.handles[i] = handle
		objects = append(objects, container.NewVBox(handle, plate))
	}

	ui.strip.Objects = objects
	ui.strip.Refresh()
}

// Trace implements servolink.Tracer by appending the frame to the trace log
func (ui *FrameUI) Trace(f servoset.Frame) {
	ui.traceMtx.Lock()
	ui.traceLines = append(ui.traceLines, f.String())
	if len(ui.traceLines) > maxTraceLines {
		ui.traceLines = ui.traceLines[len(ui.traceLines)-maxTraceLines:]
	}
	text := strings.Join(ui.traceLines, "\n")
	ui.traceMtx.Unlock()

	fyne.Do(func() {
		ui.trace.SetText(text)
		ui.traceView.ScrollToBottom()
	})
}

// Show opens the frame window. Presses are sent to events until ctx is done. Closing the window
// sends EventQuit so the frame is still saved.
func (ui *FrameUI) Show(ctx context.Context, events chan<- controller.Event) {
	c := &controllerWrapper{ctx: ctx, events: events}

	ui.window = ui.app.NewWindow("Servo Set")
	ui.window.SetCloseIntercept(c.sender(controller.EventQuit))

	white := widget.NewButtonWithIcon("White", theme.ContentAddIcon(), c.sender(controller.EventIncrement))
	yellow := widget.NewButtonWithIcon("Yellow", theme.ContentRemoveIcon(), c.sender(controller.EventDecrement))
	yellow.Importance = widget.WarningImportance
	green := widget.NewButtonWithIcon("Green", theme.ConfirmIcon(), c.sender(controller.EventAdvance))
	green.Importance = widget.SuccessImportance
	red := widget.NewButtonWithIcon("Save & Quit", theme.CancelIcon(), c.sender(controller.EventQuit))
	red.Importance = widget.DangerImportance

	prev := widget.NewButtonWithIcon("", theme.NavigateBackIcon(), c.sender(controller.EventSelectPrev))
	next := widget.NewButtonWithIcon("", theme.NavigateNextIcon(), c.sender(controller.EventSelectNext))

	ui.window.Canvas().SetOnTypedKey(func(k *fyne.KeyEvent) {
		switch k.Name {
		case fyne.KeyUp, fyne.KeyW:
			c.Send(controller.EventIncrement)
		case fyne.KeyDown, fyne.KeyY:
			c.Send(controller.EventDecrement)
		case fyne.KeyRight, fyne.KeyG:
			c.Send(controller.EventAdvance)
		case fyne.KeyN:
			c.Send(controller.EventSelectNext)
		case fyne.KeyP:
			c.Send(controller.EventSelectPrev)
		case fyne.KeyQ, fyne.KeyEscape:
			c.Send(controller.EventQuit)
		}
	})

	panel := canvas.NewRectangle(colorPanel)
	details := container.NewVBox(ui.title, ui.location, ui.description)
	for _, m := range lever.EditableModes {
		details.Add(ui.values[m])
	}

	content := container.NewVBox(
		container.NewStack(panel, container.NewPadded(container.NewHBox(prev, ui.strip, layout.NewSpacer(), next))),
		widget.NewCard("", "", details),
		container.NewGridWithColumns(4, white, yellow, green, red),
		ui.status,
		widget.NewAccordion(widget.NewAccordionItem("Trace", ui.traceView)),
	)

	ui.window.SetContent(content)
	ui.window.Resize(fyne.NewSize(640, 480))
	ui.window.Show()
}
