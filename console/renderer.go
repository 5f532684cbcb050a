package console

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/calvinmclean/servoset/controller"
	"github.com/calvinmclean/servoset/lever"
)

var kindColors = map[lever.Kind]*color.Color{
	lever.KindSignal: color.New(color.FgRed, color.Bold),
	lever.KindPoint:  color.New(color.FgWhite, color.Bold),
	lever.KindFacing: color.New(color.FgBlue, color.Bold),
	lever.KindUnset:  color.New(color.Faint),
}

var (
	activeColor  = color.New(color.Underline, color.Bold)
	dirtyColor   = color.New(color.FgYellow)
	offlineColor = color.New(color.FgHiBlack)
)

// Renderer prints one status line for the selected lever after every event
type Renderer struct {
	w io.Writer
}

var _ controller.Renderer = &Renderer{}

func NewRenderer(w io.Writer) *Renderer {
	return &Renderer{w: w}
}

// Render implements controller.Renderer.
func (r *Renderer) Render(v controller.View) {
	if len(v.Levers) == 0 {
		return
	}
	fmt.Fprint(r.w, StatusLine(v)+"\r\n")
}

// StatusLine formats the selected lever of v
func StatusLine(v controller.View) string {
	l := v.Levers[v.Selected]

	var sb strings.Builder
	fmt.Fprintf(&sb, "[%d/%d] ", v.Selected+1, len(v.Levers))
	sb.WriteString(kindColors[l.Kind].Sprintf("%s %s", l.Kind.Marker(), l.Index))
	fmt.Fprintf(&sb, " board %d conn %d  %s", l.Board, l.Connector, l.Mode)

	for _, m := range lever.EditableModes {
		text := fmt.Sprintf("%s %d", m, l.Values.Get(m))
		if m == l.Mode {
			text = activeColor.Sprint(text)
			if l.Dirty {
				text += dirtyColor.Sprint("*")
			}
		}
		sb.WriteString("  " + text)
	}

	if l.Description != "" {
		fmt.Fprintf(&sb, "  %q", l.Description)
	}
	if !v.Connected {
		sb.WriteString("  " + offlineColor.Sprint("(dry-run)"))
	}
	return sb.String()
}

// PrintFrame writes the levers as an aligned table
func PrintFrame(w io.Writer, configs []lever.Config) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "LEVER\tBOARD\tCONN\tKIND\tNORMAL\tREVERSED\tPULL\tRETURN\tDESCRIPTION")
	for _, c := range configs {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%s\t%d\t%d\t%d\t%d\t%s\n",
			c.Index,
			c.Board,
			c.Connector,
			c.Kind,
			c.Values.Normal,
			c.Values.Reversed,
			c.Values.Pull,
			c.Values.Return,
			c.Description,
		)
	}
	return tw.Flush()
}
