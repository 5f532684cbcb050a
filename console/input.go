package console

import (
	"bufio"
	"context"
	"errors"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/calvinmclean/servoset/controller"
)

// ReadEvents reads key presses from r and sends the matching Events. It returns when ctx is done or r
// is exhausted; end of input is delivered as EventQuit so the session still saves. Help output is
// written to help.
func ReadEvents(ctx context.Context, r io.Reader, help io.Writer, events chan<- controller.Event) error {
	cmdMap := map[byte]*Command{}
	for _, cmd := range commands {
		cmdMap[cmd.Flag] = cmd
	}

	br := bufio.NewReader(r)
	send := func(ev controller.Event) bool {
		select {
		case events <- ev:
			return true
		case <-ctx.Done():
			return false
		}
	}

	for {
		b, err := br.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) {
				send(controller.EventQuit)
				return nil
			}
			return err
		}

		if b == helpFlag {
			PrintHelp(help)
			continue
		}

		cmd, ok := cmdMap[b]
		if !ok {
			logrus.WithField("key", flagString(b)).Trace("ignoring key")
			continue
		}

		in := make([]byte, cmd.InputSize)
		if _, err := io.ReadFull(br, in); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				send(controller.EventQuit)
				return nil
			}
			return err
		}

		ev := cmd.Event(in)
		if ev == controller.EventNone {
			continue
		}
		if !send(ev) {
			return ctx.Err()
		}
		if ev == controller.EventQuit {
			return nil
		}
	}
}
