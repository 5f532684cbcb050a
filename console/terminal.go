package console

import (
	"bytes"
	"io"
	"os"

	"github.com/pkg/errors"
	"golang.org/x/term"
)

// MakeRaw puts f into raw mode so single key presses are delivered without Enter. The returned
// function restores the previous mode. Files that are not terminals are left alone.
func MakeRaw(f *os.File) (func(), error) {
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return func() {}, nil
	}

	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, errors.Wrap(err, "error setting terminal to raw mode")
	}
	return func() {
		_ = term.Restore(fd, state)
	}, nil
}

type crlfWriter struct {
	w io.Writer
}

// NewCRLFWriter returns a writer that ends lines with "\r\n", for output to a raw mode terminal
func NewCRLFWriter(w io.Writer) io.Writer {
	return crlfWriter{w}
}

func (c crlfWriter) Write(p []byte) (int, error) {
	_, err := c.w.Write(bytes.ReplaceAll(p, []byte("\n"), []byte("\r\n")))
	if err != nil {
		return 0, err
	}
	return len(p), nil
}
