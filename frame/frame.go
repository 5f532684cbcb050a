// Package frame reads and writes the lever frame file: one comma-separated line per lever
//
//	index,board,connector,kind,normal,reversed,pull,return,description
//
// Blank lines and lines starting with '#' are ignored.
package frame

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/calvinmclean/servoset/lever"
)

// Header is written as the first line of every saved frame file
const Header = "# Name,Board,Servo,Type(S|P|F|-),Normal,Reversed,Pull,Return,Description"

// FieldCount is the number of comma-separated fields in a lever line
const FieldCount = 9

var ErrEmptyConfiguration = errors.New("frame file contains no valid levers")

// MalformedRecordError describes a line that could not be turned into a lever
type MalformedRecordError struct {
	// Lever is the position the lever would have taken in the frame
	Lever int
	Line  int
	Text  string
	Err   error
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("lever %d (line %d) incorrectly formatted: %v: %q", e.Lever, e.Line, e.Err, e.Text)
}

func (e *MalformedRecordError) Unwrap() error {
	return e.Err
}

var errFieldCount = errors.Errorf("expected %d fields", FieldCount)

// Parse reads lever configurations from r. Malformed lines are skipped and returned separately so
// the caller can report them. The returned error is only set when r itself fails.
func Parse(r io.Reader) ([]lever.Config, []*MalformedRecordError, error) {
	var (
		configs   []lever.Config
		malformed []*MalformedRecordError
	)

	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		cfg, err := parseLine(line)
		if err != nil {
			malformed = append(malformed, &MalformedRecordError{
				Lever: len(configs),
				Line:  lineNum,
				Text:  line,
				Err:   err,
			})
			continue
		}
		configs = append(configs, cfg)
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, errors.Wrap(err, "error reading frame")
	}

	return configs, malformed, nil
}

func parseLine(line string) (lever.Config, error) {
	// the description is everything after the eighth comma, so it may contain commas itself
	fields := strings.SplitN(line, ",", FieldCount)
	if len(fields) != FieldCount {
		return lever.Config{}, errors.Wrapf(errFieldCount, "got %d", len(fields))
	}
	for i := range FieldCount - 1 {
		fields[i] = strings.TrimSpace(fields[i])
	}

	var (
		cfg lever.Config
		err error
	)
	cfg.Index = fields[0]
	cfg.Description = fields[8]

	if cfg.Board, err = strconv.Atoi(fields[1]); err != nil {
		return lever.Config{}, errors.Wrap(err, "invalid board")
	}
	if cfg.Connector, err = strconv.Atoi(fields[2]); err != nil {
		return lever.Config{}, errors.Wrap(err, "invalid connector")
	}
	if cfg.Connector < 0 {
		return lever.Config{}, errors.Errorf("invalid connector %d", cfg.Connector)
	}
	if cfg.Kind, err = lever.ParseKind(fields[3]); err != nil {
		return lever.Config{}, err
	}

	values := []struct {
		name string
		dst  *uint8
		raw  string
	}{
		{"normal", &cfg.Values.Normal, fields[4]},
		{"reversed", &cfg.Values.Reversed, fields[5]},
		{"pull", &cfg.Values.Pull, fields[6]},
		{"return", &cfg.Values.Return, fields[7]},
	}
	for _, v := range values {
		n, err := strconv.ParseUint(v.raw, 10, 8)
		if err != nil {
			return lever.Config{}, errors.Wrapf(err, "invalid %s value", v.name)
		}
		*v.dst = uint8(n)
	}

	return cfg, nil
}

// Write writes the header followed by one line per lever, in the given order
func Write(w io.Writer, configs []lever.Config) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintln(bw, Header); err != nil {
		return err
	}
	for _, c := range configs {
		_, err := fmt.Fprintf(bw, "%s,%d,%d,%s,%d,%d,%d,%d,%s\n",
			c.Index,
			c.Board,
			c.Connector,
			c.Kind.Marker(),
			c.Values.Normal,
			c.Values.Reversed,
			c.Values.Pull,
			c.Values.Return,
			c.Description,
		)
		if err != nil {
			return err
		}
	}
	return bw.Flush()
}
