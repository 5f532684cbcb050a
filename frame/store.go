package frame

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/calvinmclean/servoset/lever"
)

// Store loads and saves a frame file on disk
type Store struct {
	Path string
}

func NewStore(path string) *Store {
	return &Store{Path: path}
}

// Load reads the frame file. Malformed lines are logged and skipped. ErrEmptyConfiguration is
// returned when no line produced a lever.
func (s *Store) Load() ([]lever.Config, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, errors.Wrap(err, "error opening frame file")
	}
	defer f.Close()

	configs, malformed, err := Parse(f)
	if err != nil {
		return nil, err
	}
	for _, m := range malformed {
		logrus.WithFields(logrus.Fields{
			"file":  s.Path,
			"lever": m.Lever,
			"line":  m.Line,
		}).WithError(m.Err).Warnf("lever %d incorrectly formatted: %s", m.Lever, m.Text)
	}

	if len(configs) == 0 {
		return nil, errors.Wrap(ErrEmptyConfiguration, s.Path)
	}

	logrus.WithFields(logrus.Fields{
		"file":    s.Path,
		"levers":  len(configs),
		"skipped": len(malformed),
	}).Info("loaded frame")

	return configs, nil
}

// Save writes configs to a temporary file next to the frame file and renames it into place, so
// the frame file is never left half written.
func (s *Store) Save(configs []lever.Config) error {
	tmp, err := os.CreateTemp(filepath.Dir(s.Path), "."+filepath.Base(s.Path)+".*")
	if err != nil {
		return errors.Wrap(err, "error creating temporary frame file")
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return errors.Wrap(err, "error setting frame file mode")
	}

	if err := Write(tmp, configs); err != nil {
		tmp.Close()
		return errors.Wrap(err, "error writing frame")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "error closing temporary frame file")
	}
	if err := os.Rename(tmp.Name(), s.Path); err != nil {
		return errors.Wrap(err, "error replacing frame file")
	}

	logrus.WithFields(logrus.Fields{
		"file":   s.Path,
		"levers": len(configs),
	}).Info("saved frame")

	return nil
}
