package lever

import "github.com/pkg/errors"

var ErrNoLevers = errors.New("no levers")

// Set is the ordered collection of levers and the current selection
type Set struct {
	levers   []*Lever
	selected int
}

// NewSet creates a Set with the first lever selected
func NewSet(levers []*Lever) (*Set, error) {
	if len(levers) == 0 {
		return nil, ErrNoLevers
	}
	return &Set{levers: levers}, nil
}

func (s *Set) Len() int {
	return len(s.levers)
}

func (s *Set) Levers() []*Lever {
	return s.levers
}

func (s *Set) SelectedIndex() int {
	return s.selected
}

func (s *Set) Selected() *Lever {
	return s.levers[s.selected]
}

// SelectNext moves the selection forward. It stops at the last lever and reports whether it moved.
func (s *Set) SelectNext() bool {
	if s.selected >= len(s.levers)-1 {
		return false
	}
	s.selected++
	return true
}

// SelectPrev moves the selection back. It stops at the first lever and reports whether it moved.
func (s *Set) SelectPrev() bool {
	if s.selected <= 0 {
		return false
	}
	s.selected--
	return true
}

// Configs returns every lever's configuration in set order
func (s *Set) Configs() []Config {
	configs := make([]Config, 0, len(s.levers))
	for _, l := range s.levers {
		configs = append(configs, l.Config())
	}
	return configs
}
