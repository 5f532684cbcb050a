package lever

import "github.com/pkg/errors"

// Kind is what a lever operates on the layout
type Kind int

const (
	KindUnset Kind = iota
	KindSignal
	KindPoint
	KindFacing
)

var ErrUnknownKind = errors.New("unknown lever kind")

// ParseKind converts a frame file marker into a Kind
func ParseKind(marker string) (Kind, error) {
	switch marker {
	case "S":
		return KindSignal, nil
	case "P":
		return KindPoint, nil
	case "F":
		return KindFacing, nil
	case "-":
		return KindUnset, nil
	default:
		return KindUnset, errors.Wrapf(ErrUnknownKind, "marker %q", marker)
	}
}

// Marker is the single character used for the kind in the frame file
func (k Kind) Marker() string {
	switch k {
	case KindSignal:
		return "S"
	case KindPoint:
		return "P"
	case KindFacing:
		return "F"
	default:
		return "-"
	}
}

func (k Kind) String() string {
	switch k {
	case KindSignal:
		return "Signal"
	case KindPoint:
		return "Point"
	case KindFacing:
		return "Facing"
	default:
		return "Unset"
	}
}
