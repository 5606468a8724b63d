package curve

import (
	"fmt"
	"strings"

	"golang.org/x/exp/constraints"
)

// Range is the sample convention used to map 8-bit levels to [0,1].
type Range int

const (
	// FullRange maps 0..255 linearly onto [0,1] ("pc").
	FullRange Range = iota
	// StudioRange clips to 16..235 before mapping ("tv").
	StudioRange
)

// Studio range footroom and headroom on the 8-bit scale.
const (
	studioLow  = 16
	studioHigh = 235
)

// ParseRange accepts "pc"/"full" and "tv"/"studio"/"limited".
func ParseRange(s string) (Range, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pc", "full":
		return FullRange, nil
	case "tv", "studio", "limited":
		return StudioRange, nil
	default:
		return 0, fmt.Errorf("%w: %q (want tv or pc)", ErrInvalidRange, s)
	}
}

func (r Range) String() string {
	switch r {
	case FullRange:
		return "pc"
	case StudioRange:
		return "tv"
	default:
		return fmt.Sprintf("Range(%d)", int(r))
	}
}

// Normalize maps a raw 8-bit level into [0,1].
func (r Range) Normalize(v float64) (float64, error) {
	switch r {
	case FullRange:
		return v / 255, nil
	case StudioRange:
		switch {
		case v < studioLow:
			return 0, nil
		case v > studioHigh:
			return 1, nil
		default:
			return (v - studioLow) / (studioHigh - studioLow), nil
		}
	default:
		return 0, fmt.Errorf("%w: %v", ErrInvalidRange, r)
	}
}

// Clamp limits v to [lo, hi].
func Clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
