// Package lut builds 256-entry remap tables from a Bézier curve and
// applies them to image planes.
package lut

import (
	"fmt"
	"math"
	"sort"

	"github.com/kewenyu/DBmbk/internal/curve"
	"github.com/kewenyu/DBmbk/internal/hasher"
)

// Levels is the table size. Tables are always built at 8-bit
// granularity; deeper samples are reduced before lookup.
const Levels = 256

// Table maps an 8-bit input level to an 8-bit output level.
// A built Table is never modified and may be shared between goroutines.
type Table [Levels]uint8

// Build solves the curve once per input level. Each level is
// normalized with r, inverted through c, and the resulting y is
// floored and clamped to [0,255].
func Build(c curve.Parametric, r curve.Range, cfg curve.SolverConfig) (*Table, error) {
	var t Table
	for level := 0; level < Levels; level++ {
		x, err := r.Normalize(float64(level))
		if err != nil {
			return nil, err
		}
		y, _, err := curve.Invert(c, x, cfg)
		if err != nil {
			return nil, fmt.Errorf("level %d: %w", level, err)
		}
		t[level] = uint8(curve.Clamp(math.Floor(y), 0, 255))
	}
	return &t, nil
}

// Map looks up a single level.
func (t *Table) Map(v uint8) uint8 {
	return t[v]
}

// Map16 reduces a 16-bit sample to 8 bits, looks it up and expands the
// result back to 16 bits.
func (t *Table) Map16(v uint16) uint16 {
	o := uint16(t[v>>8])
	return o<<8 | o
}

// Fingerprint is a short content hash identifying the table.
func (t *Table) Fingerprint() string {
	return hasher.ContentHash(t[:], 16)
}

// Planes is a set of plane indices (0 = luma or R, 1 = Cb or G, 2 = Cr or B).
type Planes []int

// MaxPlanes is the highest plane count of any supported layout.
const MaxPlanes = 3

// ParsePlanes validates and de-duplicates plane indices.
func ParsePlanes(idx []int) (Planes, error) {
	if len(idx) == 0 {
		return nil, fmt.Errorf("%w: no planes selected", curve.ErrInvalidParameters)
	}
	seen := map[int]bool{}
	var p Planes
	for _, i := range idx {
		if i < 0 || i >= MaxPlanes {
			return nil, fmt.Errorf("%w: plane %d out of range 0-%d", curve.ErrInvalidParameters, i, MaxPlanes-1)
		}
		if !seen[i] {
			seen[i] = true
			p = append(p, i)
		}
	}
	sort.Ints(p)
	return p, nil
}

// Has reports whether plane i is selected.
func (p Planes) Has(i int) bool {
	for _, v := range p {
		if v == i {
			return true
		}
	}
	return false
}
