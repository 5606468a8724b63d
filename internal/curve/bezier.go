package curve

import (
	"fmt"
	"math"
)

// Parametric is a curve given as (x(t), y(t)) for t in [0,1].
// x(t) must be non-decreasing on [0,1] for Solve to be meaningful.
type Parametric interface {
	X(t float64) float64
	Y(t float64) float64
}

// Cubic is a cubic Bézier with x endpoints fixed at 0 and 1. It drives
// the per-pixel remap table; Y is in output levels.
type Cubic struct {
	X1, X2 float64 // control abscissas, strictly inside (0,1)
	Begin  float64
	Y1, Y2 float64
	End    float64
}

// NewCubic validates the control abscissas. Monotonicity of x(t) is
// not checked beyond the open-interval bound.
func NewCubic(x1, x2, begin, y1, y2, end float64) (Cubic, error) {
	if !inOpenUnit(x1) || !inOpenUnit(x2) {
		return Cubic{}, fmt.Errorf("%w: x1=%v x2=%v must be in (0,1)", ErrInvalidCoordinates, x1, x2)
	}
	for _, v := range []float64{begin, y1, y2, end} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Cubic{}, fmt.Errorf("%w: non-finite ordinate %v", ErrInvalidCoordinates, v)
		}
	}
	return Cubic{X1: x1, X2: x2, Begin: begin, Y1: y1, Y2: y2, End: end}, nil
}

func (c Cubic) X(t float64) float64 {
	u := 1 - t
	return 3*c.X1*t*u*u + 3*c.X2*u*t*t + t*t*t
}

func (c Cubic) Y(t float64) float64 {
	u := 1 - t
	return c.Begin*u*u*u + 3*c.Y1*t*u*u + 3*c.Y2*u*t*t + c.End*t*t*t
}

// Quadratic is a single-control-point Bézier with x endpoints 0 and 1.
// It maps average luma to a filter strength.
type Quadratic struct {
	AncX, AncY  float64
	Left, Right float64
}

// NewQuadratic requires AncX in [0,1], which keeps x(t) monotone.
func NewQuadratic(left, right, ancX, ancY float64) (Quadratic, error) {
	if math.IsNaN(ancX) || ancX < 0 || ancX > 1 {
		return Quadratic{}, fmt.Errorf("%w: anc_x=%v must be in [0,1]", ErrInvalidCoordinates, ancX)
	}
	for _, v := range []float64{left, right, ancY} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Quadratic{}, fmt.Errorf("%w: non-finite ordinate %v", ErrInvalidCoordinates, v)
		}
	}
	return Quadratic{AncX: ancX, AncY: ancY, Left: left, Right: right}, nil
}

func (q Quadratic) X(t float64) float64 {
	return 2*q.AncX*t*(1-t) + t*t
}

func (q Quadratic) Y(t float64) float64 {
	u := 1 - t
	return q.Left*u*u + 2*q.AncY*t*u + q.Right*t*t
}

func inOpenUnit(v float64) bool {
	return v > 0 && v < 1
}
