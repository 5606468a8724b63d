package curve

import (
	"fmt"
	"math"
)

// SolverConfig controls the forward scan used to invert x(t).
type SolverConfig struct {
	// Step is the increment of t between probes, in (0,1].
	Step float64
	// Tolerance is the acceptance band |x(t) - target| < Tolerance.
	Tolerance float64
}

// NewSolverConfig returns a config whose tolerance equals step.
func NewSolverConfig(step float64) (SolverConfig, error) {
	if math.IsNaN(step) || step <= 0 || step > 1 {
		return SolverConfig{}, fmt.Errorf("%w: step=%v must be in (0,1]", ErrInvalidCoordinates, step)
	}
	return SolverConfig{Step: step, Tolerance: step}, nil
}

// Solve scans t = 0, step, 2*step, ... up to and including 1+step and
// returns the first t whose x(t) lies within tolerance of target.
// Later matches are never considered.
func Solve(c Parametric, target float64, cfg SolverConfig) (float64, error) {
	if cfg.Step <= 0 || cfg.Tolerance <= 0 {
		return 0, fmt.Errorf("%w: step=%v tolerance=%v", ErrInvalidCoordinates, cfg.Step, cfg.Tolerance)
	}
	// Probes are bounded by index; comparing float t against 1+step
	// can drop the last probe.
	last := int(math.Floor(1/cfg.Step + 1 + 1e-9))
	for i := 0; i <= last; i++ {
		t := float64(i) * cfg.Step
		if math.Abs(c.X(t)-target) < cfg.Tolerance {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: x=%v step=%v", ErrNoSolution, target, cfg.Step)
}

// Invert solves for t and evaluates y at it.
func Invert(c Parametric, target float64, cfg SolverConfig) (y, t float64, err error) {
	t, err = Solve(c, target, cfg)
	if err != nil {
		return 0, 0, err
	}
	return c.Y(t), t, nil
}
