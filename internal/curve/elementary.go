package curve

import (
	"fmt"
	"math"
	"strings"
)

// Mode selects the elementary function used to shift a strength.
type Mode int

const (
	Linear Mode = iota
	Log
	Power
)

// ParseMode accepts the short names "lin", "log", "pow" and their long forms.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "lin", "linear":
		return Linear, nil
	case "log", "logarithmic":
		return Log, nil
	case "pow", "power":
		return Power, nil
	default:
		return 0, fmt.Errorf("%w: unknown mode %q", ErrInvalidParameters, s)
	}
}

func (m Mode) String() string {
	switch m {
	case Linear:
		return "lin"
	case Log:
		return "log"
	case Power:
		return "pow"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParamCount is the number of parameters the mode requires.
func (m Mode) ParamCount() int {
	if m == Linear {
		return 2
	}
	return 3
}

// DefaultParams returns the stock parameters for m.
func DefaultParams(m Mode) []float64 {
	switch m {
	case Linear:
		return []float64{20, 0.5}
	case Log:
		return []float64{20, 0.42, 3}
	case Power:
		return []float64{20, 0.84, 3}
	default:
		return nil
	}
}

// Elementary shifts a baseline strength by a function of average luma:
//
//	lin: p0 * (p1 - a)
//	log: p0 * log_p2(p1 - a + 1)
//	pow: p0 * (p1 - a)^p2
type Elementary struct {
	Mode   Mode
	Params []float64
}

// NewElementary validates params for mode. A nil params slice selects
// DefaultParams(mode).
func NewElementary(mode Mode, params []float64) (Elementary, error) {
	switch mode {
	case Linear, Log, Power:
	default:
		return Elementary{}, fmt.Errorf("%w: unknown mode %v", ErrInvalidParameters, mode)
	}
	if params == nil {
		params = DefaultParams(mode)
	}
	if len(params) != mode.ParamCount() {
		return Elementary{}, fmt.Errorf("%w: mode %s needs %d parameters, got %d",
			ErrInvalidParameters, mode, mode.ParamCount(), len(params))
	}
	for _, p := range params {
		if math.IsNaN(p) || math.IsInf(p, 0) {
			return Elementary{}, fmt.Errorf("%w: non-finite parameter %v", ErrInvalidParameters, p)
		}
	}
	if mode == Log && (params[2] <= 0 || params[2] == 1) {
		return Elementary{}, fmt.Errorf("%w: log base %v", ErrInvalidParameters, params[2])
	}
	return Elementary{Mode: mode, Params: append([]float64(nil), params...)}, nil
}

// Bias computes the strength shift for average luma a.
func (e Elementary) Bias(a float64) (float64, error) {
	p := e.Params
	switch e.Mode {
	case Linear:
		return p[0] * (p[1] - a), nil
	case Log:
		arg := p[1] - a + 1
		if arg <= 0 {
			return 0, fmt.Errorf("%w: log argument %v", ErrDomain, arg)
		}
		return p[0] * math.Log(arg) / math.Log(p[2]), nil
	case Power:
		v := math.Pow(p[1]-a, p[2])
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, fmt.Errorf("%w: (%v)^%v", ErrDomain, p[1]-a, p[2])
		}
		return p[0] * v, nil
	default:
		return 0, fmt.Errorf("%w: unknown mode %v", ErrInvalidParameters, e.Mode)
	}
}
