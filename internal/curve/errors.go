package curve

import "errors"

// Setup-time errors. These are returned by constructors and never by
// per-frame evaluation.
var (
	ErrInvalidRange       = errors.New("invalid input range")
	ErrInvalidCoordinates = errors.New("invalid coordinate setting")
	ErrInvalidParameters  = errors.New("invalid parameters")
)

// Per-frame errors. Any of these aborts processing of the frame that
// produced it.
var (
	ErrDomain         = errors.New("value outside function domain")
	ErrDivisionByZero = errors.New("division by zero")
	ErrNoSolution     = errors.New("can not get a solution of bezier")
)
