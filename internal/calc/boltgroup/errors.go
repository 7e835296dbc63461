package boltgroup

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"
)

var (
	// ErrInvalidInput is matched by every input validation failure.
	ErrInvalidInput = errors.New("boltgroup: invalid input")
	// ErrEmptyGroup indicates a bolt group without bolts.
	ErrEmptyGroup = errors.New("boltgroup: bolt group has no bolts")
	// ErrZeroMoment indicates the plastic solver was handed a zero moment.
	// Concentric loads belong on the direct-shear path.
	ErrZeroMoment = errors.New("boltgroup: applied moment is zero")
	// ErrNonFinite indicates a NaN or ±Inf coordinate, force or option.
	ErrNonFinite = errors.New("boltgroup: NaN or Inf encountered")
	// ErrUnsupportedMethod indicates an analysis method that is not implemented.
	ErrUnsupportedMethod = errors.New("boltgroup: unsupported analysis method")

	// ErrNumericalHazard indicates a near-zero resisting moment during iteration.
	ErrNumericalHazard = errors.New("boltgroup: resisting moment vanished")
	// ErrNoConvergence indicates the iteration cap was reached.
	ErrNoConvergence = errors.New("boltgroup: instantaneous center did not converge")
)

// InputError reports an input rejected before any iteration starts.
type InputError struct {
	Field string
	Err   error
}

func (e *InputError) Error() string {
	if e.Field == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%v (%s)", e.Err, e.Field)
}

func (e *InputError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrInvalidInput) match any InputError.
func (e *InputError) Is(target error) bool { return target == ErrInvalidInput }

func inputError(field string, err error) error {
	return &InputError{Field: field, Err: err}
}

// NumericalHazardError is returned when the resisting moment sum collapses
// to (near) zero mid-iteration. Iteration is zero when the elastic analysis
// meets a group with J = 0.
type NumericalHazardError struct {
	Iteration int
	IC        r2.Vec
	MomentSum float64
}

func (e *NumericalHazardError) Error() string {
	if e.Iteration == 0 {
		return fmt.Sprintf("%v: polar moment of the group is zero", ErrNumericalHazard)
	}
	return fmt.Sprintf("%v: iteration %d, ic (%.6g, %.6g), sum %.6g",
		ErrNumericalHazard, e.Iteration, e.IC.X, e.IC.Y, e.MomentSum)
}

func (e *NumericalHazardError) Unwrap() error { return ErrNumericalHazard }

// ConvergenceError is returned when the solver exhausts its iteration cap.
type ConvergenceError struct {
	Iterations int
	Residual   float64
	Tolerance  float64
	IC         r2.Vec
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("%v after %d iterations: residual %.6g > tolerance %.6g, last ic (%.6g, %.6g)",
		ErrNoConvergence, e.Iterations, e.Residual, e.Tolerance, e.IC.X, e.IC.Y)
}

func (e *ConvergenceError) Unwrap() error { return ErrNoConvergence }
