package boltgroup

import (
	"math"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r2"
)

// Load-deformation law of a single fastener, R/Rult = (1 − e^(−μΔ))^λ,
// with Δ the deformation of the bolt and DeformationLimit the deformation of
// the most distant bolt at failure.
const (
	DeformationLimit = 0.34
	DeformationMu    = 10.0
	DeformationExp   = 0.55
)

const (
	// DefaultTolerance bounds max(|Fx|, |Fy|) of the residual force.
	DefaultTolerance = 0.01
	// DefaultMaxIterations caps the number of equilibrium evaluations.
	DefaultMaxIterations = 50

	momentSumEpsilon = 1e-12
)

// Options configures SolveIC.
type Options struct {
	Tolerance     float64
	MaxIterations int
	// Seed, when set, is evaluated as the first IC estimate (centroid-relative)
	// instead of stepping away from the centroid.
	Seed   *r2.Vec
	Logger *zap.Logger
}

// DefaultOptions returns tolerance 0.01 and a cap of 50 iterations.
func DefaultOptions() Options {
	return Options{
		Tolerance:     DefaultTolerance,
		MaxIterations: DefaultMaxIterations,
	}
}

// BoltState is a bolt's kinematics about the converged IC.
type BoltState struct {
	Offset      r2.Vec  `json:"offset"`
	Distance    float64 `json:"distance"`
	Deformation float64 `json:"deformation"`
	Fraction    float64 `json:"fraction"`
	// Force is the bolt reaction at the applied load level.
	Force r2.Vec `json:"force"`
}

// Solution is the converged instantaneous-center state.
type Solution struct {
	IC         r2.Vec  `json:"ic"`
	Iterations int     `json:"iterations"`
	Residual   float64 `json:"residual"`
	// MomentSum is ΣR/Rult·d about the IC.
	MomentSum float64 `json:"moment_sum"`
	// AppliedMoment is the moment of the applied force about the IC.
	AppliedMoment float64 `json:"applied_moment"`
	// Ce and Cu are taken from the first evaluated IC.
	Ce    float64     `json:"ce"`
	Cu    float64     `json:"cu"`
	Bolts []BoltState `json:"bolts"`
}

// FractionOf returns R/Rult for a bolt deformation.
func FractionOf(deformation float64) float64 {
	return math.Pow(1-math.Exp(-DeformationMu*deformation), DeformationExp)
}

// Step moves ic by the elastic IC correction for a residual force:
//
//	Δx = −fy/n · J/mo,  Δy = fx/n · J/mo
//
// where mo is the moment about the centroid. Starting from the centroid with
// the full applied force as residual it yields the elastic IC.
func Step(g Group, rl ResolvedLoad, ic, residual r2.Vec) (r2.Vec, error) {
	mo := rl.Moment.Z
	if mo == 0 {
		return ic, inputError("moment", ErrZeroMoment)
	}
	k := g.Properties.J / (float64(g.Len()) * mo)
	return r2.Vec{
		X: ic.X - residual.Y*k,
		Y: ic.Y + residual.X*k,
	}, nil
}

// pass is one equilibrium evaluation about a fixed IC.
type pass struct {
	bolts     []BoltState
	dMax      float64
	sumD2     float64
	momentSum float64
	applied   float64
	net       r2.Vec
}

// evaluate computes the bolt kinematics, resisting moment and net bolt
// force for the IC estimate ic.
func evaluate(g Group, rl ResolvedLoad, ic r2.Vec) pass {
	p := pass{bolts: make([]BoltState, g.Len())}
	for i, c := range g.Local {
		off := r2.Sub(c, ic)
		d := r2.Norm(off)
		p.bolts[i] = BoltState{Offset: off, Distance: d}
		p.sumD2 += d * d
		if d > p.dMax {
			p.dMax = d
		}
	}
	if !(p.dMax > 0) {
		return p
	}

	for i := range p.bolts {
		b := &p.bolts[i]
		b.Deformation = DeformationLimit * b.Distance / p.dMax
		b.Fraction = FractionOf(b.Deformation)
		p.momentSum += b.Fraction * b.Distance
	}
	p.applied = rl.MomentAbout(ic)
	if !(p.momentSum > momentSumEpsilon) {
		return p
	}

	scale := -p.applied / p.momentSum
	for i := range p.bolts {
		b := &p.bolts[i]
		if b.Distance == 0 {
			continue
		}
		f := b.Fraction * scale / b.Distance
		b.Force = r2.Vec{X: -b.Offset.Y * f, Y: b.Offset.X * f}
		p.net = r2.Add(p.net, b.Force)
	}
	return p
}

func (p pass) hazardous() bool {
	return !(p.momentSum > momentSumEpsilon)
}

// SolveIC iterates the instantaneous center of rotation of g under rl until
// the applied force and the bolt reactions balance within opts.Tolerance.
//
// The moment about the centroid must be non-zero; route concentric loads to
// DirectShear. The returned errors are *InputError, *NumericalHazardError
// and *ConvergenceError.
func SolveIC(g Group, rl ResolvedLoad, opts Options) (Solution, error) {
	if opts.Tolerance == 0 {
		opts.Tolerance = DefaultTolerance
	}
	if opts.MaxIterations == 0 {
		opts.MaxIterations = DefaultMaxIterations
	}
	if !finite(opts.Tolerance) {
		return Solution{}, inputError("tolerance", ErrNonFinite)
	}
	if opts.Tolerance < 0 || opts.MaxIterations < 0 {
		return Solution{}, inputError("tolerance/max_iterations", ErrInvalidInput)
	}
	if g.Len() == 0 {
		return Solution{}, inputError("bolts", ErrEmptyGroup)
	}
	if rl.Moment.Z == 0 {
		return Solution{}, inputError("moment", ErrZeroMoment)
	}
	if !finite(rl.Moment.Z, rl.Force.X, rl.Force.Y) {
		return Solution{}, inputError("load", ErrNonFinite)
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	applied := rl.InPlane()
	residual := applied
	var ic r2.Vec
	seeded := opts.Seed != nil
	if seeded {
		ic = *opts.Seed
		if !finite(ic.X, ic.Y) {
			return Solution{}, inputError("seed", ErrNonFinite)
		}
	}

	var ce, cu float64
	for it := 1; ; it++ {
		if !seeded || it > 1 {
			next, err := Step(g, rl, ic, residual)
			if err != nil {
				return Solution{}, err
			}
			ic = next
		}

		p := evaluate(g, rl, ic)
		if p.hazardous() {
			return Solution{}, &NumericalHazardError{Iteration: it, IC: ic, MomentSum: p.momentSum}
		}
		if it == 1 {
			if p.applied != 0 {
				ce = p.sumD2 / (p.dMax * p.applied)
			}
			cu = p.applied / p.momentSum
		}

		residual = r2.Add(applied, p.net)
		e := math.Max(math.Abs(residual.X), math.Abs(residual.Y))
		log.Debug("ic iteration",
			zap.Int("iteration", it),
			zap.Float64("ic_x", ic.X),
			zap.Float64("ic_y", ic.Y),
			zap.Float64("moment_sum", p.momentSum),
			zap.Float64("applied_moment", p.applied),
			zap.Float64("residual", e))

		if math.IsNaN(e) {
			return Solution{}, &NumericalHazardError{Iteration: it, IC: ic, MomentSum: p.momentSum}
		}
		if e < opts.Tolerance {
			return Solution{
				IC:            ic,
				Iterations:    it,
				Residual:      e,
				MomentSum:     p.momentSum,
				AppliedMoment: p.applied,
				Ce:            ce,
				Cu:            cu,
				Bolts:         p.bolts,
			}, nil
		}
		if it >= opts.MaxIterations {
			return Solution{}, &ConvergenceError{
				Iterations: it,
				Residual:   e,
				Tolerance:  opts.Tolerance,
				IC:         ic,
			}
		}
	}
}
