package boltgroup

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Reactions resolves each bolt's ultimate shear demand
// Ri = rult·(1 − e^(−10Δ))^0.55 perpendicular to its radius from the IC.
// Components use the bolt's own distance d, (−dy/d, dx/d), so |R| = Ri, and
// act in the same sense as Solution.Bolts[i].Force.
func (s Solution) Reactions(rult float64) []r2.Vec {
	sense := 1.0
	if s.AppliedMoment > 0 {
		sense = -1
	}
	out := make([]r2.Vec, len(s.Bolts))
	for i, b := range s.Bolts {
		if b.Distance == 0 {
			continue
		}
		ri := rult * FractionOf(b.Deformation)
		f := sense * ri / b.Distance
		out[i] = r2.Vec{X: -b.Offset.Y * f, Y: b.Offset.X * f}
	}
	return out
}

// GroupCapacity returns the ultimate in-plane load the group can carry
// along the applied line of action, rult·ΣM / arm with arm = |mp| / |P|.
// ok is false when the line of action passes through the IC.
func (s Solution) GroupCapacity(rult float64, rl ResolvedLoad) (capacity float64, ok bool) {
	p := r2.Norm(rl.InPlane())
	if p == 0 || s.AppliedMoment == 0 {
		return 0, false
	}
	arm := math.Abs(s.AppliedMoment) / p
	return rult * s.MomentSum / arm, true
}
