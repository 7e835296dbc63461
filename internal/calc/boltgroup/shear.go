package boltgroup

import "gonum.org/v1/gonum/spatial/r2"

// DirectShear splits the in-plane force equally among the bolts. Each
// reaction opposes the applied force: (−Px/n, −Py/n).
func DirectShear(g Group, rl ResolvedLoad) []r2.Vec {
	n := float64(g.Len())
	r := r2.Vec{X: -rl.Force.X / n, Y: -rl.Force.Y / n}
	out := make([]r2.Vec, g.Len())
	for i := range out {
		out[i] = r
	}
	return out
}

// ElasticShear distributes the moment about the centroid in proportion to
// each bolt's distance from it (Salmon & Johnson): (Mz·yc/J, −Mz·xc/J).
// A group with J = 0 cannot resist a moment; it returns a
// *NumericalHazardError unless Mz is zero too.
func ElasticShear(g Group, rl ResolvedLoad) ([]r2.Vec, error) {
	out := make([]r2.Vec, g.Len())
	j := g.Properties.J
	mz := rl.Moment.Z
	if j == 0 {
		if mz != 0 {
			return nil, &NumericalHazardError{}
		}
		return out, nil
	}
	for i, c := range g.Local {
		out[i] = r2.Vec{X: mz * c.Y / j, Y: -mz * c.X / j}
	}
	return out, nil
}
