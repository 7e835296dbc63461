package boltgroup

import (
	"context"
	"fmt"
	"math"

	"Boltcalc/internal/logging"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

type Method string

const (
	MethodDirect  Method = "direct"
	MethodElastic Method = "elastic"
	MethodPlastic Method = "plastic"
)

type Input struct {
	Bolts  []Bolt `json:"bolts"`
	Load   Load   `json:"load"`
	Method Method `json:"method"`
	// BoltCapacity is the ultimate shear capacity of a single bolt, in load
	// units. Zero skips the capacity check.
	BoltCapacity  float64 `json:"bolt_capacity"`
	Tolerance     float64 `json:"tolerance"`
	MaxIterations int     `json:"max_iterations"`
}

type BoltResult struct {
	ID       string  `json:"id"`
	Position r2.Vec  `json:"position"`
	Local    r2.Vec  `json:"local"`
	Diameter float64 `json:"diameter"`
	// Direct and Eccentric are the elastic components; Total is what the bolt
	// carries under the method used.
	Direct    r2.Vec  `json:"direct"`
	Eccentric r2.Vec  `json:"eccentric"`
	Total     r2.Vec  `json:"total"`
	Resultant float64 `json:"resultant"`

	Distance    float64 `json:"distance,omitempty"`
	Deformation float64 `json:"deformation,omitempty"`
	Fraction    float64 `json:"fraction,omitempty"`
	Ultimate    *r2.Vec `json:"ultimate,omitempty"`
}

type Result struct {
	Method        Method       `json:"method"`
	Centroid      r2.Vec       `json:"centroid"`
	Properties    Properties   `json:"properties"`
	Load          ResolvedLoad `json:"load"`
	Solution      *Solution    `json:"solution,omitempty"`
	Bolts         []BoltResult `json:"bolts"`
	MaxResultant  float64      `json:"max_resultant"`
	GroupCapacity float64      `json:"group_capacity,omitempty"`
	Utilization   float64      `json:"utilization"`
	OK            bool         `json:"ok"`
	Notes         string       `json:"notes"`
}

// Calculate runs the requested in-plane analysis of one load case.
func Calculate(in Input) (Result, error) {
	return CalculateContext(context.Background(), in)
}

// CalculateContext is Calculate with the logger and cancellation of ctx.
func CalculateContext(ctx context.Context, in Input) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if in.Method == "" {
		in.Method = MethodPlastic
	}
	switch in.Method {
	case MethodDirect, MethodElastic, MethodPlastic:
	default:
		return Result{}, inputError(fmt.Sprintf("method %q", in.Method), ErrUnsupportedMethod)
	}
	if !finite(in.BoltCapacity) {
		return Result{}, inputError("bolt_capacity", ErrNonFinite)
	}
	if in.BoltCapacity < 0 {
		return Result{}, inputError("bolt_capacity", ErrInvalidInput)
	}

	g, err := NewGroup(in.Bolts)
	if err != nil {
		return Result{}, err
	}
	rl, err := Resolve(g, in.Load)
	if err != nil {
		return Result{}, err
	}

	res := Result{
		Method:     in.Method,
		Centroid:   g.Centroid,
		Properties: g.Properties,
		Load:       rl,
		Bolts:      make([]BoltResult, g.Len()),
	}
	direct := DirectShear(g, rl)
	for i, b := range g.Bolts {
		res.Bolts[i] = BoltResult{
			ID:       b.ID,
			Position: b.Position,
			Local:    g.Local[i],
			Diameter: b.Diameter,
			Direct:   direct[i],
			Total:    direct[i],
		}
	}

	switch {
	case in.Method == MethodDirect:
		res.Notes = "Direct shear: force divided equally among bolts."
	case concentric(rl):
		res.Method = MethodDirect
		res.Notes = "Load passes through the centroid; direct shear only."
	case in.Method == MethodElastic:
		ecc, err := ElasticShear(g, rl)
		if err != nil {
			return Result{}, err
		}
		for i, e := range ecc {
			res.Bolts[i].Eccentric = e
			res.Bolts[i].Total = r2.Add(res.Bolts[i].Total, e)
		}
		res.Notes = "Elastic eccentric shear: moment shared in proportion to distance from the centroid."
	default:
		opts := Options{
			Tolerance:     in.Tolerance,
			MaxIterations: in.MaxIterations,
			Logger:        logging.FromContext(ctx),
		}
		sol, err := SolveIC(g, rl, opts)
		if err != nil {
			return Result{}, err
		}
		res.Solution = &sol
		for i, s := range sol.Bolts {
			b := &res.Bolts[i]
			b.Total = s.Force
			b.Distance = s.Distance
			b.Deformation = s.Deformation
			b.Fraction = s.Fraction
		}
		res.Notes = "Plastic eccentric shear: instantaneous center method."
	}

	resultants := make([]float64, len(res.Bolts))
	for i := range res.Bolts {
		resultants[i] = r2.Norm(res.Bolts[i].Total)
		res.Bolts[i].Resultant = resultants[i]
	}
	res.MaxResultant = floats.Max(resultants)

	res.OK = true
	if in.BoltCapacity == 0 {
		res.Notes += " No bolt capacity given; capacity check skipped."
		return res, nil
	}
	if res.Solution == nil {
		res.Utilization = res.MaxResultant / in.BoltCapacity
	} else {
		for i, u := range res.Solution.Reactions(in.BoltCapacity) {
			res.Bolts[i].Ultimate = &u
		}
		if c, ok := res.Solution.GroupCapacity(in.BoltCapacity, rl); ok {
			res.GroupCapacity = c
			res.Utilization = r2.Norm(rl.InPlane()) / c
		}
	}
	res.OK = res.Utilization <= 1.0
	return res, nil
}

// concentric reports a moment about the centroid that is zero up to
// floating-point noise in the centroid and moment arithmetic.
func concentric(rl ResolvedLoad) bool {
	scale := 1 + r3.Norm(rl.Force)*(1+r3.Norm(rl.Local))
	return math.Abs(rl.Moment.Z) <= 1e-12*scale
}
