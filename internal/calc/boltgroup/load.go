package boltgroup

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Load is a force applied at a point in the user coordinate frame.
// Planar problems leave Point.Z and Force.Z at zero.
type Load struct {
	Point r3.Vec `json:"point"`
	Force r3.Vec `json:"force"`
}

// ResolvedLoad is a Load reduced to the bolt-group centroid.
type ResolvedLoad struct {
	Load
	// Local is the application point relative to the centroid (z unchanged).
	Local r3.Vec `json:"local"`
	// Moment about the centroid; Moment.Z drives the plastic solver.
	Moment r3.Vec `json:"moment"`
	// Angle of the line of action measured from vertical, clockwise negative.
	Angle float64 `json:"angle"`
	// Eccentricity is the perpendicular distance from the centroid to the
	// line of action.
	Eccentricity float64 `json:"eccentricity"`
}

// Resolve reduces l to the centroid of g.
func Resolve(g Group, l Load) (ResolvedLoad, error) {
	if !finite(l.Point.X, l.Point.Y, l.Point.Z, l.Force.X, l.Force.Y, l.Force.Z) {
		return ResolvedLoad{}, inputError("load", ErrNonFinite)
	}
	local := LocalLoadPoint(g.Centroid, l)
	rl := ResolvedLoad{
		Load:   l,
		Local:  local,
		Moment: MomentsAboutCentroid(local, l.Force),
		Angle:  LineOfActionAngle(l.Force.X, l.Force.Y),
	}
	rl.Eccentricity = rl.MomentArm(r2.Vec{})
	return rl, nil
}

// LocalLoadPoint returns the application point minus the centroid in-plane.
func LocalLoadPoint(centroid r2.Vec, l Load) r3.Vec {
	return r3.Vec{
		X: l.Point.X - centroid.X,
		Y: l.Point.Y - centroid.Y,
		Z: l.Point.Z,
	}
}

// MomentsAboutCentroid returns local × force:
//
//	Mx = Pz·ly − Py·lz
//	My = Px·lz − Pz·lx
//	Mz = Py·lx − Px·ly
func MomentsAboutCentroid(local, force r3.Vec) r3.Vec {
	return r3.Cross(local, force)
}

// LineOfActionAngle returns the angle between vertical and the line of
// action of (px, py), clockwise taken as negative. A force with no vertical
// component has a horizontal line of action, π/2.
func LineOfActionAngle(px, py float64) float64 {
	if py == 0 {
		return math.Pi / 2
	}
	return -math.Atan(px / py)
}

// MomentArm is the perpendicular distance from p (centroid-relative) to the
// line of action.
func (rl ResolvedLoad) MomentArm(p r2.Vec) float64 {
	cos, sin := math.Cos(rl.Angle), math.Sin(rl.Angle)
	return math.Abs((rl.Local.X-p.X)*cos + (rl.Local.Y-p.Y)*sin)
}

// InPlane returns the in-plane force components.
func (rl ResolvedLoad) InPlane() r2.Vec {
	return r2.Vec{X: rl.Force.X, Y: rl.Force.Y}
}

// MomentAbout returns the in-plane moment of the force about p
// (centroid-relative): Py·dx − Px·dy.
func (rl ResolvedLoad) MomentAbout(p r2.Vec) float64 {
	d := r2.Vec{X: rl.Local.X - p.X, Y: rl.Local.Y - p.Y}
	return r2.Cross(d, rl.InPlane())
}
