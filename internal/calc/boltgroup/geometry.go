package boltgroup

import (
	"math"
	"strconv"

	"gonum.org/v1/gonum/spatial/r2"
)

// Bolt is one fastener of the group in the user coordinate frame.
// Diameter is carried for reporting; all bolts are treated as identical.
type Bolt struct {
	ID       string  `json:"id"`
	Position r2.Vec  `json:"position"`
	Diameter float64 `json:"diameter"`
}

// Properties are the area moments of the group about its centroid,
// taking every bolt as a unit area.
type Properties struct {
	Ixx float64 `json:"ixx"`
	Iyy float64 `json:"iyy"`
	J   float64 `json:"j"`
}

// Group is an immutable geometry snapshot of a bolt pattern.
type Group struct {
	Bolts      []Bolt
	Centroid   r2.Vec
	Local      []r2.Vec
	Properties Properties
}

// NewGroup validates bolts and derives the centroid, the centroid-relative
// coordinates and the area moments. The bolts slice is copied.
func NewGroup(bolts []Bolt) (Group, error) {
	if len(bolts) == 0 {
		return Group{}, inputError("bolts", ErrEmptyGroup)
	}
	for i, b := range bolts {
		if !finite(b.Position.X, b.Position.Y, b.Diameter) {
			return Group{}, inputError(boltField(i, b), ErrNonFinite)
		}
	}
	own := make([]Bolt, len(bolts))
	copy(own, bolts)

	local := LocalCoordinates(own)
	return Group{
		Bolts:      own,
		Centroid:   Centroid(own),
		Local:      local,
		Properties: SecondMoments(local),
	}, nil
}

// Len returns the bolt count.
func (g Group) Len() int { return len(g.Bolts) }

// Centroid returns the arithmetic mean of the bolt positions.
// The result is undefined (NaN) for an empty slice.
func Centroid(bolts []Bolt) r2.Vec {
	var sum r2.Vec
	for _, b := range bolts {
		sum = r2.Add(sum, b.Position)
	}
	return r2.Scale(1/float64(len(bolts)), sum)
}

// LocalCoordinates returns each bolt position relative to the group centroid,
// in input order.
func LocalCoordinates(bolts []Bolt) []r2.Vec {
	c := Centroid(bolts)
	local := make([]r2.Vec, len(bolts))
	for i, b := range bolts {
		local[i] = r2.Sub(b.Position, c)
	}
	return local
}

// SecondMoments sums Ixx = Σy², Iyy = Σx² and J = Ixx + Iyy over
// centroid-relative coordinates.
func SecondMoments(local []r2.Vec) Properties {
	var p Properties
	for _, v := range local {
		p.Ixx += v.Y * v.Y
		p.Iyy += v.X * v.X
	}
	p.J = p.Ixx + p.Iyy
	return p
}

func finite(vals ...float64) bool {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func boltField(i int, b Bolt) string {
	if b.ID != "" {
		return "bolt " + b.ID
	}
	return "bolt #" + strconv.Itoa(i+1)
}
