package csg

import "gonum.org/v1/gonum/spatial/r3"

// Region is a set of points built from half-spaces.
type Region interface {
	Contains(p r3.Vec) bool
}

// Sense selects a side of a surface.
type Sense int

const (
	Negative Sense = -1
	Positive Sense = 1
)

func (s Sense) String() string {
	if s == Negative {
		return "-"
	}
	return "+"
}

// HalfSpace is the open set of points on one side of a surface.
type HalfSpace struct {
	Surface Surface
	Sense   Sense
}

// Neg is the side of s where f(p) < 0.
func Neg(s Surface) HalfSpace { return HalfSpace{Surface: s, Sense: Negative} }

// Pos is the side of s where f(p) > 0.
func Pos(s Surface) HalfSpace { return HalfSpace{Surface: s, Sense: Positive} }

func (h HalfSpace) Contains(p r3.Vec) bool {
	f := h.Surface.Evaluate(p)
	if h.Sense == Negative {
		return f < 0
	}
	return f > 0
}

// Intersection contains the points inside every member.
type Intersection []Region

func (r Intersection) Contains(p r3.Vec) bool {
	for _, m := range r {
		if !m.Contains(p) {
			return false
		}
	}
	return true
}

// Union contains the points inside at least one member.
type Union []Region

func (r Union) Contains(p r3.Vec) bool {
	for _, m := range r {
		if m.Contains(p) {
			return true
		}
	}
	return false
}

// Complement contains the points outside Region.
type Complement struct {
	Region Region
}

func (r Complement) Contains(p r3.Vec) bool { return !r.Region.Contains(p) }

// And intersects regions, flattening nested intersections.
func And(rs ...Region) Intersection {
	out := make(Intersection, 0, len(rs))
	for _, r := range rs {
		if in, ok := r.(Intersection); ok {
			out = append(out, in...)
			continue
		}
		out = append(out, r)
	}
	return out
}

// Or unites regions, flattening nested unions.
func Or(rs ...Region) Union {
	out := make(Union, 0, len(rs))
	for _, r := range rs {
		if u, ok := r.(Union); ok {
			out = append(out, u...)
			continue
		}
		out = append(out, r)
	}
	return out
}

// Not complements r. A half-space is flipped instead of wrapped.
func Not(r Region) Region {
	switch v := r.(type) {
	case HalfSpace:
		return HalfSpace{Surface: v.Surface, Sense: -v.Sense}
	case Complement:
		return v.Region
	}
	return Complement{Region: r}
}

// Subtract removes every region in others from r.
func Subtract(r Region, others ...Region) Intersection {
	out := And(r)
	for _, o := range others {
		out = append(out, Not(o))
	}
	return out
}

// Surfaces lists the distinct surfaces referenced by r in first-seen order.
func Surfaces(r Region) []Surface {
	seen := make(map[Surface]bool)
	var out []Surface
	var walk func(Region)
	walk = func(r Region) {
		switch v := r.(type) {
		case HalfSpace:
			if !seen[v.Surface] {
				seen[v.Surface] = true
				out = append(out, v.Surface)
			}
		case Intersection:
			for _, m := range v {
				walk(m)
			}
		case Union:
			for _, m := range v {
				walk(m)
			}
		case Complement:
			walk(v.Region)
		}
	}
	walk(r)
	return out
}
