package geometry

import "math"

// Segment is the straight line piece between A and B.
type Segment struct {
	A, B Vector2D
}

// NewSegment creates a segment from a to b.
func NewSegment(a, b Vector2D) Segment {
	return Segment{A: a, B: b}
}

// Len returns the length of the segment.
func (s Segment) Len() float64 {
	return s.A.DistanceTo(s.B)
}

// At returns the point at parameter t, A for t=0 and B for t=1.
func (s Segment) At(t float64) Vector2D {
	return s.A.Lerp(s.B, t)
}

// Param returns the parameter of the projection of p on the supporting line.
// It is not clamped to [0, 1].
func (s Segment) Param(p Vector2D) float64 {
	d := s.B.Sub(s.A)
	l := d.LenSqr()
	if l < Epsilon*Epsilon {
		return 0
	}
	return p.Sub(s.A).Dot(d) / l
}

// ClosestPoint returns the point of the segment nearest to p.
func (s Segment) ClosestPoint(p Vector2D) Vector2D {
	t := math.Max(0, math.Min(1, s.Param(p)))
	return s.At(t)
}

// DistanceTo returns the shortest distance between p and the segment.
func (s Segment) DistanceTo(p Vector2D) float64 {
	return p.DistanceTo(s.ClosestPoint(p))
}

// Touches reports whether p lies on the segment within tolerance.
func (s Segment) Touches(p Vector2D, tolerance float64) bool {
	return s.DistanceTo(p) <= tolerance
}

// CrossesProperly reports whether s and o intersect at a single point that is
// interior to both segments. Touching at an endpoint, grazing a vertex or
// running collinear along each other does not count.
func (s Segment) CrossesProperly(o Segment) bool {
	d1 := orientation(o.A, o.B, s.A)
	d2 := orientation(o.A, o.B, s.B)
	d3 := orientation(s.A, s.B, o.A)
	d4 := orientation(s.A, s.B, o.B)
	return d1*d2 < 0 && d3*d4 < 0
}

// orientation returns +1 when c is left of a->b, -1 when right and 0 when
// collinear within a tolerance scaled to the segment length.
func orientation(a, b, c Vector2D) int {
	ab := b.Sub(a)
	cross := ab.Cross(c.Sub(a))
	tol := Epsilon * math.Max(1, ab.Len())
	switch {
	case cross > tol:
		return 1
	case cross < -tol:
		return -1
	default:
		return 0
	}
}

// Intersection returns the single point where s and o meet. Parallel
// segments, collinear ones included, report false.
func (s Segment) Intersection(o Segment) (Vector2D, bool) {
	d := s.B.Sub(s.A)
	f := o.B.Sub(o.A)
	denom := d.Cross(f)
	if math.Abs(denom) <= Epsilon*d.Len()*f.Len() {
		return Vector2D{}, false
	}
	w := o.A.Sub(s.A)
	t := w.Cross(f) / denom
	u := w.Cross(d) / denom
	if t < 0 || t > 1 || u < 0 || u > 1 {
		return Vector2D{}, false
	}
	return s.At(t), true
}
