package geometry

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// ErrDegeneratePolygon is returned when fewer than three distinct points
// remain or the points enclose no area.
var ErrDegeneratePolygon = errors.New("degenerate polygon")

// miterLimit caps how far a buffered corner may move away from its source
// vertex, in multiples of the buffer radius. Sharper corners are bevelled.
const miterLimit = 4.0

// Polygon is an immutable simple polygon. It may be concave and may be wound
// either way; the winding is detected once at construction.
type Polygon struct {
	points []Vector2D
	area   float64 // signed, positive for counter-clockwise
	bounds Rect
}

// NewPolygon copies points into a Polygon. Consecutive duplicates (and a
// closing point equal to the first) are dropped.
func NewPolygon(points ...Vector2D) (Polygon, error) {
	pts := make([]Vector2D, 0, len(points))
	for _, p := range points {
		if !p.IsFinite() {
			return Polygon{}, fmt.Errorf("%w: non finite point %v", ErrDegeneratePolygon, p)
		}
		if len(pts) > 0 && pts[len(pts)-1].Eq(p) {
			continue
		}
		pts = append(pts, p)
	}
	for len(pts) > 1 && pts[0].Eq(pts[len(pts)-1]) {
		pts = pts[:len(pts)-1]
	}
	if len(pts) < 3 {
		return Polygon{}, fmt.Errorf("%w: %d distinct points", ErrDegeneratePolygon, len(pts))
	}

	area := signedArea(pts)
	if math.Abs(area) <= Epsilon {
		return Polygon{}, fmt.Errorf("%w: zero area", ErrDegeneratePolygon)
	}
	return Polygon{points: pts, area: area, bounds: boundsOf(pts)}, nil
}

// MustPolygon is NewPolygon for literals known to be valid. It panics otherwise.
func MustPolygon(points ...Vector2D) Polygon {
	p, err := NewPolygon(points...)
	if err != nil {
		panic(err)
	}
	return p
}

// Points returns a copy of the vertices.
func (p Polygon) Points() []Vector2D {
	return append([]Vector2D(nil), p.points...)
}

// Len returns the number of vertices.
func (p Polygon) Len() int {
	return len(p.points)
}

// Vertex returns vertex i, wrapping around in both directions.
func (p Polygon) Vertex(i int) Vector2D {
	n := len(p.points)
	return p.points[((i%n)+n)%n]
}

// Edges returns the closing edge list, edge i going from vertex i to i+1.
func (p Polygon) Edges() []Segment {
	edges := make([]Segment, len(p.points))
	for i := range p.points {
		edges[i] = Segment{A: p.points[i], B: p.Vertex(i + 1)}
	}
	return edges
}

// SignedArea is positive for counter-clockwise winding.
func (p Polygon) SignedArea() float64 {
	return p.area
}

// Area returns the absolute enclosed area.
func (p Polygon) Area() float64 {
	return math.Abs(p.area)
}

// IsCCW reports a counter-clockwise winding.
func (p Polygon) IsCCW() bool {
	return p.area > 0
}

// Perimeter returns the total edge length.
func (p Polygon) Perimeter() float64 {
	total := 0.0
	for _, e := range p.Edges() {
		total += e.Len()
	}
	return total
}

// Bounds returns the axis aligned bounding box.
func (p Polygon) Bounds() Rect {
	return p.bounds
}

// Buffer returns the polygon grown outward by radius. Each vertex is moved
// to the intersection of its two offset edges; convex corners sharper than
// the miter limit are replaced by two bevel vertices. Where a concave part is
// narrower than twice the radius the offset edges overlap, and only the
// outer boundary of the grown ring is kept, which fills the gap. A zero or
// negative radius returns the polygon unchanged.
func (p Polygon) Buffer(radius float64) Polygon {
	if radius <= 0 {
		return p
	}
	pts := p.Points()
	if !p.IsCCW() {
		for i, j := 0, len(pts)-1; i < j; i, j = i+1, j-1 {
			pts[i], pts[j] = pts[j], pts[i]
		}
	}

	n := len(pts)
	out := make([]Vector2D, 0, n)
	concave := false
	for i, v := range pts {
		prev, next := pts[(i+n-1)%n], pts[(i+1)%n]
		e1 := v.Sub(prev).Normalize()
		e2 := next.Sub(v).Normalize()
		n1 := Vector2D{e1.Y, -e1.X}
		n2 := Vector2D{e2.Y, -e2.X}
		reflex := orientation(prev, v, next) < 0
		concave = concave || reflex

		denom := 1 + n1.Dot(n2)
		if denom > Epsilon {
			miter := n1.Add(n2).Mul(radius / denom)
			if miter.Len() <= miterLimit*radius {
				out = append(out, v.Add(miter))
				continue
			}
		}
		if reflex {
			// the offset edges cross near v; the loop through v is trimmed
			// by the outline below
			out = append(out, v.Add(n1.Mul(radius)), v, v.Add(n2.Mul(radius)))
			continue
		}
		out = append(out, v.Add(n1.Mul(radius)), v.Add(n2.Mul(radius)))
	}

	if concave && selfIntersects(out) {
		if ring, ok := outline(out); ok {
			out = ring
		}
	}
	buffered, err := NewPolygon(out...)
	if err != nil {
		// growing a valid polygon cannot remove its area
		return p
	}
	return buffered
}

// OnBoundary reports whether q lies on an edge within Epsilon.
func (p Polygon) OnBoundary(q Vector2D) bool {
	for _, e := range p.Edges() {
		if e.Touches(q, Epsilon) {
			return true
		}
	}
	return false
}

// ContainsStrict reports whether q lies in the interior. Boundary points are
// outside.
func (p Polygon) ContainsStrict(q Vector2D) bool {
	if !p.bounds.Contains(q) || p.OnBoundary(q) {
		return false
	}
	inside := false
	n := len(p.points)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := p.points[i], p.points[j]
		if (a.Y > q.Y) != (b.Y > q.Y) {
			x := a.X + (q.Y-a.Y)*(b.X-a.X)/(b.Y-a.Y)
			if q.X < x {
				inside = !inside
			}
		}
	}
	return inside
}

// ClosestBoundaryPoint returns the point on the polygon outline nearest to q.
func (p Polygon) ClosestBoundaryPoint(q Vector2D) Vector2D {
	best := p.points[0]
	bestDist := math.Inf(1)
	for _, e := range p.Edges() {
		c := e.ClosestPoint(q)
		if d := c.DistanceSquaredTo(q); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

// BlocksSegment reports whether any part of s passes through the interior.
// A segment may slide along an edge or touch vertices without being blocked.
func (p Polygon) BlocksSegment(s Segment) bool {
	if !p.bounds.Expand(Epsilon).Overlaps(RectFromPoints(s.A, s.B)) {
		return false
	}
	if s.Len() <= Epsilon {
		return p.ContainsStrict(s.A)
	}
	for _, e := range p.Edges() {
		if s.CrossesProperly(e) {
			return true
		}
	}

	// Without proper crossings the segment can only enter the interior
	// through a vertex, so split it at every vertex it touches and probe the
	// middle of each piece.
	ts := []float64{0, 1}
	for _, v := range p.points {
		if s.Touches(v, Epsilon) {
			ts = append(ts, math.Max(0, math.Min(1, s.Param(v))))
		}
	}
	sort.Float64s(ts)
	for i := 1; i < len(ts); i++ {
		if ts[i]-ts[i-1] <= Epsilon {
			continue
		}
		if p.ContainsStrict(s.At((ts[i] + ts[i-1]) / 2)) {
			return true
		}
	}
	return false
}

func signedArea(pts []Vector2D) float64 {
	sum := 0.0
	for i := range pts {
		j := (i + 1) % len(pts)
		sum += pts[i].Cross(pts[j])
	}
	return sum / 2
}

func boundsOf(pts []Vector2D) Rect {
	return RectFromPoints(pts...)
}
