package geometry

import (
	"math"
	"sort"
)

// mergeTolerance is how close two computed points must be to count as the
// same outline vertex.
const mergeTolerance = 1e-7

// outline returns the outer boundary of a counter-clockwise ring that may
// cross or overlap itself. Loops the ring makes inside its own area are
// dropped and collinear vertices merged. It reports false when no closed
// boundary could be traced.
func outline(ring []Vector2D) ([]Vector2D, bool) {
	n := len(ring)
	if n < 3 {
		return nil, false
	}

	var verts []Vector2D
	vertex := func(p Vector2D) int {
		for i, v := range verts {
			if v.EqWithin(p, mergeTolerance) {
				return i
			}
		}
		verts = append(verts, p)
		return len(verts) - 1
	}

	// split every edge at the points where other edges meet it
	out := make(map[int][]int)
	for i := 0; i < n; i++ {
		e := Segment{A: ring[i], B: ring[(i+1)%n]}
		if e.Len() <= Epsilon {
			continue
		}
		ts := []float64{0, 1}
		for j := 0; j < n; j++ {
			if j == i {
				continue
			}
			ts = append(ts, meetParams(e, Segment{A: ring[j], B: ring[(j+1)%n]})...)
		}
		sort.Float64s(ts)

		prev := vertex(e.A)
		for _, t := range ts[1:] {
			next := vertex(e.At(t))
			if next == prev {
				continue
			}
			if !containsInt(out[prev], next) {
				out[prev] = append(out[prev], next)
			}
			prev = next
		}
	}

	// the lowest, then leftmost, vertex is on the outer boundary
	start := 0
	for i, v := range verts {
		s := verts[start]
		if v.Y < s.Y || (v.Y == s.Y && v.X < s.X) {
			start = i
		}
	}

	// walk counter-clockwise taking the rightmost turn at every junction
	path := []int{start}
	heading := Vector2D{X: 1}
	cur := start
	for steps := 0; ; steps++ {
		if steps > len(verts)+n {
			return nil, false
		}
		next := rightmost(verts, cur, heading, out[cur])
		if next < 0 {
			return nil, false
		}
		heading = verts[next].Sub(verts[cur])
		cur = next
		if cur == start {
			break
		}
		path = append(path, cur)
	}

	pts := make([]Vector2D, 0, len(path))
	for _, id := range path {
		pts = append(pts, verts[id])
	}
	return dropCollinear(pts), true
}

// meetParams returns the parameters along e where o touches it: a crossing
// point, or the ends of o when both lie on one line.
func meetParams(e, o Segment) []float64 {
	d := e.B.Sub(e.A)
	f := o.B.Sub(o.A)
	denom := d.Cross(f)
	if math.Abs(denom) <= Epsilon*d.Len()*f.Len() {
		var ts []float64
		for _, p := range []Vector2D{o.A, o.B} {
			if e.Touches(p, mergeTolerance) {
				ts = append(ts, clampUnit(e.Param(p)))
			}
		}
		return ts
	}
	w := o.A.Sub(e.A)
	t := w.Cross(f) / denom
	u := w.Cross(d) / denom
	const slack = 1e-12
	if t < -slack || t > 1+slack || u < -slack || u > 1+slack {
		return nil
	}
	return []float64{clampUnit(t)}
}

// rightmost picks the outgoing vertex whose direction turns furthest
// clockwise from heading.
func rightmost(verts []Vector2D, from int, heading Vector2D, candidates []int) int {
	best := -1
	bestTurn := math.Inf(1)
	for _, c := range candidates {
		dir := verts[c].Sub(verts[from])
		turn := math.Atan2(heading.Cross(dir), heading.Dot(dir))
		if turn < bestTurn {
			best, bestTurn = c, turn
		}
	}
	return best
}

func dropCollinear(pts []Vector2D) []Vector2D {
	for changed := true; changed && len(pts) > 3; {
		changed = false
		for i := 0; i < len(pts); i++ {
			prev := pts[(i+len(pts)-1)%len(pts)]
			next := pts[(i+1)%len(pts)]
			if orientation(prev, pts[i], next) == 0 && pts[i].Sub(prev).Dot(next.Sub(pts[i])) >= 0 {
				pts = append(pts[:i], pts[i+1:]...)
				changed = true
				break
			}
		}
	}
	return pts
}

// selfIntersects reports whether two edges of the closed ring meet anywhere
// other than at the vertex they share.
func selfIntersects(ring []Vector2D) bool {
	n := len(ring)
	for i := 0; i < n; i++ {
		a := Segment{A: ring[i], B: ring[(i+1)%n]}
		for j := i + 1; j < n; j++ {
			b := Segment{A: ring[j], B: ring[(j+1)%n]}
			if a.CrossesProperly(b) {
				return true
			}
			if j == i+1 || (i == 0 && j == n-1) {
				// neighbours may only meet at their shared vertex, unless one
				// folds back over the other
				d1, d2 := a.B.Sub(a.A), b.B.Sub(b.A)
				if math.Abs(d1.Cross(d2)) <= Epsilon*d1.Len()*d2.Len() && d1.Dot(d2) < 0 {
					return true
				}
				continue
			}
			if a.Touches(b.A, Epsilon) || a.Touches(b.B, Epsilon) || b.Touches(a.A, Epsilon) || b.Touches(a.B, Epsilon) {
				return true
			}
		}
	}
	return false
}

func clampUnit(t float64) float64 {
	return math.Max(0, math.Min(1, t))
}

func containsInt(xs []int, x int) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}
