package geometry

import "math"

// Rect is an axis aligned rectangle with its origin at the minimum corner,
// the shape a scene object's bounds are usually given in.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// NewRect creates a rectangle from its minimum corner and size.
func NewRect(x, y, width, height float64) Rect {
	return Rect{X: x, Y: y, Width: width, Height: height}
}

// RectFromPoints returns the smallest rectangle containing every point.
func RectFromPoints(points ...Vector2D) Rect {
	if len(points) == 0 {
		return Rect{}
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range points {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Min returns the minimum corner.
func (r Rect) Min() Vector2D {
	return Vector2D{r.X, r.Y}
}

// Max returns the maximum corner.
func (r Rect) Max() Vector2D {
	return Vector2D{r.X + r.Width, r.Y + r.Height}
}

// Center returns the middle of the rectangle.
func (r Rect) Center() Vector2D {
	return Vector2D{r.X + r.Width/2, r.Y + r.Height/2}
}

// Empty reports a rectangle without area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Contains reports whether p is inside or on the border.
func (r Rect) Contains(p Vector2D) bool {
	return p.X >= r.X && p.X <= r.X+r.Width && p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// Overlaps reports whether the two rectangles share at least one point.
func (r Rect) Overlaps(o Rect) bool {
	return r.X <= o.X+o.Width && o.X <= r.X+r.Width &&
		r.Y <= o.Y+o.Height && o.Y <= r.Y+r.Height
}

// Expand grows the rectangle by d on every side.
func (r Rect) Expand(d float64) Rect {
	return Rect{X: r.X - d, Y: r.Y - d, Width: r.Width + 2*d, Height: r.Height + 2*d}
}

// Clamp returns p moved to the nearest point inside the rectangle.
func (r Rect) Clamp(p Vector2D) Vector2D {
	return Vector2D{
		X: math.Max(r.X, math.Min(r.X+r.Width, p.X)),
		Y: math.Max(r.Y, math.Min(r.Y+r.Height, p.Y)),
	}
}

// Polygon returns the rectangle outline wound counter-clockwise.
func (r Rect) Polygon() (Polygon, error) {
	return NewPolygon(
		Vector2D{r.X, r.Y},
		Vector2D{r.X + r.Width, r.Y},
		Vector2D{r.X + r.Width, r.Y + r.Height},
		Vector2D{r.X, r.Y + r.Height},
	)
}
