package geometry

import (
	"errors"
	"fmt"
	"math"
)

// Epsilon is the tolerance used by every approximate comparison in this package.
const (
	Epsilon = 1e-9
)

// ErrDivideByZero is returned by Div when the scalar is zero.
var ErrDivideByZero = errors.New("vector cannot be divided by zero")

// Vector2D represents a 2D vector or point in cartesian space.
// Fields are public because they are plain data: v := Vector2D{1, 2}
type Vector2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// NewVector creates a new Vector2D.
func NewVector(x, y float64) Vector2D {
	return Vector2D{X: x, Y: y}
}

// NewVectorPolar creates a new Vector2D from polar coordinates.
// theta is in radians.
func NewVectorPolar(radius, theta float64) Vector2D {
	x := radius * math.Cos(theta)
	y := radius * math.Sin(theta)

	// Handle standard floating point precision issues near zero
	if math.Abs(x) < Epsilon {
		x = 0
	}
	if math.Abs(y) < Epsilon {
		y = 0
	}

	return Vector2D{X: x, Y: y}
}

// String implements the fmt.Stringer interface.
func (v Vector2D) String() string {
	return fmt.Sprintf("(%.2f, %.2f)", v.X, v.Y)
}

// ---------------------------------------------------------------------
// Arithmetic Operations
// Value receivers returning new values: vectors are never mutated in place.
// ---------------------------------------------------------------------

// Add adds two vectors and returns the result.
func (v Vector2D) Add(other Vector2D) Vector2D {
	return Vector2D{v.X + other.X, v.Y + other.Y}
}

// Sub subtracts the other vector from the current vector.
func (v Vector2D) Sub(other Vector2D) Vector2D {
	return Vector2D{v.X - other.X, v.Y - other.Y}
}

// Mul scales the vector by a scalar value.
func (v Vector2D) Mul(scalar float64) Vector2D {
	return Vector2D{v.X * scalar, v.Y * scalar}
}

// Div scales the vector by 1/scalar.
// A zero scalar yields an infinite vector together with ErrDivideByZero.
func (v Vector2D) Div(scalar float64) (Vector2D, error) {
	if scalar == 0 {
		return Vector2D{math.Inf(1), math.Inf(1)}, ErrDivideByZero
	}
	return Vector2D{v.X / scalar, v.Y / scalar}, nil
}

// Neg returns the opposite vector.
func (v Vector2D) Neg() Vector2D {
	return Vector2D{-v.X, -v.Y}
}

// ---------------------------------------------------------------------
// Vector2D Products
// ---------------------------------------------------------------------

// Dot calculates the dot product of two vectors.
func (v Vector2D) Dot(other Vector2D) float64 {
	return v.X*other.X + v.Y*other.Y
}

// Cross calculates the 2D scalar cross product (z-component of 3D cross product).
// Positive when other is counter-clockwise from v.
func (v Vector2D) Cross(other Vector2D) float64 {
	return v.X*other.Y - v.Y*other.X
}

// Perp returns v rotated by +90 degrees.
func (v Vector2D) Perp() Vector2D {
	return Vector2D{-v.Y, v.X}
}

// ---------------------------------------------------------------------
// Magnitude and Normalization
// ---------------------------------------------------------------------

// LenSqr calculates the squared magnitude of the vector.
// Use it for comparisons, it avoids the square root.
func (v Vector2D) LenSqr() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Len calculates the magnitude (length) of the vector.
func (v Vector2D) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Normalize returns a unit vector in the same direction.
// Returns a zero vector if the length is effectively zero.
func (v Vector2D) Normalize() Vector2D {
	l := v.Len()
	if l < Epsilon {
		return Vector2D{0, 0}
	}
	return v.Mul(1 / l)
}

// ClampLen returns v shortened to max when it is longer, v otherwise.
func (v Vector2D) ClampLen(max float64) Vector2D {
	if max <= 0 {
		return Vector2D{}
	}
	l := v.Len()
	if l <= max {
		return v
	}
	return v.Mul(max / l)
}

// IsZero reports whether both components are within Epsilon of zero.
func (v Vector2D) IsZero() bool {
	return math.Abs(v.X) <= Epsilon && math.Abs(v.Y) <= Epsilon
}

// IsFinite reports whether neither component is NaN or infinite.
func (v Vector2D) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}

// ---------------------------------------------------------------------
// Geometric Utilities
// ---------------------------------------------------------------------

// DistanceTo calculates the Euclidean distance to another vector.
func (v Vector2D) DistanceTo(other Vector2D) float64 {
	return v.Sub(other).Len()
}

// DistanceSquaredTo calculates the squared Euclidean distance to another vector.
func (v Vector2D) DistanceSquaredTo(other Vector2D) float64 {
	return v.Sub(other).LenSqr()
}

// Angle returns the angle (in radians) of the vector relative to the X-axis.
// Range: [-Pi, Pi]
func (v Vector2D) Angle() float64 {
	return math.Atan2(v.Y, v.X)
}

// AngleTo returns the heading (in radians) of the direction from v to other.
func (v Vector2D) AngleTo(other Vector2D) float64 {
	return math.Atan2(other.Y-v.Y, other.X-v.X)
}

// Rotate rotates the vector by angle (in radians) around the origin (0,0).
func (v Vector2D) Rotate(angle float64) Vector2D {
	cosTheta := math.Cos(angle)
	sinTheta := math.Sin(angle)
	return Vector2D{
		X: v.X*cosTheta - v.Y*sinTheta,
		Y: v.X*sinTheta + v.Y*cosTheta,
	}
}

// RotateAround rotates the vector by angle (radians) around a specific center point.
func (v Vector2D) RotateAround(angle float64, center Vector2D) Vector2D {
	return v.Sub(center).Rotate(angle).Add(center)
}

// Lerp (Linear Interpolate) calculates a point between v and target based on t [0, 1].
func (v Vector2D) Lerp(target Vector2D, t float64) Vector2D {
	return v.Add(target.Sub(v).Mul(t))
}

// Project projects vector v onto vector on.
func (v Vector2D) Project(on Vector2D) Vector2D {
	scalar := v.Dot(on) / on.LenSqr()
	return on.Mul(scalar)
}

// ---------------------------------------------------------------------
// Comparison
// ---------------------------------------------------------------------

// Eq checks if two vectors are approximately equal using the Epsilon constant.
func (v Vector2D) Eq(other Vector2D) bool {
	return math.Abs(v.X-other.X) <= Epsilon && math.Abs(v.Y-other.Y) <= Epsilon
}

// EqWithin checks approximate equality with a caller supplied tolerance.
func (v Vector2D) EqWithin(other Vector2D, tolerance float64) bool {
	return math.Abs(v.X-other.X) <= tolerance && math.Abs(v.Y-other.Y) <= tolerance
}
