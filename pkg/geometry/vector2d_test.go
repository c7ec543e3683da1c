package geometry

import (
	"errors"
	"math"
	"testing"
)

// floatEquals is a helper for testing scalar float values with epsilon.
func floatEquals(a, b float64) bool {
	return math.Abs(a-b) <= Epsilon
}

func TestNewVectorPolar(t *testing.T) {
	tests := []struct {
		name   string
		radius float64
		theta  float64
		want   Vector2D
	}{
		{"Zero radius", 0, 0, Vector2D{0, 0}},
		{"Zero angle (X-axis)", 10, 0, Vector2D{10, 0}},
		{"90 degrees (Y-axis)", 10, math.Pi / 2, Vector2D{0, 10}},
		{"180 degrees (Negative X)", 10, math.Pi, Vector2D{-10, 0}},
		{"45 degrees", math.Sqrt(2), math.Pi / 4, Vector2D{1, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewVectorPolar(tt.radius, tt.theta)
			if !got.Eq(tt.want) {
				t.Errorf("NewVectorPolar(%v, %v) = %v; want %v", tt.radius, tt.theta, got, tt.want)
			}
		})
	}
}

func TestVector_String(t *testing.T) {
	v := Vector2D{1.234, 5.678}
	want := "(1.23, 5.68)"
	if got := v.String(); got != want {
		t.Errorf("Vector2D.String() = %q; want %q", got, want)
	}
}

func TestVector_Arithmetic(t *testing.T) {
	v1 := Vector2D{1, 2}
	v2 := Vector2D{3, 4}

	t.Run("Add", func(t *testing.T) {
		want := Vector2D{4, 6}
		if got := v1.Add(v2); !got.Eq(want) {
			t.Errorf("%v.Add(%v) = %v; want %v", v1, v2, got, want)
		}
	})

	t.Run("Sub", func(t *testing.T) {
		want := Vector2D{-2, -2}
		if got := v1.Sub(v2); !got.Eq(want) {
			t.Errorf("%v.Sub(%v) = %v; want %v", v1, v2, got, want)
		}
	})

	t.Run("Neg", func(t *testing.T) {
		want := Vector2D{-1, -2}
		if got := v1.Neg(); !got.Eq(want) {
			t.Errorf("%v.Neg() = %v; want %v", v1, got, want)
		}
	})

	t.Run("Div", func(t *testing.T) {
		want := Vector2D{0.5, 1}
		got, err := v1.Div(2)
		if err != nil {
			t.Fatalf("%v.Div(2) returned error %v", v1, err)
		}
		if !got.Eq(want) {
			t.Errorf("%v.Div(2) = %v; want %v", v1, got, want)
		}
	})

	t.Run("DivByZero", func(t *testing.T) {
		got, err := v1.Div(0)
		if !errors.Is(err, ErrDivideByZero) {
			t.Errorf("%v.Div(0) error = %v; want ErrDivideByZero", v1, err)
		}
		if got.IsFinite() {
			t.Errorf("Div(0) should result in Inf coordinates, got %v", got)
		}
	})
}

func TestVector_Products(t *testing.T) {
	x := Vector2D{1, 0}
	y := Vector2D{0, 1}

	if got := x.Dot(y); got != 0 {
		t.Errorf("Dot orthogonal = %v; want 0", got)
	}
	if got := x.Cross(y); got != 1 {
		t.Errorf("Cross X,Y = %v; want 1", got)
	}
	if got := y.Cross(x); got != -1 {
		t.Errorf("Cross Y,X = %v; want -1", got)
	}
	if got := x.Perp(); !got.Eq(y) {
		t.Errorf("Perp X = %v; want %v", got, y)
	}
}

func TestVector_Magnitude(t *testing.T) {
	v := Vector2D{3, 4} // 3-4-5 triangle

	t.Run("Len", func(t *testing.T) {
		if got := v.Len(); got != 5 {
			t.Errorf("Len = %v; want 5", got)
		}
		if got := v.LenSqr(); got != 25 {
			t.Errorf("LenSqr = %v; want 25", got)
		}
	})

	t.Run("Normalize", func(t *testing.T) {
		got := v.Normalize()
		if !got.Eq(Vector2D{0.6, 0.8}) {
			t.Errorf("Normalize = %v; want (0.6, 0.8)", got)
		}
		if !floatEquals(got.Len(), 1.0) {
			t.Errorf("Normalize length = %v; want 1", got.Len())
		}
		if zero := (Vector2D{}).Normalize(); !zero.IsZero() {
			t.Errorf("Normalize(0,0) = %v; want (0,0)", zero)
		}
	})

	t.Run("ClampLen", func(t *testing.T) {
		tests := []struct {
			name string
			max  float64
			want Vector2D
		}{
			{"shorter than max", 10, Vector2D{3, 4}},
			{"exactly max", 5, Vector2D{3, 4}},
			{"longer than max", 2.5, Vector2D{1.5, 2}},
			{"zero max", 0, Vector2D{}},
		}
		for _, tt := range tests {
			if got := v.ClampLen(tt.max); !got.Eq(tt.want) {
				t.Errorf("%s: ClampLen(%v) = %v; want %v", tt.name, tt.max, got, tt.want)
			}
		}
	})
}

func TestVector_Distance(t *testing.T) {
	v1 := Vector2D{1, 1}
	v2 := Vector2D{4, 5} // dx=3, dy=4, dist=5

	if got := v1.DistanceTo(v2); got != 5 {
		t.Errorf("DistanceTo = %v; want 5", got)
	}
	if got := v1.DistanceSquaredTo(v2); got != 25 {
		t.Errorf("DistanceSquaredTo = %v; want 25", got)
	}
}

func TestVector_Angles(t *testing.T) {
	tests := []struct {
		v    Vector2D
		want float64
	}{
		{Vector2D{1, 0}, 0},
		{Vector2D{0, 1}, math.Pi / 2},
		{Vector2D{-1, 0}, math.Pi},
		{Vector2D{0, -1}, -math.Pi / 2},
	}
	for _, tt := range tests {
		if got := tt.v.Angle(); !floatEquals(got, tt.want) {
			t.Errorf("%v.Angle() = %v; want %v", tt.v, got, tt.want)
		}
	}

	if got := (Vector2D{1, 1}).AngleTo(Vector2D{1, 2}); !floatEquals(got, math.Pi/2) {
		t.Errorf("AngleTo = %v; want %v", got, math.Pi/2)
	}
}

func TestVector_Transformations(t *testing.T) {
	if got := (Vector2D{1, 0}).Rotate(math.Pi / 2); !got.Eq(Vector2D{0, 1}) {
		t.Errorf("Rotate(90) = %v; want (0, 1)", got)
	}
	if got := (Vector2D{2, 1}).RotateAround(math.Pi/2, Vector2D{1, 1}); !got.Eq(Vector2D{1, 2}) {
		t.Errorf("RotateAround = %v; want (1, 2)", got)
	}
	if got := (Vector2D{0, 0}).Lerp(Vector2D{10, 10}, 0.5); !got.Eq(Vector2D{5, 5}) {
		t.Errorf("Lerp(0.5) = %v; want (5, 5)", got)
	}
	if got := (Vector2D{3, 3}).Project(Vector2D{5, 0}); !got.Eq(Vector2D{3, 0}) {
		t.Errorf("Project = %v; want (3, 0)", got)
	}
}

func TestVector_Eq(t *testing.T) {
	v := Vector2D{1, 2}

	if !v.Eq(Vector2D{1 + Epsilon/2, 2 - Epsilon/2}) {
		t.Error("Eq epsilon match failed")
	}
	if v.Eq(Vector2D{1.1, 2}) {
		t.Error("Eq mismatch failed")
	}
	if !v.EqWithin(Vector2D{1.05, 2}, 0.1) {
		t.Error("EqWithin tolerance match failed")
	}
}

func TestVector_IsFinite(t *testing.T) {
	if !(Vector2D{1, 2}).IsFinite() {
		t.Error("finite vector reported as non finite")
	}
	if (Vector2D{math.NaN(), 0}).IsFinite() {
		t.Error("NaN vector reported as finite")
	}
}
