package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	toolbarPadding = 8
	toolbarGap     = 14
)

// Toolbar lays widgets out left to right in a strip and keeps pointer input
// that lands on it away from the scene.
type Toolbar struct {
	box
	Widgets []Widget
	BGColor color.RGBA
}

// NewToolbar creates an empty strip of the given size at (x, y).
func NewToolbar(x, y, width, height float64) *Toolbar {
	return &Toolbar{
		box:     box{X: x, Y: y, W: width, H: height},
		BGColor: color.RGBA{R: 40, G: 40, B: 45, A: 230},
	}
}

// Add appends w after the last widget and returns it.
func (t *Toolbar) Add(w Widget) Widget {
	x := t.X + toolbarPadding
	if n := len(t.Widgets); n > 0 {
		lx, _, lw, _ := t.Widgets[n-1].Bounds()
		x = lx + lw + toolbarGap
	}
	_, _, _, h := w.Bounds()
	w.Place(x, t.Y+(t.H-h)/2-2)
	t.Widgets = append(t.Widgets, w)
	return w
}

// Captures reports whether a pointer at (x, y) belongs to the toolbar.
func (t *Toolbar) Captures(x, y float64) bool {
	return t.contains(x, y)
}

// Handle dispatches the pointer to every widget. It returns true when the
// pointer is over the toolbar.
func (t *Toolbar) Handle(x, y float64, pressed bool) bool {
	for _, w := range t.Widgets {
		w.Handle(x, y, pressed)
	}
	return t.Captures(x, y)
}

// Update reads the mouse and handles it. It returns true when the toolbar
// took the input.
func (t *Toolbar) Update() bool {
	mx, my := ebiten.CursorPosition()
	return t.Handle(float64(mx), float64(my), ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft))
}

func (t *Toolbar) Draw(screen *ebiten.Image) {
	vector.FillRect(screen, float32(t.X), float32(t.Y), float32(t.W), float32(t.H), t.BGColor, true)
	for _, w := range t.Widgets {
		w.Draw(screen)
	}
}
