// Package ui holds the few immediate-mode widgets the demos draw over the
// scene: buttons, checkboxes and sliders laid out in a Toolbar.
package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// Widget is anything the Toolbar can lay out. Handle receives the pointer in
// screen coordinates and reports whether the widget consumed it.
type Widget interface {
	Handle(x, y float64, pressed bool) bool
	Draw(screen *ebiten.Image)
	Place(x, y float64)
	Bounds() (x, y, w, h float64)
}

var borderColor = color.RGBA{R: 200, G: 200, B: 200, A: 255}

// box is the hit area shared by every widget.
type box struct {
	X, Y float64
	W, H float64
}

func (b *box) contains(x, y float64) bool {
	return x >= b.X && x <= b.X+b.W && y >= b.Y && y <= b.Y+b.H
}

func (b *box) Place(x, y float64) {
	b.X, b.Y = x, y
}

func (b *box) Bounds() (float64, float64, float64, float64) {
	return b.X, b.Y, b.W, b.H
}
