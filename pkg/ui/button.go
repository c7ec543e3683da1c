package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Button fires OnClick once per press.
type Button struct {
	box
	Label   string
	OnClick func()

	hover   bool
	clicked bool // already fired for the current press

	BGColor    color.RGBA
	HoverColor color.RGBA
}

// NewButton creates a button sized to fit its label.
func NewButton(label string, onClick func()) *Button {
	return &Button{
		box:        box{W: float64(len(label))*6 + 16, H: 20},
		Label:      label,
		OnClick:    onClick,
		BGColor:    color.RGBA{R: 80, G: 120, B: 180, A: 255},
		HoverColor: color.RGBA{R: 100, G: 150, B: 220, A: 255},
	}
}

func (b *Button) Handle(x, y float64, pressed bool) bool {
	b.hover = b.contains(x, y)
	if !b.hover || !pressed {
		b.clicked = false
		return false
	}
	if !b.clicked {
		b.clicked = true
		if b.OnClick != nil {
			b.OnClick()
		}
	}
	return true
}

func (b *Button) Draw(screen *ebiten.Image) {
	bg := b.BGColor
	if b.hover {
		bg = b.HoverColor
	}
	vector.FillRect(screen, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), bg, true)
	vector.StrokeRect(screen, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), 2, borderColor, true)
	ebitenutil.DebugPrintAt(screen, b.Label, int(b.X)+8, int(b.Y)+2)
}
