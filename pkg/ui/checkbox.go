package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const checkboxSize = 16

// Checkbox toggles Value on each press and reports the new value to
// OnChange.
type Checkbox struct {
	box
	Label    string
	Value    bool
	OnChange func(bool)

	clicked bool
}

// NewCheckbox creates a checkbox followed by its label.
func NewCheckbox(label string, value bool, onChange func(bool)) *Checkbox {
	return &Checkbox{
		box:      box{W: checkboxSize + 6 + float64(len(label))*6, H: checkboxSize},
		Label:    label,
		Value:    value,
		OnChange: onChange,
	}
}

// Set changes the value without calling OnChange.
func (c *Checkbox) Set(value bool) {
	c.Value = value
}

func (c *Checkbox) Handle(x, y float64, pressed bool) bool {
	if !c.contains(x, y) || !pressed {
		c.clicked = false
		return false
	}
	if !c.clicked {
		c.clicked = true
		c.Value = !c.Value
		if c.OnChange != nil {
			c.OnChange(c.Value)
		}
	}
	return true
}

func (c *Checkbox) Draw(screen *ebiten.Image) {
	vector.StrokeRect(screen, float32(c.X), float32(c.Y), checkboxSize, checkboxSize, 2, borderColor, true)
	if c.Value {
		vector.FillRect(screen, float32(c.X+2), float32(c.Y+2), checkboxSize-4, checkboxSize-4,
			color.RGBA{R: 100, G: 200, B: 100, A: 255}, true)
	}
	ebitenutil.DebugPrintAt(screen, c.Label, int(c.X)+checkboxSize+6, int(c.Y))
}
