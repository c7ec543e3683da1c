package ui

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const sliderWidth = 120

// Slider maps a horizontal drag to a value in [Min, Max].
type Slider struct {
	box
	Label    string
	Value    float64
	Min, Max float64
	OnChange func(float64)
}

// NewSlider creates a slider with value clamped to [min, max].
func NewSlider(label string, min, max, value float64, onChange func(float64)) *Slider {
	s := &Slider{
		box:      box{W: sliderWidth, H: 16},
		Label:    label,
		Min:      min,
		Max:      max,
		OnChange: onChange,
	}
	s.Value = s.clamp(value)
	return s
}

func (s *Slider) Handle(x, y float64, pressed bool) bool {
	if !s.contains(x, y) {
		return false
	}
	if pressed && s.W > 0 {
		v := s.clamp(s.Min + (x-s.X)/s.W*(s.Max-s.Min))
		if v != s.Value {
			s.Value = v
			if s.OnChange != nil {
				s.OnChange(v)
			}
		}
	}
	return pressed
}

func (s *Slider) clamp(v float64) float64 {
	if v < s.Min {
		return s.Min
	}
	if v > s.Max {
		return s.Max
	}
	return v
}

func (s *Slider) Draw(screen *ebiten.Image) {
	vector.FillRect(screen, float32(s.X), float32(s.Y), float32(s.W), float32(s.H),
		color.RGBA{R: 80, G: 80, B: 80, A: 255}, true)
	ratio := 0.0
	if s.Max > s.Min {
		ratio = (s.Value - s.Min) / (s.Max - s.Min)
	}
	vector.FillRect(screen, float32(s.X), float32(s.Y), float32(s.W*ratio), float32(s.H),
		borderColor, true)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s %.2f", s.Label, s.Value), int(s.X), int(s.Y+s.H)+2)
}
