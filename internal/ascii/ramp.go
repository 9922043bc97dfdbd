package ascii

import (
	"errors"
	"math"
)

var ErrShortRamp = errors.New("ascii: ramp needs at least two characters")

// Ramp orders glyphs from darkest-appearing to brightest-appearing.
// Index 0 stands for luminance 0 and the last index for luminance 1.
type Ramp []rune

func NewRamp(s string) (Ramp, error) {
	r := Ramp(s)
	if len(r) < 2 {
		return nil, ErrShortRamp
	}
	return r, nil
}

// Index maps a luminance in [0,1] to a ramp position.
func (r Ramp) Index(l float64) int {
	if math.IsNaN(l) {
		l = 0
	}
	l = clamp01(l)
	i := int(math.Round(l * float64(len(r)-1)))
	if i < 0 {
		return 0
	}
	if i > len(r)-1 {
		return len(r) - 1
	}
	return i
}

func (r Ramp) Char(l float64) rune {
	return r[r.Index(l)]
}

// Luminance returns Rec. 709 relative luminance for 8-bit channels.
func Luminance(red, green, blue uint8) float64 {
	return clamp01((0.2126*float64(red) + 0.7152*float64(green) + 0.0722*float64(blue)) / 255)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
