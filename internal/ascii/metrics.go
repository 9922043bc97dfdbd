package ascii

import (
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
)

// CellMetrics is the size of one monospace character cell. Rendered art
// depends on it, so the same subject can differ between fonts.
type CellMetrics struct {
	Width  float64
	Height float64
}

// Aspect returns Width/Height, or 0.5 when the metrics are unusable.
func (m CellMetrics) Aspect() float64 {
	if m.Width <= 0 || m.Height <= 0 {
		return 0.5
	}
	return m.Width / m.Height
}

// MeasureFace reads the advance of 'M' and the line height of face.
func MeasureFace(face font.Face) CellMetrics {
	adv, ok := face.GlyphAdvance('M')
	if !ok {
		adv = font.MeasureString(face, "M")
	}
	m := face.Metrics()
	return CellMetrics{
		Width:  float64(adv) / 64,
		Height: float64(m.Height) / 64,
	}
}

// DefaultCellMetrics measures Go Mono at 16pt.
func DefaultCellMetrics() CellMetrics {
	f, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return CellMetrics{Width: 1, Height: 2}
	}
	face := truetype.NewFace(f, &truetype.Options{Size: 16, DPI: 72})
	defer face.Close()
	return MeasureFace(face)
}

// CellMetricsFor uses width and height when both are set and measures the
// default face otherwise.
func CellMetricsFor(width, height float64) CellMetrics {
	if width > 0 && height > 0 {
		return CellMetrics{Width: width, Height: height}
	}
	return DefaultCellMetrics()
}
