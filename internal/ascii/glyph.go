package ascii

import (
	"fmt"
	"image"
	"os"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
)

const (
	GlyphCanvas = 512
	glyphScale  = 0.8
)

// GlyphSynth draws short strings onto a square light canvas so they can be
// rasterized like any other image.
type GlyphSynth struct {
	font *truetype.Font
	size int
}

func NewGlyphSynth(ttf []byte) (*GlyphSynth, error) {
	if len(ttf) == 0 {
		ttf = goregular.TTF
	}
	f, err := truetype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("ascii: parse font: %w", err)
	}
	return &GlyphSynth{font: f, size: GlyphCanvas}, nil
}

// LoadGlyphSynth reads a TTF from path; an empty path selects Go Regular.
func LoadGlyphSynth(path string) (*GlyphSynth, error) {
	if path == "" {
		return NewGlyphSynth(nil)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	return NewGlyphSynth(data)
}

func (g *GlyphSynth) Render(text string) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, g.size, g.size))
	draw.Draw(dst, dst.Bounds(), image.White, image.Point{}, draw.Src)

	face := truetype.NewFace(g.font, &truetype.Options{
		Size:    float64(g.size) * glyphScale,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	defer face.Close()

	d := &font.Drawer{
		Dst:  dst,
		Src:  image.Black,
		Face: face,
	}

	half := fixed.I(g.size / 2)
	bounds, advance := d.BoundString(text)
	if bounds.Empty() {
		m := face.Metrics()
		d.Dot = fixed.Point26_6{
			X: half - advance/2,
			Y: half + (m.Ascent-m.Descent)/2,
		}
	} else {
		d.Dot = fixed.Point26_6{
			X: half - (bounds.Min.X+bounds.Max.X)/2,
			Y: half - (bounds.Min.Y+bounds.Max.Y)/2,
		}
	}
	d.DrawString(text)
	return dst
}
