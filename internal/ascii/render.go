package ascii

import (
	"context"
	"errors"
	"image"
	"math"
	"strings"

	"golang.org/x/image/draw"
)

var ErrBadWidth = errors.New("ascii: width must be positive")

// box averages every source pixel under a destination pixel when scaling down.
var box = &draw.Kernel{
	Support: 0.5,
	At:      func(float64) float64 { return 1 },
}

type Options struct {
	Width  int
	Invert bool
}

type Renderer struct {
	ramp Ramp
	cell CellMetrics
}

func NewRenderer(ramp Ramp, cell CellMetrics) *Renderer {
	if len(ramp) < 2 {
		ramp = Ramp(DefaultRamp)
	}
	return &Renderer{ramp: ramp, cell: cell}
}

const DefaultRamp = " .'`^\",:;Il!i~+_-?][}{1)(|\\/tfjrxnuvczXYUJCLQ0OZmwqpdbkhao*#MW&8%B@"

func (r *Renderer) Ramp() Ramp        { return r.ramp }
func (r *Renderer) Cell() CellMetrics { return r.cell }

// TargetHeight derives the row count for width columns, correcting for the
// cell aspect ratio so the art is not stretched vertically.
func (r *Renderer) TargetHeight(width int, src image.Rectangle) int {
	if src.Dx() == 0 {
		return 1
	}
	ratio := float64(src.Dy()) / float64(src.Dx())
	h := int(math.Round(float64(width) * ratio * r.cell.Aspect()))
	if h < 1 {
		return 1
	}
	return h
}

func (r *Renderer) Render(img image.Image, opts Options) (string, error) {
	if opts.Width <= 0 {
		return "", ErrBadWidth
	}
	sb := img.Bounds()
	if sb.Dx() == 0 || sb.Dy() == 0 {
		return "", ErrEmptyImage
	}

	w := opts.Width
	h := r.TargetHeight(w, sb)
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	if w <= sb.Dx() && h <= sb.Dy() {
		box.Scale(dst, dst.Bounds(), img, sb, draw.Src, nil)
	} else {
		draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, sb, draw.Src, nil)
	}

	var b strings.Builder
	b.Grow((w + 1) * h * 2)
	for y := 0; y < h; y++ {
		row := dst.Pix[y*dst.Stride:]
		for x := 0; x < w; x++ {
			p := row[x*4:]
			l := Luminance(p[0], p[1], p[2])
			if opts.Invert {
				l = 1 - l
			}
			b.WriteRune(r.ramp.Char(l))
		}
		b.WriteByte('\n')
	}
	return b.String(), nil
}

// Rasterize resolves subject and renders it.
func (r *Renderer) Rasterize(ctx context.Context, subject Subject, opts Options) (string, error) {
	if opts.Width <= 0 {
		return "", ErrBadWidth
	}
	img, err := subject.Resolve(ctx)
	if err != nil {
		return "", err
	}
	return r.Render(img, opts)
}
