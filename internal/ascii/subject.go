package ascii

import (
	"context"
	"errors"
	"image"
	"strings"
)

var (
	ErrEmptyImage = errors.New("ascii: image has no pixels")
	ErrNoSubject  = errors.New("ascii: no subject to render")
)

// Subject is something that can be turned into a pixel buffer.
type Subject interface {
	Resolve(ctx context.Context) (image.Image, error)
	String() string
}

type ImageFile struct {
	Path string
}

func (s ImageFile) Resolve(ctx context.Context) (image.Image, error) {
	return LoadImage(ctx, s.Path)
}

func (s ImageFile) String() string { return s.Path }

type Glyph struct {
	Text  string
	Synth *GlyphSynth
}

func (s Glyph) Resolve(ctx context.Context) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.Synth == nil {
		synth, err := NewGlyphSynth(nil)
		if err != nil {
			return nil, err
		}
		return synth.Render(s.Text), nil
	}
	return s.Synth.Render(s.Text), nil
}

func (s Glyph) String() string { return "glyph " + s.Text }

// Chain resolves to the first subject that loads. When every subject fails
// the last error is returned.
type Chain []Subject

func (c Chain) Resolve(ctx context.Context) (image.Image, error) {
	err := ErrNoSubject
	for _, s := range c {
		img, e := s.Resolve(ctx)
		if e == nil {
			return img, nil
		}
		err = e
	}
	return nil, err
}

func (c Chain) String() string {
	parts := make([]string, len(c))
	for i, s := range c {
		parts[i] = s.String()
	}
	return strings.Join(parts, " -> ")
}
