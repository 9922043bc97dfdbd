package console

import (
	"context"
	"fmt"

	"github.com/san-kum/cheddar/internal/ascii"
)

const (
	CacheSmall   = "cheddar_ascii_small_v1"
	CacheBig     = "cheddar_ascii_big_v1"
	CheeseSuffix = "_cheese"
)

// Rasterizer turns a subject into ASCII art; *ascii.Renderer is the real
// one.
type Rasterizer interface {
	Rasterize(ctx context.Context, subject ascii.Subject, opts ascii.Options) (string, error)
}

// CacheKey names the session slot for a width class and subject variant.
func CacheKey(big, cheese bool) string {
	key := CacheSmall
	if big {
		key = CacheBig
	}
	if cheese {
		key += CheeseSuffix
	}
	return key
}

func (c *Console) width(big bool) int {
	if big {
		if c.cfg.BigWidth > 0 {
			return c.cfg.BigWidth
		}
		return 240
	}
	if c.cfg.SmallWidth > 0 {
		return c.cfg.SmallWidth
	}
	return 160
}

func (c *Console) subject(cheese bool) ascii.Subject {
	if !cheese {
		return ascii.ImageFile{Path: c.cfg.Portrait}
	}
	glyph := c.cfg.Glyph
	if glyph == "" {
		glyph = "🧀"
	}
	return ascii.Chain{
		ascii.ImageFile{Path: c.cfg.Emblem},
		ascii.Glyph{Text: glyph, Synth: c.cfg.Synth},
	}
}

func (c *Console) summon(ctx context.Context, big bool) {
	cheese := c.coin()
	key := CacheKey(big, cheese)
	if art, ok := c.cache.Get(key); ok {
		c.printBlock(art)
		return
	}

	c.println("materializing cheddar… 🧀")
	if c.raster == nil {
		c.println("Failed to summon. Error: no renderer")
		return
	}
	subject := c.subject(cheese)
	art, err := c.raster.Rasterize(ctx, subject, ascii.Options{Width: c.width(big)})
	if err != nil {
		c.logger.Warn("summon failed", "subject", subject.String(), "err", err)
		c.println(fmt.Sprintf("Failed to summon. Error: %v", err))
		return
	}
	c.cache.Put(key, art)
	c.printBlock(art)
}
