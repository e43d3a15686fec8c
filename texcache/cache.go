// Package texcache uploads rendered MSDF batches into display-ready
// textures on the goroutine that owns the graphics context.
//
// A Cache keeps one texture per atlas generation. Each batch is read from
// the shared surface under its read lock, expanded to RGBA8 and written
// into the texture at its atlas position; when the pipeline starts a new
// generation the stale texture is released. Two Uploaders are provided: an
// in-memory ImageUploader and, unless built with the nogpu tag, a
// HALUploader that writes into gogpu/wgpu HAL textures.
package texcache

import (
	"errors"
	"fmt"

	"github.com/gogpu/msdfpipe"
	"github.com/gogpu/msdfpipe/msdf"
)

// TextureID identifies a cached texture. It equals the atlas generation
// the texture holds.
type TextureID uint64

// Uploader moves pixels into textures. Implementations are called only
// from the owner goroutine.
type Uploader interface {
	// Upload writes rgba, tightly packed RGBA8 rows covering region, into
	// texture id at the region's position. The texture is created with
	// size canvasW x canvasH on first use.
	Upload(id TextureID, canvasW, canvasH int, region msdf.Region, rgba []byte) error

	// Release frees texture id. Unknown ids are ignored.
	Release(id TextureID)
}

// Placement locates a glyph in a cached texture.
type Placement struct {
	Texture TextureID
	Region  msdf.Region

	// U0, V0, U1, V1 are the normalized texture coordinates of Region.
	U0, V0, U1, V1 float32

	// Origin is the glyph-space position of the region's top-left corner.
	Origin msdf.Point

	// Shade is the distance falloff the glyph was encoded with.
	Shade float64
}

// Cache maps rendered glyphs to their texture placement.
// A Cache is not safe for concurrent use.
type Cache struct {
	up      Uploader
	current TextureID
	live    bool
	entries map[msdfpipe.GlyphKey]Placement

	batches int
}

// New creates a cache uploading through up.
func New(up Uploader) *Cache {
	return &Cache{
		up:      up,
		entries: make(map[msdfpipe.GlyphKey]Placement),
	}
}

// Apply uploads one result. Batches of an older generation than the
// current texture, or whose pixels were cleared before they could be read,
// are skipped. A batch of a newer generation releases the current texture
// and its placements first.
func (c *Cache) Apply(r msdfpipe.ShapesRendered) error {
	b := r.Batch
	if b == nil {
		return nil
	}
	log := msdfpipe.Logger()

	id := TextureID(b.Generation)
	switch {
	case c.live && id < c.current:
		log.Debug("texcache: skipping batch of old generation", "batch", b.ID, "generation", b.Generation)
		return nil
	case c.live && id > c.current:
		c.up.Release(c.current)
		clear(c.entries)
		log.Info("texcache: texture released", "texture", uint64(c.current))
	}
	c.current, c.live = id, true

	if b.Len() == 0 {
		return nil
	}

	rgba, err := b.ReadRGBA(b.Bounds)
	if errors.Is(err, msdfpipe.ErrStaleBatch) {
		log.Warn("texcache: batch cleared before upload", "batch", b.ID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("texcache: read batch %d: %w", b.ID, err)
	}

	surface := b.Surface()
	w, h := surface.Width(), surface.Height()
	if err := c.up.Upload(id, w, h, b.Bounds, rgba); err != nil {
		return fmt.Errorf("texcache: upload batch %d: %w", b.ID, err)
	}

	for _, g := range b.Glyphs {
		region := g.Region()
		c.entries[g.Key] = Placement{
			Texture: id,
			Region:  region,
			U0:      float32(region.X) / float32(w),
			V0:      float32(region.Y) / float32(h),
			U1:      float32(region.X+region.Width) / float32(w),
			V1:      float32(region.Y+region.Height) / float32(h),
			Origin:  g.Shape.Origin(),
			Shade:   g.Shape.Shade(),
		}
	}
	c.batches++
	log.Debug("texcache: batch uploaded", "batch", b.ID, "glyphs", b.Len(), "region", b.Bounds.String())
	return nil
}

// Drain applies every result the pipeline has ready without blocking and
// returns how many were applied. It stops at the first upload error.
func (c *Cache) Drain(p *msdfpipe.Pipeline) (int, error) {
	n := 0
	for {
		r, ok := p.TryResult()
		if !ok {
			return n, nil
		}
		if err := c.Apply(r); err != nil {
			return n, err
		}
		n++
	}
}

// Lookup returns the placement of a glyph in the current texture.
func (c *Cache) Lookup(key msdfpipe.GlyphKey) (Placement, bool) {
	p, ok := c.entries[key]
	return p, ok
}

// Len returns the number of cached glyphs.
func (c *Cache) Len() int { return len(c.entries) }

// Batches returns the number of batches uploaded.
func (c *Cache) Batches() int { return c.batches }

// Texture returns the id of the current texture, if any batch was applied.
func (c *Cache) Texture() (TextureID, bool) {
	return c.current, c.live
}

// Release frees the current texture and forgets every placement.
func (c *Cache) Release() {
	if c.live {
		c.up.Release(c.current)
	}
	c.live = false
	clear(c.entries)
}
