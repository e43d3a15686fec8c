package msdfpipe

import "github.com/gogpu/msdfpipe/msdf"

// RenderedGlyph is a requested glyph together with the shape placed for it.
type RenderedGlyph struct {
	Key   GlyphKey
	Shape *msdf.Shape
}

// Region returns the atlas region of the glyph.
func (g RenderedGlyph) Region() msdf.Region {
	return g.Shape.Region()
}

// Batch is the outcome of one render pass. Glyphs holds the prefix of the
// request that was allocated; the pixels live in the shared surface and
// are read through the surface lock.
type Batch struct {
	// ID numbers batches in the order they were rendered, starting at 1.
	ID uint64

	// Generation is the atlas generation the batch was rendered into.
	Generation uint64

	Glyphs []RenderedGlyph

	// Bounds is the union of all glyph regions (empty for an empty batch).
	Bounds msdf.Region

	// Requested is the number of glyphs in the request.
	Requested int

	surface *msdf.Surface
}

// Len returns the number of rendered glyphs.
func (b *Batch) Len() int { return len(b.Glyphs) }

// Shortfall returns how many requested glyphs did not fit in the atlas.
// A positive shortfall means the atlas is exhausted; stop requesting
// until ResetAtlas.
func (b *Batch) Shortfall() int { return b.Requested - len(b.Glyphs) }

// Shapes returns the rendered shapes in request order.
func (b *Batch) Shapes() []*msdf.Shape {
	shapes := make([]*msdf.Shape, len(b.Glyphs))
	for i := range b.Glyphs {
		shapes[i] = b.Glyphs[i].Shape
	}
	return shapes
}

// Surface returns the atlas surface the batch was rendered into.
func (b *Batch) Surface() *msdf.Surface { return b.surface }

// ReadRGB copies the RGB8 pixels of r (typically Bounds or a glyph region)
// into dst under the surface read lock. It fails with ErrStaleBatch once
// the atlas has been reset past the batch's generation.
func (b *Batch) ReadRGB(r msdf.Region, dst []byte) ([]byte, error) {
	out, ok := b.surface.Snapshot(b.Generation, r, dst)
	if !ok {
		return out, ErrStaleBatch
	}
	return out, nil
}

// ReadRGBA is ReadRGB expanded to RGBA8 with opaque alpha.
func (b *Batch) ReadRGBA(r msdf.Region) ([]byte, error) {
	rgb, err := b.ReadRGB(r, nil)
	if err != nil {
		return nil, err
	}
	return msdf.RGBToRGBA(rgb), nil
}
