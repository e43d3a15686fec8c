package msdfpipe

import "github.com/gogpu/msdfpipe/msdf"

// Command is a message to the worker. The concrete types are
// RenderShapes, ResetAtlas and Exit.
type Command interface {
	command()
}

// RenderShapes asks the worker to allocate and rasterize a batch.
type RenderShapes struct {
	Request Request
}

// ResetAtlas starts a new atlas generation: every region is released and
// the surface is cleared. Batches rendered before the reset become stale.
type ResetAtlas struct{}

// Exit stops the worker. Commands queued behind it are dropped.
type Exit struct{}

func (RenderShapes) command() {}
func (ResetAtlas) command()   {}
func (Exit) command()         {}

// GlyphKey identifies a glyph across fonts.
type GlyphKey struct {
	FontID  uint64
	GlyphID uint16
}

// GlyphRequest is one shape to rasterize.
type GlyphRequest struct {
	Key     GlyphKey
	Outline *msdf.Outline

	// Shade is the distance falloff in pixels. Zero selects msdf.DefaultShade.
	Shade float64
}

// Request is the payload of RenderShapes. Glyphs are allocated in order;
// allocation stops at the first glyph that no longer fits.
type Request struct {
	Glyphs []GlyphRequest
}

// ShapesRendered is the worker's reply to RenderShapes.
type ShapesRendered struct {
	Batch *Batch
}
