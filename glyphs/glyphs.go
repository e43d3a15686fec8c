// Package glyphs extracts glyph outlines from TrueType and OpenType fonts
// and turns them into msdfpipe render requests.
package glyphs

import (
	"errors"
	"fmt"

	"github.com/gogpu/msdfpipe"
	"github.com/gogpu/msdfpipe/internal/cache"
	"github.com/gogpu/msdfpipe/msdf"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// ErrNoGlyph is returned for a rune the font does not map.
var ErrNoGlyph = errors.New("glyphs: rune not in font")

const (
	// cubicSplits is the number of quadratics each cubic segment becomes.
	cubicSplits = 4

	// outlineCacheSize bounds the memoized outlines per Extractor.
	outlineCacheSize = 1024
)

type outlineKey struct {
	gid  sfnt.GlyphIndex
	ppem fixed.Int26_6
}

// Extractor converts sfnt glyphs to msdf outlines. It reuses one
// sfnt.Buffer and is not safe for concurrent use.
type Extractor struct {
	font     *sfnt.Font
	fontID   uint64
	buf      sfnt.Buffer
	outlines *cache.Cache[outlineKey, *msdf.Outline]
}

// Parse parses font data and returns an Extractor whose requests carry
// fontID in their keys.
func Parse(data []byte, fontID uint64) (*Extractor, error) {
	f, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("glyphs: parse font: %w", err)
	}
	return New(f, fontID), nil
}

// New wraps an already parsed font.
func New(f *sfnt.Font, fontID uint64) *Extractor {
	return &Extractor{
		font:     f,
		fontID:   fontID,
		outlines: cache.New[outlineKey, *msdf.Outline](outlineCacheSize),
	}
}

// Font returns the underlying font.
func (e *Extractor) Font() *sfnt.Font { return e.font }

// GlyphIndex maps r to a glyph, returning ErrNoGlyph if the font has none.
func (e *Extractor) GlyphIndex(r rune) (sfnt.GlyphIndex, error) {
	gid, err := e.font.GlyphIndex(&e.buf, r)
	if err != nil {
		return 0, fmt.Errorf("glyphs: glyph index for %q: %w", r, err)
	}
	if gid == 0 {
		return 0, fmt.Errorf("%w: %q", ErrNoGlyph, r)
	}
	return gid, nil
}

// Outline returns the outline of r scaled to ppem pixels per em, in pixel
// units with Y pointing down and the origin on the baseline. Glyphs
// without contours, like space, return an empty outline.
func (e *Extractor) Outline(r rune, ppem float64) (*msdf.Outline, error) {
	gid, err := e.GlyphIndex(r)
	if err != nil {
		return nil, err
	}
	return e.GlyphOutline(gid, ppem)
}

// GlyphOutline is Outline for a glyph index. Outlines are memoized per
// size; the returned outline is shared and must not be modified.
func (e *Extractor) GlyphOutline(gid sfnt.GlyphIndex, ppem float64) (*msdf.Outline, error) {
	key := outlineKey{gid: gid, ppem: fixed.Int26_6(ppem * 64)}
	return e.outlines.GetOrCreate(key, func() (*msdf.Outline, error) {
		return e.load(key)
	})
}

// CacheStats returns outline cache hits and misses.
func (e *Extractor) CacheStats() (hits, misses uint64) {
	return e.outlines.Stats()
}

func (e *Extractor) load(key outlineKey) (*msdf.Outline, error) {
	gid := key.gid
	segments, err := e.font.LoadGlyph(&e.buf, gid, key.ppem, nil)
	if err != nil {
		return nil, fmt.Errorf("glyphs: load glyph %d: %w", gid, err)
	}

	var b msdf.Builder
	var pen msdf.Point
	for _, seg := range segments {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			pen = toPoint(seg.Args[0])
			b.MoveTo(pen)
		case sfnt.SegmentOpLineTo:
			pen = toPoint(seg.Args[0])
			b.LineTo(pen)
		case sfnt.SegmentOpQuadTo:
			pen = toPoint(seg.Args[1])
			b.QuadTo(toPoint(seg.Args[0]), pen)
		case sfnt.SegmentOpCubeTo:
			c1, c2, end := toPoint(seg.Args[0]), toPoint(seg.Args[1]), toPoint(seg.Args[2])
			cubicToQuads(&b, pen, c1, c2, end)
			pen = end
		}
	}
	return b.Outline(), nil
}

// Advance returns the horizontal advance of r in pixels at ppem.
func (e *Extractor) Advance(r rune, ppem float64) (float64, error) {
	gid, err := e.GlyphIndex(r)
	if err != nil {
		return 0, err
	}
	adv, err := e.font.GlyphAdvance(&e.buf, gid, fixed.Int26_6(ppem*64), 0)
	if err != nil {
		return 0, fmt.Errorf("glyphs: advance of %q: %w", r, err)
	}
	return float64(adv) / 64, nil
}

// Key returns the pipeline key of a glyph of this font.
func (e *Extractor) Key(gid sfnt.GlyphIndex) msdfpipe.GlyphKey {
	return msdfpipe.GlyphKey{FontID: e.fontID, GlyphID: uint16(gid)}
}

// Requests builds one request per distinct glyph among runes, in order.
// Runes the font does not map are skipped.
func (e *Extractor) Requests(runes []rune, ppem, shade float64) ([]msdfpipe.GlyphRequest, error) {
	seen := make(map[sfnt.GlyphIndex]bool, len(runes))
	reqs := make([]msdfpipe.GlyphRequest, 0, len(runes))
	for _, r := range runes {
		gid, err := e.GlyphIndex(r)
		if errors.Is(err, ErrNoGlyph) {
			continue
		}
		if err != nil {
			return nil, err
		}
		if seen[gid] {
			continue
		}
		seen[gid] = true

		outline, err := e.GlyphOutline(gid, ppem)
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, msdfpipe.GlyphRequest{
			Key:     e.Key(gid),
			Outline: outline,
			Shade:   shade,
		})
	}
	return reqs, nil
}

func toPoint(p fixed.Point26_6) msdf.Point {
	return msdf.Point{X: float64(p.X) / 64, Y: float64(p.Y) / 64}
}

// cubicToQuads approximates the cubic p0..p3 with cubicSplits quadratics.
// Each piece keeps the piece's end points; its control point is where the
// two end tangents of the piece would meet for a matching quadratic.
func cubicToQuads(b *msdf.Builder, p0, p1, p2, p3 msdf.Point) {
	for i := 0; i < cubicSplits; i++ {
		t0 := float64(i) / cubicSplits
		t1 := float64(i+1) / cubicSplits
		q0, q1, q2, q3 := subCubic(p0, p1, p2, p3, t0, t1)
		// (3*(q1+q2) - (q0+q3)) / 4
		ctrl := q1.Add(q2).Mul(3).Sub(q0.Add(q3)).Mul(0.25)
		b.QuadTo(ctrl, q3)
	}
}

// subCubic returns the control points of the cubic restricted to [t0, t1].
func subCubic(p0, p1, p2, p3 msdf.Point, t0, t1 float64) (msdf.Point, msdf.Point, msdf.Point, msdf.Point) {
	at := func(t float64) msdf.Point {
		u := 1 - t
		return p0.Mul(u * u * u).Add(p1.Mul(3 * u * u * t)).Add(p2.Mul(3 * u * t * t)).Add(p3.Mul(t * t * t))
	}
	deriv := func(t float64) msdf.Point {
		u := 1 - t
		return p1.Sub(p0).Mul(3 * u * u).Add(p2.Sub(p1).Mul(6 * u * t)).Add(p3.Sub(p2).Mul(3 * t * t))
	}
	dt := t1 - t0
	q0, q3 := at(t0), at(t1)
	q1 := q0.Add(deriv(t0).Mul(dt / 3))
	q2 := q3.Sub(deriv(t1).Mul(dt / 3))
	return q0, q1, q2, q3
}
