package msdf

import (
	"math"
)

// DefaultShade is the distance, in pixels, over which the field falls off
// from the edge value to fully inside or fully outside.
const DefaultShade = 4.0

// DefaultPadding is the number of pixels added on every side of a shape's
// bounding box so the field can bleed past the outline.
const DefaultPadding = 2

// Options control how shapes are allocated and rasterized.
type Options struct {
	// Padding is the bleed margin in pixels on each side of the bounding box.
	// Default: 2
	Padding int

	// AngleThreshold is the tangent turn, in radians, above which a join is
	// a sharp corner for edge coloring.
	// Default: pi/3
	AngleThreshold float64

	// FillRule decides inside/outside for the sign of the field.
	// Default: FillNonZero
	FillRule FillRule
}

// DefaultOptions returns the default allocation options.
func DefaultOptions() Options {
	return Options{
		Padding:        DefaultPadding,
		AngleThreshold: DefaultAngleThreshold,
		FillRule:       FillNonZero,
	}
}

// Shape is an outline bound to its region of the atlas, ready to be
// rasterized. Shapes are created only by Allocate.
type Shape struct {
	outline *Outline
	edges   []Edge
	region  Region
	origin  Point
	shade   float64
	fill    FillRule
}

// Allocate computes the outline's pixel bounding box plus padding, reserves
// a region of that size from atlas, and returns a Shape bound to it.
// It returns false when the atlas has no room left; callers should stop
// requesting shapes from this atlas at that point.
//
// The outline is copied without its degenerate edges and edge-colored; the
// caller's outline is not modified. A non-positive or non-finite shade is
// replaced by DefaultShade.
func Allocate(outline *Outline, atlas *ShelfAllocator, shade float64, opts Options) (*Shape, bool) {
	if !(shade > 0) || math.IsInf(shade, 0) {
		shade = DefaultShade
	}
	pad := max(0, opts.Padding)

	// Degenerate edges would poison bounds and corner detection with NaN
	// or zero tangents, so they are dropped before coloring.
	colored := &Outline{}
	if outline != nil {
		for i := range outline.Contours {
			var c Contour
			for _, e := range outline.Contours[i].Edges {
				if !e.IsDegenerate() {
					c.Edges = append(c.Edges, e)
				}
			}
			colored.AddContour(c)
		}
	}
	ColorEdges(colored, opts.AngleThreshold)

	edges := make([]Edge, 0, colored.EdgeCount())
	for i := range colored.Contours {
		edges = append(edges, colored.Contours[i].Edges...)
	}

	var origin Point
	w, h := 2*pad, 2*pad
	if bounds := colored.Bounds(); len(edges) > 0 && !bounds.IsEmpty() {
		x0, y0 := math.Floor(bounds.MinX), math.Floor(bounds.MinY)
		x1, y1 := math.Ceil(bounds.MaxX), math.Ceil(bounds.MaxY)
		origin = Point{X: x0 - float64(pad), Y: y0 - float64(pad)}
		// Compare in float64 first: a huge extent does not convert to int.
		fw, fh := x1-x0+float64(2*pad), y1-y0+float64(2*pad)
		if fw > float64(atlas.Width()) || fh > float64(atlas.Height()) {
			return nil, false
		}
		w, h = int(fw), int(fh)
	}
	w, h = max(w, 1), max(h, 1)

	region, ok := atlas.Allocate(w, h)
	if !ok {
		return nil, false
	}

	return &Shape{
		outline: colored,
		edges:   edges,
		region:  region,
		origin:  origin,
		shade:   shade,
		fill:    opts.FillRule,
	}, true
}

// Region returns the atlas region the shape occupies.
func (s *Shape) Region() Region { return s.region }

// Shade returns the distance falloff used when encoding the field.
func (s *Shape) Shade() float64 { return s.shade }

// Origin returns the glyph-space coordinate of the region's top-left corner.
func (s *Shape) Origin() Point { return s.origin }

// Outline returns the edge-colored outline. It must not be modified.
func (s *Shape) Outline() *Outline { return s.outline }

// PixelCenter maps region-local pixel (x, y) to its center in glyph space.
func (s *Shape) PixelCenter(x, y int) Point {
	return Point{
		X: s.origin.X + float64(x) + 0.5,
		Y: s.origin.Y + float64(y) + 0.5,
	}
}
