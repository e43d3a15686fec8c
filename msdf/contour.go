package msdf

import (
	"math"
)

// Contour is a closed loop of connected edges.
type Contour struct {
	Edges []Edge
}

// Bounds returns the bounding box of all edges in the contour.
// An empty contour has an empty Rect (IsEmpty reports true).
func (c *Contour) Bounds() Rect {
	bounds := emptyRect
	for i := range c.Edges {
		bounds = bounds.Union(c.Edges[i].Bounds())
	}
	return bounds
}

// Area returns the signed area enclosed by the contour's endpoints
// (shoelace formula). With Y pointing down, clockwise contours on screen
// have positive area.
func (c *Contour) Area() float64 {
	var area float64
	for i := range c.Edges {
		area += c.Edges[i].StartPoint().Cross(c.Edges[i].EndPoint())
	}
	return area / 2
}

// IsClosed reports whether the last edge ends where the first begins.
func (c *Contour) IsClosed() bool {
	if len(c.Edges) == 0 {
		return true
	}
	d := c.Edges[0].StartPoint().Sub(c.Edges[len(c.Edges)-1].EndPoint())
	return math.Abs(d.X) <= 1e-6 && math.Abs(d.Y) <= 1e-6
}

// Outline is a glyph shape: an ordered list of contours.
type Outline struct {
	Contours []Contour
}

// AddContour appends a contour, dropping it if it has no edges.
func (o *Outline) AddContour(c Contour) {
	if len(c.Edges) == 0 {
		return
	}
	o.Contours = append(o.Contours, c)
}

// Bounds returns the bounding box over all contours.
func (o *Outline) Bounds() Rect {
	bounds := emptyRect
	for i := range o.Contours {
		bounds = bounds.Union(o.Contours[i].Bounds())
	}
	return bounds
}

// EdgeCount returns the total number of edges across all contours.
func (o *Outline) EdgeCount() int {
	n := 0
	for i := range o.Contours {
		n += len(o.Contours[i].Edges)
	}
	return n
}

// IsEmpty reports whether the outline has no edges.
func (o *Outline) IsEmpty() bool {
	return o == nil || o.EdgeCount() == 0
}

// Clone returns a deep copy of the outline.
func (o *Outline) Clone() *Outline {
	if o == nil {
		return &Outline{}
	}
	clone := &Outline{Contours: make([]Contour, len(o.Contours))}
	for i := range o.Contours {
		clone.Contours[i].Edges = append([]Edge(nil), o.Contours[i].Edges...)
	}
	return clone
}

// Validate reports whether every contour is closed.
func (o *Outline) Validate() bool {
	for i := range o.Contours {
		if !o.Contours[i].IsClosed() {
			return false
		}
	}
	return true
}

// SegmentKind tags the variants of a flat outline stream.
type SegmentKind uint8

const (
	// SegmentLine is a straight segment P[0]-P[1].
	SegmentLine SegmentKind = iota

	// SegmentQuad is a quadratic curve P[0], control P[1], P[2].
	SegmentQuad

	// SegmentContourEnd terminates the current contour.
	SegmentContourEnd
)

// Segment is one element of a flat outline stream, the encoding font
// outline extractors commonly produce.
type Segment struct {
	Kind SegmentKind
	P    [3]Point
}

// Line returns a line segment stream element.
func Line(p0, p1 Point) Segment {
	return Segment{Kind: SegmentLine, P: [3]Point{p0, p1}}
}

// Quad returns a quadratic curve stream element.
func Quad(p0, p1, p2 Point) Segment {
	return Segment{Kind: SegmentQuad, P: [3]Point{p0, p1, p2}}
}

// ContourEnd returns the contour terminator.
func ContourEnd() Segment {
	return Segment{Kind: SegmentContourEnd}
}

// OutlineFromSegments splits a flat Line/Quad/ContourEnd stream into
// contours. Trailing segments without a terminator form a final contour.
// Degenerate segments are dropped.
func OutlineFromSegments(segments []Segment) *Outline {
	outline := &Outline{}
	var current Contour

	for _, seg := range segments {
		var e Edge
		switch seg.Kind {
		case SegmentLine:
			e = NewLinearEdge(seg.P[0], seg.P[1])
		case SegmentQuad:
			e = NewQuadraticEdge(seg.P[0], seg.P[1], seg.P[2])
		case SegmentContourEnd:
			outline.AddContour(current)
			current = Contour{}
			continue
		default:
			continue
		}
		if !e.IsDegenerate() {
			current.Edges = append(current.Edges, e)
		}
	}
	outline.AddContour(current)
	return outline
}

// Builder assembles an Outline from pen commands.
//
//	var b msdf.Builder
//	b.MoveTo(msdf.Pt(0, 0))
//	b.LineTo(msdf.Pt(10, 0))
//	b.QuadTo(msdf.Pt(10, 10), msdf.Pt(0, 10))
//	b.Close()
//	outline := b.Outline()
type Builder struct {
	outline Outline
	current Contour
	start   Point
	pen     Point
	open    bool
}

// MoveTo starts a new contour at p, closing the current one.
func (b *Builder) MoveTo(p Point) {
	b.Close()
	b.start, b.pen, b.open = p, p, true
}

// LineTo adds a line from the pen to p.
func (b *Builder) LineTo(p Point) {
	b.ensureOpen()
	if e := NewLinearEdge(b.pen, p); !e.IsDegenerate() {
		b.current.Edges = append(b.current.Edges, e)
	}
	b.pen = p
}

// QuadTo adds a quadratic curve from the pen through control c to p.
func (b *Builder) QuadTo(c, p Point) {
	b.ensureOpen()
	if e := NewQuadraticEdge(b.pen, c, p); !e.IsDegenerate() {
		b.current.Edges = append(b.current.Edges, e)
	}
	b.pen = p
}

// Close closes the current contour with a line back to its start if needed.
func (b *Builder) Close() {
	if !b.open {
		return
	}
	if b.pen != b.start {
		b.LineTo(b.start)
	}
	b.outline.AddContour(b.current)
	b.current = Contour{}
	b.open = false
}

// Outline closes any open contour and returns the assembled outline.
// The builder is reset for reuse.
func (b *Builder) Outline() *Outline {
	b.Close()
	o := b.outline
	b.outline = Outline{}
	return &o
}

func (b *Builder) ensureOpen() {
	if !b.open {
		b.start, b.open = b.pen, true
	}
}
