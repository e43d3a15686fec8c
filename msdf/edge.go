package msdf

import (
	"math"
)

// EdgeType classifies edge segments by their geometric type.
type EdgeType int

const (
	// EdgeLinear is a straight line segment between two points.
	EdgeLinear EdgeType = iota

	// EdgeQuadratic is a quadratic Bezier curve (one control point).
	EdgeQuadratic
)

// String returns a string representation of the edge type.
func (t EdgeType) String() string {
	switch t {
	case EdgeLinear:
		return "Linear"
	case EdgeQuadratic:
		return "Quadratic"
	default:
		return "Unknown"
	}
}

// EdgeColor is the set of RGB channels an edge contributes to.
type EdgeColor uint8

const (
	// ColorBlack means the edge contributes to no channels.
	ColorBlack EdgeColor = 0

	// ColorRed means the edge contributes to the red channel.
	ColorRed EdgeColor = 1 << (iota - 1)

	// ColorGreen means the edge contributes to the green channel.
	ColorGreen

	// ColorBlue means the edge contributes to the blue channel.
	ColorBlue

	// ColorYellow combines red and green channels.
	ColorYellow = ColorRed | ColorGreen

	// ColorCyan combines green and blue channels.
	ColorCyan = ColorGreen | ColorBlue

	// ColorMagenta combines red and blue channels.
	ColorMagenta = ColorRed | ColorBlue

	// ColorWhite means the edge contributes to all channels.
	ColorWhite = ColorRed | ColorGreen | ColorBlue
)

// String returns a string representation of the edge color.
func (c EdgeColor) String() string {
	switch c {
	case ColorBlack:
		return "Black"
	case ColorRed:
		return "Red"
	case ColorGreen:
		return "Green"
	case ColorBlue:
		return "Blue"
	case ColorYellow:
		return "Yellow"
	case ColorCyan:
		return "Cyan"
	case ColorMagenta:
		return "Magenta"
	case ColorWhite:
		return "White"
	default:
		return "Unknown"
	}
}

// Has reports whether the color includes channel ch (0 = R, 1 = G, 2 = B).
func (c EdgeColor) Has(ch int) bool {
	return c&(1<<ch) != 0
}

// Edge is one outline segment: a line or a quadratic Bezier curve.
// The zero Edge is a degenerate line at the origin.
type Edge struct {
	// Type is the geometric type of this edge.
	Type EdgeType

	// Points holds the control points.
	// Linear: P0 (start), P1 (end)
	// Quadratic: P0 (start), P1 (control), P2 (end)
	Points [3]Point

	// Color determines which channels this edge affects.
	Color EdgeColor
}

// NewLinearEdge creates a line segment from start to end.
func NewLinearEdge(start, end Point) Edge {
	return Edge{
		Type:   EdgeLinear,
		Points: [3]Point{start, end, {}},
		Color:  ColorWhite,
	}
}

// NewQuadraticEdge creates a quadratic Bezier segment.
func NewQuadraticEdge(start, control, end Point) Edge {
	return Edge{
		Type:   EdgeQuadratic,
		Points: [3]Point{start, control, end},
		Color:  ColorWhite,
	}
}

// StartPoint returns the starting point of the edge.
func (e *Edge) StartPoint() Point {
	return e.Points[0]
}

// EndPoint returns the ending point of the edge.
func (e *Edge) EndPoint() Point {
	if e.Type == EdgeQuadratic {
		return e.Points[2]
	}
	return e.Points[1]
}

// PointAt evaluates the edge at parameter t in [0, 1].
func (e *Edge) PointAt(t float64) Point {
	if e.Type == EdgeQuadratic {
		return evaluateQuadratic(e.Points[0], e.Points[1], e.Points[2], t)
	}
	return e.Points[0].Lerp(e.Points[1], t)
}

// DirectionAt returns the tangent direction at parameter t.
// For a quadratic whose control point coincides with an endpoint the
// tangent at that endpoint vanishes; the chord direction is returned instead.
func (e *Edge) DirectionAt(t float64) Point {
	if e.Type != EdgeQuadratic {
		return e.Points[1].Sub(e.Points[0])
	}
	d := quadraticDerivative(e.Points[0], e.Points[1], e.Points[2], t)
	if d.LengthSquared() == 0 {
		return e.Points[2].Sub(e.Points[0])
	}
	return d
}

// IsDegenerate reports whether the edge has zero extent or non-finite
// coordinates. Degenerate edges are skipped by the rasterizer.
func (e *Edge) IsDegenerate() bool {
	n := 2
	if e.Type == EdgeQuadratic {
		n = 3
	}
	for i := 0; i < n; i++ {
		if !e.Points[i].IsFinite() {
			return true
		}
	}
	p0 := e.Points[0]
	for i := 1; i < n; i++ {
		if e.Points[i] != p0 {
			return false
		}
	}
	return true
}

// Distance returns the unsigned Euclidean distance from p to the edge.
func (e *Edge) Distance(p Point) float64 {
	if e.Type == EdgeQuadratic {
		return quadraticDistance(e.Points[0], e.Points[1], e.Points[2], p)
	}
	return linearDistance(e.Points[0], e.Points[1], p)
}

// Winding returns the signed number of times the edge crosses the
// horizontal ray from p toward +X. Upward crossings (increasing Y) count +1,
// downward crossings -1. Crossings use half-open Y intervals so a vertex
// shared by two edges of a closed contour is counted exactly once.
func (e *Edge) Winding(p Point) int {
	if e.Type != EdgeQuadratic {
		return lineCrossing(e.Points[0], e.Points[1], p)
	}

	p0, p1, p2 := e.Points[0], e.Points[1], e.Points[2]

	// Split at the Y extremum so every piece is monotone in Y.
	denom := p0.Y - 2*p1.Y + p2.Y
	if math.Abs(denom) > 1e-12 {
		t := (p0.Y - p1.Y) / denom
		if t > 0 && t < 1 {
			m01 := p0.Lerp(p1, t)
			m12 := p1.Lerp(p2, t)
			m := m01.Lerp(m12, t)
			return monotoneQuadCrossing(p0, m01, m, p) + monotoneQuadCrossing(m, m12, p2, p)
		}
	}
	return monotoneQuadCrossing(p0, p1, p2, p)
}

// Bounds returns the bounding box of the edge.
func (e *Edge) Bounds() Rect {
	if e.Type == EdgeQuadratic {
		return quadraticBounds(e.Points[0], e.Points[1], e.Points[2])
	}
	return linearBounds(e.Points[0], e.Points[1])
}

// evaluateQuadratic evaluates a quadratic Bezier curve at parameter t.
func evaluateQuadratic(p0, p1, p2 Point, t float64) Point {
	u := 1 - t
	// B(t) = (1-t)^2*P0 + 2*(1-t)*t*P1 + t^2*P2
	return Point{
		u*u*p0.X + 2*u*t*p1.X + t*t*p2.X,
		u*u*p0.Y + 2*u*t*p1.Y + t*t*p2.Y,
	}
}

// quadraticDerivative returns the derivative of a quadratic Bezier at t.
func quadraticDerivative(p0, p1, p2 Point, t float64) Point {
	u := 1 - t
	// B'(t) = 2*(1-t)*(P1-P0) + 2*t*(P2-P1)
	return Point{
		2*u*(p1.X-p0.X) + 2*t*(p2.X-p1.X),
		2*u*(p1.Y-p0.Y) + 2*t*(p2.Y-p1.Y),
	}
}

// linearDistance returns the distance from p to the segment a-b.
func linearDistance(a, b, p Point) float64 {
	ab := b.Sub(a)
	ap := p.Sub(a)

	abLenSq := ab.LengthSquared()
	if abLenSq == 0 {
		return ap.Length()
	}

	t := ap.Dot(ab) / abLenSq
	t = max(0, min(1, t))

	return p.Sub(a.Add(ab.Mul(t))).Length()
}

// quadraticDistance returns the distance from p to a quadratic Bezier.
//
// The squared distance |B(t)-p|^2 is a quartic in t; its derivative is a
// cubic whose roots in [0, 1], together with the endpoints, contain the
// closest point. Collinear or coincident control points reduce the cubic to
// a quadratic or linear equation, which solveCubic handles.
func quadraticDistance(p0, p1, p2, p Point) float64 {
	// B(t) - p = a*t^2 + b*t + c
	a := p0.Sub(p1.Mul(2)).Add(p2)
	b := p1.Sub(p0).Mul(2)
	c := p0.Sub(p)

	c3 := 2 * a.Dot(a)
	c2 := 3 * a.Dot(b)
	c1 := 2*a.Dot(c) + b.Dot(b)
	c0 := b.Dot(c)

	best := min(p0.Sub(p).LengthSquared(), p2.Sub(p).LengthSquared())

	var roots [3]float64
	n := solveCubic(c3, c2, c1, c0, &roots)
	for i := 0; i < n; i++ {
		d := evaluateQuadratic(p0, p1, p2, roots[i]).Sub(p).LengthSquared()
		if d < best {
			best = d
		}
	}
	return math.Sqrt(best)
}

// lineCrossing counts the crossing of segment a-b with the ray from p
// toward +X.
func lineCrossing(a, b, p Point) int {
	if a.Y == b.Y {
		return 0
	}
	if !((a.Y <= p.Y && p.Y < b.Y) || (b.Y <= p.Y && p.Y < a.Y)) {
		return 0
	}
	t := (p.Y - a.Y) / (b.Y - a.Y)
	x := a.X + t*(b.X-a.X)
	if x <= p.X {
		return 0
	}
	if b.Y > a.Y {
		return 1
	}
	return -1
}

// monotoneQuadCrossing counts the crossing of a Y-monotone quadratic with
// the ray from p toward +X.
func monotoneQuadCrossing(q0, q1, q2, p Point) int {
	ya, yb := q0.Y, q2.Y
	if ya == yb {
		return 0
	}
	if !((ya <= p.Y && p.Y < yb) || (yb <= p.Y && p.Y < ya)) {
		return 0
	}

	// Solve y(t) = p.Y for the unique t in [0, 1].
	qa := q0.Y - 2*q1.Y + q2.Y
	qb := 2 * (q1.Y - q0.Y)
	qc := q0.Y - p.Y

	var t float64
	if math.Abs(qa) < 1e-12 {
		t = -qc / qb
	} else {
		disc := max(0, qb*qb-4*qa*qc)
		sq := math.Sqrt(disc)
		t1 := (-qb + sq) / (2 * qa)
		t2 := (-qb - sq) / (2 * qa)
		t = t1
		if distanceToUnit(t2) < distanceToUnit(t1) {
			t = t2
		}
	}
	t = max(0, min(1, t))

	x := evaluateQuadratic(q0, q1, q2, t).X
	if x <= p.X {
		return 0
	}
	if yb > ya {
		return 1
	}
	return -1
}

// distanceToUnit returns how far t lies outside [0, 1].
func distanceToUnit(t float64) float64 {
	switch {
	case t < 0:
		return -t
	case t > 1:
		return t - 1
	default:
		return 0
	}
}

// solveCubic solves a*x^3 + b*x^2 + c*x + d = 0 and stores the real roots
// in [0, 1] into roots, returning how many were found.
func solveCubic(a, b, c, d float64, roots *[3]float64) int {
	if math.Abs(a) < 1e-14 {
		return solveQuadratic(b, c, d, roots)
	}

	// Normalize and depress: x = y - b/3
	b /= a
	c /= a
	d /= a

	p := c - b*b/3
	q := d - b*c/3 + 2*b*b*b/27
	discriminant := q*q/4 + p*p*p/27
	shift := b / 3

	n := 0
	switch {
	case discriminant > 1e-14:
		// One real root
		sqrtD := math.Sqrt(discriminant)
		n = appendUnitRoot(roots, n, math.Cbrt(-q/2+sqrtD)+math.Cbrt(-q/2-sqrtD)-shift)
	case discriminant < -1e-14:
		// Three real roots
		r := math.Sqrt(-p * p * p / 27)
		cosPhi := max(-1, min(1, -q/(2*r)))
		phi := math.Acos(cosPhi)
		m := 2 * math.Cbrt(r)
		for k := 0; k < 3; k++ {
			n = appendUnitRoot(roots, n, m*math.Cos((phi+float64(2*k)*math.Pi)/3)-shift)
		}
	default:
		// Repeated roots
		u := math.Cbrt(-q / 2)
		root1 := 2*u - shift
		root2 := -u - shift
		n = appendUnitRoot(roots, n, root1)
		if math.Abs(root1-root2) > 1e-10 {
			n = appendUnitRoot(roots, n, root2)
		}
	}
	return n
}

// solveQuadratic solves a*x^2 + b*x + c = 0 for roots in [0, 1].
func solveQuadratic(a, b, c float64, roots *[3]float64) int {
	if math.Abs(a) < 1e-14 {
		if math.Abs(b) < 1e-14 {
			return 0
		}
		return appendUnitRoot(roots, 0, -c/b)
	}

	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return 0
	}

	sqrtD := math.Sqrt(discriminant)
	root1 := (-b + sqrtD) / (2 * a)
	root2 := (-b - sqrtD) / (2 * a)

	n := appendUnitRoot(roots, 0, root1)
	if math.Abs(root1-root2) > 1e-10 {
		n = appendUnitRoot(roots, n, root2)
	}
	return n
}

// appendUnitRoot stores root at roots[n] if it is a finite value in [0, 1].
func appendUnitRoot(roots *[3]float64, n int, root float64) int {
	if n >= len(roots) || math.IsNaN(root) || root < 0 || root > 1 {
		return n
	}
	roots[n] = root
	return n + 1
}

// linearBounds returns the bounding box of a line segment.
func linearBounds(a, b Point) Rect {
	return Rect{
		MinX: min(a.X, b.X),
		MinY: min(a.Y, b.Y),
		MaxX: max(a.X, b.X),
		MaxY: max(a.Y, b.Y),
	}
}

// quadraticBounds returns the tight bounding box of a quadratic Bezier.
func quadraticBounds(p0, p1, p2 Point) Rect {
	bounds := linearBounds(p0, p2)

	// B'(t) = 0  =>  t = (p0-p1)/(p0-2*p1+p2)
	if dx := p0.X - 2*p1.X + p2.X; math.Abs(dx) > 1e-12 {
		if t := (p0.X - p1.X) / dx; t > 0 && t < 1 {
			x := evaluateQuadratic(p0, p1, p2, t).X
			bounds.MinX = min(bounds.MinX, x)
			bounds.MaxX = max(bounds.MaxX, x)
		}
	}
	if dy := p0.Y - 2*p1.Y + p2.Y; math.Abs(dy) > 1e-12 {
		if t := (p0.Y - p1.Y) / dy; t > 0 && t < 1 {
			y := evaluateQuadratic(p0, p1, p2, t).Y
			bounds.MinY = min(bounds.MinY, y)
			bounds.MaxY = max(bounds.MaxY, y)
		}
	}

	return bounds
}
