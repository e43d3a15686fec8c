package msdf

import (
	"math"
	"testing"
)

func TestEdgeTypeString(t *testing.T) {
	tests := []struct {
		typ  EdgeType
		want string
	}{
		{EdgeLinear, "Linear"},
		{EdgeQuadratic, "Quadratic"},
		{EdgeType(99), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.want {
			t.Errorf("EdgeType(%d).String() = %q, want %q", tt.typ, got, tt.want)
		}
	}
}

func TestEdgeColorChannels(t *testing.T) {
	tests := []struct {
		color   EdgeColor
		r, g, b bool
	}{
		{ColorBlack, false, false, false},
		{ColorRed, true, false, false},
		{ColorGreen, false, true, false},
		{ColorBlue, false, false, true},
		{ColorYellow, true, true, false},
		{ColorCyan, false, true, true},
		{ColorMagenta, true, false, true},
		{ColorWhite, true, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.color.String(), func(t *testing.T) {
			if tt.color.Has(0) != tt.r || tt.color.Has(1) != tt.g || tt.color.Has(2) != tt.b {
				t.Errorf("%v channels = (%v,%v,%v), want (%v,%v,%v)",
					tt.color, tt.color.Has(0), tt.color.Has(1), tt.color.Has(2), tt.r, tt.g, tt.b)
			}
		})
	}
}

func TestLinearEdgeDistance(t *testing.T) {
	e := NewLinearEdge(Pt(0, 0), Pt(10, 0))

	tests := []struct {
		name string
		p    Point
		want float64
	}{
		{"above middle", Pt(5, 3), 3},
		{"on edge", Pt(7, 0), 0},
		{"before start", Pt(-3, 4), 5},
		{"past end", Pt(13, -4), 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := e.Distance(tt.p); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Distance(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestDegenerateLinearEdgeDistance(t *testing.T) {
	e := NewLinearEdge(Pt(1, 1), Pt(1, 1))
	if !e.IsDegenerate() {
		t.Error("zero-length line should be degenerate")
	}
	if got := e.Distance(Pt(4, 5)); math.Abs(got-5) > 1e-9 {
		t.Errorf("Distance = %v, want 5", got)
	}
}

func TestQuadraticEdgeDistance(t *testing.T) {
	tests := []struct {
		name string
		e    Edge
		p    Point
		want float64
	}{
		{
			name: "collinear control point",
			e:    NewQuadraticEdge(Pt(0, 0), Pt(5, 0), Pt(10, 0)),
			p:    Pt(5, 2),
			want: 2,
		},
		{
			name: "above apex",
			e:    NewQuadraticEdge(Pt(0, 0), Pt(5, 10), Pt(10, 0)),
			p:    Pt(5, 8),
			want: 3,
		},
		{
			name: "endpoint nearest",
			e:    NewQuadraticEdge(Pt(0, 0), Pt(5, 10), Pt(10, 0)),
			p:    Pt(-3, -4),
			want: 5,
		},
		{
			name: "all points coincide",
			e:    NewQuadraticEdge(Pt(2, 2), Pt(2, 2), Pt(2, 2)),
			p:    Pt(5, 6),
			want: 5,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.e.Distance(tt.p)
			if math.IsNaN(got) {
				t.Fatalf("Distance(%v) is NaN", tt.p)
			}
			if math.Abs(got-tt.want) > 1e-6 {
				t.Errorf("Distance(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

// bruteForceDistance samples the edge densely.
func bruteForceDistance(e *Edge, p Point) float64 {
	const samples = 20000
	best := math.Inf(1)
	for i := 0; i <= samples; i++ {
		d := e.PointAt(float64(i) / samples).Sub(p).Length()
		best = min(best, d)
	}
	return best
}

func TestQuadraticDistanceMatchesSampling(t *testing.T) {
	edges := []Edge{
		NewQuadraticEdge(Pt(0, 0), Pt(10, 20), Pt(20, 0)),
		NewQuadraticEdge(Pt(-5, 3), Pt(40, -7), Pt(2, 9)),
		NewQuadraticEdge(Pt(0, 0), Pt(0, 0), Pt(10, 10)),
		NewQuadraticEdge(Pt(0, 0), Pt(1, 1e-9), Pt(2, 0)),
	}
	points := []Point{
		Pt(10, 5), Pt(10, 15), Pt(-4, -4), Pt(25, 1), Pt(3, 8), Pt(0.5, 0.5), Pt(1, -3),
	}
	for i := range edges {
		for _, p := range points {
			got := edges[i].Distance(p)
			want := bruteForceDistance(&edges[i], p)
			if math.IsNaN(got) || got > want+2e-3 || got < want-2e-3 {
				t.Errorf("edge %d Distance(%v) = %v, sampled %v", i, p, got, want)
			}
		}
	}
}

func TestLineWindingHalfOpen(t *testing.T) {
	// Diamond whose left and right vertices share the ray's y.
	diamond := []Edge{
		NewLinearEdge(Pt(5, 0), Pt(10, 5)),
		NewLinearEdge(Pt(10, 5), Pt(5, 10)),
		NewLinearEdge(Pt(5, 10), Pt(0, 5)),
		NewLinearEdge(Pt(0, 5), Pt(5, 0)),
	}
	tests := []struct {
		name   string
		p      Point
		inside bool
	}{
		{"center", Pt(5, 5), true},
		{"left of vertex row", Pt(-1, 5), false},
		{"right of vertex row", Pt(12, 5), false},
		{"inside on vertex row", Pt(2, 5), true},
		{"outside above", Pt(5, -1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := 0
			for i := range diamond {
				w += diamond[i].Winding(tt.p)
			}
			if (w != 0) != tt.inside {
				t.Errorf("winding at %v = %d, inside want %v", tt.p, w, tt.inside)
			}
		})
	}
}

// circleOutline approximates a circle of radius r centered at c with four
// tangent-continuous quadratics.
func circleOutline(c Point, r float64) *Outline {
	var b Builder
	b.MoveTo(Pt(c.X+r, c.Y))
	b.QuadTo(Pt(c.X+r, c.Y+r), Pt(c.X, c.Y+r))
	b.QuadTo(Pt(c.X-r, c.Y+r), Pt(c.X-r, c.Y))
	b.QuadTo(Pt(c.X-r, c.Y-r), Pt(c.X, c.Y-r))
	b.QuadTo(Pt(c.X+r, c.Y-r), Pt(c.X+r, c.Y))
	b.Close()
	return b.Outline()
}

func TestQuadraticWinding(t *testing.T) {
	outline := circleOutline(Pt(10, 10), 8)

	winding := func(p Point) int {
		w := 0
		for i := range outline.Contours {
			for j := range outline.Contours[i].Edges {
				w += outline.Contours[i].Edges[j].Winding(p)
			}
		}
		return w
	}

	for _, p := range []Point{Pt(10, 10), Pt(10, 3), Pt(4, 10), Pt(16, 10), Pt(10, 17)} {
		if winding(p) == 0 {
			t.Errorf("winding(%v) = 0, want inside", p)
		}
	}
	for _, p := range []Point{Pt(-1, 10), Pt(30, 10), Pt(10, -5), Pt(10, 25), Pt(17.9, 17.9)} {
		if w := winding(p); w != 0 {
			t.Errorf("winding(%v) = %d, want 0", p, w)
		}
	}
}

func TestQuadraticBounds(t *testing.T) {
	e := NewQuadraticEdge(Pt(0, 0), Pt(5, 10), Pt(10, 0))
	b := e.Bounds()
	if b.MinX != 0 || b.MaxX != 10 || b.MinY != 0 || math.Abs(b.MaxY-5) > 1e-9 {
		t.Errorf("Bounds() = %+v, want {0 0 10 5}", b)
	}
}

func TestNaNEdgeIsDegenerate(t *testing.T) {
	e := NewLinearEdge(Pt(0, 0), Pt(math.NaN(), 1))
	if !e.IsDegenerate() {
		t.Error("edge with NaN coordinate should be degenerate")
	}
}

func TestSolveCubicRoots(t *testing.T) {
	// (x-0.25)(x-0.5)(x-0.75) = x^3 - 1.5x^2 + 0.6875x - 0.09375
	var roots [3]float64
	n := solveCubic(1, -1.5, 0.6875, -0.09375, &roots)
	if n != 3 {
		t.Fatalf("solveCubic found %d roots, want 3", n)
	}
	for _, want := range []float64{0.25, 0.5, 0.75} {
		found := false
		for i := 0; i < n; i++ {
			if math.Abs(roots[i]-want) < 1e-9 {
				found = true
			}
		}
		if !found {
			t.Errorf("root %v not found in %v", want, roots[:n])
		}
	}
}
