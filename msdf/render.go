package msdf

import (
	"math"
)

// Render fills view with the shape's multi-channel distance field.
// view must cover exactly the shape's region (Pass.View(s.Region())).
//
// Each pixel depends only on this shape's edges, so shapes whose views are
// disjoint can be rendered concurrently against one Pass.
func (s *Shape) Render(view *View) {
	w, h := view.Width(), view.Height()
	for y := 0; y < h; y++ {
		row := view.Row(y)
		for x := 0; x < w; x++ {
			rgb := s.encode(s.PixelCenter(x, y))
			o := x * BytesPerPixel
			row[o], row[o+1], row[o+2] = rgb[0], rgb[1], rgb[2]
		}
	}
}

// PixelAt returns the encoded value for region-local pixel (x, y).
// Coordinates outside the region are allowed and evaluate the same field.
func (s *Shape) PixelAt(x, y int) [3]byte {
	return s.encode(s.PixelCenter(x, y))
}

// SignedDistances returns the per-channel signed distance at glyph-space
// point p: positive inside the outline, negative outside. A shape without
// edges reports -Inf on every channel.
func (s *Shape) SignedDistances(p Point) [3]float64 {
	minDist := [3]float64{math.Inf(1), math.Inf(1), math.Inf(1)}
	nearest := math.Inf(1)
	winding := 0

	for i := range s.edges {
		e := &s.edges[i]
		d := e.Distance(p)
		if math.IsNaN(d) {
			continue
		}
		nearest = min(nearest, d)
		for ch := 0; ch < 3; ch++ {
			if e.Color.Has(ch) && d < minDist[ch] {
				minDist[ch] = d
			}
		}
		winding += e.Winding(p)
	}

	sign := -1.0
	if s.fill.Inside(winding) {
		sign = 1
	}
	for ch := 0; ch < 3; ch++ {
		// A channel with no edges of its own falls back to the nearest edge.
		if math.IsInf(minDist[ch], 1) {
			minDist[ch] = nearest
		}
		minDist[ch] *= sign
	}
	return minDist
}

func (s *Shape) encode(p Point) [3]byte {
	if len(s.edges) == 0 {
		return [3]byte{}
	}
	d := s.SignedDistances(p)
	return [3]byte{
		distanceToByte(d[0], s.shade),
		distanceToByte(d[1], s.shade),
		distanceToByte(d[2], s.shade),
	}
}

// distanceToByte maps a signed distance to [0, 255]: 0 is shade or more
// outside, 255 is shade or more inside, and the edge sits at 128.
func distanceToByte(distance, shade float64) byte {
	normalized := 0.5 + distance/(2*shade)
	if math.IsNaN(normalized) {
		return 0
	}
	normalized = max(0, min(1, normalized))
	return byte(math.Round(normalized * 255))
}
