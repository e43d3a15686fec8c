package msdf

import "math"

// DefaultAngleThreshold is the tangent turn (radians) above which a join
// between two edges is treated as a sharp corner: 60 degrees.
const DefaultAngleThreshold = math.Pi / 3

// ColorEdges assigns channel colors to every edge of the outline so that
// the two edges meeting at a sharp corner never share the same channel set.
//
// Corners are joins whose tangent turns by more than angleThreshold.
// A contour without corners is White. A contour with one corner is split
// into thirds colored Cyan, White, Magenta. Otherwise the runs of edges
// between consecutive corners alternate Cyan and Magenta; with an odd
// corner count the last run is Yellow so it differs from the first.
func ColorEdges(outline *Outline, angleThreshold float64) {
	if outline == nil {
		return
	}
	for i := range outline.Contours {
		colorContour(&outline.Contours[i], angleThreshold)
	}
}

// corners returns the indices i for which the join between edge i and
// edge i+1 (cyclically) is sharp.
func corners(c *Contour, angleThreshold float64) []int {
	n := len(c.Edges)
	var out []int
	for i := 0; i < n; i++ {
		dirOut := c.Edges[i].DirectionAt(1)
		dirIn := c.Edges[(i+1)%n].DirectionAt(0)
		if AngleBetween(dirOut, dirIn) > angleThreshold {
			out = append(out, i)
		}
	}
	return out
}

func colorContour(c *Contour, angleThreshold float64) {
	n := len(c.Edges)
	if n == 0 {
		return
	}

	cs := corners(c, angleThreshold)
	switch {
	case len(cs) == 0 || n < 2:
		for i := range c.Edges {
			c.Edges[i].Color = ColorWhite
		}

	case len(cs) == 1:
		// Teardrop: edges after the corner, in order, split into thirds.
		thirds := [3]EdgeColor{ColorCyan, ColorWhite, ColorMagenta}
		start := cs[0] + 1
		for j := 0; j < n; j++ {
			c.Edges[(start+j)%n].Color = thirds[3*j/n]
		}

	default:
		k := len(cs)
		for s := 0; s < k; s++ {
			color := ColorCyan
			if s%2 == 1 {
				color = ColorMagenta
			}
			if k%2 == 1 && s == k-1 {
				color = ColorYellow
			}
			first := cs[s] + 1
			last := cs[(s+1)%k]
			if last < first {
				last += n
			}
			for j := first; j <= last; j++ {
				c.Edges[j%n].Color = color
			}
		}
	}
}
