package msdf

import "fmt"

// Region is a rectangle of canvas pixels granted by a ShelfAllocator.
type Region struct {
	X, Y, Width, Height int
}

// Empty reports whether the region covers no pixels.
func (r Region) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Area returns the number of pixels in the region.
func (r Region) Area() int {
	if r.Empty() {
		return 0
	}
	return r.Width * r.Height
}

// Overlaps reports whether r and s share at least one pixel.
func (r Region) Overlaps(s Region) bool {
	if r.Empty() || s.Empty() {
		return false
	}
	return r.X < s.X+s.Width && s.X < r.X+r.Width &&
		r.Y < s.Y+s.Height && s.Y < r.Y+r.Height
}

// Union returns the smallest region containing both r and s.
// Empty regions are ignored.
func (r Region) Union(s Region) Region {
	if r.Empty() {
		return s
	}
	if s.Empty() {
		return r
	}
	x0, y0 := min(r.X, s.X), min(r.Y, s.Y)
	x1 := max(r.X+r.Width, s.X+s.Width)
	y1 := max(r.Y+r.Height, s.Y+s.Height)
	return Region{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

func (r Region) String() string {
	return fmt.Sprintf("%dx%d+%d+%d", r.Width, r.Height, r.X, r.Y)
}

// ShelfAllocator packs rectangles into a fixed canvas, left to right in
// horizontal shelves. Only the current shelf accepts new items; when an
// item does not fit in what remains of it, a new shelf is opened directly
// below the tallest item of the current one. Space is never reclaimed:
// the allocator is filled once per atlas generation and then Reset.
//
// Granted regions never overlap. A ShelfAllocator is not safe for
// concurrent use.
type ShelfAllocator struct {
	width  int
	height int

	shelfY      int // top of the current shelf
	shelfHeight int // tallest item on the current shelf
	cursorX     int // next free x on the current shelf

	usedArea int
	count    int
}

// NewShelfAllocator creates an allocator over a width x height canvas.
func NewShelfAllocator(width, height int) *ShelfAllocator {
	return &ShelfAllocator{
		width:  width,
		height: height,
	}
}

// Allocate reserves a w x h region. It returns false when no room is left;
// a failed request leaves the allocator unchanged.
func (a *ShelfAllocator) Allocate(w, h int) (Region, bool) {
	if w <= 0 || h <= 0 || w > a.width {
		return Region{}, false
	}

	x, y := a.cursorX, a.shelfY
	if x+w > a.width {
		// Start a new shelf below the current one.
		x, y = 0, a.shelfY+a.shelfHeight
	}
	if y+h > a.height {
		return Region{}, false
	}

	if y != a.shelfY {
		a.shelfY = y
		a.shelfHeight = 0
	}
	a.cursorX = x + w
	a.shelfHeight = max(a.shelfHeight, h)
	a.usedArea += w * h
	a.count++

	return Region{X: x, Y: y, Width: w, Height: h}, true
}

// CanFit reports whether Allocate(w, h) would currently succeed.
func (a *ShelfAllocator) CanFit(w, h int) bool {
	if w <= 0 || h <= 0 || w > a.width {
		return false
	}
	y := a.shelfY
	if a.cursorX+w > a.width {
		y = a.shelfY + a.shelfHeight
	}
	return y+h <= a.height
}

// Reset clears all allocations, starting a new atlas generation.
func (a *ShelfAllocator) Reset() {
	a.shelfY = 0
	a.shelfHeight = 0
	a.cursorX = 0
	a.usedArea = 0
	a.count = 0
}

// Width returns the canvas width.
func (a *ShelfAllocator) Width() int { return a.width }

// Height returns the canvas height.
func (a *ShelfAllocator) Height() int { return a.height }

// Count returns the number of regions granted since the last Reset.
func (a *ShelfAllocator) Count() int { return a.count }

// UsedArea returns the total area of granted regions.
func (a *ShelfAllocator) UsedArea() int { return a.usedArea }

// Utilization returns the fraction of the canvas covered by granted
// regions (0.0 to 1.0).
func (a *ShelfAllocator) Utilization() float64 {
	if a.width <= 0 || a.height <= 0 {
		return 0
	}
	return float64(a.usedArea) / float64(a.width*a.height)
}

// RemainingHeight returns the vertical space below the current shelf.
func (a *ShelfAllocator) RemainingHeight() int {
	return max(0, a.height-(a.shelfY+a.shelfHeight))
}
