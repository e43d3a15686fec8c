package msdf

import (
	"image"
	"sync"
)

// BytesPerPixel is the size of one RGB8 surface pixel.
const BytesPerPixel = 3

// Surface is the shared RGB8 canvas the atlas is rendered into.
//
// One coarse lock guards the pixels. A render pass holds the write side for
// its whole duration through a Pass and hands each task a View over exactly
// one region; owner-side readers take the read side. Safety of concurrent
// writes within a pass rests on the views being disjoint, which holds
// because the regions come from one ShelfAllocator.
type Surface struct {
	mu     sync.RWMutex
	width  int
	height int
	pix    []byte
	gen    uint64
}

// NewSurface allocates a width x height surface filled with the background
// value 0.
func NewSurface(width, height int) *Surface {
	return &Surface{
		width:  width,
		height: height,
		pix:    make([]byte, width*height*BytesPerPixel),
	}
}

// Width returns the surface width in pixels.
func (s *Surface) Width() int { return s.width }

// Height returns the surface height in pixels.
func (s *Surface) Height() int { return s.height }

// Bounds returns the whole surface as a Region.
func (s *Surface) Bounds() Region {
	return Region{Width: s.width, Height: s.height}
}

// Lock acquires the surface for a render pass. The returned Pass must be
// released with Unlock.
func (s *Surface) Lock() *Pass {
	s.mu.Lock()
	return &Pass{surface: s}
}

// At returns the RGB value of pixel (x, y).
func (s *Surface) At(x, y int) [3]byte {
	s.mu.RLock()
	defer s.mu.RUnlock()

	off := (y*s.width + x) * BytesPerPixel
	return [3]byte{s.pix[off], s.pix[off+1], s.pix[off+2]}
}

// ReadRegion copies the RGB8 pixels of r, row by row, into dst (grown as
// needed) and returns it. r is clipped to the surface.
func (s *Surface) ReadRegion(r Region, dst []byte) []byte {
	r = s.clip(r)

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.readLocked(r, dst)
}

func (s *Surface) readLocked(r Region, dst []byte) []byte {
	n := r.Area() * BytesPerPixel
	if cap(dst) < n {
		dst = make([]byte, n)
	}
	dst = dst[:n]

	rowBytes := r.Width * BytesPerPixel
	for y := 0; y < r.Height; y++ {
		src := ((r.Y+y)*s.width + r.X) * BytesPerPixel
		copy(dst[y*rowBytes:(y+1)*rowBytes], s.pix[src:src+rowBytes])
	}
	return dst
}

// Generation returns how many times the surface has been cleared.
func (s *Surface) Generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.gen
}

// Snapshot is ReadRegion for a reader that rendered into generation gen:
// it copies r only if the surface has not been cleared since, and reports
// whether it did.
func (s *Surface) Snapshot(gen uint64, r Region, dst []byte) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.gen != gen {
		return dst[:0], false
	}
	return s.readLocked(s.clip(r), dst), true
}

// ReadRGBA copies the pixels of r into a new RGBA8 buffer with opaque alpha,
// the layout GPU texture formats expect.
func (s *Surface) ReadRGBA(r Region) []byte {
	return RGBToRGBA(s.ReadRegion(r, nil))
}

// Image returns a copy of the whole surface as an *image.RGBA.
func (s *Surface) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, s.width, s.height))
	copy(img.Pix, s.ReadRGBA(s.Bounds()))
	return img
}

func (s *Surface) clip(r Region) Region {
	x0, y0 := max(r.X, 0), max(r.Y, 0)
	x1 := min(r.X+r.Width, s.width)
	y1 := min(r.Y+r.Height, s.height)
	if x1 <= x0 || y1 <= y0 {
		return Region{}
	}
	return Region{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// RGBToRGBA expands packed RGB8 to RGBA8 with alpha 255.
func RGBToRGBA(rgb []byte) []byte {
	pixelCount := len(rgb) / BytesPerPixel
	rgba := make([]byte, pixelCount*4)
	for i := 0; i < pixelCount; i++ {
		src, dst := i*3, i*4
		rgba[dst+0] = rgb[src+0]
		rgba[dst+1] = rgb[src+1]
		rgba[dst+2] = rgb[src+2]
		rgba[dst+3] = 255
	}
	return rgba
}

// Pass is the write capability over a locked Surface for one render pass.
type Pass struct {
	surface *Surface
}

// View returns a write view restricted to region r (clipped to the
// surface). Views over disjoint regions may be written concurrently.
func (p *Pass) View(r Region) *View {
	s := p.surface
	return &View{
		pix:    s.pix,
		stride: s.width * BytesPerPixel,
		region: s.clip(r),
	}
}

// Generation returns the generation the pass renders into.
func (p *Pass) Generation() uint64 {
	return p.surface.gen
}

// Clear resets every pixel to the background value and starts a new
// generation.
func (p *Pass) Clear() {
	clear(p.surface.pix)
	p.surface.gen++
}

// Unlock ends the pass. Views obtained from it must no longer be used.
func (p *Pass) Unlock() {
	if p.surface == nil {
		return
	}
	s := p.surface
	p.surface = nil
	s.mu.Unlock()
}

// View is a writable window onto one region of a locked surface.
// Coordinates are local to the region; rows are capacity-limited to the
// region width, so a view cannot address pixels of its neighbours.
type View struct {
	pix    []byte
	stride int
	region Region
}

// Region returns the surface region the view covers.
func (v *View) Region() Region { return v.region }

// Width returns the view width in pixels.
func (v *View) Width() int { return v.region.Width }

// Height returns the view height in pixels.
func (v *View) Height() int { return v.region.Height }

// Row returns the RGB8 bytes of local row y.
func (v *View) Row(y int) []byte {
	if y < 0 || y >= v.region.Height {
		panic("msdf: view row out of range")
	}
	start := (v.region.Y+y)*v.stride + v.region.X*BytesPerPixel
	end := start + v.region.Width*BytesPerPixel
	return v.pix[start:end:end]
}

// Set writes pixel (x, y) in local coordinates.
func (v *View) Set(x, y int, rgb [3]byte) {
	row := v.Row(y)
	o := x * BytesPerPixel
	row[o], row[o+1], row[o+2] = rgb[0], rgb[1], rgb[2]
}
