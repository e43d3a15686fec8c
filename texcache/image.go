package texcache

import (
	"fmt"
	"image"

	"github.com/gogpu/msdfpipe/msdf"
	"golang.org/x/image/draw"
)

// ImageUploader keeps textures as in-memory RGBA images. It backs
// headless tools and tests.
type ImageUploader struct {
	images map[TextureID]*image.RGBA
}

// NewImageUploader creates an empty ImageUploader.
func NewImageUploader() *ImageUploader {
	return &ImageUploader{images: make(map[TextureID]*image.RGBA)}
}

// Upload composites rgba into image id at region.
func (u *ImageUploader) Upload(id TextureID, canvasW, canvasH int, region msdf.Region, rgba []byte) error {
	if want := region.Area() * 4; len(rgba) != want {
		return fmt.Errorf("texcache: %d bytes for region %v, want %d", len(rgba), region, want)
	}

	dst, ok := u.images[id]
	if !ok || dst.Rect.Dx() != canvasW || dst.Rect.Dy() != canvasH {
		dst = image.NewRGBA(image.Rect(0, 0, canvasW, canvasH))
		u.images[id] = dst
	}

	src := &image.RGBA{
		Pix:    rgba,
		Stride: region.Width * 4,
		Rect:   image.Rect(0, 0, region.Width, region.Height),
	}
	r := image.Rect(region.X, region.Y, region.X+region.Width, region.Y+region.Height)
	draw.Draw(dst, r, src, image.Point{}, draw.Src)
	return nil
}

// Release drops image id.
func (u *ImageUploader) Release(id TextureID) {
	delete(u.images, id)
}

// Image returns texture id, or nil if it does not exist.
func (u *ImageUploader) Image(id TextureID) *image.RGBA {
	return u.images[id]
}

// Len returns the number of live textures.
func (u *ImageUploader) Len() int { return len(u.images) }

// Scaled returns texture id magnified by an integer factor with
// nearest-neighbor sampling, which keeps the individual field texels
// visible. It returns nil if the texture does not exist.
func (u *ImageUploader) Scaled(id TextureID, factor int) *image.RGBA {
	src, ok := u.images[id]
	if !ok {
		return nil
	}
	factor = max(factor, 1)
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}
