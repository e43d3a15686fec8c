//go:build !nogpu

package texcache

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/msdfpipe/msdf"
	"github.com/gogpu/wgpu/hal"
)

// HALUploader writes batches into gogpu/wgpu HAL textures. Each atlas
// generation gets one RGBA8Unorm texture with a sampled view; batches are
// written at their atlas position with queue.WriteTexture.
//
// All methods must be called on the goroutine that owns the device.
type HALUploader struct {
	device   hal.Device
	queue    hal.Queue
	textures map[TextureID]*halTexture
}

type halTexture struct {
	tex    hal.Texture
	view   hal.TextureView
	width  uint32
	height uint32
}

// NewHALUploader creates an uploader over device and queue.
func NewHALUploader(device hal.Device, queue hal.Queue) *HALUploader {
	return &HALUploader{
		device:   device,
		queue:    queue,
		textures: make(map[TextureID]*halTexture),
	}
}

// Upload writes rgba into texture id at region, creating the texture on
// first use.
func (u *HALUploader) Upload(id TextureID, canvasW, canvasH int, region msdf.Region, rgba []byte) error {
	if want := region.Area() * 4; len(rgba) != want {
		return fmt.Errorf("texcache: %d bytes for region %v, want %d", len(rgba), region, want)
	}

	t, err := u.ensure(id, uint32(canvasW), uint32(canvasH)) //nolint:gosec // canvas size is validated by msdfpipe.Config
	if err != nil {
		return err
	}

	w, h := uint32(region.Width), uint32(region.Height) //nolint:gosec // region lies inside the canvas
	u.queue.WriteTexture(
		&hal.ImageCopyTexture{
			Texture:  t.tex,
			MipLevel: 0,
			Origin:   hal.Origin3D{X: uint32(region.X), Y: uint32(region.Y), Z: 0}, //nolint:gosec // non-negative region origin
			Aspect:   gputypes.TextureAspectAll,
		},
		rgba,
		&hal.ImageDataLayout{
			Offset:       0,
			BytesPerRow:  w * 4,
			RowsPerImage: h,
		},
		&hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
	)
	return nil
}

func (u *HALUploader) ensure(id TextureID, width, height uint32) (*halTexture, error) {
	if t, ok := u.textures[id]; ok && t.width == width && t.height == height {
		return t, nil
	}
	u.Release(id)

	tex, err := u.device.CreateTexture(&hal.TextureDescriptor{
		Label:         fmt.Sprintf("msdf_atlas_gen_%d", id),
		Size:          hal.Extent3D{Width: width, Height: height, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("texcache: create atlas texture %d: %w", id, err)
	}

	view, err := u.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         fmt.Sprintf("msdf_atlas_gen_%d_view", id),
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		u.device.DestroyTexture(tex)
		return nil, fmt.Errorf("texcache: create atlas texture view %d: %w", id, err)
	}

	t := &halTexture{tex: tex, view: view, width: width, height: height}
	u.textures[id] = t
	return t, nil
}

// Release destroys texture id and its view.
func (u *HALUploader) Release(id TextureID) {
	t, ok := u.textures[id]
	if !ok {
		return
	}
	delete(u.textures, id)
	u.device.DestroyTextureView(t.view)
	u.device.DestroyTexture(t.tex)
}

// View returns the sampled view of texture id for binding in a draw.
func (u *HALUploader) View(id TextureID) (hal.TextureView, bool) {
	t, ok := u.textures[id]
	if !ok {
		return nil, false
	}
	return t.view, true
}

// Len returns the number of live textures.
func (u *HALUploader) Len() int { return len(u.textures) }

// Close destroys every texture.
func (u *HALUploader) Close() {
	for id := range u.textures {
		u.Release(id)
	}
}
