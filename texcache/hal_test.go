//go:build !nogpu

package texcache

import (
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/msdfpipe/msdf"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"
)

// createNoopDevice creates a noop device and queue for testing.
func createNoopDevice(t *testing.T) (hal.Device, hal.Queue) {
	t.Helper()
	api := noop.API{}
	instance, err := api.CreateInstance(nil)
	if err != nil {
		t.Fatalf("CreateInstance failed: %v", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		t.Fatal("noop API reported no adapters")
	}
	openDev, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() {
		openDev.Device.Destroy()
		instance.Destroy()
	})
	return openDev.Device, openDev.Queue
}

func TestHALUploaderCreatesAndReuses(t *testing.T) {
	device, queue := createNoopDevice(t)
	u := NewHALUploader(device, queue)
	defer u.Close()

	region := msdf.Region{X: 4, Y: 8, Width: 2, Height: 3}
	rgba := make([]byte, region.Area()*4)
	if err := u.Upload(0, 64, 64, region, rgba); err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	view, ok := u.View(0)
	if !ok || view == nil {
		t.Fatal("View(0) missing after upload")
	}

	if err := u.Upload(0, 64, 64, msdf.Region{Width: 1, Height: 1}, make([]byte, 4)); err != nil {
		t.Fatal(err)
	}
	if again, _ := u.View(0); again != view {
		t.Error("second upload recreated the texture")
	}
	if u.Len() != 1 {
		t.Errorf("Len() = %d, want 1", u.Len())
	}

	if err := u.Upload(1, 64, 64, msdf.Region{Width: 1, Height: 1}, make([]byte, 4)); err != nil {
		t.Fatal(err)
	}
	u.Release(0)
	u.Release(0)
	if _, ok := u.View(0); ok || u.Len() != 1 {
		t.Errorf("after Release(0): Len() = %d", u.Len())
	}
}

func TestHALUploaderRejectsSizeMismatch(t *testing.T) {
	device, queue := createNoopDevice(t)
	u := NewHALUploader(device, queue)
	defer u.Close()

	if err := u.Upload(0, 16, 16, msdf.Region{Width: 4, Height: 4}, make([]byte, 10)); err == nil {
		t.Error("Upload() accepted a short buffer")
	}
	if u.Len() != 0 {
		t.Errorf("Len() = %d after rejected upload", u.Len())
	}
}

func TestHALUploaderBehindCache(t *testing.T) {
	device, queue := createNoopDevice(t)
	u := NewHALUploader(device, queue)
	defer u.Close()

	p := newPipeline(t, 128, 128)
	c := New(u)
	if err := p.Submit(squareGlyphs(4, 9)); err != nil {
		t.Fatal(err)
	}
	if err := c.Apply(next(t, p)); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if c.Len() != 4 || u.Len() != 1 {
		t.Errorf("cache len = %d, textures = %d", c.Len(), u.Len())
	}
}
