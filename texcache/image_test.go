package texcache

import (
	"context"
	"testing"
	"time"

	"github.com/gogpu/msdfpipe"
	"github.com/gogpu/msdfpipe/msdf"
)

func TestImageUploaderComposites(t *testing.T) {
	u := NewImageUploader()

	rgba := []byte{
		1, 2, 3, 255, 4, 5, 6, 255,
		7, 8, 9, 255, 10, 11, 12, 255,
	}
	region := msdf.Region{X: 3, Y: 1, Width: 2, Height: 2}
	if err := u.Upload(5, 8, 4, region, rgba); err != nil {
		t.Fatalf("Upload() error = %v", err)
	}

	img := u.Image(5)
	if img == nil || img.Bounds().Dx() != 8 || img.Bounds().Dy() != 4 {
		t.Fatalf("Image(5) = %v", img)
	}
	if c := img.RGBAAt(4, 2); c.R != 10 || c.G != 11 || c.B != 12 || c.A != 255 {
		t.Errorf("RGBAAt(4,2) = %v", c)
	}
	if c := img.RGBAAt(2, 1); c.A != 0 {
		t.Errorf("pixel outside the region was written: %v", c)
	}

	// A second upload keeps earlier regions.
	if err := u.Upload(5, 8, 4, msdf.Region{X: 0, Y: 0, Width: 1, Height: 1}, []byte{9, 9, 9, 255}); err != nil {
		t.Fatal(err)
	}
	if c := u.Image(5).RGBAAt(3, 1); c.R != 1 {
		t.Errorf("earlier region lost: %v", c)
	}
}

func TestImageUploaderRejectsSizeMismatch(t *testing.T) {
	u := NewImageUploader()
	if err := u.Upload(0, 4, 4, msdf.Region{Width: 2, Height: 2}, make([]byte, 12)); err == nil {
		t.Error("Upload() accepted a short buffer")
	}
}

func TestImageUploaderReleaseAndScale(t *testing.T) {
	u := NewImageUploader()
	if err := u.Upload(1, 2, 2, msdf.Region{Width: 1, Height: 1}, []byte{200, 100, 50, 255}); err != nil {
		t.Fatal(err)
	}

	scaled := u.Scaled(1, 3)
	if scaled.Bounds().Dx() != 6 || scaled.Bounds().Dy() != 6 {
		t.Fatalf("Scaled bounds = %v", scaled.Bounds())
	}
	for _, p := range [][2]int{{0, 0}, {2, 2}} {
		if c := scaled.RGBAAt(p[0], p[1]); c.R != 200 || c.G != 100 || c.B != 50 {
			t.Errorf("scaled pixel %v = %v", p, c)
		}
	}
	if c := scaled.RGBAAt(3, 3); c.A != 0 {
		t.Errorf("scaled pixel (3,3) = %v, want transparent", c)
	}

	u.Release(1)
	u.Release(1)
	if u.Len() != 0 || u.Image(1) != nil || u.Scaled(1, 2) != nil {
		t.Error("texture still present after Release")
	}
}

func TestImageUploaderMatchesSurface(t *testing.T) {
	cfg := msdfpipe.DefaultConfig()
	cfg.Width, cfg.Height = 96, 96
	p, err := msdfpipe.New(context.Background(), cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = p.Close() })

	up := NewImageUploader()
	c := New(up)
	for i := 0; i < 2; i++ {
		if err := p.Submit(squareGlyphs(3, 14)); err != nil {
			t.Fatal(err)
		}
	}
	for i := 0; i < 2; i++ {
		select {
		case r := <-p.Results():
			if err := c.Apply(r); err != nil {
				t.Fatal(err)
			}
		case <-time.After(5 * time.Second):
			t.Fatal("timed out")
		}
	}

	img := up.Image(0)
	surface := p.Surface()
	for y := 0; y < surface.Height(); y++ {
		for x := 0; x < surface.Width(); x++ {
			want := surface.At(x, y)
			got := img.RGBAAt(x, y)
			if [3]byte{got.R, got.G, got.B} != want {
				t.Fatalf("texture (%d,%d) = %v, surface %v", x, y, got, want)
			}
		}
	}
}
