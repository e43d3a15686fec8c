// Command msdfdemo renders printable ASCII into an MSDF atlas at growing
// sizes until the atlas is full, then writes the atlas as a PNG.
package main

import (
	"context"
	"flag"
	"image/png"
	"log"
	"log/slog"
	"os"

	"github.com/faiface/mainthread"
	"github.com/gogpu/msdfpipe"
	"github.com/gogpu/msdfpipe/glyphs"
	"github.com/gogpu/msdfpipe/texcache"
	"golang.org/x/image/font/gofont/goregular"
)

func main() {
	mainthread.Run(run)
}

func run() {
	var (
		width  = flag.Int("width", 512, "atlas width")
		height = flag.Int("height", 512, "atlas height")
		ppem   = flag.Float64("size", 16, "first glyph size in pixels per em")
		step   = flag.Float64("step", 8, "size increase per batch")
		shade  = flag.Float64("shade", 4, "distance range in pixels")
		scale  = flag.Int("scale", 1, "output magnification")
		font   = flag.String("font", "", "TrueType/OpenType font file (default Go Regular)")
		output = flag.String("output", "atlas.png", "output file")
		debug  = flag.Bool("debug", false, "log render passes")
	)
	flag.Parse()

	if *debug {
		msdfpipe.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	data := goregular.TTF
	if *font != "" {
		var err error
		if data, err = os.ReadFile(*font); err != nil {
			log.Fatalf("Failed to read font: %v", err)
		}
	}

	cfg := msdfpipe.DefaultConfig()
	cfg.Width, cfg.Height = *width, *height

	// Results are applied on the main thread; shortfalls reports the
	// shortfall of every applied batch back to this goroutine.
	uploader := texcache.NewImageUploader()
	cache := texcache.New(uploader)
	shortfalls := make(chan int, cfg.ResultQueue+1)

	var p *msdfpipe.Pipeline
	drain := func() {
		for {
			r, ok := p.TryResult()
			if !ok {
				return
			}
			if err := cache.Apply(r); err != nil {
				log.Printf("apply batch %d: %v", r.Batch.ID, err)
			}
			shortfalls <- r.Batch.Shortfall()
		}
	}
	waker := msdfpipe.WakerFunc(func() { mainthread.CallNonBlock(drain) })

	var err error
	p, err = msdfpipe.New(context.Background(), cfg, waker)
	if err != nil {
		log.Fatalf("Failed to start pipeline: %v", err)
	}
	defer func() { _ = p.Close() }()

	runes := make([]rune, 0, 95)
	for r := rune(' '); r <= '~'; r++ {
		runes = append(runes, r)
	}

	for size, fontID := *ppem, uint64(0); ; size, fontID = size+*step, fontID+1 {
		ex, err := glyphs.Parse(data, fontID)
		if err != nil {
			log.Fatalf("Failed to parse font: %v", err)
		}
		reqs, err := ex.Requests(runes, size, *shade)
		if err != nil {
			log.Fatalf("Failed to extract glyphs: %v", err)
		}
		if err := p.Submit(msdfpipe.Request{Glyphs: reqs}); err != nil {
			log.Fatalf("Failed to submit: %v", err)
		}
		if <-shortfalls > 0 {
			break
		}
	}

	if err := p.Exit(); err != nil {
		log.Fatalf("Failed to stop pipeline: %v", err)
	}
	if err := p.Join(context.Background()); err != nil {
		log.Fatalf("Pipeline failed: %v", err)
	}

	stats := p.Stats()
	mainthread.Call(func() {
		id, _ := cache.Texture()
		img := uploader.Scaled(id, *scale)
		if img == nil {
			log.Fatal("No glyphs rendered")
		}
		f, err := os.Create(*output)
		if err != nil {
			log.Fatalf("Failed to create output: %v", err)
		}
		defer f.Close()
		if err := png.Encode(f, img); err != nil {
			log.Fatalf("Failed to save: %v", err)
		}
	})

	log.Printf("Atlas saved to %s (%dx%d, %d glyphs, %.0f%% used)\n",
		*output, *width, *height, stats.Shapes, stats.Utilization*100)
}
