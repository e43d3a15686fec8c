package msdf

import (
	"math/rand/v2"
	"testing"
)

func TestShelfAllocator_Sequence(t *testing.T) {
	a := NewShelfAllocator(256, 256)

	steps := []struct {
		w, h int
		want Region
		ok   bool
	}{
		{100, 40, Region{0, 0, 100, 40}, true},
		{100, 60, Region{100, 0, 100, 60}, true},
		{50, 10, Region{200, 0, 50, 10}, true},
		{10, 10, Region{0, 60, 10, 10}, true}, // 250+10 > 256: new shelf below the tallest
		{300, 10, Region{}, false},           // wider than the canvas
		{0, 5, Region{}, false},
		{246, 196, Region{10, 60, 246, 196}, true},
		{1, 1, Region{}, false},
	}
	for i, s := range steps {
		got, ok := a.Allocate(s.w, s.h)
		if ok != s.ok || got != s.want {
			t.Errorf("step %d Allocate(%d, %d) = %v, %v; want %v, %v", i, s.w, s.h, got, ok, s.want, s.ok)
		}
	}
}

func TestShelfAllocator_FillsAndFails(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		succeed       int
	}{
		{"one shelf of two", 256, 150, 2},
		{"two rows of two", 256, 256, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewShelfAllocator(tt.width, tt.height)
			var granted []Region
			for i := 0; i < tt.succeed; i++ {
				r, ok := a.Allocate(100, 100)
				if !ok {
					t.Fatalf("request %d failed, want success", i)
				}
				granted = append(granted, r)
			}
			if _, ok := a.Allocate(100, 100); ok {
				t.Fatalf("request %d succeeded, want failure", tt.succeed)
			}
			for i := range granted {
				for j := i + 1; j < len(granted); j++ {
					if granted[i].Overlaps(granted[j]) {
						t.Errorf("regions %v and %v overlap", granted[i], granted[j])
					}
				}
			}
		})
	}
}

func TestShelfAllocator_FailureLeavesStateUnchanged(t *testing.T) {
	a := NewShelfAllocator(64, 32)
	if _, ok := a.Allocate(40, 20); !ok {
		t.Fatal("first allocation failed")
	}
	before := *a

	if _, ok := a.Allocate(40, 20); ok {
		t.Fatal("second allocation should not fit")
	}
	if *a != before {
		t.Errorf("state changed after failed Allocate: %+v -> %+v", before, *a)
	}

	// What does fit still goes to the current shelf.
	r, ok := a.Allocate(24, 12)
	if !ok || r != (Region{40, 0, 24, 12}) {
		t.Errorf("Allocate(24, 12) = %v, %v; want 24x12+40+0", r, ok)
	}
}

func TestShelfAllocator_RandomDisjoint(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for round := 0; round < 20; round++ {
		w, h := 64+rng.IntN(512), 64+rng.IntN(512)
		a := NewShelfAllocator(w, h)
		var granted []Region
		for i := 0; i < 200; i++ {
			rw, rh := 1+rng.IntN(48), 1+rng.IntN(48)
			canFit := a.CanFit(rw, rh)
			r, ok := a.Allocate(rw, rh)
			if ok != canFit {
				t.Fatalf("CanFit(%d, %d) = %v but Allocate ok = %v", rw, rh, canFit, ok)
			}
			if !ok {
				continue
			}
			if r.X < 0 || r.Y < 0 || r.X+r.Width > w || r.Y+r.Height > h {
				t.Fatalf("region %v outside %dx%d canvas", r, w, h)
			}
			for _, g := range granted {
				if g.Overlaps(r) {
					t.Fatalf("round %d: %v overlaps %v", round, r, g)
				}
			}
			granted = append(granted, r)
		}
		if a.Count() != len(granted) {
			t.Errorf("Count() = %d, want %d", a.Count(), len(granted))
		}
		area := 0
		for _, g := range granted {
			area += g.Area()
		}
		if a.UsedArea() != area {
			t.Errorf("UsedArea() = %d, want %d", a.UsedArea(), area)
		}
	}
}

func TestShelfAllocator_Reset(t *testing.T) {
	a := NewShelfAllocator(32, 32)
	for {
		if _, ok := a.Allocate(10, 10); !ok {
			break
		}
	}
	if a.Utilization() == 0 {
		t.Fatal("Utilization() = 0 after filling")
	}

	a.Reset()
	if a.Count() != 0 || a.UsedArea() != 0 || a.RemainingHeight() != 32 {
		t.Errorf("after Reset: count=%d used=%d remaining=%d", a.Count(), a.UsedArea(), a.RemainingHeight())
	}
	if r, ok := a.Allocate(10, 10); !ok || r != (Region{0, 0, 10, 10}) {
		t.Errorf("Allocate after Reset = %v, %v", r, ok)
	}
}

func TestRegion(t *testing.T) {
	a := Region{X: 0, Y: 0, Width: 10, Height: 10}
	b := Region{X: 10, Y: 0, Width: 5, Height: 5}
	c := Region{X: 9, Y: 9, Width: 2, Height: 2}

	if a.Overlaps(b) {
		t.Error("edge-adjacent regions should not overlap")
	}
	if !a.Overlaps(c) {
		t.Error("regions sharing pixel (9,9) should overlap")
	}
	if got := a.Union(b); got != (Region{0, 0, 15, 10}) {
		t.Errorf("Union = %v", got)
	}
	if got := (Region{}).Union(b); got != b {
		t.Errorf("empty Union = %v, want %v", got, b)
	}
	if got := b.String(); got != "5x5+10+0" {
		t.Errorf("String() = %q", got)
	}
}
