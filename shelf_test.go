package spritefont

import "testing"

func TestShelfAllocate(t *testing.T) {
	a := newShelfAllocator(64, 64)

	x, y, ok := a.allocate(16, 16)
	if !ok || x != 0 || y != 0 {
		t.Fatalf("first allocation at (%d,%d) ok=%v, want (0,0) true", x, y, ok)
	}
	x, y, ok = a.allocate(16, 16)
	if !ok || x != 16 || y != 0 {
		t.Fatalf("second allocation at (%d,%d) ok=%v, want (16,0) true", x, y, ok)
	}
	if a.shelfCount() != 1 {
		t.Errorf("shelfCount = %d, want 1", a.shelfCount())
	}
}

func TestShelfNewShelf(t *testing.T) {
	a := newShelfAllocator(32, 64)

	a.allocate(32, 16)
	x, y, ok := a.allocate(32, 16)
	if !ok || x != 0 || y != 16 {
		t.Fatalf("allocation at (%d,%d) ok=%v, want (0,16) true", x, y, ok)
	}
	if a.shelfCount() != 2 {
		t.Errorf("shelfCount = %d, want 2", a.shelfCount())
	}
}

func TestShelfExtendLast(t *testing.T) {
	a := newShelfAllocator(64, 64)

	a.allocate(16, 8)
	// Taller item extends the last shelf instead of opening a new one.
	x, y, ok := a.allocate(16, 20)
	if !ok || x != 16 || y != 0 {
		t.Fatalf("allocation at (%d,%d) ok=%v, want (16,0) true", x, y, ok)
	}
	if a.shelfCount() != 1 {
		t.Errorf("shelfCount = %d, want 1", a.shelfCount())
	}
}

func TestShelfFull(t *testing.T) {
	a := newShelfAllocator(32, 32)

	if _, _, ok := a.allocate(32, 32); !ok {
		t.Fatal("exact-fit allocation failed")
	}
	if _, _, ok := a.allocate(1, 1); ok {
		t.Fatal("allocation succeeded on a full page")
	}
	if _, _, ok := a.allocate(64, 1); ok {
		t.Fatal("allocation wider than the page succeeded")
	}
}

func TestShelfReset(t *testing.T) {
	a := newShelfAllocator(32, 32)
	a.allocate(32, 32)
	a.reset()

	if a.utilization() != 0 {
		t.Errorf("utilization after reset = %g, want 0", a.utilization())
	}
	if x, y, ok := a.allocate(16, 16); !ok || x != 0 || y != 0 {
		t.Fatalf("allocation after reset at (%d,%d) ok=%v, want (0,0) true", x, y, ok)
	}
}

func TestShelfUtilization(t *testing.T) {
	a := newShelfAllocator(32, 32)
	a.allocate(16, 16)
	if got, want := a.utilization(), 0.25; got != want {
		t.Errorf("utilization = %g, want %g", got, want)
	}
}

func TestShelfNoOverlap(t *testing.T) {
	a := newShelfAllocator(64, 64)

	type rect struct{ x, y, w, h int }
	var placed []rect
	sizes := []rect{
		{w: 20, h: 20}, {w: 20, h: 20}, {w: 20, h: 20},
		{w: 10, h: 30}, {w: 30, h: 10}, {w: 15, h: 15},
	}
	for _, s := range sizes {
		x, y, ok := a.allocate(s.w, s.h)
		if !ok {
			continue
		}
		if x < 0 || y < 0 || x+s.w > 64 || y+s.h > 64 {
			t.Fatalf("allocation (%d,%d,%d,%d) out of bounds", x, y, s.w, s.h)
		}
		placed = append(placed, rect{x, y, s.w, s.h})
	}
	for i, r := range placed {
		for _, q := range placed[i+1:] {
			if r.x < q.x+q.w && q.x < r.x+r.w && r.y < q.y+q.h && q.y < r.y+r.h {
				t.Fatalf("rectangles %v and %v overlap", r, q)
			}
		}
	}
}
