package spritefont

// shelfAllocator implements shelf-based rectangle packing for one
// atlas page.
//
// The algorithm organizes rectangles in horizontal "shelves". Each
// shelf has a fixed height (determined by the tallest item placed so
// far). New items are placed left-to-right on the current shelf until
// no space remains, then a new shelf is started below.
type shelfAllocator struct {
	width   int
	height  int
	shelves []shelf

	// Tracking for utilization
	usedArea int
}

// shelf represents a horizontal strip in the page.
type shelf struct {
	y      int // Y position of shelf top
	height int // Height of the shelf (tallest item so far)
	x      int // Current X position (next free slot)
}

// newShelfAllocator creates an allocator for one page of the given
// dimensions.
func newShelfAllocator(width, height int) *shelfAllocator {
	return &shelfAllocator{
		width:   width,
		height:  height,
		shelves: make([]shelf, 0, 16),
	}
}

// allocate finds space for a rectangle of the given size.
// Returns the x, y position and true if space was found.
//
// The algorithm:
//  1. Try to fit on an existing shelf with enough height
//  2. If no shelf fits, create a new shelf
//  3. If no space for a new shelf, allocation fails
func (a *shelfAllocator) allocate(w, h int) (x, y int, ok bool) {
	for i := range a.shelves {
		shelf := &a.shelves[i]

		if shelf.x+w > a.width {
			continue
		}

		if h > shelf.height {
			// Item is taller than the shelf. Extending is only
			// possible on the last shelf while there is room below.
			if i == len(a.shelves)-1 && shelf.y+h <= a.height {
				shelf.height = h
				x, y = shelf.x, shelf.y
				shelf.x += w
				a.usedArea += w * h
				return x, y, true
			}
			continue
		}

		x, y = shelf.x, shelf.y
		shelf.x += w
		a.usedArea += w * h
		return x, y, true
	}

	newY := 0
	if len(a.shelves) > 0 {
		last := a.shelves[len(a.shelves)-1]
		newY = last.y + last.height
	}
	if newY+h > a.height || w > a.width {
		return -1, -1, false
	}

	a.shelves = append(a.shelves, shelf{y: newY, height: h, x: w})
	a.usedArea += w * h
	return 0, newY, true
}

// reset clears all allocations, allowing the allocator to be reused.
func (a *shelfAllocator) reset() {
	a.shelves = a.shelves[:0]
	a.usedArea = 0
}

// utilization returns the fraction of page space used (0.0 to 1.0).
func (a *shelfAllocator) utilization() float64 {
	if a.width <= 0 || a.height <= 0 {
		return 0
	}
	return float64(a.usedArea) / float64(a.width*a.height)
}

// shelfCount returns the number of shelves currently in use.
func (a *shelfAllocator) shelfCount() int {
	return len(a.shelves)
}
