package iconkit

// VisitedSet records which pixels the flood fill reached.
//
// Membership is a flat []bool indexed by y*width+x, so the traversal never
// builds a pointer graph.
type VisitedSet struct {
	width  int
	height int
	marks  []bool
	count  int
}

// Contains reports whether (x, y) was reached. Out-of-range points are not.
func (v *VisitedSet) Contains(x, y int) bool {
	if x < 0 || y < 0 || x >= v.width || y >= v.height {
		return false
	}
	return v.marks[y*v.width+x]
}

// Len returns the number of reached pixels.
func (v *VisitedSet) Len() int { return v.count }

// FloodFill finds every pixel connected to the image border through a chain
// of pixels matching reference within tolerance.
//
// Parameters:
//   - g: The grid to traverse. It is only read.
//   - reference: The color a pixel must match to be entered.
//   - tolerance: Inclusive color distance threshold (see Matches).
//
// Returns the set of reached pixels. A zero-area grid yields an empty set.
//
// # Algorithm
//
// Breadth-first traversal with 4-connectivity:
//
//  1. Seed: every pixel on row 0, row H-1, column 0 and column W-1 that
//     matches the reference is marked and queued.
//  2. Expand: pop a pixel, visit its up/down/left/right neighbours; a
//     neighbour is marked and queued only if it is unmarked and matches.
//     Diagonal steps never happen, so two regions touching only at a
//     corner stay separate.
//  3. Stop when the queue is empty.
//
// Membership is a pure reachability predicate, so the result does not depend
// on seed order. Time and space are O(W·H).
func FloodFill(g *PixelGrid, reference Color, tolerance int) *VisitedSet {
	if g.Empty() {
		return &VisitedSet{}
	}
	w, h := g.Width(), g.Height()
	v := &VisitedSet{width: w, height: h, marks: make([]bool, w*h)}

	queue := make([]int, 0, 2*(w+h))
	visit := func(x, y int) {
		idx := y*w + x
		if v.marks[idx] || !Matches(g.At(x, y), reference, tolerance) {
			return
		}
		v.marks[idx] = true
		v.count++
		queue = append(queue, idx)
	}

	for x := 0; x < w; x++ {
		visit(x, 0)
		visit(x, h-1)
	}
	for y := 1; y < h-1; y++ {
		visit(0, y)
		visit(w-1, y)
	}

	for head := 0; head < len(queue); head++ {
		idx := queue[head]
		x, y := idx%w, idx/w
		if x > 0 {
			visit(x-1, y)
		}
		if x < w-1 {
			visit(x+1, y)
		}
		if y > 0 {
			visit(x, y-1)
		}
		if y < h-1 {
			visit(x, y+1)
		}
	}

	return v
}
