package iconkit

import "image"

// BoundingBox is an axis-aligned rectangle in pixel coordinates.
//
// (X, Y) is the top-left corner, inclusive. A box with zero width or height
// means "no content" and is always reported at the origin.
type BoundingBox struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Empty reports whether the box has zero area.
func (b BoundingBox) Empty() bool { return b.Width <= 0 || b.Height <= 0 }

// Rect converts the box to an image.Rectangle.
func (b BoundingBox) Rect() image.Rectangle {
	return image.Rect(b.X, b.Y, b.X+b.Width, b.Y+b.Height)
}

// Offset returns the box translated by (dx, dy). Empty boxes stay at the origin.
func (b BoundingBox) Offset(dx, dy int) BoundingBox {
	if b.Empty() {
		return BoundingBox{}
	}
	return BoundingBox{X: b.X + dx, Y: b.Y + dy, Width: b.Width, Height: b.Height}
}

// BoundsOptions controls what the bounds detector treats as content.
type BoundsOptions struct {
	// Padding expands the detected box on every side, clamped to the grid.
	Padding int

	// AlphaThreshold is the alpha a pixel must exceed to count as content.
	// Zero means any non-transparent pixel is content.
	AlphaThreshold uint8

	// Background switches to flattened-image mode: a pixel is content when it
	// does not match Background within Tolerance, regardless of alpha.
	Background *Color

	// Tolerance is the background match tolerance. Only used with Background.
	Tolerance int
}

// DetectBounds returns the tightest box containing every content pixel.
//
// The detector scans inward from all four edges: rows from the top and the
// bottom, then columns from the left and the right inside the remaining row
// band. If no pixel is content it returns the empty box at the origin, which
// tells the caller there is nothing to crop. Padding grows the box
// symmetrically but never past the grid edges.
func DetectBounds(g *PixelGrid, opts BoundsOptions) BoundingBox {
	if g.Empty() {
		return BoundingBox{}
	}
	w, h := g.Width(), g.Height()

	isContent := func(x, y int) bool {
		px := g.At(x, y)
		if opts.Background != nil {
			return !Matches(px, *opts.Background, opts.Tolerance)
		}
		return px.A > opts.AlphaThreshold
	}
	rowHas := func(y int) bool {
		for x := 0; x < w; x++ {
			if isContent(x, y) {
				return true
			}
		}
		return false
	}

	top := 0
	for top < h && !rowHas(top) {
		top++
	}
	if top == h {
		return BoundingBox{}
	}
	bottom := h - 1
	for bottom > top && !rowHas(bottom) {
		bottom--
	}

	colHas := func(x int) bool {
		for y := top; y <= bottom; y++ {
			if isContent(x, y) {
				return true
			}
		}
		return false
	}
	left := 0
	for left < w && !colHas(left) {
		left++
	}
	right := w - 1
	for right > left && !colHas(right) {
		right--
	}

	pad := opts.Padding
	if pad < 0 {
		pad = 0
	}
	x1 := max(0, left-pad)
	y1 := max(0, top-pad)
	x2 := min(w, right+1+pad)
	y2 := min(h, bottom+1+pad)

	return BoundingBox{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}
}
