package iconkit

import (
	"fmt"
	"time"
)

// Stage is a state of the pipeline state machine.
type Stage int

// Pipeline states, in the order a run passes through them.
const (
	StageLoaded Stage = iota
	StageMasked
	StageEdgeAdjusted
	StageMorphed
	StageDefringed
	StageCleaned
	StageFinal
)

var stageNames = [...]string{
	StageLoaded:       "loaded",
	StageMasked:       "masked",
	StageEdgeAdjusted: "edge_adjusted",
	StageMorphed:      "morphed",
	StageDefringed:    "defringed",
	StageCleaned:      "cleaned",
	StageFinal:        "final",
}

func (s Stage) String() string {
	if s < 0 || int(s) >= len(stageNames) {
		return fmt.Sprintf("stage(%d)", int(s))
	}
	return stageNames[s]
}

// MarshalText encodes the stage by name.
func (s Stage) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// StageRecord describes one transition of a run.
type StageRecord struct {
	Stage   Stage         `json:"stage"`
	Skipped bool          `json:"skipped,omitempty"`
	Width   int           `json:"width"`
	Height  int           `json:"height"`
	Elapsed time.Duration `json:"elapsed_ns"`
}

// Result is the output of a successful run.
type Result struct {
	// Grid is the processed image. When the run cropped, it covers Crop.
	Grid *PixelGrid

	// Bounds is the box around the output content, in source coordinates.
	// It is empty when the output has no visible pixel.
	Bounds BoundingBox

	// Crop is the region of the source that Grid covers.
	Crop BoundingBox

	// Trace lists every state the run passed through, including skipped ones.
	Trace []StageRecord
}

// run is the private working state of one Generate call.
type run struct {
	cfg  Config
	grid *PixelGrid
	crop BoundingBox
}

type stageFunc struct {
	stage   Stage
	enabled func(Config) bool
	apply   func(*run) error
}

// pipeline is the fixed transition list between Loaded and Final.
var pipeline = []stageFunc{
	{StageMasked, func(c Config) bool {
		m := c.Masking.Mode()
		return m == ModeColorMaskWhole || m == ModeColorMaskBorder
	}, applyMask},
	{StageEdgeAdjusted, Config.cropAfterMasking, applyCrop},
	{StageMorphed, func(c Config) bool { return c.Edges.MaskAdjust != 0 }, applyMorph},
	{StageDefringed, func(c Config) bool { return c.Edges.Defringe }, applyDefringe},
	{StageCleaned, func(Config) bool { return true }, applyClean},
}

// Generate runs the full mask synthesis and edge refinement pipeline.
//
// Parameters:
//   - src: The decoded source image. It is cloned and never modified.
//   - cfg: Pipeline options. A nil Masking means NoMasking.
//
// Returns the processed grid, its content bounds and the stage trace.
//
// The source and configuration are validated before any pixel is touched:
// a zero-area source yields *InvalidInputError and an out-of-range option
// yields *InvalidConfigError. A failure inside a stage yields
// *ProcessingError and no partial result. Generate holds no shared state,
// so concurrent calls with separate inputs are safe.
func Generate(src *PixelGrid, cfg Config) (*Result, error) {
	if src.Empty() {
		w, h := 0, 0
		if src != nil {
			w, h = src.Width(), src.Height()
		}
		return nil, &InvalidInputError{Width: w, Height: h, Err: ErrEmptyImage}
	}
	if cfg.Masking == nil {
		cfg.Masking = NoMasking{}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log := Logger()
	r := &run{
		cfg:  cfg,
		grid: src.Clone(),
		crop: BoundingBox{Width: src.Width(), Height: src.Height()},
	}
	trace := make([]StageRecord, 0, len(pipeline)+2)
	trace = append(trace, StageRecord{Stage: StageLoaded, Width: r.grid.Width(), Height: r.grid.Height()})
	log.Debug("pipeline start", "width", src.Width(), "height", src.Height(), "masking", cfg.Masking.Mode())

	for _, st := range pipeline {
		if !st.enabled(cfg) {
			trace = append(trace, StageRecord{Stage: st.stage, Skipped: true, Width: r.grid.Width(), Height: r.grid.Height()})
			continue
		}
		start := time.Now()
		if err := runStage(st, r); err != nil {
			return nil, err
		}
		elapsed := time.Since(start)
		trace = append(trace, StageRecord{Stage: st.stage, Width: r.grid.Width(), Height: r.grid.Height(), Elapsed: elapsed})
		log.Debug("stage complete", "stage", st.stage, "width", r.grid.Width(), "height", r.grid.Height(), "elapsed", elapsed)
	}

	bounds := DetectBounds(r.grid, BoundsOptions{}).Offset(r.crop.X, r.crop.Y)
	trace = append(trace, StageRecord{Stage: StageFinal, Width: r.grid.Width(), Height: r.grid.Height()})
	log.Debug("pipeline done", "bounds", bounds, "crop", r.crop)

	return &Result{Grid: r.grid, Bounds: bounds, Crop: r.crop, Trace: trace}, nil
}

// runStage applies one stage, turning errors and panics into *ProcessingError.
func runStage(st stageFunc, r *run) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = &ProcessingError{Stage: st.stage, Err: fmt.Errorf("panic: %v", p)}
		}
	}()
	if err := st.apply(r); err != nil {
		return &ProcessingError{Stage: st.stage, Err: err}
	}
	return nil
}

func applyMask(r *run) error {
	switch m := r.cfg.Masking.(type) {
	case ColorMaskWhole:
		refs := append([]Color{m.Reference}, m.Extra...)
		r.grid = MaskWhole(r.grid, m.Tolerance, refs...)
	case ColorMaskBorder:
		r.grid = MaskBorder(r.grid, m.Reference, m.Tolerance)
	default:
		return fmt.Errorf("masking mode %s has no masker", m.Mode())
	}
	return nil
}

// applyCrop crops to the content left after masking. A positive mask
// adjustment adds its radius to the padding so the later dilation has room.
func applyCrop(r *run) error {
	pad := r.cfg.CropPadding + max(0, r.cfg.Edges.MaskAdjust)
	box := DetectBounds(r.grid, BoundsOptions{Padding: pad})
	if box.Empty() {
		return nil
	}
	r.grid = r.grid.Crop(box)
	r.crop = box.Offset(r.crop.X, r.crop.Y)
	return nil
}

func applyMorph(r *run) error {
	g, err := AdjustGrid(r.grid, r.cfg.Edges.MaskAdjust)
	if err != nil {
		return fmt.Errorf("adjust mask: %w", err)
	}
	r.grid = g
	return nil
}

func applyDefringe(r *run) error {
	r.grid = Defringe(r.grid, r.cfg.Edges.DefringeStrength)
	return nil
}

// applyClean runs the edge cleaner, or the smart reconstructor followed by a
// final debris sweep, and then bleeds color into pixels that became visible.
func applyClean(r *run) error {
	e := r.cfg.Edges
	before := r.grid.Alpha()

	var after *AlphaMask
	if e.SmartCleanup {
		cleaned, _ := RemoveDebris(before, e.EdgeThreshold)
		after, _ = RemoveDebris(Reconstruct(cleaned, e.Smart), e.EdgeThreshold)
	} else {
		after = CleanEdges(before, e.EdgeThreshold)
	}

	g, err := r.grid.WithAlpha(after)
	if err != nil {
		return fmt.Errorf("apply cleaned alpha: %w", err)
	}
	r.grid = bleedColor(g, before, max(1, e.EdgeThreshold))
	return nil
}

// bleedColor recolors every pixel that is visible now but was below visible
// in before. Such pixels still carry the removed background color, which
// would otherwise show as a halo. Color spreads outward one 8-neighbour ring
// at a time from the pixels that were already visible: each pixel of a ring
// takes the RGB of its most opaque colored neighbour, so pixels grown several
// rings out by a stroke still get the nearest content color.
func bleedColor(g *PixelGrid, before *AlphaMask, visible int) *PixelGrid {
	out := g.Clone()
	w, h := g.Width(), g.Height()

	// rank orders color donors: before alpha + 1 for pixels that were
	// visible, 1 for recolored pixels, 0 for pixels that cannot donate.
	rank := make([]int, w*h)
	var pending []int
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			switch a := int(before.At(x, y)); {
			case a >= visible:
				rank[y*w+x] = a + 1
			case g.At(x, y).A > 0:
				pending = append(pending, y*w+x)
			}
		}
	}

	type fill struct{ dst, src int }
	for len(pending) > 0 {
		var ring []fill
		rest := pending[:0]
		for _, i := range pending {
			x, y := i%w, i/w
			src, best := -1, 0
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					nx, ny := x+dx, y+dy
					if nx < 0 || ny < 0 || nx >= w || ny >= h {
						continue
					}
					if r := rank[ny*w+nx]; r > best {
						src, best = ny*w+nx, r
					}
				}
			}
			if src < 0 {
				rest = append(rest, i)
				continue
			}
			ring = append(ring, fill{i, src})
		}
		if len(ring) == 0 {
			break
		}
		for _, f := range ring {
			d, s := f.dst*4, f.src*4
			copy(out.img.Pix[d:d+3], out.img.Pix[s:s+3])
			rank[f.dst] = 1
		}
		pending = rest
	}
	return out
}
