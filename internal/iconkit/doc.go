// Package iconkit turns a decoded source raster into a clean, alpha-masked
// icon source.
//
// The package decides which pixels belong to the foreground, adjusts the
// resulting transparency boundary and repairs jagged or noisy edges. It
// consumes a PixelGrid plus a Config and produces a PixelGrid plus a
// BoundingBox. Decoding, encoding and file I/O belong to the caller.
//
// # Building Blocks
//
//   - Distance / Matches: Euclidean RGB color distance with inclusive tolerance
//   - DetectBounds: tight content box with clamped padding
//   - MaskWhole / MaskBorder: color masking anywhere, or only from the border
//   - FloodFill: 4-connected breadth-first border reachability
//   - AdjustMask: square-element dilation and erosion
//   - Defringe / RemoveMatte: background tint removal on partial-alpha pixels
//   - CleanEdges: debris removal plus boundary smoothing
//   - Reconstruct: super-sampled edge reconstruction
//
// # Pipeline
//
// Generate composes the building blocks as a linear state machine:
//
//	Loaded → Masked → EdgeAdjusted → Morphed → Defringed → Cleaned → Final
//
// Each transition is skipped when its configuration is off, except Cleaned,
// which always runs. A run either completes or returns an error; it never
// returns a partial result.
//
// # Coordinate System
//
// (0,0) is the top-left pixel. Boxes are X/Y inclusive with Width/Height
// extents, so a box covers [X, X+Width) × [Y, Y+Height).
//
// # Thread Safety
//
// Nothing in the package holds mutable state except the logger, which is
// swapped atomically. Every stage returns a fresh grid. Per-pixel stages
// split rows across goroutines; their output does not depend on scheduling.
package iconkit
