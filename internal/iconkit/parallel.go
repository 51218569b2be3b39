package iconkit

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// minRowsPerWorker keeps small grids on a single goroutine.
const minRowsPerWorker = 32

// forRows calls fn over disjoint [start, end) row bands of a grid of the given
// height. fn must only write rows inside its band, so the result does not
// depend on scheduling.
func forRows(height int, fn func(start, end int)) {
	workers := runtime.GOMAXPROCS(0)
	if n := height / minRowsPerWorker; n < workers {
		workers = n
	}
	if workers <= 1 {
		fn(0, height)
		return
	}

	var g errgroup.Group
	g.SetLimit(workers)
	band := (height + workers - 1) / workers
	for start := 0; start < height; start += band {
		start, end := start, min(start+band, height)
		g.Go(func() error {
			fn(start, end)
			return nil
		})
	}
	_ = g.Wait()
}
