package raster

import (
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

var workers atomic.Int32

// SetWorkers bounds the goroutines used by Rows. n <= 0 restores GOMAXPROCS.
func SetWorkers(n int) {
	workers.Store(int32(n))
}

// Workers returns the current Rows concurrency limit.
func Workers() int {
	if n := int(workers.Load()); n > 0 {
		return n
	}
	return runtime.GOMAXPROCS(0)
}

// Rows splits [0,h) into contiguous bands and calls fn(y0, y1) for each band
// concurrently. fn must only write rows inside its band and must not read
// anything another band writes; per-pixel results are then identical to a
// sequential sweep.
func Rows(h int, fn func(y0, y1 int)) {
	if h <= 0 {
		return
	}
	n := Workers()
	if n > h {
		n = h
	}
	if n <= 1 {
		fn(0, h)
		return
	}
	band := (h + n - 1) / n
	var g errgroup.Group
	g.SetLimit(n)
	for y0 := 0; y0 < h; y0 += band {
		y1 := y0 + band
		if y1 > h {
			y1 = h
		}
		g.Go(func() error {
			fn(y0, y1)
			return nil
		})
	}
	_ = g.Wait()
}
