package mode

import "golang.org/x/sync/errgroup"

// minSpan is the smallest number of blocks handed to one goroutine.
const minSpan = 16

// forEach calls fn for every i in [0, n). fn must only touch state owned by i.
// With more than one worker the range is cut into contiguous spans.
func forEach(n, workers int, fn func(i int)) {
	if workers <= 1 || n < 2*minSpan {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}
	span := (n + workers - 1) / workers
	if span < minSpan {
		span = minSpan
	}
	var g errgroup.Group
	g.SetLimit(workers)
	for lo := 0; lo < n; lo += span {
		lo, hi := lo, lo+span
		if hi > n {
			hi = n
		}
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				fn(i)
			}
			return nil
		})
	}
	_ = g.Wait()
}
