package cloth

import (
	"runtime"
	"sync"
)

// Below this many particles the goroutine fan-out costs more than the
// loop body.
const minParallelChunk = 512

// parallelFor splits [0, n) into contiguous chunks across worker
// goroutines and blocks until all complete. Small ranges run inline.
func parallelFor(n int, fn func(start, end int)) {
	workers := runtime.GOMAXPROCS(0)
	if n < minParallelChunk*2 || workers <= 1 {
		fn(0, n)
		return
	}
	if max := n / minParallelChunk; workers > max {
		workers = max
	}

	chunk := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < n; start += chunk {
		end := start + chunk
		if end > n {
			end = n
		}
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}
	wg.Wait()
}

// eachUnpinned runs fn over every unpinned particle. The per-particle
// updates in the integrators depend only on that particle's own state
// (plus, for RK, the immutable stage snapshot of neighbor state), so
// the loop is data-parallel with no cross-particle synchronization.
func (w *World) eachUnpinned(fn func(i int, p *Particle)) {
	parallelFor(len(w.particles), func(start, end int) {
		for i := start; i < end; i++ {
			p := &w.particles[i]
			if p.IsPinned() {
				continue
			}
			fn(i, p)
		}
	})
}
