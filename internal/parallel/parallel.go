// Package parallel provides a chunked parallel-for used by the CPU kernels.
package parallel

import (
	"runtime"
	"sync"
)

// Config controls parallel execution.
type Config struct {
	Enabled      bool // run loops across goroutines
	NumWorkers   int  // goroutine count
	MinChunkSize int  // below this many items the loop stays sequential
}

// DefaultConfig sizes workers to the CPU count. Element-wise kernels are
// memory-bound, so the chunk floor is high enough that goroutine overhead
// never dominates small tensors.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:      n > 1,
		NumWorkers:   n,
		MinChunkSize: 4096,
	}
}

// For executes f(i) for i in [0, n), splitting the range across workers.
// Runs sequentially when parallelism is disabled or n is under the chunk
// floor. f must be safe to call concurrently for distinct i.
func For(n int, f func(i int), cfg Config) {
	if !cfg.Enabled || n < cfg.MinChunkSize {
		for i := 0; i < n; i++ {
			f(i)
		}
		return
	}

	var wg sync.WaitGroup
	chunkSize := max((n+cfg.NumWorkers-1)/cfg.NumWorkers, cfg.MinChunkSize)

	for start := 0; start < n; start += chunkSize {
		end := min(start+chunkSize, n)
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			for i := s; i < e; i++ {
				f(i)
			}
		}(start, end)
	}
	wg.Wait()
}
