package parallel

import (
	"sync/atomic"
	"testing"
)

func TestFor_CoversRange(t *testing.T) {
	cfg := DefaultConfig()

	n := cfg.MinChunkSize * 3
	hit := make([]int32, n)
	For(n, func(i int) {
		atomic.AddInt32(&hit[i], 1)
	}, cfg)

	for i, c := range hit {
		if c != 1 {
			t.Fatalf("index %d visited %d times, want 1", i, c)
		}
	}
}

func TestFor_SequentialFallback(t *testing.T) {
	cfg := Config{Enabled: false}

	var counter int64
	For(100, func(_ int) {
		atomic.AddInt64(&counter, 1)
	}, cfg)

	if counter != 100 {
		t.Errorf("counter = %d, want 100", counter)
	}
}

func TestFor_SmallRangeStaysSequential(t *testing.T) {
	cfg := DefaultConfig()

	var counter int64
	n := cfg.MinChunkSize - 1
	For(n, func(_ int) {
		atomic.AddInt64(&counter, 1)
	}, cfg)

	if counter != int64(n) {
		t.Errorf("counter = %d, want %d", counter, n)
	}
}
