package renderer

import "time"

// WorkerStats describes one worker's share of a render pass
type WorkerStats struct {
	Worker   int           // Worker index
	RowStart int           // First row rendered (inclusive)
	RowEnd   int           // Last row rendered (exclusive)
	Pixels   int           // Pixels actually completed
	Elapsed  time.Duration // Wall time spent in the worker loop
}

// RenderStats summarizes a completed (or cancelled) render pass
type RenderStats struct {
	Workers   []WorkerStats
	Elapsed   time.Duration
	Cancelled bool
}

// TotalPixels returns the number of pixels completed across all workers
func (s RenderStats) TotalPixels() int {
	total := 0
	for _, w := range s.Workers {
		total += w.Pixels
	}
	return total
}
