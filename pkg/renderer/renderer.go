package renderer

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/davehc/go-whitted-raytracer/pkg/core"
)

// progressInterval is how often the progress callback fires while
// workers are still rendering.
const progressInterval = 500 * time.Millisecond

// Integrator computes radiance for a single camera ray
type Integrator interface {
	Trace(scene core.Scene, ray core.Ray, sampler core.Sampler) core.Vec3
}

// Renderer drives a render pass: it partitions the image into row
// bands, dispatches one worker goroutine per band and waits for
// completion with bounded polling. The configuration is an immutable
// snapshot for the lifetime of the pass.
type Renderer struct {
	scene      core.Scene
	integrator Integrator
	config     core.RenderConfig
	frame      *FrameBuffer
	logger     core.Logger
}

// NewRenderer creates a renderer targeting a fresh width×height frame buffer
func NewRenderer(scene core.Scene, integratorInst Integrator, width, height int, config core.RenderConfig, logger core.Logger) *Renderer {
	return &Renderer{
		scene:      scene,
		integrator: integratorInst,
		config:     config,
		frame:      NewFrameBuffer(width, height),
		logger:     logger,
	}
}

// FrameBuffer returns the renderer's target buffer
func (r *Renderer) FrameBuffer() *FrameBuffer {
	return r.frame
}

// bandRanges partitions height rows across the given number of workers.
// Workers 0..n-2 each get height/n rows; the last worker absorbs the
// remainder. The union covers [0, height) exactly once.
func bandRanges(height, workers int) [][2]int {
	band := height / workers
	ranges := make([][2]int, workers)
	for k := 0; k < workers; k++ {
		ranges[k] = [2]int{band * k, band * (k + 1)}
	}
	ranges[workers-1][1] = height
	return ranges
}

// Render runs one render pass. Workers are spawned per invocation and
// joined before returning. The progress callback, if non-nil, is
// invoked on a fixed cadence while rendering and once on completion;
// rendering never blocks on it. Cancel the context to stop early:
// workers check it cooperatively and finish their in-flight pixel.
func (r *Renderer) Render(ctx context.Context, progress func(*FrameBuffer)) RenderStats {
	start := time.Now()

	workers := r.config.NumWorkers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if r.logger != nil {
		r.logger.Printf("rendering %dx%d with %d workers\n",
			r.frame.Width(), r.frame.Height(), workers)
	}

	stats := RenderStats{Workers: make([]WorkerStats, workers)}

	var wg sync.WaitGroup
	for k, band := range bandRanges(r.frame.Height(), workers) {
		// Independent random stream per worker, derived from the base
		// seed so renders stay reproducible.
		sampler := core.NewSeededSampler(r.config.Seed + int64(k))

		wg.Add(1)
		go func(k, from, to int, sampler core.Sampler) {
			defer wg.Done()
			stats.Workers[k] = r.renderRows(ctx, k, from, to, sampler)
		}(k, band[0], band[1], sampler)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	ticker := time.NewTicker(progressInterval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			if progress != nil {
				progress(r.frame)
			}
			stats.Elapsed = time.Since(start)
			stats.Cancelled = ctx.Err() != nil
			return stats
		case <-ticker.C:
			if progress != nil {
				progress(r.frame)
			}
		}
	}
}

// renderRows is the worker loop: all columns of rows [from, to),
// checking for cancellation at pixel granularity.
func (r *Renderer) renderRows(ctx context.Context, id, from, to int, sampler core.Sampler) WorkerStats {
	start := time.Now()
	ws := WorkerStats{Worker: id, RowStart: from, RowEnd: to}

	width := r.frame.Width()
	for j := from; j < to && ctx.Err() == nil; j++ {
		for i := 0; i < width && ctx.Err() == nil; i++ {
			r.renderPixel(i, j, sampler)
			ws.Pixels++
		}
	}

	ws.Elapsed = time.Since(start)
	return ws
}

// renderPixel samples pixel (i, j) and writes the quantized result into
// the frame buffer. With supersampling s > 0 it averages an s×s grid of
// jittered sub-pixel rays; with s = 0 it casts the single center ray
// and involves no randomness.
func (r *Renderer) renderPixel(i, j int, sampler core.Sampler) {
	width := float64(r.frame.Width())
	height := float64(r.frame.Height())

	x := float64(i) / width
	y := float64(j) / height

	var color core.Vec3
	if s := r.config.SuperSampling; s > 0 {
		pixelW := 1.0 / width
		pixelH := 1.0 / height
		subW := pixelW / float64(s)
		subH := pixelH / float64(s)

		for sj := 0; sj < s; sj++ {
			baseY := y + (float64(sj)/float64(s)-0.5)*pixelH
			for si := 0; si < s; si++ {
				baseX := x + (float64(si)/float64(s)-0.5)*pixelW

				jitterY := baseY + sampler.Get1D()*subH
				jitterX := baseX + sampler.Get1D()*subW

				ray := r.scene.RayThrough(jitterX, jitterY)
				color = color.Add(r.integrator.Trace(r.scene, ray, sampler))
			}
		}
		color = color.Multiply(1.0 / float64(s*s))
	} else {
		ray := r.scene.RayThrough(x, y)
		color = r.integrator.Trace(r.scene, ray, sampler)
	}

	r.frame.SetPixel(i, j, color)
}
