package cmd

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"os"
	"os/signal"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/davehc/go-whitted-raytracer/pkg/core"
	"github.com/davehc/go-whitted-raytracer/pkg/integrator"
	"github.com/davehc/go-whitted-raytracer/pkg/renderer"
	"github.com/davehc/go-whitted-raytracer/pkg/scene"
)

// coreLogger adapts the leveled logger to the core.Logger interface the
// renderer expects.
type coreLogger struct{}

func (coreLogger) Printf(format string, args ...interface{}) {
	logger.Infof(strings.TrimSuffix(format, "\n"), args...)
}

// RenderFrame renders a built-in scene to a PNG file.
func RenderFrame(ctx *cli.Context) error {
	setupLogging(ctx)

	width := ctx.Int("width")
	height := ctx.Int("height")
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid frame size %dx%d", width, height)
	}

	// Snapshot the configuration once; workers never read live settings.
	config := core.RenderConfig{
		MaxDepth:           ctx.Int("depth"),
		IntensityThreshold: ctx.Float64("threshold"),
		EnableReflection:   !ctx.Bool("no-reflection"),
		EnableRefraction:   !ctx.Bool("no-refraction"),
		EnableFresnel:      ctx.Bool("fresnel"),
		FresnelRatio:       ctx.Float64("fresnel-ratio"),
		GlossySamples:      ctx.Int("glossy"),
		SuperSampling:      ctx.Int("supersampling"),
		NumWorkers:         ctx.Int("threads"),
		Seed:               ctx.Int64("seed"),
	}

	sceneName := ctx.String("scene")
	sc, ok := scene.ByName(sceneName, float64(width)/float64(height))
	if !ok {
		return fmt.Errorf("unknown scene: %s", sceneName)
	}

	// Ctrl-C requests cooperative cancellation; in-flight pixels finish.
	renderCtx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	rend := renderer.NewRenderer(sc, integrator.NewWhitted(config), width, height, config, coreLogger{})
	stats := rend.Render(renderCtx, func(*renderer.FrameBuffer) {
		logger.Debugf("render in progress, %s scene", sceneName)
	})

	displayRenderStats(stats)
	if stats.Cancelled {
		logger.Notice("render cancelled, writing partial frame")
	}

	out := ctx.String("out")
	f, err := os.Create(out)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := png.Encode(f, rend.FrameBuffer().ToImage()); err != nil {
		return err
	}
	logger.Noticef("wrote %s", out)

	return nil
}

func displayRenderStats(stats renderer.RenderStats) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Worker", "Rows", "Pixels", "Render time"})
	for _, w := range stats.Workers {
		table.Append([]string{
			fmt.Sprintf("%d", w.Worker),
			fmt.Sprintf("[%d, %d)", w.RowStart, w.RowEnd),
			fmt.Sprintf("%d", w.Pixels),
			fmt.Sprintf("%s", w.Elapsed),
		})
	}
	table.SetFooter([]string{"", "", "TOTAL", fmt.Sprintf("%s", stats.Elapsed)})

	table.Render()
	logger.Noticef("frame statistics\n%s", buf.String())
}
