package server

import (
	"fmt"
	"image/png"
	"net/http"
	"net/url"
	"strconv"

	"github.com/davehc/go-whitted-raytracer/log"
	"github.com/davehc/go-whitted-raytracer/pkg/core"
	"github.com/davehc/go-whitted-raytracer/pkg/integrator"
	"github.com/davehc/go-whitted-raytracer/pkg/renderer"
	"github.com/davehc/go-whitted-raytracer/pkg/scene"
)

var logger = log.New("server")

// Server renders scenes on demand over HTTP. Each request gets its own
// renderer and worker pool; cancelling the request cancels the render.
type Server struct {
	port int
}

// NewServer creates a new preview server
func NewServer(port int) *Server {
	return &Server{port: port}
}

// Start registers the handlers and serves until the listener fails
func (s *Server) Start() error {
	mux := http.NewServeMux()
	mux.HandleFunc("/render", s.handleRender)
	mux.HandleFunc("/health", s.handleHealth)

	addr := fmt.Sprintf(":%d", s.port)
	logger.Noticef("listening on http://localhost%s", addr)
	return http.ListenAndServe(addr, mux)
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"status":"ok"}`)
}

// handleRender renders a named scene with query-parameter overrides
// and responds with the finished frame as PNG. The render is cancelled
// if the client goes away.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	width, height, config, err := parseRenderParams(r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	sceneName := r.URL.Query().Get("scene")
	if sceneName == "" {
		sceneName = "default"
	}
	sc, ok := scene.ByName(sceneName, float64(width)/float64(height))
	if !ok {
		http.Error(w, fmt.Sprintf("unknown scene: %s", sceneName), http.StatusBadRequest)
		return
	}

	logger.Infof("rendering %dx%d scene %q", width, height, sceneName)

	rend := renderer.NewRenderer(sc, integrator.NewWhitted(config), width, height, config, nil)
	stats := rend.Render(r.Context(), nil)
	if stats.Cancelled {
		logger.Infof("render of %q cancelled by client", sceneName)
		return
	}
	logger.Infof("rendered %d pixels in %s", stats.TotalPixels(), stats.Elapsed)

	w.Header().Set("Content-Type", "image/png")
	if err := png.Encode(w, rend.FrameBuffer().ToImage()); err != nil {
		logger.Errorf("encoding frame: %v", err)
	}
}

// parseRenderParams builds an immutable render configuration from the
// request query, falling back to the defaults.
func parseRenderParams(values url.Values) (width, height int, config core.RenderConfig, err error) {
	config = core.DefaultRenderConfig()

	width, err = parseIntParam(values, "width", 512, 16, 4096)
	if err != nil {
		return
	}
	height, err = parseIntParam(values, "height", 384, 16, 4096)
	if err != nil {
		return
	}
	config.MaxDepth, err = parseIntParam(values, "depth", config.MaxDepth, 0, 32)
	if err != nil {
		return
	}
	config.SuperSampling, err = parseIntParam(values, "supersampling", config.SuperSampling, 0, 8)
	if err != nil {
		return
	}
	config.GlossySamples, err = parseIntParam(values, "glossy", config.GlossySamples, 0, 64)
	if err != nil {
		return
	}
	config.NumWorkers, err = parseIntParam(values, "threads", config.NumWorkers, 0, 64)
	if err != nil {
		return
	}
	config.IntensityThreshold, err = parseFloatParam(values, "threshold", config.IntensityThreshold, 0, 1)
	if err != nil {
		return
	}
	config.FresnelRatio, err = parseFloatParam(values, "fresnel-ratio", config.FresnelRatio, 0, 1)
	if err != nil {
		return
	}
	config.EnableFresnel = values.Get("fresnel") == "1"
	return
}

// parseIntParam parses an integer parameter from the URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// parseFloatParam parses a float parameter from the URL query with validation
func parseFloatParam(values url.Values, key string, defaultValue, min, max float64) (float64, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %f and %f, got: %f", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}
