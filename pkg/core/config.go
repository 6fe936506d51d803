package core

// RenderConfig contains the full configuration for one render pass.
// It is captured once before workers are dispatched and never mutated
// afterwards; an in-flight render never observes live settings changes.
type RenderConfig struct {
	MaxDepth           int     // Maximum recursion depth for reflection/refraction
	IntensityThreshold float64 // Paths whose throughput drops below this are cut off
	EnableReflection   bool    // Trace specular reflection rays
	EnableRefraction   bool    // Trace refraction rays through dielectrics
	EnableFresnel      bool    // Blend reflection/refraction with the Schlick coefficient
	FresnelRatio       float64 // How strongly the Fresnel blend is applied, in [0,1]
	GlossySamples      int     // Cone samples for glossy reflection (0 = perfect mirror)
	SuperSampling      int     // Supersampling grid size per pixel (0 = one ray per pixel)
	NumWorkers         int     // Worker goroutines for the row-band scheduler
	Seed               int64   // Base seed for per-worker random streams
}

// DefaultRenderConfig returns sensible default values
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		MaxDepth:           5,
		IntensityThreshold: 0.001,
		EnableReflection:   true,
		EnableRefraction:   true,
		EnableFresnel:      false,
		FresnelRatio:       1.0,
		GlossySamples:      0,
		SuperSampling:      0,
		NumWorkers:         2,
		Seed:               42,
	}
}
