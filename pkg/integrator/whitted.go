package integrator

import (
	"math"

	"github.com/davehc/go-whitted-raytracer/pkg/core"
)

// glossyConeAngle is the half-angle in radians of the sampling cone
// used for glossy reflection.
const glossyConeAngle = 0.1

// Whitted implements classic recursive Whitted-style ray tracing:
// local shading plus recursively traced reflection and refraction rays,
// blended with Schlick's Fresnel approximation. Nested dielectric media
// are tracked on a per-path medium stack.
type Whitted struct {
	config core.RenderConfig
}

// NewWhitted creates a Whitted integrator for the given configuration
func NewWhitted(config core.RenderConfig) *Whitted {
	return &Whitted{config: config}
}

// traceContext carries the per-path state of the recursion. Contexts
// are passed by value and every recursive call gets its own copy of the
// medium stack, so sibling branches never alias each other's state.
type traceContext struct {
	scene      core.Scene
	ray        core.Ray
	throughput core.Vec3
	depth      int
	media      core.MediumStack
}

// Trace computes the radiance arriving along a camera ray. The result
// is clamped to [0,1] per channel; clamping happens only here, never
// inside the recursion.
func (w *Whitted) Trace(scene core.Scene, ray core.Ray, sampler core.Sampler) core.Vec3 {
	ctx := traceContext{
		scene:      scene,
		ray:        ray,
		throughput: core.NewVec3(1, 1, 1),
		depth:      0,
		media:      core.NewMediumStack(),
	}
	return w.traceRay(ctx, sampler).Clamp(0, 1)
}

// traceRay returns the unclamped radiance for one path segment.
func (w *Whitted) traceRay(ctx traceContext, sampler core.Sampler) core.Vec3 {
	// Paths that can no longer contribute are cut off before paying for
	// an intersection test. Together with the depth limit this bounds
	// the recursion even for degenerate scenes.
	if ctx.throughput.AtMost(w.config.IntensityThreshold) {
		return core.Vec3{}
	}

	hit, ok := ctx.scene.Intersect(ctx.ray)
	if !ok {
		// Background is black
		return core.Vec3{}
	}

	if w.isLeavingObject(ctx, hit) {
		// The geometric normal points out of the object we are inside of
		hit.Normal = hit.Normal.Negate()
	}

	local := hit.Material.Shade(ctx.scene, ctx.ray, hit).MultiplyVec(ctx.throughput)

	var reflection, refraction core.Vec3
	if w.config.EnableReflection {
		reflection = w.traceReflection(ctx, hit, sampler)
	}
	if w.config.EnableRefraction {
		refraction = w.traceRefraction(ctx, hit, sampler)
	}

	// Fresnel blending applies only when the boundary involves an
	// actual dielectric; vacuum-to-vacuum paths are left alone.
	if w.config.EnableFresnel &&
		(ctx.media.Front().Index() != 1 || hit.Material.Index() != 1) {
		coeff := w.fresnelCoeff(ctx, hit)
		ratio := w.config.FresnelRatio

		reflection = reflection.Multiply(ratio * coeff).
			Add(reflection.Multiply(1 - ratio))
		refraction = refraction.Multiply(ratio * (1 - coeff)).
			Add(refraction.Multiply(1 - ratio))
	}

	return local.Add(reflection).Add(refraction)
}

// traceReflection traces the mirror (or glossy) reflection branch.
// Reflection never changes which medium the ray travels through.
func (w *Whitted) traceReflection(ctx traceContext, hit core.Intersection, sampler core.Sampler) core.Vec3 {
	kr := hit.Material.Reflectance()
	if kr.IsZero() || ctx.depth >= w.config.MaxDepth {
		return core.Vec3{}
	}

	// Push the origin off the surface so the ray won't hit it again
	origin := ctx.ray.At(hit.T).Add(hit.Normal.Multiply(core.RayEpsilon))
	center := core.Reflect(ctx.ray.Direction, hit.Normal)

	next := traceContext{
		scene:      ctx.scene,
		throughput: ctx.throughput.MultiplyVec(kr),
		depth:      ctx.depth + 1,
	}

	if w.config.GlossySamples == 0 {
		next.ray = core.NewRay(origin, center)
		next.media = ctx.media.Clone()
		return w.traceRay(next, sampler)
	}

	cone := core.NewConeSampler(center, glossyConeAngle)
	var sum core.Vec3
	for i := 0; i < w.config.GlossySamples; i++ {
		next.ray = core.NewRay(origin, cone.Sample(sampler))
		next.media = ctx.media.Clone()
		sum = sum.Add(w.traceRay(next, sampler))
	}
	return sum.Multiply(1.0 / float64(w.config.GlossySamples))
}

// traceRefraction traces the transmission branch through a dielectric
// boundary, updating a private copy of the medium stack.
func (w *Whitted) traceRefraction(ctx traceContext, hit core.Intersection, sampler core.Sampler) core.Vec3 {
	kt := hit.Material.Transmittance()
	if kt.IsZero() || ctx.depth >= w.config.MaxDepth {
		return core.Vec3{}
	}

	var ni, nt float64
	var media core.MediumStack
	if w.isLeavingObject(ctx, hit) {
		ni = hit.Material.Index()
		nt = ctx.media.Below().Index()
		media = ctx.media.Pop()
	} else {
		ni = ctx.media.Front().Index()
		nt = hit.Material.Index()
		media = ctx.media.Push(hit.Material)
	}

	nr := ni / nt
	cosI := hit.Normal.Dot(ctx.ray.Direction.Negate())
	// Push the origin through the surface, against the normal
	origin := ctx.ray.At(hit.T).Subtract(hit.Normal.Multiply(core.RayEpsilon))

	root := 1 - nr*nr*(1-cosI*cosI)
	if root < 0 {
		// Total internal reflection, nothing is transmitted
		return core.Vec3{}
	}

	direction := hit.Normal.Multiply(nr*cosI - math.Sqrt(root)).
		Subtract(ctx.ray.Direction.Negate().Multiply(nr))

	next := traceContext{
		scene:      ctx.scene,
		ray:        core.NewRay(origin, direction),
		throughput: ctx.throughput.MultiplyVec(kt),
		depth:      ctx.depth + 1,
		media:      media,
	}
	return w.traceRay(next, sampler)
}

// isLeavingObject reports whether the ray is exiting the medium it
// currently travels through. The hit material is compared by identity
// against the front of the medium stack.
func (w *Whitted) isLeavingObject(ctx traceContext, hit core.Intersection) bool {
	return hit.Material == ctx.media.Front()
}

// fresnelCoeff computes the Schlick approximation of the Fresnel
// reflectance at the hit boundary. The entering/leaving rule matches
// traceRefraction but no stack is mutated.
func (w *Whitted) fresnelCoeff(ctx traceContext, hit core.Intersection) float64 {
	var ni, nt float64
	if w.isLeavingObject(ctx, hit) {
		ni = hit.Material.Index()
		nt = ctx.media.Below().Index()
	} else {
		ni = ctx.media.Front().Index()
		nt = hit.Material.Index()
	}

	r0 := (ni - nt) / (ni + nt)
	r0 *= r0
	cosI := hit.Normal.Dot(ctx.ray.Direction.Negate())

	if ni <= nt {
		return r0 + (1-r0)*math.Pow(1-cosI, 5)
	}

	nr := ni / nt
	root := 1 - nr*nr*(1-cosI*cosI)
	if root < 0 {
		// Total internal reflection
		return 1.0
	}

	// Historical quirk kept for output compatibility: this is not the
	// Snell-derived transmission angle.
	cosThetaT := math.Sqrt(1 - ni/nt)
	return r0 + (1-r0)*math.Pow(1-cosThetaT, 5)
}
