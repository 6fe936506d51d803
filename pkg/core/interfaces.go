package core

// RayEpsilon is how far secondary ray origins are pushed off a surface
// to avoid self-intersection.
const RayEpsilon = 1e-5

// Logger interface for raytracer logging
type Logger interface {
	Printf(format string, args ...interface{})
}

// Intersection describes a ray/surface hit. The normal is the geometric
// outward normal of the surface; the integrator flips it when the ray is
// leaving the object.
type Intersection struct {
	T        float64  // Hit distance along the ray, > 0
	Normal   Vec3     // Unit outward surface normal
	Material Material // Material at the hit point, owned by the scene
}

// Material is the surface description the integrator consumes.
// Implementations are owned by the scene; the integrator compares them by
// identity to track which medium a ray travels through.
type Material interface {
	// Reflectance returns the RGB reflection coefficient kr
	Reflectance() Vec3
	// Transmittance returns the RGB transmission coefficient kt
	Transmittance() Vec3
	// Index returns the refractive index (vacuum = 1.0)
	Index() float64
	// Shade computes the local (direct) radiance at a hit point
	Shade(scene Scene, ray Ray, hit Intersection) Vec3
}

// Shape is anything a ray can hit
type Shape interface {
	Intersect(ray Ray, tMin, tMax float64) (Intersection, bool)
}

// Light illuminates scene surfaces
type Light interface {
	// Direction returns the unit direction from a surface point toward the light
	Direction(point Vec3) Vec3
	// Illumination returns the light color reaching a point, with distance attenuation applied
	Illumination(point Vec3) Vec3
	// ShadowAttenuation returns the fraction of light that survives occluders
	// between the point and the light
	ShadowAttenuation(scene Scene, point Vec3) Vec3
}

// Scene is the external world the integrator traces against
type Scene interface {
	// Intersect finds the nearest surface hit along the ray
	Intersect(ray Ray) (Intersection, bool)
	// RayThrough generates the camera ray through normalized image coordinates
	RayThrough(x, y float64) Ray
	// AspectRatio returns the camera aspect ratio
	AspectRatio() float64
	// Lights returns the scene lights
	Lights() []Light
	// Ambient returns the global ambient light term
	Ambient() Vec3
}
