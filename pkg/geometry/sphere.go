package geometry

import (
	"math"

	"github.com/davehc/go-whitted-raytracer/pkg/core"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	Material core.Material
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, material core.Material) *Sphere {
	return &Sphere{
		Center:   center,
		Radius:   radius,
		Material: material,
	}
}

// Intersect tests if a ray intersects with the sphere. The returned
// normal is the geometric outward normal, even for hits from inside.
func (s *Sphere) Intersect(ray core.Ray, tMin, tMax float64) (core.Intersection, bool) {
	oc := ray.Origin.Subtract(s.Center)

	// Quadratic equation coefficients: at² + bt + c = 0
	a := ray.Direction.Dot(ray.Direction)
	halfB := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return core.Intersection{}, false
	}

	sqrtD := math.Sqrt(discriminant)

	// Try the closer intersection point first
	root := (-halfB - sqrtD) / a
	if root < tMin || root > tMax {
		root = (-halfB + sqrtD) / a
		if root < tMin || root > tMax {
			return core.Intersection{}, false
		}
	}

	point := ray.At(root)
	return core.Intersection{
		T:        root,
		Normal:   point.Subtract(s.Center).Multiply(1.0 / s.Radius),
		Material: s.Material,
	}, true
}
