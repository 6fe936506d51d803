package geometry

import (
	"math"

	"github.com/davehc/go-whitted-raytracer/pkg/core"
)

// Plane represents an infinite plane defined by a point and normal
type Plane struct {
	Point    core.Vec3     // A point on the plane
	Normal   core.Vec3     // Normal vector (normalized on construction)
	Material core.Material // Material of the plane
}

// NewPlane creates a new plane
func NewPlane(point, normal core.Vec3, material core.Material) *Plane {
	return &Plane{
		Point:    point,
		Normal:   normal.Normalize(),
		Material: material,
	}
}

// Intersect tests if a ray intersects with the plane
func (p *Plane) Intersect(ray core.Ray, tMin, tMax float64) (core.Intersection, bool) {
	denominator := ray.Direction.Dot(p.Normal)

	// Ray parallel to the plane
	if math.Abs(denominator) < 1e-8 {
		return core.Intersection{}, false
	}

	t := p.Point.Subtract(ray.Origin).Dot(p.Normal) / denominator
	if t < tMin || t > tMax {
		return core.Intersection{}, false
	}

	return core.Intersection{
		T:        t,
		Normal:   p.Normal,
		Material: p.Material,
	}, true
}
