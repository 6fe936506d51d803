package lights

import (
	"github.com/davehc/go-whitted-raytracer/pkg/core"
)

// PointLight emits light from a position in all directions, attenuated
// with distance by the usual constant/linear/quadratic model.
type PointLight struct {
	Position core.Vec3
	Color    core.Vec3

	ConstantAtten  float64
	LinearAtten    float64
	QuadraticAtten float64
}

// NewPointLight creates a point light with the given attenuation coefficients
func NewPointLight(position, color core.Vec3, constant, linear, quadratic float64) *PointLight {
	return &PointLight{
		Position:       position,
		Color:          color,
		ConstantAtten:  constant,
		LinearAtten:    linear,
		QuadraticAtten: quadratic,
	}
}

// Direction returns the unit direction from a surface point toward the light
func (l *PointLight) Direction(point core.Vec3) core.Vec3 {
	return l.Position.Subtract(point).Normalize()
}

// Illumination returns the light color reaching a point after distance attenuation
func (l *PointLight) Illumination(point core.Vec3) core.Vec3 {
	d := l.Position.Subtract(point).Length()
	atten := l.ConstantAtten + l.LinearAtten*d + l.QuadraticAtten*d*d
	if atten <= 0 {
		return l.Color
	}
	return l.Color.Multiply(min(1.0, 1.0/atten))
}

// ShadowAttenuation returns how much light survives occluders between
// the point and the light. Transmissive occluders filter the light by
// their transmittance instead of blocking it outright.
func (l *PointLight) ShadowAttenuation(scene core.Scene, point core.Vec3) core.Vec3 {
	distance := l.Position.Subtract(point).Length()
	direction := l.Direction(point)
	return shadowAttenuation(scene, point, direction, distance)
}

// shadowAttenuation marches a shadow ray toward the light, accumulating
// the transmittance of everything it passes through. Fully opaque
// occluders terminate the march with zero.
func shadowAttenuation(scene core.Scene, point, direction core.Vec3, maxDistance float64) core.Vec3 {
	atten := core.NewVec3(1, 1, 1)
	origin := point.Add(direction.Multiply(core.RayEpsilon))
	remaining := maxDistance

	for {
		hit, ok := scene.Intersect(core.NewRay(origin, direction))
		if !ok || hit.T >= remaining {
			return atten
		}

		atten = atten.MultiplyVec(hit.Material.Transmittance())
		if atten.IsZero() {
			return atten
		}

		origin = origin.Add(direction.Multiply(hit.T + core.RayEpsilon))
		remaining -= hit.T
	}
}
