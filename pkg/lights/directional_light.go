package lights

import (
	"math"

	"github.com/davehc/go-whitted-raytracer/pkg/core"
)

// DirectionalLight emits parallel light from infinitely far away, with
// no distance attenuation.
type DirectionalLight struct {
	direction core.Vec3 // Unit direction the light travels in
	Color     core.Vec3
}

// NewDirectionalLight creates a directional light travelling along direction
func NewDirectionalLight(direction, color core.Vec3) *DirectionalLight {
	return &DirectionalLight{
		direction: direction.Normalize(),
		Color:     color,
	}
}

// Direction returns the unit direction from a surface point toward the light
func (l *DirectionalLight) Direction(point core.Vec3) core.Vec3 {
	return l.direction.Negate()
}

// Illumination returns the light color; directional lights do not attenuate
func (l *DirectionalLight) Illumination(point core.Vec3) core.Vec3 {
	return l.Color
}

// ShadowAttenuation returns how much light survives occluders between
// the point and the light
func (l *DirectionalLight) ShadowAttenuation(scene core.Scene, point core.Vec3) core.Vec3 {
	return shadowAttenuation(scene, point, l.Direction(point), math.Inf(1))
}
