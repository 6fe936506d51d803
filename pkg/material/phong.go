package material

import (
	"math"

	"github.com/davehc/go-whitted-raytracer/pkg/core"
)

// Phong is a Blinn-Phong surface with reflection and transmission
// coefficients for the recursive integrator. The zero value is a matte
// black surface.
type Phong struct {
	Emissive  core.Vec3 // ke, radiance emitted regardless of lighting
	Ambient   core.Vec3 // ka, multiplied with the scene ambient term
	Diffuse   core.Vec3 // kd
	Specular  core.Vec3 // ks
	Shininess float64   // Blinn-Phong exponent

	Reflective      core.Vec3 // kr, weight of the reflection branch
	Transmissive    core.Vec3 // kt, weight of the refraction branch
	RefractiveIndex float64   // 1.0 for thin or opaque surfaces
}

// Reflectance returns the reflection coefficient kr
func (m *Phong) Reflectance() core.Vec3 {
	return m.Reflective
}

// Transmittance returns the transmission coefficient kt
func (m *Phong) Transmittance() core.Vec3 {
	return m.Transmissive
}

// Index returns the refractive index
func (m *Phong) Index() float64 {
	if m.RefractiveIndex == 0 {
		return 1.0
	}
	return m.RefractiveIndex
}

// Shade computes the local Blinn-Phong radiance at a hit point:
// emissive + ambient plus, per light, shadow-attenuated diffuse and
// specular terms.
func (m *Phong) Shade(scene core.Scene, ray core.Ray, hit core.Intersection) core.Vec3 {
	point := ray.At(hit.T)
	normal := hit.Normal
	toViewer := ray.Direction.Negate().Normalize()

	color := m.Emissive.Add(m.Ambient.MultiplyVec(scene.Ambient()))

	for _, light := range scene.Lights() {
		toLight := light.Direction(point)

		cosine := normal.Dot(toLight)
		if cosine <= 0 {
			// Light is behind the surface
			continue
		}

		atten := light.ShadowAttenuation(scene, point)
		if atten.IsZero() {
			continue
		}
		illum := light.Illumination(point).MultiplyVec(atten)

		contribution := m.Diffuse.Multiply(cosine)

		half := toLight.Add(toViewer).Normalize()
		if specCos := normal.Dot(half); specCos > 0 && !m.Specular.IsZero() {
			contribution = contribution.Add(
				m.Specular.Multiply(math.Pow(specCos, m.Shininess)))
		}

		color = color.Add(contribution.MultiplyVec(illum))
	}

	return color
}
