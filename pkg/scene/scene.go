package scene

import (
	"math"

	"github.com/davehc/go-whitted-raytracer/pkg/core"
	"github.com/davehc/go-whitted-raytracer/pkg/renderer"
)

// Scene owns the shapes, materials and lights of a renderable world and
// implements core.Scene for the integrator. Intersection is a linear
// scan over the shapes; the scenes this renderer targets are small
// enough that no acceleration structure is needed.
type Scene struct {
	camera  *renderer.Camera
	shapes  []core.Shape
	lights  []core.Light
	ambient core.Vec3
}

// NewScene creates an empty scene with the given camera and ambient light
func NewScene(camera *renderer.Camera, ambient core.Vec3) *Scene {
	return &Scene{
		camera:  camera,
		ambient: ambient,
	}
}

// Add appends a shape to the scene
func (s *Scene) Add(shape core.Shape) {
	s.shapes = append(s.shapes, shape)
}

// AddLight appends a light to the scene
func (s *Scene) AddLight(light core.Light) {
	s.lights = append(s.lights, light)
}

// Intersect finds the nearest surface hit along the ray
func (s *Scene) Intersect(ray core.Ray) (core.Intersection, bool) {
	var closest core.Intersection
	closestT := math.Inf(1)
	hitAnything := false

	for _, shape := range s.shapes {
		if hit, ok := shape.Intersect(ray, core.RayEpsilon, closestT); ok {
			hitAnything = true
			closestT = hit.T
			closest = hit
		}
	}

	return closest, hitAnything
}

// RayThrough generates the camera ray through normalized coordinates
func (s *Scene) RayThrough(x, y float64) core.Ray {
	return s.camera.RayThrough(x, y)
}

// AspectRatio returns the camera aspect ratio
func (s *Scene) AspectRatio() float64 {
	return s.camera.AspectRatio()
}

// Lights returns the scene lights
func (s *Scene) Lights() []core.Light {
	return s.lights
}

// Ambient returns the global ambient light term
func (s *Scene) Ambient() core.Vec3 {
	return s.ambient
}
