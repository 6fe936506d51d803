package scene

import (
	"github.com/davehc/go-whitted-raytracer/pkg/core"
	"github.com/davehc/go-whitted-raytracer/pkg/geometry"
	"github.com/davehc/go-whitted-raytracer/pkg/lights"
	"github.com/davehc/go-whitted-raytracer/pkg/material"
	"github.com/davehc/go-whitted-raytracer/pkg/renderer"
)

// ByName returns a built-in scene. Known names are "default" and
// "glass".
func ByName(name string, aspectRatio float64) (*Scene, bool) {
	switch name {
	case "default":
		return NewDefaultScene(aspectRatio), true
	case "glass":
		return NewGlassScene(aspectRatio), true
	}
	return nil, false
}

// NewDefaultScene builds a mirror sphere, a glass sphere and a matte
// sphere resting on a ground plane, lit by a point light and a dim
// directional fill.
func NewDefaultScene(aspectRatio float64) *Scene {
	camera := renderer.NewCamera(renderer.CameraConfig{
		Center:      core.NewVec3(0, 1.2, 4),
		LookAt:      core.NewVec3(0, 0.6, 0),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        40,
		AspectRatio: aspectRatio,
	})

	s := NewScene(camera, core.NewVec3(0.1, 0.1, 0.1))

	ground := &material.Phong{
		Ambient:   core.NewVec3(0.1, 0.1, 0.1),
		Diffuse:   core.NewVec3(0.6, 0.6, 0.6),
		Specular:  core.NewVec3(0.1, 0.1, 0.1),
		Shininess: 16,
	}
	mirror := &material.Phong{
		Ambient:    core.NewVec3(0.05, 0.05, 0.05),
		Diffuse:    core.NewVec3(0.05, 0.05, 0.05),
		Specular:   core.NewVec3(0.8, 0.8, 0.8),
		Shininess:  128,
		Reflective: core.NewVec3(0.9, 0.9, 0.9),
	}
	glass := &material.Phong{
		Ambient:         core.NewVec3(0.02, 0.02, 0.02),
		Specular:        core.NewVec3(0.6, 0.6, 0.6),
		Shininess:       96,
		Reflective:      core.NewVec3(0.1, 0.1, 0.1),
		Transmissive:    core.NewVec3(0.9, 0.9, 0.9),
		RefractiveIndex: 1.5,
	}
	matte := &material.Phong{
		Ambient:   core.NewVec3(0.1, 0.05, 0.05),
		Diffuse:   core.NewVec3(0.7, 0.2, 0.2),
		Specular:  core.NewVec3(0.3, 0.3, 0.3),
		Shininess: 32,
	}

	s.Add(geometry.NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), ground))
	s.Add(geometry.NewSphere(core.NewVec3(-1.3, 0.6, -0.5), 0.6, mirror))
	s.Add(geometry.NewSphere(core.NewVec3(0.1, 0.5, 0.8), 0.5, glass))
	s.Add(geometry.NewSphere(core.NewVec3(1.4, 0.6, -0.8), 0.6, matte))

	s.AddLight(lights.NewPointLight(
		core.NewVec3(-2, 4, 3), core.NewVec3(1, 1, 1), 0.25, 0.05, 0.01))
	s.AddLight(lights.NewDirectionalLight(
		core.NewVec3(1, -1, -0.5), core.NewVec3(0.2, 0.2, 0.25)))

	return s
}

// NewGlassScene builds two nested dielectric spheres over a checker of
// matte spheres, a stress test for the medium stack.
func NewGlassScene(aspectRatio float64) *Scene {
	camera := renderer.NewCamera(renderer.CameraConfig{
		Center:      core.NewVec3(0, 0.8, 3.5),
		LookAt:      core.NewVec3(0, 0.5, 0),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        35,
		AspectRatio: aspectRatio,
	})

	s := NewScene(camera, core.NewVec3(0.05, 0.05, 0.05))

	ground := &material.Phong{
		Ambient:   core.NewVec3(0.1, 0.1, 0.1),
		Diffuse:   core.NewVec3(0.5, 0.55, 0.6),
		Specular:  core.NewVec3(0.1, 0.1, 0.1),
		Shininess: 8,
	}
	outerGlass := &material.Phong{
		Ambient:         core.NewVec3(0.02, 0.02, 0.02),
		Specular:        core.NewVec3(0.5, 0.5, 0.5),
		Shininess:       96,
		Reflective:      core.NewVec3(0.1, 0.1, 0.1),
		Transmissive:    core.NewVec3(0.9, 0.9, 0.9),
		RefractiveIndex: 1.5,
	}
	innerGlass := &material.Phong{
		Ambient:         core.NewVec3(0.02, 0.02, 0.02),
		Specular:        core.NewVec3(0.5, 0.5, 0.5),
		Shininess:       96,
		Transmissive:    core.NewVec3(0.85, 0.9, 0.95),
		RefractiveIndex: 2.4,
	}
	backdrop := &material.Phong{
		Ambient:   core.NewVec3(0.05, 0.08, 0.05),
		Diffuse:   core.NewVec3(0.2, 0.6, 0.3),
		Specular:  core.NewVec3(0.2, 0.2, 0.2),
		Shininess: 32,
	}

	s.Add(geometry.NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), ground))
	s.Add(geometry.NewSphere(core.NewVec3(0, 0.6, 0), 0.6, outerGlass))
	s.Add(geometry.NewSphere(core.NewVec3(0, 0.6, 0), 0.3, innerGlass))
	s.Add(geometry.NewSphere(core.NewVec3(-1.2, 0.4, -1.5), 0.4, backdrop))
	s.Add(geometry.NewSphere(core.NewVec3(1.2, 0.4, -1.5), 0.4, backdrop))

	s.AddLight(lights.NewPointLight(
		core.NewVec3(3, 4, 2), core.NewVec3(1, 1, 1), 0.25, 0.05, 0.01))
	s.AddLight(lights.NewPointLight(
		core.NewVec3(-3, 3, 1), core.NewVec3(0.4, 0.4, 0.5), 0.25, 0.1, 0.02))

	return s
}
