package renderer

import (
	"math"

	"github.com/davehc/go-whitted-raytracer/pkg/core"
)

// CameraConfig holds camera parameters
type CameraConfig struct {
	Center      core.Vec3 // Camera position
	LookAt      core.Vec3 // Point to look at
	Up          core.Vec3 // Up vector
	VFov        float64   // Vertical field of view in degrees
	AspectRatio float64   // Width / height
}

// Camera generates rays for rendering
type Camera struct {
	origin          core.Vec3
	lowerLeftCorner core.Vec3
	horizontal      core.Vec3
	vertical        core.Vec3
	aspectRatio     float64
}

// NewCamera creates a pinhole camera from the given configuration
func NewCamera(config CameraConfig) *Camera {
	theta := config.VFov * math.Pi / 180
	h := math.Tan(theta / 2)
	viewportHeight := 2.0 * h
	viewportWidth := config.AspectRatio * viewportHeight

	w := config.Center.Subtract(config.LookAt).Normalize()
	u := config.Up.Cross(w).Normalize()
	v := w.Cross(u)

	origin := config.Center
	horizontal := u.Multiply(viewportWidth)
	vertical := v.Multiply(viewportHeight)
	lowerLeftCorner := origin.
		Subtract(horizontal.Multiply(0.5)).
		Subtract(vertical.Multiply(0.5)).
		Subtract(w)

	return &Camera{
		origin:          origin,
		horizontal:      horizontal,
		vertical:        vertical,
		lowerLeftCorner: lowerLeftCorner,
		aspectRatio:     config.AspectRatio,
	}
}

// RayThrough generates the ray through normalized image coordinates
// (s, t) in [0,1]², with t increasing upwards. The returned direction
// is unit length.
func (c *Camera) RayThrough(s, t float64) core.Ray {
	direction := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t)).
		Subtract(c.origin).
		Normalize()

	return core.NewRay(c.origin, direction)
}

// AspectRatio returns the configured aspect ratio
func (c *Camera) AspectRatio() float64 {
	return c.aspectRatio
}
