package core

import (
	"math"
	"math/rand"
)

// Vec2 represents a 2D sample point
type Vec2 struct {
	X, Y float64
}

// NewVec2 creates a new Vec2
func NewVec2(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Sampler provides random values for rendering algorithms.
// Each worker owns its own sampler; samplers are never shared between
// goroutines, which keeps renders reproducible under a fixed seed.
type Sampler interface {
	Get1D() float64
	Get2D() Vec2
}

// RandomSampler wraps a standard Go random generator
type RandomSampler struct {
	random *rand.Rand
}

// NewRandomSampler creates a sampler from a Go random generator
func NewRandomSampler(random *rand.Rand) *RandomSampler {
	return &RandomSampler{random: random}
}

// NewSeededSampler creates a sampler with its own generator from a seed
func NewSeededSampler(seed int64) *RandomSampler {
	return &RandomSampler{random: rand.New(rand.NewSource(seed))}
}

// Get1D returns a random float64 in [0, 1)
func (r *RandomSampler) Get1D() float64 {
	return r.random.Float64()
}

// Get2D returns two random float64 values in [0, 1)
func (r *RandomSampler) Get2D() Vec2 {
	return NewVec2(r.random.Float64(), r.random.Float64())
}

// ConeSampler generates directions within a cone around a center
// direction, used for glossy reflection. Directions are distributed
// uniformly in solid angle inside the cone.
type ConeSampler struct {
	w, u, v  Vec3 // Orthonormal basis, w = cone axis
	cosWidth float64
}

// NewConeSampler creates a cone sampler around a unit center direction
// with the given half-angle in radians.
func NewConeSampler(center Vec3, halfAngle float64) *ConeSampler {
	w := center.Normalize()

	// Pick any vector not parallel to the axis to seed the basis
	var a Vec3
	if math.Abs(w.X) > 0.1 {
		a = NewVec3(0, 1, 0)
	} else {
		a = NewVec3(1, 0, 0)
	}
	u := a.Cross(w).Normalize()
	v := w.Cross(u)

	return &ConeSampler{
		w:        w,
		u:        u,
		v:        v,
		cosWidth: math.Cos(halfAngle),
	}
}

// Sample returns a unit direction whose angle from the cone axis is at
// most the configured half-angle.
func (c *ConeSampler) Sample(sampler Sampler) Vec3 {
	sample := sampler.Get2D()

	cosTheta := 1.0 - sample.X*(1.0-c.cosWidth)
	sinTheta := math.Sqrt(math.Max(0, 1.0-cosTheta*cosTheta))
	phi := 2.0 * math.Pi * sample.Y

	x := sinTheta * math.Cos(phi)
	y := sinTheta * math.Sin(phi)
	z := cosTheta

	return c.u.Multiply(x).Add(c.v.Multiply(y)).Add(c.w.Multiply(z))
}
