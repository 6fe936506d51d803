package core

// vacuum is the synthetic material for empty space. Every top-level
// trace starts inside it. A single shared instance makes the identity
// test in the integrator work.
type vacuum struct{}

func (vacuum) Reflectance() Vec3   { return Vec3{} }
func (vacuum) Transmittance() Vec3 { return Vec3{} }
func (vacuum) Index() float64      { return 1.0 }
func (vacuum) Shade(scene Scene, ray Ray, hit Intersection) Vec3 {
	return Vec3{}
}

// Vacuum is the medium rays travel through outside of any object.
var Vacuum Material = vacuum{}

// MediumStack records which dielectric media the current ray segment is
// nested inside, front first. It holds references to scene-owned
// materials and never copies or frees them.
//
// Recursion branches must not share a stack: reflection rays receive a
// plain clone, refraction rays a clone with one push or pop applied, so
// sibling branches can never observe each other's mutations.
type MediumStack []Material

// NewMediumStack returns a stack containing only the vacuum medium.
func NewMediumStack() MediumStack {
	return MediumStack{Vacuum}
}

// Front returns the medium the ray currently travels through.
func (s MediumStack) Front() Material {
	if len(s) == 0 {
		return Vacuum
	}
	return s[0]
}

// Below returns the medium directly beneath the current one, the one a
// ray returns into when it leaves the front medium.
func (s MediumStack) Below() Material {
	if len(s) < 2 {
		return Vacuum
	}
	return s[1]
}

// Clone returns an independent copy of the stack.
func (s MediumStack) Clone() MediumStack {
	clone := make(MediumStack, len(s))
	copy(clone, s)
	return clone
}

// Push returns the stack with a newly entered medium on top. The
// receiver is not modified.
func (s MediumStack) Push(m Material) MediumStack {
	stack := make(MediumStack, 0, len(s)+1)
	stack = append(stack, m)
	return append(stack, s...)
}

// Pop returns the stack with the front medium removed. Popping the last
// entry yields an empty stack, which Front treats as vacuum.
func (s MediumStack) Pop() MediumStack {
	if len(s) == 0 {
		return s
	}
	return s[1:].Clone()
}
