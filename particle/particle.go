// Package particle holds per-instance particle state and the block storage that
// emitters keep their particles in.
package particle

import "math"

// Vec3 is a position, direction or velocity in simulation space.
type Vec3 struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
	Z float64 `yaml:"z" json:"z"`
}

func (v Vec3) Add(o Vec3) Vec3      { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3      { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }
func (v Vec3) Dot(o Vec3) float64   { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }
func (v Vec3) Len() float64         { return math.Sqrt(v.Dot(v)) }
func (v Vec3) LenSquared() float64  { return v.Dot(v) }
func (v Vec3) IsZero() bool         { return v.X == 0 && v.Y == 0 && v.Z == 0 }
func (v Vec3) Equal(o Vec3, eps float64) bool {
	return math.Abs(v.X-o.X) <= eps && math.Abs(v.Y-o.Y) <= eps && math.Abs(v.Z-o.Z) <= eps
}

// Normalize returns the unit vector in the direction of v, or the zero vector.
func (v Vec3) Normalize() Vec3 {
	l := v.Len()
	if l == 0 {
		return Vec3{}
	}
	return v.Scale(1 / l)
}

// LerpVec3 interpolates component-wise between a and b.
func LerpVec3(a, b Vec3, f float64) Vec3 {
	return Vec3{
		X: a.X + f*(b.X-a.X),
		Y: a.Y + f*(b.Y-a.Y),
		Z: a.Z + f*(b.Z-a.Z),
	}
}

// Color is a linear RGBA color with channels in [0, 1].
type Color struct {
	R float64 `yaml:"r" json:"r"`
	G float64 `yaml:"g" json:"g"`
	B float64 `yaml:"b" json:"b"`
	A float64 `yaml:"a" json:"a"`
}

// White is the default particle tint.
var White = Color{R: 1, G: 1, B: 1, A: 1}

// LerpColor interpolates each channel between a and b.
func LerpColor(a, b Color, f float64) Color {
	return Color{
		R: a.R + f*(b.R-a.R),
		G: a.G + f*(b.G-a.G),
		B: a.B + f*(b.B-a.B),
		A: a.A + f*(b.A-a.A),
	}
}

// Particle is the mutable state of one particle. Behaviours mutate it in place
// and must never read another particle's state.
type Particle struct {
	// Seed is fixed at spawn and feeds deterministic per-particle noise.
	Seed     uint64
	Position Vec3
	// Velocity is integrated as Position += Velocity * Speed * dt.
	Velocity Vec3
	Speed    float64
	Size     float64
	Color    Color
}
