// Package vector provides the 2D vector types shared by beatmap object
// conversion and difficulty feature derivation, backed by go-gl/mathgl.
package vector

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

// Vector2f is a single-precision playfield position, matching the
// precision hit objects are stored at.
type Vector2f struct {
	v mgl32.Vec2
}

func NewVec2f(x, y float32) Vector2f {
	return Vector2f{v: mgl32.Vec2{x, y}}
}

func (v Vector2f) X() float32 { return v.v[0] }
func (v Vector2f) Y() float32 { return v.v[1] }

func (v Vector2f) Add(o Vector2f) Vector2f {
	return Vector2f{v: v.v.Add(o.v)}
}

func (v Vector2f) Sub(o Vector2f) Vector2f {
	return Vector2f{v: v.v.Sub(o.v)}
}

func (v Vector2f) Scl(s float32) Vector2f {
	return Vector2f{v: v.v.Mul(s)}
}

func (v Vector2f) Dot(o Vector2f) float32 {
	return v.v.Dot(o.v)
}

// Cross returns the scalar (z-component) cross product, used for signed
// angle-between-vectors computations.
func (v Vector2f) Cross(o Vector2f) float32 {
	return v.v[0]*o.v[1] - v.v[1]*o.v[0]
}

func (v Vector2f) Len() float32 {
	return v.v.Len()
}

// Dst is the Euclidean distance between v and o.
func (v Vector2f) Dst(o Vector2f) float32 {
	return v.Sub(o).Len()
}

// Copy64 widens v to double precision, matching the teacher's
// vector.NewVec2f(x, y).Copy64() idiom used for cross-precision math.
func (v Vector2f) Copy64() Vector2d {
	return NewVec2d(float64(v.v[0]), float64(v.v[1]))
}

// Vector2d is a double-precision position, used once features start
// mixing clock-rate-scaled time with distance.
type Vector2d struct {
	v mgl64.Vec2
}

func NewVec2d(x, y float64) Vector2d {
	return Vector2d{v: mgl64.Vec2{x, y}}
}

func (v Vector2d) X() float64 { return v.v[0] }
func (v Vector2d) Y() float64 { return v.v[1] }

func (v Vector2d) Add(o Vector2d) Vector2d {
	return Vector2d{v: v.v.Add(o.v)}
}

func (v Vector2d) Sub(o Vector2d) Vector2d {
	return Vector2d{v: v.v.Sub(o.v)}
}

func (v Vector2d) Scl(s float64) Vector2d {
	return Vector2d{v: v.v.Mul(s)}
}

func (v Vector2d) Dot(o Vector2d) float64 {
	return v.v.Dot(o.v)
}

func (v Vector2d) Cross(o Vector2d) float64 {
	return v.v[0]*o.v[1] - v.v[1]*o.v[0]
}

func (v Vector2d) Len() float64 {
	return v.v.Len()
}

func (v Vector2d) Dst(o Vector2d) float64 {
	return v.Sub(o).Len()
}
