package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// SafeHalfPi is the pitch limit used by the camera controller. Staying a
// hair inside +-pi/2 keeps the look-to basis non-degenerate: at exactly
// +-pi/2 the view direction becomes parallel to the up vector.
const SafeHalfPi = float32(math.Pi/2) - 0.0001

// Projection holds the perspective parameters of the output surface.
// znear must be > 0 and zfar > znear; callers own that precondition.
type Projection struct {
	Aspect float32
	Fovy   float32 // radians
	Znear  float32
	Zfar   float32
}

func NewProjection(width, height uint32, fovy, znear, zfar float32) *Projection {
	return &Projection{
		Aspect: float32(width) / float32(height),
		Fovy:   fovy,
		Znear:  znear,
		Zfar:   zfar,
	}
}

// Resize recomputes the aspect ratio for a new surface size. The other
// parameters are untouched. Call on every window resize.
func (p *Projection) Resize(width, height uint32) {
	p.Aspect = float32(width) / float32(height)
}

// Matrix returns the right-handed perspective projection matrix.
func (p *Projection) Matrix() mgl32.Mat4 {
	return mgl32.Perspective(p.Fovy, p.Aspect, p.Znear, p.Zfar)
}

// Camera is a free-flying camera described by a world position and
// yaw/pitch look angles. There is no look target; the view direction is
// synthesized from the angles. Position and angles are mutated by the
// CameraController each tick, never written directly during a frame.
type Camera struct {
	Position mgl32.Vec3
	Yaw      float32 // radians
	Pitch    float32 // radians
}

func NewCamera(position mgl32.Vec3, yaw, pitch float32) *Camera {
	return &Camera{
		Position: position,
		Yaw:      yaw,
		Pitch:    pitch,
	}
}

// Forward returns the unit view direction, including pitch.
func (c *Camera) Forward() mgl32.Vec3 {
	sinP, cosP := sincos(c.Pitch)
	sinY, cosY := sincos(c.Yaw)
	return mgl32.Vec3{cosP * cosY, sinP, cosP * sinY}
}

// Matrix builds the view matrix as a right-handed look-to: eye at the
// camera position, looking along Forward, +Y up. The result is an
// orthonormal rotation composed with a translation; CameraUniform relies
// on that to invert it by transposition.
func (c *Camera) Matrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(c.Forward()), mgl32.Vec3{0, 1, 0})
}

func sincos(angle float32) (sin, cos float32) {
	s, c := math.Sincos(float64(angle))
	return float32(s), float32(c)
}
