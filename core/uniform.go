package core

import (
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// Sizes of the GPU-visible structs in bytes. Uniform-bound structs must
// be 16-byte multiples; the compile-time assertions below pin both the
// Go layout and the serialized layout to these.
const (
	CameraUniformSize = 272
	LightUniformSize  = 32
)

// CameraUniform is the fixed-layout snapshot of camera + projection
// state uploaded once per frame. Struct {
//   view_position: vec4<f32>;   // offset   0
//   view:          mat4x4<f32>; // offset  16
//   view_proj:     mat4x4<f32>; // offset  80
//   inv_proj:      mat4x4<f32>; // offset 144
//   inv_view:      mat4x4<f32>; // offset 208
// } -> 272 bytes.
type CameraUniform struct {
	ViewPosition mgl32.Vec4
	View         mgl32.Mat4
	ViewProj     mgl32.Mat4
	InvProj      mgl32.Mat4
	InvView      mgl32.Mat4
}

var _ [CameraUniformSize]byte = [unsafe.Sizeof(CameraUniform{})]byte{}

// NewCameraUniform returns the identity snapshot used before the first
// UpdateViewProj call.
func NewCameraUniform() CameraUniform {
	return CameraUniform{
		View:     mgl32.Ident4(),
		ViewProj: mgl32.Ident4(),
		InvProj:  mgl32.Ident4(),
		InvView:  mgl32.Ident4(),
	}
}

// UpdateViewProj recomputes every field from the current camera and
// projection. inv_view is the transpose of the view matrix, not a
// general inverse: Camera can only produce orthonormal rotation plus
// translation, so the transpose is the exact inverse of the rotation
// part. If Camera ever grows scale support this must switch to Inv.
func (u *CameraUniform) UpdateViewProj(camera *Camera, projection *Projection) {
	pos := camera.Position
	u.ViewPosition = mgl32.Vec4{pos.X(), pos.Y(), pos.Z(), 1}

	proj := projection.Matrix()
	view := camera.Matrix()
	u.View = view
	u.ViewProj = proj.Mul4(view)
	u.InvProj = proj.Inv()
	u.InvView = view.Transpose()
}

// Bytes serializes the uniform for upload, little-endian f32,
// column-major matrices.
func (u *CameraUniform) Bytes() []byte {
	buf := make([]byte, CameraUniformSize)
	putVec4(buf[0:], u.ViewPosition)
	putMat4(buf[16:], u.View)
	putMat4(buf[80:], u.ViewProj)
	putMat4(buf[144:], u.InvProj)
	putMat4(buf[208:], u.InvView)
	return buf
}

// LightUniform is the single point-light uniform. Struct {
//   position: vec3<f32>; // offset  0, pad to 16
//   color:    vec3<f32>; // offset 16, pad to 32
// } -> 32 bytes. The pad words carry no meaning and are always zero.
type LightUniform struct {
	Position mgl32.Vec3
	_pad0    uint32
	Color    mgl32.Vec3
	_pad1    uint32
}

var _ [LightUniformSize]byte = [unsafe.Sizeof(LightUniform{})]byte{}

func NewLightUniform(position, color mgl32.Vec3) LightUniform {
	return LightUniform{Position: position, Color: color}
}

func (u *LightUniform) Bytes() []byte {
	buf := make([]byte, LightUniformSize)
	putVec3(buf[0:], u.Position)
	putVec3(buf[16:], u.Color)
	return buf
}

func putMat4(buf []byte, m mgl32.Mat4) {
	for i, v := range m {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
}

func putVec4(buf []byte, v mgl32.Vec4) {
	for i := 0; i < 4; i++ {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v[i]))
	}
}

func putVec3(buf []byte, v mgl32.Vec3) {
	for i := 0; i < 3; i++ {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v[i]))
	}
}
