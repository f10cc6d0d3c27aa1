package core

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

// A line of wheel scroll is treated as roughly this many pixels.
const scrollLinePixels = 100.0

// CameraController accumulates discrete input signals and integrates
// them into a Camera once per tick. Movement axes are level-triggered
// and persist between ticks (held keys); rotation and scroll deltas are
// edge-triggered and consumed by the next Update.
type CameraController struct {
	amountLeft     float32
	amountRight    float32
	amountForward  float32
	amountBackward float32
	amountUp       float32
	amountDown     float32

	rotateHorizontal float32
	rotateVertical   float32
	scroll           float32

	Speed       float32
	Sensitivity float32
}

func NewCameraController(speed, sensitivity float32) *CameraController {
	return &CameraController{
		Speed:       speed,
		Sensitivity: sensitivity,
	}
}

// ProcessKeyboard maps a key press/release onto a movement axis and
// reports whether the key was recognized. Unrecognized keys are a no-op
// so the caller can route them elsewhere.
func (c *CameraController) ProcessKeyboard(key Key, pressed bool) bool {
	var amount float32
	if pressed {
		amount = 1.0
	}
	switch key {
	case KeyW, KeyArrowUp:
		c.amountForward = amount
	case KeyS, KeyArrowDown:
		c.amountBackward = amount
	case KeyA, KeyArrowLeft:
		c.amountLeft = amount
	case KeyD, KeyArrowRight:
		c.amountRight = amount
	case KeySpace:
		c.amountUp = amount
	case KeyLeftShift:
		c.amountDown = amount
	default:
		return false
	}
	return true
}

// HandleMouse records a raw pointer delta for the next tick. The latest
// sample overwrites any unconsumed one; callers that want every motion
// event honored must tick between events.
func (c *CameraController) HandleMouse(dx, dy float64) {
	c.rotateHorizontal = float32(dx)
	c.rotateVertical = float32(dy)
}

// HandleMouseScroll normalizes a wheel delta to pixel units and stores
// it, negated, as the pending zoom impulse. Like mouse motion it does
// not accumulate: the newest event wins until the next tick consumes it.
func (c *CameraController) HandleMouseScroll(unit ScrollUnit, delta float32) {
	switch unit {
	case ScrollLines:
		c.scroll = -delta * scrollLinePixels
	default:
		c.scroll = -delta
	}
}

// Update advances the camera by dt of wall time.
//
// Movement is FPS-style: forward/right are derived from yaw alone so
// held keys slide the camera in the horizontal plane regardless of
// pitch, while the scroll impulse moves along the true (pitched) view
// direction. Vertical movement is world-space Y. Rotation and scroll
// accumulators are zeroed; movement axes persist until key release.
func (c *CameraController) Update(camera *Camera, dt time.Duration) {
	d := float32(dt.Seconds())

	sinY, cosY := sincos(camera.Yaw)
	forward := mgl32.Vec3{cosY, 0, sinY}.Normalize()
	right := mgl32.Vec3{-sinY, 0, cosY}.Normalize()
	camera.Position = camera.Position.Add(forward.Mul((c.amountForward - c.amountBackward) * c.Speed * d))
	camera.Position = camera.Position.Add(right.Mul((c.amountRight - c.amountLeft) * c.Speed * d))

	sinP, cosP := sincos(camera.Pitch)
	scrollward := mgl32.Vec3{cosP * cosY, sinP, cosP * sinY}.Normalize()
	camera.Position = camera.Position.Add(scrollward.Mul(c.scroll * c.Speed * c.Sensitivity * d))
	c.scroll = 0

	camera.Position[1] += (c.amountUp - c.amountDown) * c.Speed * d

	camera.Yaw += c.rotateHorizontal * c.Sensitivity * d
	camera.Pitch -= c.rotateVertical * c.Sensitivity * d
	c.rotateHorizontal = 0
	c.rotateVertical = 0

	if camera.Pitch < -SafeHalfPi {
		camera.Pitch = -SafeHalfPi
	} else if camera.Pitch > SafeHalfPi {
		camera.Pitch = SafeHalfPi
	}
}
