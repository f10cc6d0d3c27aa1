package core

import (
	"math"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tick = 16 * time.Millisecond

func TestProcessKeyboardRecognition(t *testing.T) {
	c := NewCameraController(10, 1)

	recognized := []Key{KeyW, KeyArrowUp, KeyS, KeyArrowDown, KeyA, KeyArrowLeft, KeyD, KeyArrowRight, KeySpace, KeyLeftShift}
	for _, k := range recognized {
		assert.True(t, c.ProcessKeyboard(k, true), "key %d should be handled", k)
	}
	for _, k := range []Key{KeyQ, KeyEscape, KeyTab, Key0, KeyUnknown} {
		assert.False(t, c.ProcessKeyboard(k, true), "key %d should not be handled", k)
	}
}

func TestKeyToggleMovesForwardUntilRelease(t *testing.T) {
	c := NewCameraController(10, 1)
	cam := NewCamera(mgl32.Vec3{}, 0.3, 0.5) // pitched camera: movement must still be horizontal

	require.True(t, c.ProcessKeyboard(KeyW, true))

	prev := cam.Position
	for i := 0; i < 5; i++ {
		c.Update(cam, tick)
		moved := cam.Position.Sub(prev)
		if moved.Len() <= 0 {
			t.Fatalf("tick %d: camera did not move while W held", i)
		}
		// Horizontal-plane movement only, aligned with yaw.
		assert.InDelta(t, 0, moved.Y(), 1e-6, "tick %d: forward movement must not change Y", i)
		dir := moved.Normalize()
		sinY, cosY := sincos(cam.Yaw)
		assert.InDelta(t, float64(cosY), float64(dir.X()), 1e-5)
		assert.InDelta(t, float64(sinY), float64(dir.Z()), 1e-5)
		prev = cam.Position
	}

	require.True(t, c.ProcessKeyboard(KeyW, false))
	c.Update(cam, tick)
	assert.Equal(t, prev, cam.Position, "camera must stop once the key is released")
}

func TestOpposedAxesCancel(t *testing.T) {
	c := NewCameraController(10, 1)
	cam := NewCamera(mgl32.Vec3{}, 0, 0)

	c.ProcessKeyboard(KeyW, true)
	c.ProcessKeyboard(KeyS, true)
	c.ProcessKeyboard(KeySpace, true)
	c.ProcessKeyboard(KeyLeftShift, true)
	c.Update(cam, tick)
	assert.Equal(t, mgl32.Vec3{}, cam.Position)
}

func TestMouseDeltaConsumedOnce(t *testing.T) {
	c := NewCameraController(10, 2)
	cam := NewCamera(mgl32.Vec3{}, 0, 0)

	c.HandleMouse(3, -4)
	c.Update(cam, tick)

	dt := float32(tick.Seconds())
	assert.InDelta(t, float64(3*c.Sensitivity*dt), float64(cam.Yaw), 1e-6)
	assert.InDelta(t, float64(4*c.Sensitivity*dt), float64(cam.Pitch), 1e-6)

	// No intervening HandleMouse: second tick must not rotate further.
	yaw, pitch := cam.Yaw, cam.Pitch
	c.Update(cam, tick)
	assert.Equal(t, yaw, cam.Yaw)
	assert.Equal(t, pitch, cam.Pitch)
}

func TestMouseDeltaOverwritesNotAccumulates(t *testing.T) {
	c := NewCameraController(10, 1)
	cam := NewCamera(mgl32.Vec3{}, 0, 0)

	c.HandleMouse(100, 0)
	c.HandleMouse(5, 0) // latest sample wins
	c.Update(cam, tick)

	dt := float32(tick.Seconds())
	assert.InDelta(t, float64(5*c.Sensitivity*dt), float64(cam.Yaw), 1e-6)
}

func TestScrollOneShotImpulse(t *testing.T) {
	c := NewCameraController(10, 1)
	cam := NewCamera(mgl32.Vec3{}, 0, 0)

	c.HandleMouseScroll(ScrollPixels, -50) // scroll toward the viewer -> move forward
	c.Update(cam, tick)
	afterFirst := cam.Position
	if afterFirst.Len() == 0 {
		t.Fatal("scroll impulse did not move the camera")
	}

	c.Update(cam, tick)
	assert.Equal(t, afterFirst, cam.Position, "scroll must apply on exactly one tick")
}

func TestScrollLineNormalization(t *testing.T) {
	lines := NewCameraController(10, 1)
	pixels := NewCameraController(10, 1)
	camA := NewCamera(mgl32.Vec3{}, 0, 0)
	camB := NewCamera(mgl32.Vec3{}, 0, 0)

	lines.HandleMouseScroll(ScrollLines, 2)
	pixels.HandleMouseScroll(ScrollPixels, 200)
	lines.Update(camA, tick)
	pixels.Update(camB, tick)

	assert.Equal(t, camA.Position, camB.Position, "2 lines must equal 200 pixels")
}

func TestScrollFollowsPitchedViewDirection(t *testing.T) {
	c := NewCameraController(10, 1)
	cam := NewCamera(mgl32.Vec3{}, 0, float32(math.Pi/4))

	c.HandleMouseScroll(ScrollPixels, -10)
	c.Update(cam, tick)
	assert.Greater(t, cam.Position.Y(), float32(0), "scrollward movement must include pitch")
}

func TestPitchStaysWithinSafeLimits(t *testing.T) {
	c := NewCameraController(10, 5)
	cam := NewCamera(mgl32.Vec3{}, 0, 0)

	// Hammer the controller with large alternating vertical deltas.
	for i := 0; i < 1000; i++ {
		if i%3 == 0 {
			c.HandleMouse(0, 5000)
		} else {
			c.HandleMouse(0, -5000)
		}
		c.Update(cam, 100*time.Millisecond)

		require.LessOrEqual(t, cam.Pitch, SafeHalfPi, "tick %d", i)
		require.GreaterOrEqual(t, cam.Pitch, -SafeHalfPi, "tick %d", i)
	}

	// The clamp must keep the look-to basis valid.
	if math.IsNaN(float64(cam.Matrix().Det())) {
		t.Fatal("view matrix degenerated")
	}
}

func TestZeroDtIsANoOp(t *testing.T) {
	c := NewCameraController(10, 1)
	cam := NewCamera(mgl32.Vec3{1, 2, 3}, 0.5, 0.25)

	c.ProcessKeyboard(KeyW, true)
	c.HandleMouse(10, 10)
	c.Update(cam, 0)

	assert.Equal(t, mgl32.Vec3{1, 2, 3}, cam.Position)
	assert.Equal(t, float32(0.5), cam.Yaw)
	assert.Equal(t, float32(0.25), cam.Pitch)
}
