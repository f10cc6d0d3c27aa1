package core

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestProjectionResizeRecomputesAspect(t *testing.T) {
	p := NewProjection(800, 600, mgl32.DegToRad(45), 0.1, 100.0)
	if p.Aspect != 800.0/600.0 {
		t.Fatalf("initial aspect: expected %f, got %f", 800.0/600.0, p.Aspect)
	}

	cases := []struct{ w, h uint32 }{
		{1920, 1080},
		{100, 300},
		{1, 1},
		{640, 480},
	}
	for _, tc := range cases {
		p.Resize(tc.w, tc.h)
		want := float32(tc.w) / float32(tc.h)
		if p.Aspect != want {
			t.Errorf("resize(%d,%d): expected aspect %f, got %f", tc.w, tc.h, want, p.Aspect)
		}
		if p.Fovy != mgl32.DegToRad(45) || p.Znear != 0.1 || p.Zfar != 100.0 {
			t.Errorf("resize(%d,%d) must not touch fovy/znear/zfar", tc.w, tc.h)
		}
	}
}

func TestProjectionMatrixMatchesPerspective(t *testing.T) {
	p := NewProjection(1280, 720, mgl32.DegToRad(60), 0.5, 500.0)
	want := mgl32.Perspective(mgl32.DegToRad(60), 1280.0/720.0, 0.5, 500.0)
	if p.Matrix() != want {
		t.Errorf("projection matrix mismatch:\ngot  %v\nwant %v", p.Matrix(), want)
	}
}

func TestCameraForwardFromAngles(t *testing.T) {
	// Yaw 0, pitch 0 looks down +X.
	c := NewCamera(mgl32.Vec3{}, 0, 0)
	if !c.Forward().ApproxEqual(mgl32.Vec3{1, 0, 0}) {
		t.Errorf("yaw=0 pitch=0: expected +X forward, got %v", c.Forward())
	}

	// Yaw pi/2 looks down +Z.
	c.Yaw = float32(math.Pi / 2)
	if !c.Forward().ApproxEqualThreshold(mgl32.Vec3{0, 0, 1}, 1e-6) {
		t.Errorf("yaw=pi/2: expected +Z forward, got %v", c.Forward())
	}

	// Positive pitch tilts up.
	c = NewCamera(mgl32.Vec3{}, 0, float32(math.Pi/4))
	f := c.Forward()
	if f.Y() <= 0 {
		t.Errorf("positive pitch must give positive Y component, got %v", f)
	}
}

func TestCameraMatrixIsLookTo(t *testing.T) {
	c := NewCamera(mgl32.Vec3{1, 2, 3}, 0.7, -0.3)
	want := mgl32.LookAtV(c.Position, c.Position.Add(c.Forward()), mgl32.Vec3{0, 1, 0})
	if c.Matrix() != want {
		t.Errorf("view matrix mismatch:\ngot  %v\nwant %v", c.Matrix(), want)
	}
}

func TestCameraMatrixTransformsEyeToOrigin(t *testing.T) {
	c := NewCamera(mgl32.Vec3{5, -2, 8}, 1.1, 0.4)
	eye := c.Matrix().Mul4x1(mgl32.Vec4{5, -2, 8, 1})
	if !eye.ApproxEqualThreshold(mgl32.Vec4{0, 0, 0, 1}, 1e-5) {
		t.Errorf("view matrix must map the eye to the origin, got %v", eye)
	}
}
