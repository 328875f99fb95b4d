package grove

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Pitch is clamped just short of straight up or down so LookAt keeps a
// stable up vector.
const maxCameraPitch = math.Pi/2 - 0.01

// orbitAnim holds active orbit-to tweens for yaw, pitch and distance.
type orbitAnim struct {
	tweenYaw   *gween.Tween
	tweenPitch *gween.Tween
	tweenDist  *gween.Tween
	done       [3]bool
}

// Camera is an orbit camera: it sits Distance away from Target, rotated by
// Yaw about the world Y axis and raised by Pitch.
type Camera struct {
	// Target is the world-space point the camera looks at.
	Target mgl64.Vec3
	// Distance from Target. Must be positive.
	Distance float64
	// Yaw is the rotation about +Y in radians. Zero looks down -Z.
	Yaw float64
	// Pitch raises the camera above the target's horizon, in radians.
	Pitch float64
	// FOV is the vertical field of view in radians.
	FOV float64
	// Near and Far bound the depth range.
	Near, Far float64

	orbitTween *orbitAnim
}

// NewCamera returns a camera framing a default forest from the front and
// slightly above.
func NewCamera() *Camera {
	return &Camera{
		Target:   mgl64.Vec3{0, -50, -300},
		Distance: 450,
		Pitch:    0.25,
		FOV:      mgl64.DegToRad(50),
		Near:     1,
		Far:      5000,
	}
}

// Eye returns the camera's world-space position.
func (c *Camera) Eye() mgl64.Vec3 {
	pitch := mgl64.Clamp(c.Pitch, -maxCameraPitch, maxCameraPitch)
	cp := math.Cos(pitch)
	offset := mgl64.Vec3{
		c.Distance * cp * math.Sin(c.Yaw),
		c.Distance * math.Sin(pitch),
		c.Distance * cp * math.Cos(c.Yaw),
	}
	return c.Target.Add(offset)
}

// View returns the world-to-camera matrix.
func (c *Camera) View() mgl64.Mat4 {
	return mgl64.LookAtV(c.Eye(), c.Target, axisY)
}

// Projection returns the perspective matrix for a w x h viewport.
func (c *Camera) Projection(w, h int) mgl64.Mat4 {
	aspect := 1.0
	if h > 0 {
		aspect = float64(w) / float64(h)
	}
	return mgl64.Perspective(c.FOV, aspect, c.Near, c.Far)
}

// ViewProjection returns Projection * View for a w x h viewport.
func (c *Camera) ViewProjection(w, h int) mgl64.Mat4 {
	return c.Projection(w, h).Mul4(c.View())
}

// WorldToScreen projects a world point into a w x h viewport with the
// origin at the top-left. ok is false when the point is behind the camera.
func (c *Camera) WorldToScreen(p mgl64.Vec3, w, h int) (x, y float64, ok bool) {
	return projectPoint(c.ViewProjection(w, h), p, w, h)
}

// projectPoint applies vp and the viewport mapping.
func projectPoint(vp mgl64.Mat4, p mgl64.Vec3, w, h int) (x, y float64, ok bool) {
	x, y, _, ok = projectPointDepth(vp, p, w, h)
	return x, y, ok
}

// projectPointDepth is projectPoint that also returns NDC z, in [-1, 1]
// for points inside the frustum.
func projectPointDepth(vp mgl64.Mat4, p mgl64.Vec3, w, h int) (x, y, depth float64, ok bool) {
	clip := vp.Mul4x1(p.Vec4(1))
	if clip[3] <= 1e-9 {
		return 0, 0, 0, false
	}
	ndc := clip.Vec3().Mul(1 / clip[3])
	x = (ndc[0] + 1) / 2 * float64(w)
	y = (1 - ndc[1]) / 2 * float64(h)
	return x, y, ndc[2], true
}

// OrbitTo animates yaw, pitch and distance to the given values over duration
// seconds. A nil easeFn uses ease.InOutQuad.
func (c *Camera) OrbitTo(yaw, pitch, distance float64, duration float32, easeFn ease.TweenFunc) {
	if easeFn == nil {
		easeFn = ease.InOutQuad
	}
	c.orbitTween = &orbitAnim{
		tweenYaw:   gween.New(float32(c.Yaw), float32(yaw), duration, easeFn),
		tweenPitch: gween.New(float32(c.Pitch), float32(pitch), duration, easeFn),
		tweenDist:  gween.New(float32(c.Distance), float32(distance), duration, easeFn),
	}
}

// Orbiting reports whether an OrbitTo animation is in progress.
func (c *Camera) Orbiting() bool {
	return c.orbitTween != nil
}

// update advances the orbit animation and clamps pitch and distance. Called
// from Scene.Step.
func (c *Camera) update(dt float32) {
	if a := c.orbitTween; a != nil {
		fields := [3]*float64{&c.Yaw, &c.Pitch, &c.Distance}
		tweens := [3]*gween.Tween{a.tweenYaw, a.tweenPitch, a.tweenDist}
		for i, tw := range tweens {
			if a.done[i] {
				continue
			}
			val, done := tw.Update(dt)
			*fields[i] = float64(val)
			a.done[i] = done
		}
		if a.done[0] && a.done[1] && a.done[2] {
			c.orbitTween = nil
		}
	}
	c.Pitch = mgl64.Clamp(c.Pitch, -maxCameraPitch, maxCameraPitch)
	if c.Distance < c.Near {
		c.Distance = c.Near
	}
}
