package grove

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// OrbitControls turns mouse and keyboard input into camera orbit: drag with
// the left button to rotate, wheel to zoom, arrow keys to rotate, and R to
// ease back to the starting view.
type OrbitControls struct {
	Camera *Camera
	// RotateSpeed is radians per dragged pixel.
	RotateSpeed float64
	// KeySpeed is radians per second while an arrow key is held.
	KeySpeed float64
	// ZoomSpeed scales Distance by (1 - ZoomSpeed) per wheel notch.
	ZoomSpeed float64
	// MinDistance and MaxDistance clamp zoom.
	MinDistance, MaxDistance float64

	home         [3]float64 // yaw, pitch, distance
	dragging     bool
	lastX, lastY int
}

// NewOrbitControls binds controls to cam and remembers its current view as
// the reset target.
func NewOrbitControls(cam *Camera) *OrbitControls {
	return &OrbitControls{
		Camera:      cam,
		RotateSpeed: 0.005,
		KeySpeed:    1.2,
		ZoomSpeed:   0.1,
		MinDistance: 20,
		MaxDistance: 2000,
		home:        [3]float64{cam.Yaw, cam.Pitch, cam.Distance},
	}
}

// Update reads input for this frame. Register it with Scene.AddUpdater.
func (o *OrbitControls) Update(dt float64) {
	x, y := ebiten.CursorPosition()
	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		o.dragging = true
		o.lastX, o.lastY = x, y
	case inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft):
		o.dragging = false
	case o.dragging:
		o.Drag(float64(x-o.lastX), float64(y-o.lastY))
		o.lastX, o.lastY = x, y
	}

	if _, wy := ebiten.Wheel(); wy != 0 {
		o.Zoom(wy)
	}

	step := o.KeySpeed * dt
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		o.Camera.Yaw -= step
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		o.Camera.Yaw += step
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		o.Camera.Pitch = math.Min(o.Camera.Pitch+step, maxCameraPitch)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		o.Camera.Pitch = math.Max(o.Camera.Pitch-step, -maxCameraPitch)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		o.Reset(0.6)
	}
}

// Drag rotates the camera by a pointer delta in pixels. Dragging right
// orbits left around the target; dragging down raises the camera.
func (o *OrbitControls) Drag(dx, dy float64) {
	o.Camera.Yaw -= dx * o.RotateSpeed
	o.Camera.Pitch = math.Max(-maxCameraPitch, math.Min(maxCameraPitch, o.Camera.Pitch+dy*o.RotateSpeed))
}

// Zoom scales the camera distance by wheel notches; positive zooms in.
func (o *OrbitControls) Zoom(notches float64) {
	d := o.Camera.Distance * math.Pow(1-o.ZoomSpeed, notches)
	o.Camera.Distance = math.Max(o.MinDistance, math.Min(o.MaxDistance, d))
}

// Reset eases the camera back to the view it had when the controls were
// created.
func (o *OrbitControls) Reset(duration float32) {
	o.Camera.OrbitTo(o.home[0], o.home[1], o.home[2], duration, nil)
}
