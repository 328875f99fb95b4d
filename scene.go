package grove

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
)

const defaultTriangleCap = 4096

// Scene is the top-level preview object that owns the node tree, the orbit
// camera, the light and the render buffers.
type Scene struct {
	root   *Node
	camera *Camera

	// LightDir is the direction the light travels, in world space.
	LightDir mgl64.Vec3
	// Ambient is the light level of faces turned away from the light, in [0, 1].
	Ambient float64
	// ClearColor fills the screen before drawing. The zero value leaves the
	// screen untouched.
	ClearColor Color
	// ShowStats overlays FPS and triangle counts.
	ShowStats bool

	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir   string
	screenshotQueue []string

	updateFunc func() error
	updaters   []func(dt float64)
	script     *ScriptRunner

	// Render state, reused across frames.
	tris    []drawTri
	sortBuf []drawTri
	verts   []ebiten.Vertex
	inds    []uint16
	stats   frameStats
}

// NewScene creates a scene with an empty root container and a default
// camera and light.
func NewScene() *Scene {
	return &Scene{
		root:          NewContainer("root"),
		camera:        NewCamera(),
		LightDir:      mgl64.Vec3{-0.4, -1, -0.6}.Normalize(),
		Ambient:       0.35,
		ScreenshotDir: "screenshots",
		tris:          make([]drawTri, 0, defaultTriangleCap),
	}
}

// Root returns the scene's root container.
func (s *Scene) Root() *Node {
	return s.root
}

// Camera returns the scene's orbit camera.
func (s *Scene) Camera() *Camera {
	return s.camera
}

// SetUpdateFunc sets a callback run once per tick by Run, before the scene
// steps.
func (s *Scene) SetUpdateFunc(fn func() error) {
	s.updateFunc = fn
}

// AddUpdater registers fn to be called with the frame delta on every Step.
// Forest.Update and OrbitControls.Update fit here.
func (s *Scene) AddUpdater(fn func(dt float64)) {
	s.updaters = append(s.updaters, fn)
}

// Update advances the scene by one ebiten tick.
func (s *Scene) Update() {
	s.Step(1.0 / float64(ebiten.TPS()))
}

// Step advances updaters and the camera by dt seconds, then refreshes world
// transforms.
func (s *Scene) Step(dt float64) {
	if s.script != nil {
		s.script.step(s)
	}
	for _, fn := range s.updaters {
		fn(dt)
	}
	s.camera.update(float32(dt))
	updateWorldTransform(s.root, mgl64.Ident4(), false)
}

// Draw renders the scene graph onto screen from the camera's point of view,
// then captures any queued screenshots.
func (s *Scene) Draw(screen *ebiten.Image) {
	if !s.ClearColor.IsZero() {
		screen.Fill(s.ClearColor.toRGBA())
	}
	b := screen.Bounds()
	s.collectTriangles(b.Dx(), b.Dy())
	s.sortTriangles()
	s.submitTriangles(screen)
	if s.ShowStats {
		s.drawStats(screen)
	}
	s.flushScreenshots(screen)
}
