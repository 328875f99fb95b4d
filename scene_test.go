package grove

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
)

func TestNewScene(t *testing.T) {
	s := NewScene()
	if s.root == nil {
		t.Fatal("root should not be nil")
	}
	if s.root.Name != "root" {
		t.Errorf("root.Name = %q, want %q", s.root.Name, "root")
	}
	if s.root.Type != NodeTypeContainer {
		t.Errorf("root.Type = %d, want NodeTypeContainer", s.root.Type)
	}
	if s.camera == nil {
		t.Fatal("camera should not be nil")
	}
	assertNear(t, "len(LightDir)", s.LightDir.Len(), 1)
	if s.LightDir[1] >= 0 {
		t.Errorf("LightDir = %v, want pointing down", s.LightDir)
	}
	assertNear(t, "Ambient", s.Ambient, 0.35)
	if s.ShowStats {
		t.Error("ShowStats should default to false")
	}
}

func TestSceneAccessors(t *testing.T) {
	s := NewScene()
	if s.Root() != s.root {
		t.Error("Root() should return the internal root node")
	}
	if s.Camera() != s.camera {
		t.Error("Camera() should return the internal camera")
	}
}

func TestSceneStepRunsUpdatersInOrder(t *testing.T) {
	s := NewScene()
	var calls []string
	var gotDT float64
	s.AddUpdater(func(dt float64) {
		calls = append(calls, "a")
		gotDT = dt
	})
	s.AddUpdater(func(float64) { calls = append(calls, "b") })

	s.Step(0.25)
	if len(calls) != 2 || calls[0] != "a" || calls[1] != "b" {
		t.Errorf("calls = %v, want [a b]", calls)
	}
	assertNear(t, "dt", gotDT, 0.25)
}

func TestSceneStepAdvancesCamera(t *testing.T) {
	s := NewScene()
	s.Camera().OrbitTo(1, 0.25, 300, 0.5, nil)
	s.Step(0.25)
	if !s.Camera().Orbiting() {
		t.Error("orbit finished after half its duration")
	}
	s.Step(0.25)
	if s.Camera().Orbiting() {
		t.Error("orbit should be finished")
	}
	assertNear(t, "Distance", s.Camera().Distance, 300)
}

func TestSceneStepRefreshesWorldTransforms(t *testing.T) {
	s := NewScene()
	parent := NewContainer("parent")
	child := NewContainer("child")
	parent.AddChild(child)
	s.Root().AddChild(parent)

	parent.SetPosition(5, 0, 0)
	child.SetPosition(0, 2, 0)
	s.Step(0)

	got := mgl64.TransformCoordinate(mgl64.Vec3{}, child.worldTransform)
	assertVec(t, "child world origin", got, mgl64.Vec3{5, 2, 0}, epsilon)
	if parent.transformDirty || child.transformDirty {
		t.Error("Step should leave transforms clean")
	}
}

// --- Run loop ---

func TestGameUpdateCallsUpdateFunc(t *testing.T) {
	s := NewScene()
	called := 0
	s.SetUpdateFunc(func() error {
		called++
		return nil
	})
	g := &game{scene: s}
	if err := g.Update(); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if called != 1 {
		t.Errorf("update func called %d times, want 1", called)
	}
}

func TestGameUpdatePropagatesError(t *testing.T) {
	s := NewScene()
	boom := errors.New("boom")
	s.SetUpdateFunc(func() error { return boom })
	g := &game{scene: s}
	if err := g.Update(); !errors.Is(err, boom) {
		t.Errorf("Update err = %v, want boom", err)
	}
}

func TestGameExitsWhenScriptDone(t *testing.T) {
	s := NewScene()
	r, err := LoadScript([]byte("steps:\n  - {action: screenshot, label: only}\n"))
	if err != nil {
		t.Fatal(err)
	}
	s.SetScript(r)
	g := &game{scene: s, cfg: RunConfig{ExitWhenScriptDone: true}}

	if err := g.Update(); err != nil {
		t.Fatalf("first Update: %v", err)
	}
	if !r.Done() {
		t.Fatal("script should be done after its only step")
	}
	// The queued screenshot has not been drawn yet.
	if err := g.Update(); err != nil {
		t.Fatalf("Update with pending screenshot: %v", err)
	}

	s.screenshotQueue = s.screenshotQueue[:0]
	if err := g.Update(); !errors.Is(err, ebiten.Termination) {
		t.Errorf("Update err = %v, want ebiten.Termination", err)
	}
}

func TestGameLayout(t *testing.T) {
	g := &game{scene: NewScene(), cfg: RunConfig{Width: 320, Height: 200}}
	w, h := g.Layout(1000, 1000)
	if w != 320 || h != 200 {
		t.Errorf("Layout = %dx%d, want 320x200", w, h)
	}
}

// --- Script runner ---

func TestLoadScriptErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"empty", ""},
		{"no steps", "steps: []\n"},
		{"unknown action", "steps:\n  - {action: jump}\n"},
		{"orbit without distance", "steps:\n  - {action: orbit, yaw: 1}\n"},
		{"negative distance", "steps:\n  - {action: orbit, distance: -5}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadScript([]byte(tt.src))
			assertInvalid(t, tt.name, err)
		})
	}

	if _, err := LoadScript([]byte("steps: [")); err == nil {
		t.Error("malformed YAML should fail")
	}
}

func TestLoadScriptJSON(t *testing.T) {
	r, err := LoadScript([]byte(`{"steps": [{"action": "wait", "frames": 2}]}`))
	if err != nil {
		t.Fatal(err)
	}
	if len(r.steps) != 1 || r.steps[0].Frames != 2 {
		t.Errorf("steps = %+v", r.steps)
	}
}

func TestScriptWaitAndScreenshot(t *testing.T) {
	s := NewScene()
	r, err := LoadScript([]byte(`
steps:
  - {action: screenshot, label: first}
  - {action: wait, frames: 3}
  - {action: screenshot, label: second}
`))
	if err != nil {
		t.Fatal(err)
	}
	s.SetScript(r)

	s.Step(0)
	if len(s.screenshotQueue) != 1 || s.screenshotQueue[0] != "first" {
		t.Fatalf("queue after step 1 = %v, want [first]", s.screenshotQueue)
	}
	for i := 0; i < 3; i++ {
		s.Step(0)
	}
	if len(s.screenshotQueue) != 1 || r.Done() {
		t.Fatalf("queue = %v, done = %v while waiting", s.screenshotQueue, r.Done())
	}
	s.Step(0)
	if len(s.screenshotQueue) != 2 || s.screenshotQueue[1] != "second" {
		t.Fatalf("queue after step 5 = %v, want [first second]", s.screenshotQueue)
	}
	if !r.Done() {
		t.Error("script should be done")
	}

	s.Step(0)
	if len(s.screenshotQueue) != 2 {
		t.Error("finished script should not queue more screenshots")
	}
}

func TestScriptWaitsForOrbit(t *testing.T) {
	s := NewScene()
	r, err := LoadScript([]byte(`
steps:
  - {action: orbit, yaw: 1, pitch: 0.5, distance: 100, duration: 0.5}
  - {action: screenshot, label: end}
`))
	if err != nil {
		t.Fatal(err)
	}
	s.SetScript(r)

	s.Step(0.25)
	if !s.Camera().Orbiting() {
		t.Fatal("orbit should be running")
	}
	s.Step(0.25)
	if len(s.screenshotQueue) != 0 {
		t.Fatal("screenshot queued before the orbit finished")
	}
	if s.Camera().Orbiting() {
		t.Fatal("orbit should have finished")
	}

	s.Step(0.25)
	if len(s.screenshotQueue) != 1 || s.screenshotQueue[0] != "end" {
		t.Errorf("queue = %v, want [end]", s.screenshotQueue)
	}
	if !r.Done() {
		t.Error("script should be done")
	}
	cam := s.Camera()
	if !approxEqual(cam.Yaw, 1, 1e-6) || !approxEqual(cam.Pitch, 0.5, 1e-6) || !approxEqual(cam.Distance, 100, 1e-6) {
		t.Errorf("camera = (%v, %v, %v), want (1, 0.5, 100)", cam.Yaw, cam.Pitch, cam.Distance)
	}
}
