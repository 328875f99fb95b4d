package grove

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// scriptStep is a single action in a camera script.
type scriptStep struct {
	Action   string  `yaml:"action"`
	Label    string  `yaml:"label,omitempty"`
	Yaw      float64 `yaml:"yaw,omitempty"`
	Pitch    float64 `yaml:"pitch,omitempty"`
	Distance float64 `yaml:"distance,omitempty"`
	Duration float32 `yaml:"duration,omitempty"`
	Frames   int     `yaml:"frames,omitempty"`
}

type script struct {
	Steps []scriptStep `yaml:"steps"`
}

// ScriptRunner sequences camera moves and screenshots across frames for
// automated visual checks of generated scenes. Attach to a Scene via
// SetScript.
//
// Actions: "orbit" starts Camera.OrbitTo and waits for it to finish,
// "wait" pauses for Frames frames, "screenshot" queues Screenshot(Label).
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a YAML (or JSON) script:
//
//	steps:
//	  - {action: orbit, yaw: 1.2, pitch: 0.4, distance: 300, duration: 1}
//	  - {action: screenshot, label: side}
func LoadScript(data []byte) (*ScriptRunner, error) {
	var sc script
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("grove: parse script: %w", err)
	}
	if len(sc.Steps) == 0 {
		return nil, fmt.Errorf("grove: parse script: no steps: %w", ErrInvalidParameter)
	}
	for i, st := range sc.Steps {
		switch st.Action {
		case "orbit", "wait", "screenshot":
		default:
			return nil, fmt.Errorf("grove: script step %d: unknown action %q: %w", i, st.Action, ErrInvalidParameter)
		}
		if st.Action == "orbit" && !(st.Distance > 0) {
			return nil, fmt.Errorf("grove: script step %d: orbit distance %g must be positive: %w", i, st.Distance, ErrInvalidParameter)
		}
	}
	return &ScriptRunner{steps: sc.Steps}, nil
}

// SetScript attaches a ScriptRunner to the scene. Its step method runs at
// the start of every Scene.Step.
func (s *Scene) SetScript(r *ScriptRunner) {
	s.script = r
}

// Done reports whether every step has run.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// step advances the runner by one frame.
func (r *ScriptRunner) step(s *Scene) {
	if r.done {
		return
	}
	if s.camera.Orbiting() {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++
	switch st.Action {
	case "screenshot":
		s.Screenshot(st.Label)
	case "orbit":
		s.camera.OrbitTo(st.Yaw, st.Pitch, st.Distance, st.Duration, nil)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && !s.camera.Orbiting() {
		r.done = true
	}
}
