package grove

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title         string
	Width, Height int
	// ShowFPS overlays FPS and triangle counts.
	ShowFPS bool
	// Screenshots lets F12 queue a screenshot of the next frame.
	Screenshots bool
	// ExitWhenScriptDone closes the window once the scene's ScriptRunner
	// finishes and its last screenshot has been drawn.
	ExitWhenScriptDone bool
}

// game adapts a Scene to ebiten.Game.
type game struct {
	scene *Scene
	cfg   RunConfig
}

func (g *game) Update() error {
	if g.cfg.ExitWhenScriptDone && g.scene.script != nil && g.scene.script.Done() && len(g.scene.screenshotQueue) == 0 {
		return ebiten.Termination
	}
	if g.scene.updateFunc != nil {
		if err := g.scene.updateFunc(); err != nil {
			return err
		}
	}
	if g.cfg.Screenshots && inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		g.scene.Screenshot(g.cfg.Title)
	}
	g.scene.Update()
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

func (g *game) Layout(_, _ int) (int, int) {
	return g.cfg.Width, g.cfg.Height
}

// Run opens a window and drives scene until the window closes or the update
// func returns an error.
func Run(scene *Scene, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 960
	}
	if cfg.Height <= 0 {
		cfg.Height = 640
	}
	if cfg.Title == "" {
		cfg.Title = "grove"
	}
	scene.ShowStats = scene.ShowStats || cfg.ShowFPS
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(&game{scene: scene, cfg: cfg})
}
