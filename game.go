package garden

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// Game is the window host. It implements ebiten.Game: Update ticks the
// studio at FPS and Draw presents the scene above the control strip.
type Game struct {
	studio  *Studio
	strip   *ControlStrip
	frame   *ebiten.Image
	actions []Action

	quitWhenDone bool
}

// NewGame creates a window host around studio. The studio must already be
// initialized.
func NewGame(studio *Studio) *Game {
	return &Game{studio: studio, strip: NewControlStrip()}
}

// Studio returns the studio the game drives.
func (g *Game) Studio() *Studio { return g.studio }

// Update implements ebiten.Game.
func (g *Game) Update() error {
	if ebiten.IsWindowBeingClosed() {
		g.studio.Dispose()
		return ebiten.Termination
	}
	g.studio.SetHidden(ebiten.IsWindowMinimized())

	// Real input is ignored while synthetic clicks are queued.
	if g.studio.Controls.Pending() == 0 {
		g.actions = g.studio.Controls.readDevices(g.actions[:0])
		for _, a := range g.actions {
			g.studio.Apply(a)
		}
	}
	if err := g.studio.Tick(); err != nil {
		return err
	}
	g.strip.Update(1.0 / FPS)

	sc := g.studio.Script()
	if g.studio.Quitting() || (g.quitWhenDone && sc != nil && sc.Done() && g.studio.Capture.State() == StateIdle) {
		g.studio.Dispose()
		return ebiten.Termination
	}
	return nil
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	surface := g.studio.Session.Surface()
	w, h := surface.Size()
	if g.frame == nil {
		g.frame = ebiten.NewImage(w, h)
	}
	// The scene is opaque, so straight and premultiplied alpha agree.
	g.frame.WritePixels(surface.Pixels())

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(Width/float64(w), Height/float64(h))
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(g.frame, op)

	g.strip.Draw(screen, g.studio)
}

// Layout implements ebiten.Game. The logical screen is the scene plus the
// control strip regardless of window size.
func (g *Game) Layout(_, _ int) (int, int) {
	return Width, Height + StripHeight
}

// Run opens a window and plays the scene until the window is closed or Esc
// is pressed. Closing the window abandons any capture in progress. When
// script is non-nil it runs on the window's ticks and the window closes
// once it is done and the last recording is saved.
func Run(cfg Config, script *Script) error {
	surface := NewConfiguredSurface(cfg)
	defer surface.Close()

	studio := NewStudio(surface, nil, FFmpegOpener(cfg.FFmpegPath), FileDownloader{Dir: cfg.OutputDir})
	studio.SetScript(script)
	if err := studio.Init(); err != nil {
		return err
	}
	g := NewGame(studio)
	g.quitWhenDone = script != nil

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(Width, Height+StripHeight)
	ebiten.SetTPS(FPS)
	ebiten.SetWindowClosingHandled(true)
	ebiten.SetRunnableOnUnfocused(true)

	err := ebiten.RunGame(g)
	studio.Dispose()
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}
