package garden

import "fmt"

// Studio ties an animation session to a capture controller and the user
// controls. Every host (window, framebuffer, headless) drives one Studio by
// calling Tick once per frame on its loop.
type Studio struct {
	Session  *AnimationSession
	Capture  *CaptureController
	Controls *Controls
	Readout  Readout

	script *Script
	hidden bool
	quit   bool
}

// NewStudio creates a studio painting onto surface with the given clock,
// sink opener and downloader.
func NewStudio(surface *Surface, clock Clock, open SinkOpener, dl Downloader) *Studio {
	return &Studio{
		Session:  NewAnimationSession(surface, clock),
		Capture:  NewCaptureController(open, dl),
		Controls: NewControls(),
	}
}

// NewConfiguredSurface allocates a surface with cfg's density, debug mode
// and screenshot directory.
func NewConfiguredSurface(cfg Config) *Surface {
	s := NewSurface(cfg.PixelDensity)
	s.SetDebugMode(cfg.Debug)
	if cfg.ScreenshotDir != "" {
		s.ScreenshotDir = cfg.ScreenshotDir
	}
	return s
}

// SetScript attaches a script that runs one step per tick. Pass nil to
// detach.
func (s *Studio) SetScript(sc *Script) { s.script = sc }

// Script returns the attached script, or nil.
func (s *Studio) Script() *Script { return s.script }

// Init starts the clock and paints the first frame.
func (s *Studio) Init() error {
	s.Readout.Reset()
	if err := s.Session.Init(); err != nil {
		return fmt.Errorf("init: %w", err)
	}
	return nil
}

// Tick paints the next frame, delivers encoder output to the controller,
// refreshes the readout and runs the script and queued input.
func (s *Studio) Tick() error {
	if err := s.Session.Tick(); err != nil {
		return fmt.Errorf("paint: %w", err)
	}
	// Poll errors are kept in Capture.Err for the status line.
	_ = s.Capture.Poll()
	s.Readout.Update(s.Session.Elapsed())

	if s.script != nil {
		s.script.step(s)
	}
	if a, ok := s.Controls.processInjected(); ok {
		s.Apply(a)
	}
	s.Controls.Disabled = !ButtonEnabled(s.Capture.State())
	return nil
}

// Apply performs a decoded user action.
func (s *Studio) Apply(a Action) {
	switch a {
	case ActionToggle:
		_ = s.Toggle()
	case ActionSnapshot:
		s.Snapshot("snapshot")
	case ActionQuit:
		s.quit = true
	}
}

// Record starts a capture of the session's surface.
func (s *Studio) Record() error { return s.Capture.Start(s.Session.Surface()) }

// Stop ends the current capture.
func (s *Studio) Stop() { s.Capture.Stop() }

// Toggle starts or stops recording depending on the state.
func (s *Studio) Toggle() error { return s.Capture.Toggle(s.Session.Surface()) }

// Snapshot queues a PNG of the next frame.
func (s *Studio) Snapshot(label string) { s.Session.Surface().Snapshot(label) }

// SetHidden records presentation visibility. Becoming hidden while recording
// stops the capture.
func (s *Studio) SetHidden(hidden bool) {
	if hidden == s.hidden {
		return
	}
	s.hidden = hidden
	Logger().Debug("visibility changed", "hidden", hidden)
	s.Capture.SetHidden(hidden)
}

// Hidden reports the last visibility passed to SetHidden.
func (s *Studio) Hidden() bool { return s.hidden }

// Quitting reports whether a quit was requested by input or script.
func (s *Studio) Quitting() bool { return s.quit }

// Dispose aborts any capture and stops the session.
func (s *Studio) Dispose() {
	s.Capture.Dispose()
	s.Session.Dispose()
}
