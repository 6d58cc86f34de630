package garden

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"
)

// exportOpener opens an ffmpeg sink that applies backpressure instead of
// dropping frames, since offline rendering outruns the encoder.
func exportOpener(path string) SinkOpener {
	if path == "" {
		path = "ffmpeg"
	}
	return func(surface *Surface, fps int) (Sink, error) {
		s, err := OpenFFmpegSink(path, surface, fps)
		if err != nil {
			return nil, err
		}
		s.SetBlocking(true)
		return s, nil
	}
}

// Export renders seconds of animation on a fixed 1/FPS clock, records it
// from t=0 and saves the file into cfg.OutputDir. It returns the saved path.
func Export(ctx context.Context, cfg Config, seconds float64) (string, error) {
	surface := NewConfiguredSurface(cfg)
	defer surface.Close()
	return exportWith(ctx, surface, exportOpener(cfg.FFmpegPath), FileDownloader{Dir: cfg.OutputDir}, seconds)
}

func exportWith(ctx context.Context, surface *Surface, open SinkOpener, dl Downloader, seconds float64) (string, error) {
	if seconds <= 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return "", fmt.Errorf("export: duration must be positive, got %v", seconds)
	}
	clock := NewStepClock(time.Second / FPS)
	studio := NewStudio(surface, clock, open, dl)
	defer studio.Dispose()

	// Attach before Init so the frame at t=0 is captured.
	if err := studio.Record(); err != nil {
		return "", fmt.Errorf("export: %w", err)
	}
	if err := studio.Init(); err != nil {
		return "", fmt.Errorf("export: %w", err)
	}
	frames := int(math.Round(seconds * FPS))
	for i := 1; i < frames; i++ {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("export: %w", err)
		}
		clock.Advance()
		if err := studio.Tick(); err != nil {
			return "", fmt.Errorf("export: %w", err)
		}
	}
	Logger().Info("export rendered", "frames", frames, "seconds", seconds)
	return settle(ctx, studio)
}

// settle stops any capture and waits for the file to be saved.
func settle(ctx context.Context, studio *Studio) (string, error) {
	studio.Stop()
	if err := studio.Capture.Wait(ctx); err != nil {
		return "", fmt.Errorf("export: %w", err)
	}
	path := studio.Capture.LastPath()
	if err := studio.Capture.Err(); err != nil {
		return path, fmt.Errorf("export: %w", err)
	}
	if path == "" {
		return "", errors.New("export: no recording was produced")
	}
	return path, nil
}

// RunHeadless drives script on a fixed 1/FPS clock without any display and
// returns once it is done, a quit step ran or ctx ends. A capture still in
// progress is stopped and saved before returning.
func RunHeadless(ctx context.Context, cfg Config, script *Script) (string, error) {
	if script == nil {
		return "", errors.New("headless: a script is required")
	}
	surface := NewConfiguredSurface(cfg)
	defer surface.Close()
	return runScripted(ctx, surface, exportOpener(cfg.FFmpegPath), FileDownloader{Dir: cfg.OutputDir}, script)
}

func runScripted(ctx context.Context, surface *Surface, open SinkOpener, dl Downloader, script *Script) (string, error) {
	clock := NewStepClock(time.Second / FPS)
	studio := NewStudio(surface, clock, open, dl)
	defer studio.Dispose()
	studio.SetScript(script)

	if err := studio.Init(); err != nil {
		return "", fmt.Errorf("headless: %w", err)
	}
	for !script.Done() && !studio.Quitting() {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("headless: %w", err)
		}
		clock.Advance()
		if err := studio.Tick(); err != nil {
			return "", fmt.Errorf("headless: %w", err)
		}
	}
	if studio.Capture.State() == StateIdle {
		return studio.Capture.LastPath(), studio.Capture.Err()
	}
	return settle(ctx, studio)
}
