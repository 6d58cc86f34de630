//go:build linux

package fbhost

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	fb "github.com/gonutz/framebuffer"
	"github.com/phanxgames/garden"
)

// Run plays the scene on cfg.FramebufferDevice until ctx is done, a quit is
// requested or script finishes with no recording in progress. Cancelling ctx
// abandons a capture in progress without saving it.
func Run(ctx context.Context, cfg garden.Config, script *garden.Script) error {
	dev, err := fb.Open(cfg.FramebufferDevice)
	if err != nil {
		return fmt.Errorf("open framebuffer %s: %w", cfg.FramebufferDevice, err)
	}
	defer dev.Close()
	bounds := dev.Bounds()
	garden.Logger().Info("framebuffer open", "device", cfg.FramebufferDevice, "size", fmt.Sprintf("%dx%d", bounds.Dx(), bounds.Dy()))

	restore := graphicsMode()
	defer restore()

	surface := garden.NewConfiguredSurface(cfg)
	defer surface.Close()
	studio := garden.NewStudio(surface, nil, garden.FFmpegOpener(cfg.FFmpegPath), garden.FileDownloader{Dir: cfg.OutputDir})
	defer studio.Dispose()
	studio.SetScript(script)
	if err := studio.Init(); err != nil {
		return err
	}

	w, h := surface.Size()
	comp := NewCompositor(w, h, surface.Density(), newStatusFace(14*surface.Density()))

	toggle := make(chan os.Signal, 1)
	signal.Notify(toggle, syscall.SIGUSR1)
	defer signal.Stop(toggle)

	ticker := time.NewTicker(time.Second / garden.FPS)
	defer ticker.Stop()
	lastLog := time.Now()
	for {
		select {
		case <-ctx.Done():
			garden.Logger().Info("framebuffer host stopping", "err", ctx.Err())
			return nil
		case <-toggle:
			studio.Apply(garden.ActionToggle)
		case <-ticker.C:
			if err := studio.Tick(); err != nil {
				return err
			}
			state := studio.Capture.State()
			blit(dev, comp.Compose(surface.Pixels(), studio.Status(), state == garden.StateRecording))
			if time.Since(lastLog) > 5*time.Second {
				garden.Logger().Debug("heartbeat", "t", studio.Session.Elapsed(), "state", state)
				lastLog = time.Now()
			}
			if studio.Quitting() || (script != nil && script.Done() && state == garden.StateIdle) {
				return nil
			}
		}
	}
}
