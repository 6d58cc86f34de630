package garden

import (
	"fmt"
	"image"
	"math"
	"time"

	"github.com/gogpu/gg"
)

// Frame is one painted frame handed to observers. Pix holds straight RGBA
// rows of Width×Height pixels and is owned by the surface: it is only valid
// until the next paint, so observers that keep it must copy it.
type Frame struct {
	Pix    []byte
	Width  int
	Height int
	T      float64
	Index  uint64
}

// FrameObserver receives every frame painted on a surface it is attached to.
// OnFrame runs on the paint loop and must not block.
type FrameObserver interface {
	OnFrame(f Frame)
}

// Surface is the raster target the scene is painted on. Its device size is
// the logical 960×540 scaled by the pixel density.
type Surface struct {
	density   float64
	pixmap    *gg.Pixmap
	ctx       *gg.Context
	observers []FrameObserver
	frames    uint64
	debug     bool

	// ScreenshotDir is where Snapshot writes PNG files. Defaults to
	// "screenshots".
	ScreenshotDir   string
	screenshotQueue []string
}

// NewSurface allocates a surface for the given pixel density. Densities
// below or equal to zero are treated as 1.
func NewSurface(density float64) *Surface {
	if density <= 0 || math.IsNaN(density) || math.IsInf(density, 0) {
		density = 1
	}
	w := int(math.Round(Width * density))
	h := int(math.Round(Height * density))
	pm := gg.NewPixmap(w, h)
	return &Surface{
		density:       density,
		pixmap:        pm,
		ctx:           gg.NewContext(w, h, gg.WithPixmap(pm)),
		ScreenshotDir: "screenshots",
	}
}

// Density returns the pixel density the surface was created with.
func (s *Surface) Density() float64 { return s.density }

// Size returns the device size in pixels.
func (s *Surface) Size() (w, h int) {
	return s.pixmap.Width(), s.pixmap.Height()
}

// Pixels returns the current frame as straight RGBA bytes. The slice is
// reused by the next paint.
func (s *Surface) Pixels() []byte { return s.pixmap.Data() }

// Image returns a copy of the current frame.
func (s *Surface) Image() *image.RGBA { return s.pixmap.ToImage() }

// Frames returns how many frames have been painted.
func (s *Surface) Frames() uint64 { return s.frames }

// SetDebugMode enables per-frame timing logs.
func (s *Surface) SetDebugMode(enabled bool) { s.debug = enabled }

// Attach registers o to receive every subsequent frame. Attaching an
// observer twice has no effect.
func (s *Surface) Attach(o FrameObserver) {
	for _, existing := range s.observers {
		if existing == o {
			return
		}
	}
	s.observers = append(s.observers, o)
}

// Detach stops delivering frames to o.
func (s *Surface) Detach(o FrameObserver) {
	for i, existing := range s.observers {
		if existing == o {
			s.observers = append(s.observers[:i], s.observers[i+1:]...)
			return
		}
	}
}

// Paint fully repaints the surface for elapsed time t and hands the frame to
// every attached observer.
func (s *Surface) Paint(t float64) error {
	var stats frameStats
	start := time.Now()

	s.ctx.Identity()
	s.ctx.Clear()
	s.ctx.Scale(s.density, s.density)

	var err error
	if s.debug {
		err = renderTimed(s.ctx, t, &stats)
	} else {
		err = RenderScene(s.ctx, t)
	}
	if err != nil {
		return err
	}
	stats.paint = time.Since(start)

	s.frames++
	notifyStart := time.Now()
	w, h := s.Size()
	f := Frame{Pix: s.pixmap.Data(), Width: w, Height: h, T: t, Index: s.frames}
	for _, o := range s.observers {
		o.OnFrame(f)
	}
	stats.notify = time.Since(notifyStart)

	s.flushScreenshots()
	s.debugLog(t, stats)
	return nil
}

// Close releases the drawing context.
func (s *Surface) Close() error {
	if err := s.ctx.Close(); err != nil {
		return fmt.Errorf("close surface: %w", err)
	}
	return nil
}

// AnimationSession owns the animation clock and drives a surface. Elapsed
// time is measured from Init and only changes in Tick.
type AnimationSession struct {
	surface  *Surface
	clock    Clock
	origin   time.Time
	elapsed  float64
	running  bool
	disposed bool
}

// NewAnimationSession creates a session painting onto surface. A nil clock
// selects the system clock.
func NewAnimationSession(surface *Surface, clock Clock) *AnimationSession {
	if clock == nil {
		clock = RealClock{}
	}
	return &AnimationSession{surface: surface, clock: clock}
}

// Init resets the clock to zero and paints the first frame.
func (a *AnimationSession) Init() error {
	if a.disposed {
		return nil
	}
	a.origin = a.clock.Now()
	a.elapsed = 0
	a.running = true
	return a.surface.Paint(0)
}

// Tick reads the clock and paints the frame for the new elapsed time. It
// does nothing before Init or after Dispose.
func (a *AnimationSession) Tick() error {
	if !a.running {
		return nil
	}
	a.elapsed = a.clock.Now().Sub(a.origin).Seconds()
	return a.surface.Paint(a.elapsed)
}

// Elapsed returns seconds since Init as of the last tick.
func (a *AnimationSession) Elapsed() float64 { return a.elapsed }

// Surface returns the surface the session paints on.
func (a *AnimationSession) Surface() *Surface { return a.surface }

// Running reports whether the session is between Init and Dispose.
func (a *AnimationSession) Running() bool { return a.running }

// Dispose stops the session. No frames are painted afterwards.
func (a *AnimationSession) Dispose() {
	a.running = false
	a.disposed = true
}
