package garden

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/looplab/fsm"
)

// RecordingState is the capture controller's lifecycle state.
type RecordingState uint8

const (
	StateIdle       RecordingState = iota // no capture in progress
	StateRecording                        // frames flow to the sink
	StateProcessing                       // sink is finalizing, awaiting completion
)

func (s RecordingState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRecording:
		return "recording"
	case StateProcessing:
		return "processing"
	}
	return fmt.Sprintf("RecordingState(%d)", uint8(s))
}

func parseRecordingState(name string) RecordingState {
	switch name {
	case "recording":
		return StateRecording
	case "processing":
		return StateProcessing
	}
	return StateIdle
}

// Controller events.
const (
	eventStart    = "start"
	eventStop     = "stop"
	eventFinalize = "finalize"
	eventDispose  = "dispose"
)

var captureEvents = fsm.Events{
	{Name: eventStart, Src: []string{"idle"}, Dst: "recording"},
	{Name: eventStop, Src: []string{"recording"}, Dst: "processing"},
	{Name: eventFinalize, Src: []string{"recording", "processing"}, Dst: "idle"},
	{Name: eventDispose, Src: []string{"idle", "recording", "processing"}, Dst: "idle"},
}

var (
	// ErrSinkUnavailable is returned by Start when no encoder can be opened
	// for the surface.
	ErrSinkUnavailable = errors.New("garden: video sink unavailable")
	// ErrSinkClosed reports a frame or segment offered to a finished sink.
	ErrSinkClosed = errors.New("garden: video sink closed")
)

// SinkEvent is delivered on a sink's event channel. Segment events carry
// encoded bytes in stream order; exactly one event with Done set ends the
// stream, optionally carrying the encoder's exit error.
type SinkEvent struct {
	Segment []byte
	Done    bool
	Err     error
}

// Sink consumes painted frames and produces an encoded stream.
type Sink interface {
	FrameObserver
	// Events delivers segments and then a single completion event.
	Events() <-chan SinkEvent
	// Finalize asks the encoder to flush and complete. Idempotent.
	Finalize()
	// Abort stops the encoder without completing the stream. Idempotent.
	Abort()
	// Active reports whether the sink still accepts frames.
	Active() bool
}

// SinkOpener starts a sink that encodes frames of surface at fps.
type SinkOpener func(surface *Surface, fps int) (Sink, error)

// Downloader hands the assembled recording to the user.
type Downloader interface {
	Download(name string, data []byte) (string, error)
}

// CaptureController records a live surface into a single video file. All
// methods must be called from the loop that paints the surface; sink events
// are consumed by Poll on that same loop.
type CaptureController struct {
	open       SinkOpener
	downloader Downloader

	machine  *fsm.FSM
	chunks   [][]byte
	sink     Sink
	surface  *Surface
	lastErr  error
	lastPath string
	disposed bool

	onChange []func(prev, next RecordingState)
}

// NewCaptureController returns an idle controller.
func NewCaptureController(open SinkOpener, downloader Downloader) *CaptureController {
	c := &CaptureController{open: open, downloader: downloader}
	c.machine = fsm.NewFSM(StateIdle.String(), captureEvents, fsm.Callbacks{
		"enter_state": func(_ context.Context, e *fsm.Event) {
			prev, next := parseRecordingState(e.Src), parseRecordingState(e.Dst)
			Logger().Info("recording state", "event", e.Event, "from", prev, "to", next)
			for _, fn := range c.onChange {
				fn(prev, next)
			}
		},
	})
	return c
}

// State returns the current state.
func (c *CaptureController) State() RecordingState {
	return parseRecordingState(c.machine.Current())
}

// Err returns the most recent user-visible error, or nil.
func (c *CaptureController) Err() error { return c.lastErr }

// LastPath returns where the last recording was saved.
func (c *CaptureController) LastPath() string { return c.lastPath }

// Buffered returns the number of segments and bytes held for assembly.
func (c *CaptureController) Buffered() (segments, size int) {
	for _, b := range c.chunks {
		size += len(b)
	}
	return len(c.chunks), size
}

// OnStateChange registers fn to run after every state transition.
func (c *CaptureController) OnStateChange(fn func(prev, next RecordingState)) {
	c.onChange = append(c.onChange, fn)
}

// fire runs a transition. Events that leave the state unchanged are not
// reported.
func (c *CaptureController) fire(event string) {
	err := c.machine.Event(context.Background(), event)
	var same fsm.NoTransitionError
	if err != nil && !errors.As(err, &same) {
		Logger().Error("recording state", "event", event, "err", err)
	}
}

// Start begins capturing surface. It does nothing unless the controller is
// idle, and silently does nothing when surface is nil. If no sink can be
// opened the state stays idle and an error wrapping ErrSinkUnavailable is
// returned.
func (c *CaptureController) Start(surface *Surface) error {
	if c.disposed || c.machine.Cannot(eventStart) {
		return nil
	}
	if surface == nil {
		Logger().Debug("record requested without a surface")
		return nil
	}
	if c.open == nil {
		return c.fail(fmt.Errorf("start recording: %w", ErrSinkUnavailable))
	}
	sink, err := c.open(surface, FPS)
	if err != nil {
		if !errors.Is(err, ErrSinkUnavailable) {
			err = fmt.Errorf("%w: %w", ErrSinkUnavailable, err)
		}
		return c.fail(fmt.Errorf("start recording: %w", err))
	}

	c.lastErr = nil
	c.chunks = nil
	c.sink = sink
	c.surface = surface
	surface.Attach(sink)
	c.fire(eventStart)
	return nil
}

func (c *CaptureController) fail(err error) error {
	c.lastErr = err
	Logger().Error("recording unavailable", "err", err)
	return err
}

// Stop ends frame capture and asks the sink to finalize. It only acts while
// recording with an active sink; the state moves to processing until the
// sink's completion event arrives through Poll.
func (c *CaptureController) Stop() {
	if c.machine.Cannot(eventStop) || c.sink == nil || !c.sink.Active() {
		return
	}
	c.fire(eventStop)
	c.surface.Detach(c.sink)
	c.sink.Finalize()
}

// Toggle starts from idle and stops while recording.
func (c *CaptureController) Toggle(surface *Surface) error {
	switch c.State() {
	case StateIdle:
		return c.Start(surface)
	case StateRecording:
		c.Stop()
	}
	return nil
}

// PushSegment appends an encoded segment. Empty segments are ignored, as
// are segments arriving when no capture is in progress.
func (c *CaptureController) PushSegment(b []byte) {
	if len(b) == 0 || c.State() == StateIdle {
		return
	}
	c.chunks = append(c.chunks, bytes.Clone(b))
}

// Finalize assembles the buffered segments in arrival order, hands the file
// to the downloader and returns to idle. The state is idle afterwards even
// if the download fails. Called while still recording, it aborts the sink
// and delivers only the segments already received.
func (c *CaptureController) Finalize() error {
	if c.machine.Cannot(eventFinalize) {
		return nil
	}
	if c.State() == StateRecording && c.sink != nil {
		if c.surface != nil {
			c.surface.Detach(c.sink)
		}
		c.sink.Abort()
	}

	data := bytes.Join(c.chunks, nil)
	c.chunks = nil
	c.sink = nil
	c.surface = nil

	var err error
	if c.downloader != nil {
		var path string
		path, err = c.downloader.Download(Filename, data)
		if err != nil {
			err = fmt.Errorf("save recording: %w", err)
			c.lastErr = err
			Logger().Error("recording not saved", "err", err)
		} else {
			c.lastPath = path
			Logger().Info("recording saved", "path", path, "type", MimeType, "bytes", len(data))
		}
	}
	c.fire(eventFinalize)
	return err
}

// Poll drains pending sink events without blocking: segments are buffered
// and the completion event finalizes the recording.
func (c *CaptureController) Poll() error {
	for c.sink != nil {
		select {
		case ev, ok := <-c.sink.Events():
			if done, err := c.handle(ev, ok); done {
				return err
			}
		default:
			return nil
		}
	}
	return nil
}

// Wait blocks until the sink completes and the recording is finalized, or
// until ctx is done. Use it after Stop when no loop is left to call Poll.
func (c *CaptureController) Wait(ctx context.Context) error {
	for c.sink != nil {
		select {
		case ev, ok := <-c.sink.Events():
			if done, err := c.handle(ev, ok); done {
				return err
			}
		case <-ctx.Done():
			return fmt.Errorf("wait for encoder: %w", ctx.Err())
		}
	}
	return nil
}

func (c *CaptureController) handle(ev SinkEvent, ok bool) (done bool, err error) {
	if !ok {
		return true, c.Finalize()
	}
	if ev.Err != nil {
		c.lastErr = ev.Err
		Logger().Warn("encoder reported an error", "err", ev.Err)
	}
	c.PushSegment(ev.Segment)
	if ev.Done {
		return true, c.Finalize()
	}
	return false, nil
}

// SetHidden reports whether the presentation is hidden. Hiding while
// recording stops the capture so the file still gets delivered.
func (c *CaptureController) SetHidden(hidden bool) {
	if hidden && c.State() == StateRecording {
		Logger().Info("presentation hidden, stopping recording")
		c.Stop()
	}
}

// Dispose tears the controller down. An active capture is aborted without
// producing a download, and later calls to Start do nothing.
func (c *CaptureController) Dispose() {
	if c.sink != nil {
		if c.surface != nil {
			c.surface.Detach(c.sink)
		}
		c.sink.Abort()
	}
	c.sink = nil
	c.surface = nil
	c.chunks = nil
	c.disposed = true
	c.fire(eventDispose)
}
