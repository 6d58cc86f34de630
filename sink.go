package garden

import "errors"

// ErrSinkFull reports a segment emitted while the sink's event buffer is
// full because nobody has polled it.
var ErrSinkFull = errors.New("garden: memory sink buffer full")

// MemorySink is an in-process Sink. It counts frames and forwards segments
// the caller emits, which makes it useful for embedding garden in programs
// that encode elsewhere and for exercising the controller.
type MemorySink struct {
	events   chan SinkEvent
	active   bool
	finished bool
	frames   int
	last     Frame

	// EncodeFrame, when set, turns each frame into a segment.
	EncodeFrame func(f Frame) []byte
	// CompleteOnFinalize makes Finalize deliver the completion event
	// immediately.
	CompleteOnFinalize bool
}

// NewMemorySink returns an active sink that buffers up to capacity segments
// between polls. One extra slot is kept for the completion event, so
// Complete never blocks the paint loop.
func NewMemorySink(capacity int) *MemorySink {
	return &MemorySink{events: make(chan SinkEvent, max(capacity, 0)+1), active: true}
}

// MemorySinkOpener returns a SinkOpener that always hands out sink.
func MemorySinkOpener(sink *MemorySink) SinkOpener {
	return func(*Surface, int) (Sink, error) { return sink, nil }
}

// OnFrame implements FrameObserver.
func (m *MemorySink) OnFrame(f Frame) {
	if !m.active {
		return
	}
	m.frames++
	m.last = f
	if m.EncodeFrame != nil {
		if err := m.Emit(m.EncodeFrame(f)); err != nil {
			Logger().Warn("memory sink dropped a segment", "frame", f.Index, "err", err)
		}
	}
}

// Frames returns how many frames the sink received.
func (m *MemorySink) Frames() int { return m.frames }

// Emit delivers a segment. Segments may still be emitted after Finalize
// until Complete is called, the way encoders flush their tail. Emit never
// blocks: it returns ErrSinkFull when the buffer has no room.
func (m *MemorySink) Emit(b []byte) error {
	if m.finished {
		return ErrSinkClosed
	}
	if len(m.events) >= cap(m.events)-1 {
		return ErrSinkFull
	}
	m.events <- SinkEvent{Segment: b}
	return nil
}

// Complete delivers the completion event.
func (m *MemorySink) Complete(err error) {
	if m.finished {
		return
	}
	m.finished = true
	m.active = false
	m.events <- SinkEvent{Done: true, Err: err}
}

// Events implements Sink.
func (m *MemorySink) Events() <-chan SinkEvent { return m.events }

// Finalize implements Sink. Unless CompleteOnFinalize is set, the stream is
// not complete until Complete is called.
func (m *MemorySink) Finalize() {
	m.active = false
	if m.CompleteOnFinalize {
		m.Complete(nil)
	}
}

// Abort implements Sink.
func (m *MemorySink) Abort() {
	m.active = false
	m.finished = true
}

// Active implements Sink.
func (m *MemorySink) Active() bool { return m.active }
