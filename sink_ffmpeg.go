package garden

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"sync"
	"sync/atomic"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

const (
	// ffmpegQueue is how many frames may wait for the encoder before new
	// frames are dropped.
	ffmpegQueue = 8
	// ffmpegReadSize is the stdout read size; each read becomes a segment.
	ffmpegReadSize = 64 << 10
)

// FFmpegSink pipes raw RGBA frames into an ffmpeg process and streams the
// VP9 WebM it writes back as segments. Frames are written by a helper
// goroutine; OnFrame never blocks and drops frames while the queue is full.
type FFmpegSink struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stdout io.ReadCloser
	stderr io.ReadCloser

	frames chan []byte
	events chan SinkEvent
	quit   chan struct{}

	active    atomic.Bool
	blocking  atomic.Bool
	dropped   atomic.Int64
	written   atomic.Int64
	frameSize int

	closeFrames sync.Once
	closeQuit   sync.Once
	bufs        sync.Pool
}

// FFmpegArgs returns the encoder arguments for a w×h stream at fps: raw
// RGBA frames on stdin, VP9 WebM on stdout.
func FFmpegArgs(w, h, fps int) []string {
	stream := ffmpeg.Input("pipe:0", ffmpeg.KwArgs{
		"format":  "rawvideo",
		"pix_fmt": "rgba",
		"s":       strconv.Itoa(w) + "x" + strconv.Itoa(h),
		"r":       strconv.Itoa(fps),
	}).Output("pipe:1", ffmpeg.KwArgs{
		"format":   "webm",
		"c:v":      "libvpx-vp9",
		"deadline": "realtime",
		"cpu-used": "8",
		"row-mt":   "1",
		"b:v":      "0",
		"crf":      "32",
		"pix_fmt":  "yuv420p",
	})
	// Global options go first; ffmpeg ignores trailing ones.
	return append([]string{"-hide_banner", "-loglevel", "error"}, stream.GetArgs()...)
}

// FFmpegOpener returns a SinkOpener that runs the ffmpeg binary at path.
// An empty path looks up "ffmpeg" on PATH.
func FFmpegOpener(path string) SinkOpener {
	if path == "" {
		path = "ffmpeg"
	}
	return func(surface *Surface, fps int) (Sink, error) {
		return OpenFFmpegSink(path, surface, fps)
	}
}

// OpenFFmpegSink starts the encoder for surface. A missing binary or a
// failed launch is reported as ErrSinkUnavailable.
func OpenFFmpegSink(path string, surface *Surface, fps int) (*FFmpegSink, error) {
	bin, err := exec.LookPath(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSinkUnavailable, err)
	}
	w, h := surface.Size()
	cmd := exec.Command(bin, FFmpegArgs(w, h, fps)...)

	s := &FFmpegSink{
		cmd:       cmd,
		frames:    make(chan []byte, ffmpegQueue),
		events:    make(chan SinkEvent, 16),
		quit:      make(chan struct{}),
		frameSize: w * h * 4,
	}
	s.bufs.New = func() any { return make([]byte, s.frameSize) }

	if s.stdin, err = cmd.StdinPipe(); err != nil {
		return nil, fmt.Errorf("%w: stdin: %w", ErrSinkUnavailable, err)
	}
	if s.stdout, err = cmd.StdoutPipe(); err != nil {
		return nil, fmt.Errorf("%w: stdout: %w", ErrSinkUnavailable, err)
	}
	if s.stderr, err = cmd.StderrPipe(); err != nil {
		return nil, fmt.Errorf("%w: stderr: %w", ErrSinkUnavailable, err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("%w: start %s: %w", ErrSinkUnavailable, bin, err)
	}
	s.active.Store(true)
	Logger().Info("encoder started", "bin", bin, "type", MimeType, "size", strconv.Itoa(w)+"x"+strconv.Itoa(h), "fps", fps)

	// The writer runs until Finalize or Abort closes the queue; the process
	// may exit before that, so completion only waits on the readers.
	go s.writeFrames()
	var wg sync.WaitGroup
	wg.Add(2)
	go func() { defer wg.Done(); s.readSegments() }()
	go func() { defer wg.Done(); s.logStderr() }()
	go func() {
		wg.Wait()
		err := cmd.Wait()
		s.active.Store(false)
		s.finish(err)
	}()
	return s, nil
}

// OnFrame implements FrameObserver.
func (s *FFmpegSink) OnFrame(f Frame) {
	if !s.active.Load() || len(f.Pix) != s.frameSize {
		return
	}
	buf := s.bufs.Get().([]byte)
	copy(buf, f.Pix)
	if s.blocking.Load() {
		select {
		case s.frames <- buf:
		case <-s.quit:
			s.bufs.Put(buf)
		}
		return
	}
	select {
	case s.frames <- buf:
	default:
		s.bufs.Put(buf)
		if n := s.dropped.Add(1); n == 1 || n%FPS == 0 {
			Logger().Warn("encoder behind, dropping frames", "dropped", n)
		}
	}
}

// Events implements Sink.
func (s *FFmpegSink) Events() <-chan SinkEvent { return s.events }

// Active implements Sink.
func (s *FFmpegSink) Active() bool { return s.active.Load() }

// SetBlocking makes OnFrame wait for room in the queue instead of dropping
// frames. Offline renders that outpace the encoder use it.
func (s *FFmpegSink) SetBlocking(block bool) { s.blocking.Store(block) }

// Dropped returns how many frames were dropped because the encoder fell
// behind.
func (s *FFmpegSink) Dropped() int64 { return s.dropped.Load() }

// Finalize closes the frame queue. The encoder drains it, flushes and exits,
// which ends the segment stream.
func (s *FFmpegSink) Finalize() {
	s.active.Store(false)
	s.closeFrames.Do(func() { close(s.frames) })
}

// Abort kills the encoder. No completion event is guaranteed afterwards,
// but the events channel is still closed once the process has been reaped.
func (s *FFmpegSink) Abort() {
	s.active.Store(false)
	s.closeQuit.Do(func() { close(s.quit) })
	s.closeFrames.Do(func() { close(s.frames) })
	if s.cmd.Process != nil {
		_ = s.cmd.Process.Kill()
	}
}

func (s *FFmpegSink) writeFrames() {
	defer s.stdin.Close()
	broken := false
	for buf := range s.frames {
		if !broken {
			if _, err := s.stdin.Write(buf); err != nil {
				broken = true
				Logger().Warn("encoder stdin closed", "err", err)
			} else {
				s.written.Add(1)
			}
		}
		s.bufs.Put(buf)
	}
}

func (s *FFmpegSink) readSegments() {
	for {
		buf := make([]byte, ffmpegReadSize)
		n, err := s.stdout.Read(buf)
		if n > 0 {
			Logger().Debug("segment", "bytes", n)
			if !s.send(SinkEvent{Segment: buf[:n]}) {
				return
			}
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				Logger().Warn("encoder stdout", "err", err)
			}
			return
		}
	}
}

func (s *FFmpegSink) logStderr() {
	sc := bufio.NewScanner(s.stderr)
	for sc.Scan() {
		Logger().Warn("ffmpeg", "line", sc.Text())
	}
}

func (s *FFmpegSink) finish(waitErr error) {
	if waitErr != nil {
		waitErr = fmt.Errorf("encoder exit: %w", waitErr)
	}
	Logger().Info("encoder finished", "frames", s.written.Load(), "dropped", s.dropped.Load(), "err", waitErr)
	s.send(SinkEvent{Done: true, Err: waitErr})
	close(s.events)
}

// send delivers ev unless the sink was aborted.
func (s *FFmpegSink) send(ev SinkEvent) bool {
	select {
	case s.events <- ev:
		return true
	case <-s.quit:
		return false
	}
}
