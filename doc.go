// Package garden renders the monkey garden, a looping 960×540 vector scene
// of a banana jungle with a swinging monkey, and records it to a VP9 WebM
// file.
//
// # Quick start
//
// The simplest way to get started is [Run], which opens a window with a
// record button under the scene:
//
//	cfg, err := garden.LoadConfig("garden.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := garden.Run(cfg, nil); err != nil {
//		log.Fatal(err)
//	}
//
// For an offline render, [Export] paints on a fixed 1/30 s clock and returns
// the saved file:
//
//	path, err := garden.Export(ctx, cfg, 12)
//
// # Scene
//
// [RenderScene] paints every layer for an elapsed time t onto any [Canvas];
// a *gg.Context satisfies it. Layers are pure functions of t, so painting
// the same t twice gives identical pixels. [Surface] owns the raster target
// at a chosen pixel density and hands each painted [Frame] to attached
// [FrameObserver]s. [AnimationSession] measures elapsed time from a [Clock].
//
// # Recording
//
// [CaptureController] moves between idle, recording and processing. Start
// attaches a [Sink] to the surface; Stop finalizes it; encoded segments
// arrive through the sink's events, which [CaptureController.Poll] drains
// on the paint loop. When the sink completes, the segments are joined in
// arrival order and handed to a [Downloader] under [Filename].
// [FFmpegSink] encodes with an ffmpeg subprocess; [MemorySink] keeps
// everything in process.
//
// [Studio] ties a session, a controller and the [Controls] together and is
// what every host ticks. A [Script] can drive a studio unattended.
//
// Logging goes through [log/slog] and is silent until [SetLogger] is called.
package garden
