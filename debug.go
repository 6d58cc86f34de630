package garden

import (
	"context"
	"log/slog"
	"time"
)

// frameStats holds per-frame timings. Only populated when the surface is in
// debug mode.
type frameStats struct {
	layers [len(layers)]time.Duration
	paint  time.Duration
	notify time.Duration
}

func (s frameStats) total() time.Duration {
	return s.paint + s.notify
}

// debugLog reports the timings at debug level. Slow frames, those that miss
// the capture cadence, are reported at warn level instead.
func (s *Surface) debugLog(t float64, stats frameStats) {
	if !s.debug {
		return
	}
	level := slog.LevelDebug
	if stats.total() > time.Second/FPS {
		level = slog.LevelWarn
	}
	attrs := make([]slog.Attr, 0, len(layers)+4)
	attrs = append(attrs,
		slog.Float64("t", t),
		slog.Duration("paint", stats.paint),
		slog.Duration("notify", stats.notify),
		slog.Int("observers", len(s.observers)),
	)
	for i, l := range layers {
		attrs = append(attrs, slog.Duration(l.name, stats.layers[i]))
	}
	Logger().LogAttrs(context.Background(), level, "frame", attrs...)
}
