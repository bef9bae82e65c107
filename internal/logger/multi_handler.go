package logger

import (
	"context"
	"errors"
	"log/slog"
)

// multiHandler duplicates each record to every sink. It exists for the one
// two-sink setup this service runs: the stdout JSON handler plus the
// Better Stack shipper. Records are cloned per sink since slog handlers
// may retain them.
type multiHandler struct {
	sinks []slog.Handler
}

func newMultiHandler(sinks ...slog.Handler) *multiHandler {
	return &multiHandler{sinks: sinks}
}

// Enabled reports whether at least one sink accepts the level, so a
// debug-level Better Stack sink still receives records the stdout handler
// filters out, and vice versa.
func (h *multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, sink := range h.sinks {
		if sink.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

// Handle delivers the record to every sink that accepts its level. One
// failing sink never blocks the others; errors are joined afterwards.
func (h *multiHandler) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, sink := range h.sinks {
		if !sink.Enabled(ctx, r.Level) {
			continue
		}
		if err := sink.Handle(ctx, r.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (h *multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return h.apply(func(sink slog.Handler) slog.Handler { return sink.WithAttrs(attrs) })
}

func (h *multiHandler) WithGroup(name string) slog.Handler {
	return h.apply(func(sink slog.Handler) slog.Handler { return sink.WithGroup(name) })
}

func (h *multiHandler) apply(wrap func(slog.Handler) slog.Handler) slog.Handler {
	next := make([]slog.Handler, len(h.sinks))
	for i, sink := range h.sinks {
		next[i] = wrap(sink)
	}
	return &multiHandler{sinks: next}
}
