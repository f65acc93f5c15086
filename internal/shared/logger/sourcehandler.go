package logger

import (
	"context"
	"log/slog"
	"runtime"
)

// sourceHandler attaches the caller location to records at or above minLevel.
// The wrapped handler must be built with AddSource: false.
//
// The location is taken from the record's PC and always lands at the top
// level, even after WithGroup, so root keeps the handler without groups and
// steps replays the WithAttrs/WithGroup calls on top of it.
type sourceHandler struct {
	root     slog.Handler
	handler  slog.Handler
	steps    []func(slog.Handler) slog.Handler
	grouped  bool
	minLevel slog.Level
}

// NewSourceHandler wraps handler so that only records with level >= minLevel
// carry a source attribute. Info chatter stays compact while warnings and
// errors point at the call site.
func NewSourceHandler(handler slog.Handler, minLevel slog.Level) slog.Handler {
	return &sourceHandler{root: handler, handler: handler, minLevel: minLevel}
}

func (h *sourceHandler) Handle(ctx context.Context, r slog.Record) error {
	if r.Level < h.minLevel || r.PC == 0 {
		return h.handler.Handle(ctx, r)
	}

	src := slog.Any(slog.SourceKey, recordSource(r.PC))
	if !h.grouped {
		r.AddAttrs(src)
		return h.handler.Handle(ctx, r)
	}

	target := h.root.WithAttrs([]slog.Attr{src})
	for _, step := range h.steps {
		target = step(target)
	}
	return target.Handle(ctx, r)
}

func recordSource(pc uintptr) *slog.Source {
	f, _ := runtime.CallersFrames([]uintptr{pc}).Next()
	return &slog.Source{Function: f.Function, File: f.File, Line: f.Line}
}

func (h *sourceHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	return h.extend(h.handler.WithAttrs(attrs), false, func(next slog.Handler) slog.Handler {
		return next.WithAttrs(attrs)
	})
}

func (h *sourceHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return h.extend(h.handler.WithGroup(name), true, func(next slog.Handler) slog.Handler {
		return next.WithGroup(name)
	})
}

func (h *sourceHandler) extend(handler slog.Handler, group bool, step func(slog.Handler) slog.Handler) *sourceHandler {
	steps := make([]func(slog.Handler) slog.Handler, len(h.steps), len(h.steps)+1)
	copy(steps, h.steps)
	return &sourceHandler{
		root:     h.root,
		handler:  handler,
		steps:    append(steps, step),
		grouped:  h.grouped || group,
		minLevel: h.minLevel,
	}
}

func (h *sourceHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}
