package logging

import (
	"context"
	"log/slog"
	"sync/atomic"
)

type ctxKey struct{}

var fallback atomic.Pointer[slog.Logger]

func init() {
	fallback.Store(slog.Default())
}

// SetDefault installs logger as the process default, for slog's package
// functions too.
func SetDefault(logger *slog.Logger) {
	fallback.Store(logger)
	slog.SetDefault(logger)
}

func stored(ctx context.Context) (*slog.Logger, bool) {
	if ctx == nil {
		return nil, false
	}

	logger, ok := ctx.Value(ctxKey{}).(*slog.Logger)

	return logger, ok
}

// FromContext returns the request's logger, or the process default.
func FromContext(ctx context.Context) *slog.Logger {
	return FromContextOr(ctx, nil)
}

// FromContextOr returns the request's logger, or def when ctx carries none.
// Components pass their own logger as def so background work without a
// request still logs with component attrs.
func FromContextOr(ctx context.Context, def *slog.Logger) *slog.Logger {
	if logger, ok := stored(ctx); ok {
		return logger
	}

	if def != nil {
		return def
	}

	return fallback.Load()
}

func WithContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// With returns ctx carrying its logger extended by args.
func With(ctx context.Context, args ...any) context.Context {
	return WithContext(ctx, FromContext(ctx).With(args...))
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return With(ctx, slog.String("request_id", id))
}

func WithCorrelationID(ctx context.Context, id string) context.Context {
	return With(ctx, slog.String("correlation_id", id))
}

func WithTraceID(ctx context.Context, id string) context.Context {
	return With(ctx, slog.String("trace_id", id))
}

// WithUserID tags the signed-in user on every record logged for the request.
func WithUserID(ctx context.Context, id string) context.Context {
	return With(ctx, slog.String("user_id", id))
}
