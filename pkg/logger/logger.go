// Package logger provides the structured, levelled logger used across Aurea,
// built on log/slog.
//
// WithCtx returns a logger pre-tagged with the request ID injected by the
// Logger middleware, so every line written from a handler is correlated:
//
//	log := logger.WithCtx(r.Context())
//	log.Info("produto criado", "product_id", p.ID)
//	// → time=... level=INFO msg="produto criado" request_id=a1b2c3d4 product_id=...
package logger

import (
	"context"
	"log/slog"
	"os"

	"github.com/aureajoias/aurea/config"
)

var (
	L           *slog.Logger
	baseHandler slog.Handler
)

func init() {
	switch config.AppEnv() {
	case "production", "prod":
		opts := &slog.HandlerOptions{Level: slog.LevelInfo}
		baseHandler = slog.NewJSONHandler(os.Stdout, opts) // structured JSON for log aggregators
	default:
		opts := &slog.HandlerOptions{Level: slog.LevelDebug}
		baseHandler = slog.NewTextHandler(os.Stdout, opts) // human-readable for dev
	}

	L = slog.New(baseHandler)
	slog.SetDefault(L)
}

// AttachSink fans log output out to an additional handler (the Mongo sink)
// alongside stdout. Call once during bootstrap, before request traffic.
func AttachSink(h slog.Handler) {
	baseHandler = NewMultiHandler(baseHandler, h)
	L = slog.New(baseHandler)
	slog.SetDefault(L)
}

// ctxKey is the unexported key under which a per-request logger is stored.
type ctxKey struct{}

// WithCtx returns the per-request *slog.Logger stored in ctx by the Logger
// middleware, or the base logger when none is present.
func WithCtx(ctx context.Context) *slog.Logger {
	if log, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && log != nil {
		return log
	}
	return L
}

// Inject stores a pre-tagged *slog.Logger into ctx. Called by the Logger
// middleware; application code rarely needs it directly.
func Inject(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}

// Debug logs at DEBUG level on the base logger.
func Debug(msg string, args ...any) { L.Debug(msg, args...) }

// Info logs at INFO level on the base logger.
func Info(msg string, args ...any) { L.Info(msg, args...) }

// Warn logs at WARN level on the base logger.
func Warn(msg string, args ...any) { L.Warn(msg, args...) }

// Error logs at ERROR level on the base logger.
func Error(msg string, args ...any) { L.Error(msg, args...) }
