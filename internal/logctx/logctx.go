// Package logctx carries the request-scoped logger.
package logctx

import (
	"context"
	"net/http"

	"go.uber.org/zap"
)

type ctxKey int8

const ctxKeyLogger ctxKey = iota

func With(ctx context.Context, l *zap.SugaredLogger) context.Context {
	return context.WithValue(ctx, ctxKeyLogger, l)
}

// From returns the logger stored in ctx, or a no-op logger.
func From(ctx context.Context) *zap.SugaredLogger {
	if l, ok := ctx.Value(ctxKeyLogger).(*zap.SugaredLogger); ok {
		return l
	}

	return zap.NewNop().Sugar()
}

// Middleware puts l on every request context.
func Middleware(l *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(With(r.Context(), l)))
		})
	}
}
