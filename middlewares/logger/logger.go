package logger

import (
	"time"

	"github.com/kildevaeld/rask/httpcontext"
	"github.com/kildevaeld/strong"
	"go.uber.org/zap"
)

func Logger() httpcontext.HandlerFunc {
	return LoggerWithZap(zap.L())
}

// LoggerWithZap logs the start of every request and, through a
// completion hook, its final status and latency.
func LoggerWithZap(log *zap.Logger) httpcontext.HandlerFunc {
	return func(ctx *httpcontext.Context) error {
		start := time.Now()

		req := ctx.Request()

		entry := log.With(zap.String("request", req.URL.String()),
			zap.String("method", req.Method),
			zap.String("remote", req.RemoteAddr))

		if reqID := req.Header.Get("X-Request-Id"); reqID != "" {
			entry = entry.With(zap.String("request_id", reqID))
		}

		entry.Info("started handling request")

		ctx.OnComplete(func() {
			latency := time.Since(start)

			status := ctx.StatusCode()
			if status == 0 {
				if ctx.Body() != nil {
					status = strong.StatusOK
				} else {
					status = strong.StatusNotFound
				}
			}

			entry.Info("completed handling request",
				zap.Int("status", status),
				zap.String("text_status", strong.StatusText(status)),
				zap.Duration("took", latency),
				zap.Int64("measure#rask.latency", latency.Nanoseconds()))
		})

		return nil
	}
}
