package toast

import (
	"context"
	"log/slog"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// LogNotifier records toasts as structured log entries. The front-end shows
// its own toasts from the response envelope; this keeps a server-side trail.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) NotifySuccess(ctx context.Context, text string) {
	n.logger.LogAttrs(ctx, slog.LevelInfo, "toast", toastAttrs(ctx, "success", text)...)
}

func (n *LogNotifier) NotifyFailure(ctx context.Context, text string) {
	n.logger.LogAttrs(ctx, slog.LevelWarn, "toast", toastAttrs(ctx, "error", text)...)
}

func toastAttrs(ctx context.Context, kind, text string) []slog.Attr {
	attrs := []slog.Attr{slog.String("kind", kind), slog.String("text", text)}
	if reqID := chimiddleware.GetReqID(ctx); reqID != "" {
		attrs = append(attrs, slog.String("request_id", reqID))
	}
	return attrs
}
