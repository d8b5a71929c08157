package safe

import (
	"context"
	"io"
	"log/slog"

	"github.com/chek-project/chek-kma/pkg/utils/logging"
)

// Close closes closer and logs a failure. A nil closer is ignored.
func Close(ctx context.Context, closer io.Closer) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil {
		logging.From(ctx).Warn("failed to close", slog.Any("error", err))
	}
}

// DrainAndClose discards at most limit unread bytes of rc before closing it, so an HTTP
// connection can be reused.
func DrainAndClose(ctx context.Context, rc io.ReadCloser, limit int64) {
	if rc == nil {
		return
	}
	if _, err := io.Copy(io.Discard, io.LimitReader(rc, limit)); err != nil {
		logging.From(ctx).Debug("failed to drain body", slog.Any("error", err))
	}
	Close(ctx, rc)
}

// Write writes data to w and logs a failure. A nil writer is ignored.
func Write(ctx context.Context, w io.Writer, data []byte) {
	if w == nil {
		return
	}
	if _, err := w.Write(data); err != nil {
		logging.From(ctx).Warn("failed to write response", slog.Int("bytes", len(data)), slog.Any("error", err))
	}
}
