package errutil

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"

	"github.com/chek-project/chek-kma/pkg/utils/logging"
	"github.com/chek-project/chek-kma/pkg/utils/safe"
)

// Handle logs err with its goerr values and stack, forwards it to Sentry when a client is
// configured, and returns err unchanged.
func Handle(ctx context.Context, err error, msg string) error {
	if err == nil {
		return nil
	}

	logger := logging.From(ctx)

	var ge *goerr.Error
	if errors.As(err, &ge) {
		logger.Error(msg,
			slog.String("error", err.Error()),
			slog.Any("values", ge.Values()),
			slog.Any("stack", ge.Stacks()),
		)
	} else {
		logger.Error(msg, slog.String("error", err.Error()))
	}

	report(ctx, err, msg)
	return err
}

// HandleHTTP logs err and writes a JSON error body with statusCode. Only 5xx responses are
// reported to Sentry.
func HandleHTTP(ctx context.Context, w http.ResponseWriter, err error, statusCode int) {
	if err == nil {
		return
	}

	logger := logging.From(ctx)
	var ge *goerr.Error
	if errors.As(err, &ge) {
		logger.Error("HTTP error",
			slog.Int("status", statusCode),
			slog.String("error", err.Error()),
			slog.Any("values", ge.Values()),
		)
	} else {
		logger.Error("HTTP error",
			slog.Int("status", statusCode),
			slog.String("error", err.Error()),
		)
	}

	if statusCode >= http.StatusInternalServerError {
		report(ctx, err, "HTTP error")
	}

	body, mErr := json.Marshal(map[string]string{"error": err.Error()})
	if mErr != nil {
		http.Error(w, err.Error(), statusCode)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	safe.Write(ctx, w, body)
}

// sentryContextKey names the event context carrying goerr values
const sentryContextKey = "goerr"

func report(ctx context.Context, err error, msg string) {
	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	if hub.Client() == nil {
		return
	}

	hub.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("message", msg)
		var ge *goerr.Error
		if errors.As(err, &ge) {
			if values := ge.Values(); len(values) > 0 {
				scope.SetContext(sentryContextKey, sentry.Context(values))
			}
		}
		hub.CaptureException(err)
	})
}
