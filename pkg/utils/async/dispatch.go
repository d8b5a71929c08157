package async

import (
	"context"
	"log/slog"
	"sync"

	"github.com/chek-project/chek-kma/pkg/utils/errutil"
	"github.com/chek-project/chek-kma/pkg/utils/logging"
)

// Dispatcher runs handlers in background goroutines detached from the caller's
// cancellation. Wait blocks until every dispatched handler returned.
type Dispatcher struct {
	wg sync.WaitGroup
}

// NewDispatcher creates a Dispatcher
func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

// Dispatch runs handler in a new goroutine with a background context that keeps the
// caller's logger. Errors and panics are logged and never reach the caller.
func (d *Dispatcher) Dispatch(ctx context.Context, handler func(ctx context.Context) error) {
	bgCtx := logging.With(context.WithoutCancel(ctx), logging.From(ctx))

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				logging.From(bgCtx).Error("panic in async handler", slog.Any("panic", r))
			}
		}()

		if err := handler(bgCtx); err != nil {
			_ = errutil.Handle(bgCtx, err, "async handler failed")
		}
	}()
}

// Wait blocks until all dispatched handlers finished
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}
