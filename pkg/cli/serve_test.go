package cli

import (
	"context"
	"net"
	"net/http"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/chek-project/chek-kma/pkg/utils/async"
)

type shutdownTracker struct {
	stopped  atomic.Bool
	finished atomic.Bool
}

func newShutdownTracker(ctx context.Context, dispatcher *async.Dispatcher) *shutdownTracker {
	p := &shutdownTracker{}
	dispatcher.Dispatch(ctx, func(ctx context.Context) error {
		time.Sleep(50 * time.Millisecond)
		p.finished.Store(true)
		return nil
	})
	return p
}

func (p *shutdownTracker) stop() {
	p.stopped.Store(true)
}

func TestServeUntilDone(t *testing.T) {
	t.Run("listen failure stops sweeper and waits for loads", func(t *testing.T) {
		ln, err := net.Listen("tcp", "127.0.0.1:0")
		gt.NoError(t, err).Required()
		defer ln.Close()

		ctx := context.Background()
		dispatcher := async.NewDispatcher()
		p := newShutdownTracker(ctx, dispatcher)
		server := &http.Server{Addr: ln.Addr().String(), Handler: http.NotFoundHandler()}

		err = serveUntilDone(ctx, server, make(chan os.Signal), dispatcher, p.stop)
		gt.Value(t, err).NotNil()
		gt.Bool(t, p.stopped.Load()).True()
		gt.Bool(t, p.finished.Load()).True()
	})

	t.Run("signal shuts down gracefully", func(t *testing.T) {
		ctx := context.Background()
		dispatcher := async.NewDispatcher()
		p := newShutdownTracker(ctx, dispatcher)
		server := &http.Server{Addr: "127.0.0.1:0", Handler: http.NotFoundHandler()}

		sigCh := make(chan os.Signal, 1)
		sigCh <- os.Interrupt

		gt.NoError(t, serveUntilDone(ctx, server, sigCh, dispatcher, p.stop))
		gt.Bool(t, p.stopped.Load()).True()
		gt.Bool(t, p.finished.Load()).True()
	})

	t.Run("context cancel shuts down and reports cause", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		dispatcher := async.NewDispatcher()
		p := newShutdownTracker(ctx, dispatcher)
		cancel()
		server := &http.Server{Addr: "127.0.0.1:0", Handler: http.NotFoundHandler()}

		err := serveUntilDone(ctx, server, make(chan os.Signal), dispatcher, p.stop)
		gt.Error(t, err).Is(context.Canceled)
		gt.Bool(t, p.stopped.Load()).True()
		gt.Bool(t, p.finished.Load()).True()
	})

	t.Run("without sweeper", func(t *testing.T) {
		sigCh := make(chan os.Signal, 1)
		sigCh <- os.Interrupt
		server := &http.Server{Addr: "127.0.0.1:0", Handler: http.NotFoundHandler()}

		gt.NoError(t, serveUntilDone(context.Background(), server, sigCh, async.NewDispatcher(), nil))
	})
}
