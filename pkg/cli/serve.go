package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/chek-project/chek-kma/pkg/cli/config"
	httpctrl "github.com/chek-project/chek-kma/pkg/controller/http"
	"github.com/chek-project/chek-kma/pkg/service/metrics"
	"github.com/chek-project/chek-kma/pkg/service/worker"
	"github.com/chek-project/chek-kma/pkg/usecase"
	"github.com/chek-project/chek-kma/pkg/utils/async"
	"github.com/chek-project/chek-kma/pkg/utils/logging"
)

func cmdServe() *cli.Command {
	var addr string
	var allowedOrigins []string
	var secureCookie bool
	var sessionIdle time.Duration
	var apiCfg config.API
	var datasetCfg config.Dataset
	var matcherCfg config.Matcher

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("CHEK_KMA_ADDR"),
			Destination: &addr,
		},
		&cli.StringSliceFlag{
			Name:        "allowed-origin",
			Usage:       "Origin allowed to call the API from a browser (repeatable)",
			Sources:     cli.EnvVars("CHEK_KMA_ALLOWED_ORIGINS"),
			Destination: &allowedOrigins,
		},
		&cli.DurationFlag{
			Name:        "session-idle-timeout",
			Usage:       "Drop dashboard sessions not used for this long (0 disables)",
			Value:       12 * time.Hour,
			Sources:     cli.EnvVars("CHEK_KMA_SESSION_IDLE_TIMEOUT"),
			Destination: &sessionIdle,
		},
		&cli.BoolFlag{
			Name:        "secure-cookie",
			Usage:       "Set the Secure attribute on the session cookie",
			Sources:     cli.EnvVars("CHEK_KMA_SECURE_COOKIE"),
			Destination: &secureCookie,
		},
	}

	flags = append(flags, apiCfg.Flags()...)
	flags = append(flags, datasetCfg.Flags()...)
	flags = append(flags, matcherCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start the dashboard HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			benchmarks, err := datasetCfg.Configure()
			if err != nil {
				return err
			}
			questions, err := datasetCfg.Questions()
			if err != nil {
				return err
			}
			m, err := matcherCfg.Configure()
			if err != nil {
				return err
			}

			reg := metrics.New()
			uc, err := usecase.New(benchmarks, apiCfg.Factory(reg),
				usecase.WithQuestions(questions),
				usecase.WithLabelMatcher(m),
				usecase.WithMetrics(reg),
			)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize use cases")
			}

			dispatcher := async.NewDispatcher()
			httpHandler, err := httpctrl.New(uc,
				httpctrl.WithMetrics(reg),
				httpctrl.WithAllowedOrigins(allowedOrigins),
				httpctrl.WithDispatcher(dispatcher),
				httpctrl.WithSecureCookie(secureCookie),
			)
			if err != nil {
				return goerr.Wrap(err, "failed to create http server")
			}
			server := &http.Server{
				Addr:              addr,
				Handler:           httpHandler,
				ReadHeaderTimeout: 30 * time.Second,
			}

			// Setup signal handling for graceful shutdown
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
			defer signal.Stop(sigCh)

			logging.Default().Info("Starting HTTP server",
				"addr", addr,
				"api", apiCfg,
				"matcher", matcherCfg,
				"dataset", datasetCfg,
			)

			var stopSweeper func()
			if sessionIdle > 0 {
				sweeper := worker.NewSessionSweeper(uc.Sessions, sessionIdle, time.Minute)
				sweeper.Start(ctx)
				stopSweeper = sweeper.Stop
			}

			return serveUntilDone(ctx, server, sigCh, dispatcher, stopSweeper)
		},
	}
}

// serveUntilDone runs server until it fails, a signal arrives or ctx is done. On every
// exit the sweeper is stopped and dispatched loads are waited for.
func serveUntilDone(ctx context.Context, server *http.Server, sigCh <-chan os.Signal, dispatcher *async.Dispatcher, stopSweeper func()) error {
	defer dispatcher.Wait()
	if stopSweeper != nil {
		defer stopSweeper()
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- goerr.Wrap(err, "failed to start server", goerr.V("addr", server.Addr))
		}
	}()

	var cause error
	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		logging.Default().Info("Received shutdown signal", "signal", sig)
	case <-ctx.Done():
		logging.Default().Info("Context cancelled, shutting down")
		cause = ctx.Err()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return goerr.Wrap(err, "failed to shutdown server gracefully")
	}

	logging.Default().Info("Server shutdown completed")
	return cause
}
