package cli

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/chek-project/chek-kma/pkg/cli/config"
	"github.com/chek-project/chek-kma/pkg/utils/logging"
)

func Run(ctx context.Context, args []string, version string) error {
	var loggerCfg config.Logger
	var sentryCfg config.Sentry
	var closers []func()

	flags := append(loggerCfg.Flags(), sentryCfg.Flags()...)

	app := &cli.Command{
		Name:    "chek-kma",
		Usage:   "CHEK key maturity assessment dashboard",
		Version: version,
		Flags:   flags,
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			f, err := loggerCfg.Configure()
			if err != nil {
				return ctx, err
			}
			closers = append(closers, f)

			s, err := sentryCfg.Configure(version)
			if err != nil {
				return ctx, err
			}
			closers = append(closers, s)

			logging.Default().Debug("Starting chek-kma", "logger", loggerCfg, "sentry", sentryCfg)
			return logging.With(ctx, logging.Default()), nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			for i := len(closers) - 1; i >= 0; i-- {
				closers[i]()
			}
			return nil
		},
		Commands: []*cli.Command{
			cmdServe(),
			cmdProjects(),
			cmdMaturity(),
			cmdBenchmark(),
			cmdMatch(),
			cmdQuestions(),
		},
	}

	if err := app.Run(ctx, args); err != nil {
		logging.Default().Error("failed to run app", "error", err)
		return err
	}

	return nil
}
