package cli

import (
	"context"
	"log/slog"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/chek-project/chek-kma/pkg/domain/types"
	"github.com/chek-project/chek-kma/pkg/utils/logging"
)

func cmdMaturity() *cli.Command {
	var cfg storeConfig
	var projectID int64
	var asJSON bool

	flags := []cli.Flag{
		&cli.Int64Flag{
			Name:        "project-id",
			Aliases:     []string{"p"},
			Usage:       "Project to load",
			Required:    true,
			Destination: &projectID,
		},
		&cli.BoolFlag{
			Name:        "json",
			Usage:       "Print JSON instead of tables",
			Destination: &asJSON,
		},
	}
	flags = append(flags, cfg.Flags()...)

	return &cli.Command{
		Name:  "maturity",
		Usage: "Load maturity data of a project and compare it with the benchmarks",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			store, err := cfg.Configure()
			if err != nil {
				return err
			}

			id := types.ProjectID(projectID)
			if err := id.Validate(); err != nil {
				return goerr.Wrap(err, "invalid --project-id")
			}

			result := store.LoadMaturityData(ctx, id)
			if err := result.Err(); err != nil {
				logging.From(ctx).Warn("some categories could not be loaded", slog.Any("failed", result.Failed()))
			}

			r := newRenderer(c.Root().Writer, !color.NoColor)
			if asJSON {
				return r.MaturityJSON(result)
			}
			if err := r.Maturity(result); err != nil {
				return goerr.Wrap(err, "failed to render maturity data")
			}
			return nil
		},
	}
}
