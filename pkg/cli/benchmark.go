package cli

import (
	"context"

	"github.com/fatih/color"
	"github.com/urfave/cli/v3"

	"github.com/chek-project/chek-kma/pkg/cli/config"
	"github.com/chek-project/chek-kma/pkg/domain/types"
)

func cmdBenchmark() *cli.Command {
	var datasetCfg config.Dataset
	var category string
	var withJustification bool

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "category",
			Aliases:     []string{"c"},
			Usage:       "Only show one category (Technology, Organisation, Information, Process)",
			Destination: &category,
		},
		&cli.BoolFlag{
			Name:        "justification",
			Usage:       "Include the justification of every level",
			Destination: &withJustification,
		},
	}
	flags = append(flags, datasetCfg.Flags()...)

	return &cli.Command{
		Name:  "benchmark",
		Usage: "Print the benchmark dataset",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			set, err := datasetCfg.Configure()
			if err != nil {
				return err
			}

			categories := types.AllMaturityCategories()
			if category != "" {
				parsed, err := types.ParseMaturityCategory(category)
				if err != nil {
					return err
				}
				categories = []types.MaturityCategory{parsed}
			}

			return newRenderer(c.Root().Writer, !color.NoColor).Benchmarks(set, categories, withJustification)
		},
	}
}
