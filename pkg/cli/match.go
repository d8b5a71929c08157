package cli

import (
	"context"
	"strings"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/chek-project/chek-kma/pkg/cli/config"
	"github.com/chek-project/chek-kma/pkg/domain/types"
	"github.com/chek-project/chek-kma/pkg/service/matcher"
)

func cmdMatch() *cli.Command {
	var datasetCfg config.Dataset
	var matcherCfg config.Matcher
	var category string

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "category",
			Aliases:     []string{"c"},
			Usage:       "Benchmark category to search",
			Required:    true,
			Destination: &category,
		},
	}
	flags = append(flags, datasetCfg.Flags()...)
	flags = append(flags, matcherCfg.Flags()...)

	return &cli.Command{
		Name:      "match",
		Usage:     "Show the benchmark entry a label would be matched to",
		ArgsUsage: "LABEL",
		Flags:     flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.Args().Len() == 0 {
				return goerr.New("LABEL argument is required")
			}
			query := strings.Join(c.Args().Slice(), " ")

			parsed, err := types.ParseMaturityCategory(category)
			if err != nil {
				return err
			}
			set, err := datasetCfg.Configure()
			if err != nil {
				return err
			}
			m, err := matcherCfg.Configure()
			if err != nil {
				return err
			}

			entries := set.Entries(parsed)
			res := m.BestMatch(matcher.Labels(entries), query)
			newRenderer(c.Root().Writer, !color.NoColor).Match(parsed, query, entries, res)
			return nil
		},
	}
}
