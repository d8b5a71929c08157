package cli

import (
	"context"

	"github.com/fatih/color"
	"github.com/urfave/cli/v3"

	"github.com/chek-project/chek-kma/pkg/cli/config"
	"github.com/chek-project/chek-kma/pkg/domain/types"
	"github.com/chek-project/chek-kma/pkg/service/questionnaire"
)

func cmdQuestions() *cli.Command {
	var datasetCfg config.Dataset
	var category string
	var withOptions bool

	return &cli.Command{
		Name:  "questions",
		Usage: "Print the question catalogue",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "category",
				Aliases:     []string{"c"},
				Usage:       "Only show one maturity category",
				Destination: &category,
			},
			&cli.BoolFlag{
				Name:        "options",
				Usage:       "Include the answer option of every level",
				Destination: &withOptions,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			questions, err := datasetCfg.Questions()
			if err != nil {
				return err
			}
			if category != "" {
				parsed, err := types.ParseMaturityCategory(category)
				if err != nil {
					return err
				}
				questions = questionnaire.ByCategory(questions, parsed)
			}

			return newRenderer(c.Root().Writer, !color.NoColor).Questions(questions, withOptions)
		},
	}
}
