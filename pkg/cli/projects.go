package cli

import (
	"context"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func cmdProjects() *cli.Command {
	var cfg storeConfig

	return &cli.Command{
		Name:  "projects",
		Usage: "Load and list projects",
		Flags: cfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			store, err := cfg.Configure()
			if err != nil {
				return err
			}

			result := store.LoadProjects(ctx)
			if result.Notify {
				newRenderer(c.Root().ErrWriter, !color.NoColor).Alert(result.Message)
			}
			if !result.OK() {
				return goerr.Wrap(result.Err, "failed to load projects")
			}

			return newRenderer(c.Root().Writer, !color.NoColor).Projects(result.Projects)
		},
	}
}
