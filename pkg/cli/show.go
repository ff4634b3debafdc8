package cli

import (
	"context"

	"github.com/urfave/cli/v3"
)

func showCommand() *cli.Command {
	var cfg config

	return &cli.Command{
		Name:  "show",
		Usage: "Show the owner's companion",
		Flags: globalFlags(&cfg),
		Action: func(ctx context.Context, c *cli.Command) error {
			uc, cleanup, err := cfg.newUseCase(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			companion, err := uc.Get(ctx, cfg.ownerID())
			if err != nil {
				return err
			}

			return render(c.Root().Writer, cfg.format, companion)
		},
	}
}
