package cli

import (
	"context"

	"github.com/edukshare-max/alebrije/pkg/model"
	"github.com/urfave/cli/v3"
)

func historyCommand() *cli.Command {
	var (
		cfg   config
		kind  string
		limit int64
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "kind",
			Aliases:     []string{"k"},
			Usage:       "Only list events of this kind",
			Destination: &kind,
		},
		&cli.IntFlag{
			Name:        "limit",
			Usage:       "Maximum number of events to list",
			Value:       100,
			Destination: &limit,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)

	return &cli.Command{
		Name:  "history",
		Usage: "List the interaction log, newest first",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			uc, cleanup, err := cfg.newUseCase(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			events, err := uc.History(ctx, cfg.ownerID(), model.InteractionKind(kind), int(limit))
			if err != nil {
				return err
			}

			return render(c.Root().Writer, cfg.format, events)
		},
	}
}
