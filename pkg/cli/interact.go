package cli

import (
	"context"

	"github.com/edukshare-max/alebrije/pkg/model"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func interactCommand() *cli.Command {
	var (
		cfg    config
		amount int64
	)

	flags := []cli.Flag{
		&cli.IntFlag{
			Name:        "amount",
			Aliases:     []string{"a"},
			Usage:       "Amount for feed and heal, the default when zero",
			Destination: &amount,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)

	return &cli.Command{
		Name:      "interact",
		Usage:     "Apply a care interaction (feed, play, heal, rest)",
		ArgsUsage: "<type>",
		Flags:     flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.Args().Len() != 1 {
				return goerr.Wrap(model.ErrValidation, "interaction type is required",
					goerr.V("valid", model.CareKinds))
			}
			kind, err := model.ParseInteractionKind(c.Args().Get(0))
			if err != nil {
				return err
			}

			uc, cleanup, err := cfg.newUseCase(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			result, err := uc.Interact(ctx, cfg.ownerID(), kind, int(amount))
			if err != nil {
				return err
			}

			return render(c.Root().Writer, cfg.format, result)
		},
	}
}
