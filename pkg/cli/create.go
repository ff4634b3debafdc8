package cli

import (
	"context"

	"github.com/edukshare-max/alebrije/pkg/usecase/companion"
	"github.com/urfave/cli/v3"
)

func createCommand() *cli.Command {
	var (
		cfg   config
		input companion.CreateInput
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "species",
			Aliases:     []string{"s"},
			Usage:       "Species base (jaguar, eagle, serpent, deer, hummingbird)",
			Destination: (*string)(&input.Species),
			Required:    true,
		},
		&cli.StringFlag{
			Name:        "name",
			Aliases:     []string{"n"},
			Usage:       "Display name, defaults to the species",
			Destination: &input.DisplayName,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)

	return &cli.Command{
		Name:  "create",
		Usage: "Hatch a companion with freshly synthesized DNA",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			uc, cleanup, err := cfg.newUseCase(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			created, err := uc.Create(ctx, cfg.ownerID(), input)
			if err != nil {
				return err
			}

			return render(c.Root().Writer, cfg.format, created)
		},
	}
}
