package cli

import (
	"context"

	"github.com/urfave/cli/v3"
)

func evolveCommand() *cli.Command {
	var (
		cfg         config
		level       int64
		description string
	)

	flags := []cli.Flag{
		&cli.IntFlag{
			Name:        "level",
			Usage:       "New evolution level",
			Destination: &level,
			Required:    true,
		},
		&cli.StringFlag{
			Name:        "description",
			Usage:       "Milestone description",
			Destination: &description,
			Required:    true,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)

	return &cli.Command{
		Name:  "evolve",
		Usage: "Promote the companion to a new evolution level",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			uc, cleanup, err := cfg.newUseCase(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			evolved, err := uc.Evolve(ctx, cfg.ownerID(), int(level), description)
			if err != nil {
				return err
			}

			return render(c.Root().Writer, cfg.format, evolved)
		},
	}
}
