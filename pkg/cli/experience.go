package cli

import (
	"context"

	"github.com/urfave/cli/v3"
)

func experienceCommand() *cli.Command {
	var (
		cfg    config
		points int64
		reason string
	)

	flags := []cli.Flag{
		&cli.IntFlag{
			Name:        "points",
			Usage:       "Experience points to add",
			Destination: &points,
			Required:    true,
		},
		&cli.StringFlag{
			Name:        "reason",
			Aliases:     []string{"r"},
			Usage:       "Activity that earned the points",
			Destination: &reason,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)

	return &cli.Command{
		Name:  "experience",
		Usage: "Add experience points for a completed health activity",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			uc, cleanup, err := cfg.newUseCase(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			result, err := uc.AddExperience(ctx, cfg.ownerID(), int(points), reason)
			if err != nil {
				return err
			}

			return render(c.Root().Writer, cfg.format, result)
		},
	}
}
