package cli

import (
	"context"

	"github.com/edukshare-max/alebrije/pkg/model"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func updateCommand() *cli.Command {
	var (
		cfg       config
		inputPath string
		name      string
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "input",
			Aliases:     []string{"i"},
			Usage:       "Path to a JSON or YAML partial document, - for stdin",
			Destination: &inputPath,
		},
		&cli.StringFlag{
			Name:        "name",
			Aliases:     []string{"n"},
			Usage:       "New display name",
			Destination: &name,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)

	return &cli.Command{
		Name:  "update",
		Usage: "Merge a partial document into the owner's companion",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			patch := &model.Patch{}
			if inputPath != "" {
				doc, err := readDocument(inputPath, c.Root().Reader)
				if err != nil {
					return err
				}
				if patch, err = model.DecodePatch(doc); err != nil {
					return err
				}
			}
			if c.IsSet("name") {
				patch.DisplayName = &name
			}
			if patch.IsEmpty() {
				return goerr.Wrap(model.ErrValidation, "nothing to update, use --input or --name")
			}

			uc, cleanup, err := cfg.newUseCase(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			updated, err := uc.Update(ctx, cfg.ownerID(), patch)
			if err != nil {
				return err
			}

			return render(c.Root().Writer, cfg.format, updated)
		},
	}
}
