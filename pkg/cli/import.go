package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func importCommand() *cli.Command {
	var (
		cfg       config
		inputPath string
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "input",
			Aliases:     []string{"i"},
			Usage:       "Path to a JSON or YAML companion document, - for stdin",
			Sources:     cli.EnvVars("ALEBRIJE_INPUT"),
			Destination: &inputPath,
			Required:    true,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)

	return &cli.Command{
		Name:  "import",
		Usage: "Store a companion document built by a client, DNA included",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			doc, err := readDocument(inputPath, c.Root().Reader)
			if err != nil {
				return err
			}

			uc, cleanup, err := cfg.newUseCase(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			imported, err := uc.Import(ctx, cfg.ownerID(), doc)
			if err != nil {
				return goerr.Wrap(err, "failed to import companion", goerr.V("path", inputPath))
			}

			return render(c.Root().Writer, cfg.format, imported)
		},
	}
}
