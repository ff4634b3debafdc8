package cli

import (
	"context"

	"github.com/edukshare-max/alebrije/pkg/model"
	"github.com/urfave/cli/v3"
)

func capsuleCommand() *cli.Command {
	var (
		cfg       config
		inputPath string
		service   string
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "input",
			Aliases:     []string{"i"},
			Usage:       "Path to a JSON or YAML capsule descriptor, - for stdin",
			Destination: &inputPath,
			Required:    true,
		},
		&cli.StringFlag{
			Name:        "service",
			Usage:       "Health service that granted the capsule",
			Destination: &service,
			Required:    true,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)

	return &cli.Command{
		Name:  "capsule",
		Usage: "Record a reward capsule granted by a health service",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			doc, err := readDocument(inputPath, c.Root().Reader)
			if err != nil {
				return err
			}
			capsule, err := model.DecodeCapsule(doc)
			if err != nil {
				return err
			}

			uc, cleanup, err := cfg.newUseCase(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			record, err := uc.RecordCapsule(ctx, cfg.ownerID(), capsule, service)
			if err != nil {
				return err
			}

			return render(c.Root().Writer, cfg.format, record)
		},
	}
}

func capsulesCommand() *cli.Command {
	var (
		cfg   config
		limit int64
	)

	flags := []cli.Flag{
		&cli.IntFlag{
			Name:        "limit",
			Usage:       "Maximum number of capsules to list",
			Value:       100,
			Destination: &limit,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)

	return &cli.Command{
		Name:  "capsules",
		Usage: "List recorded capsules, newest first",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			uc, cleanup, err := cfg.newUseCase(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			records, err := uc.CapsuleHistory(ctx, cfg.ownerID(), int(limit))
			if err != nil {
				return err
			}

			return render(c.Root().Writer, cfg.format, records)
		},
	}
}
