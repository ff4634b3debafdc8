package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/briandowns/spinner"
	"github.com/edukshare-max/alebrije/pkg/model"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func backupCommand() *cli.Command {
	var cfg config

	flags := storageFlags(&cfg)
	flags = append(flags, globalFlags(&cfg)...)

	return &cli.Command{
		Name:  "backup",
		Usage: "Export a snapshot of the companion and its interactions to Cloud Storage",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if cfg.bucket == "" {
				return goerr.Wrap(model.ErrValidation, "bucket is required")
			}

			uc, cleanup, err := cfg.newUseCase(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(c.Root().ErrWriter))
			s.Suffix = " uploading backup"
			s.Start()
			key, err := uc.Backup(ctx, cfg.ownerID())
			s.Stop()
			if err != nil {
				return err
			}

			fmt.Fprintf(c.Root().Writer, "gs://%s/%s\n", cfg.bucket, key)
			return nil
		},
	}
}
