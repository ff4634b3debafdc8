package cli

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/edukshare-max/alebrije/pkg/model"
	"github.com/edukshare-max/alebrije/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// Exit codes returned by Run
const (
	ExitFailure    = 1
	ExitValidation = 2
	ExitNotFound   = 3
	ExitConflict   = 4
)

type Error struct {
	Code    int
	Message string
}

func Run(ctx context.Context, argv []string) *Error {
	return run(ctx, argv, os.Stdout)
}

func run(ctx context.Context, argv []string, w io.Writer) *Error {
	var logLevel string

	cmd := &cli.Command{
		Name:   "alebrije",
		Usage:  "Companion simulation engine for student health services",
		Writer: w,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Aliases:     []string{"l"},
				Usage:       "Log level (debug, info, warn, error)",
				Value:       "info",
				Sources:     cli.EnvVars("ALEBRIJE_LOG_LEVEL"),
				Destination: &logLevel,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			level, err := logging.ParseLevel(logLevel)
			if err != nil {
				return ctx, goerr.Wrap(model.ErrValidation, err.Error(), goerr.V("level", logLevel))
			}
			logger := logging.New(level, c.Root().ErrWriter)
			logging.SetDefault(logger)
			return logging.With(ctx, logger), nil
		},
		Commands: []*cli.Command{
			showCommand(),
			createCommand(),
			importCommand(),
			updateCommand(),
			interactCommand(),
			careCommand(),
			experienceCommand(),
			capsuleCommand(),
			capsulesCommand(),
			historyCommand(),
			evolveCommand(),
			backupCommand(),
		},
	}

	if err := cmd.Run(ctx, argv); err != nil {
		logging.Default().Error("command failed", "error", err)
		return &Error{
			Code:    exitCode(err),
			Message: err.Error(),
		}
	}

	return nil
}

func exitCode(err error) int {
	switch {
	case errors.Is(err, model.ErrValidation):
		return ExitValidation
	case errors.Is(err, model.ErrNotFound):
		return ExitNotFound
	case errors.Is(err, model.ErrConflict):
		return ExitConflict
	default:
		return ExitFailure
	}
}
