package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/edukshare-max/alebrije/pkg/model"
	"github.com/edukshare-max/alebrije/pkg/usecase/companion"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

const careHelp = `commands:
  feed [amount]         feed the companion (default 20)
  play                  play together
  heal [amount]         heal the companion (default 30)
  rest                  let it rest, energy refills
  xp <points> [reason]  add experience points
  status                show the current stats
  help                  show this help
  exit                  leave the session
`

func careCommand() *cli.Command {
	var cfg config

	return &cli.Command{
		Name:  "care",
		Usage: "Interactive care session for the owner's companion",
		Flags: globalFlags(&cfg),
		Action: func(ctx context.Context, c *cli.Command) error {
			uc, cleanup, err := cfg.newUseCase(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			session := &careSession{uc: uc, owner: cfg.ownerID(), w: c.Root().Writer}
			if err := session.handle(ctx, "status"); err != nil {
				return err
			}

			rl, err := readline.NewEx(&readline.Config{
				Prompt: fmt.Sprintf("%s> ", cfg.owner),
				AutoComplete: readline.NewPrefixCompleter(
					readline.PcItem("feed"),
					readline.PcItem("play"),
					readline.PcItem("heal"),
					readline.PcItem("rest"),
					readline.PcItem("xp"),
					readline.PcItem("status"),
					readline.PcItem("help"),
					readline.PcItem("exit"),
				),
				InterruptPrompt: "^C",
				EOFPrompt:       "exit",
				Stdout:          c.Root().Writer,
			})
			if err != nil {
				return goerr.Wrap(err, "failed to start readline")
			}
			defer rl.Close()

			fmt.Fprintf(c.Root().Writer, "Care session started. Type 'help' for commands, 'exit' to quit.\n")
			for {
				line, err := rl.Readline()
				if errors.Is(err, readline.ErrInterrupt) {
					if line == "" {
						break
					}
					continue
				}
				if errors.Is(err, io.EOF) {
					break
				}
				if err != nil {
					return goerr.Wrap(err, "failed to read input")
				}

				err = session.handle(ctx, line)
				if errors.Is(err, errQuit) {
					break
				}
				if err != nil {
					return err
				}
			}

			return nil
		},
	}
}

var errQuit = errors.New("quit")

type careSession struct {
	uc    *companion.UseCase
	owner model.OwnerID
	w     io.Writer
}

// handle runs one session command. Mistakes the user can fix are printed
// and swallowed; store failures end the session.
func (s *careSession) handle(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	err := s.dispatch(ctx, fields[0], fields[1:])
	if errors.Is(err, model.ErrValidation) {
		fmt.Fprintf(s.w, "! %s\n", err.Error())
		return nil
	}
	return err
}

func (s *careSession) dispatch(ctx context.Context, command string, args []string) error {
	switch command {
	case "exit", "quit":
		return errQuit

	case "help":
		fmt.Fprint(s.w, careHelp)
		return nil

	case "status":
		c, err := s.uc.Get(ctx, s.owner)
		if err != nil {
			return err
		}
		fmt.Fprintln(s.w, statusLine(c))
		return nil

	case "xp":
		if len(args) == 0 {
			return goerr.Wrap(model.ErrValidation, "usage: xp <points> [reason]")
		}
		points, err := parseNumber(args[0])
		if err != nil {
			return err
		}
		result, err := s.uc.AddExperience(ctx, s.owner, points, strings.Join(args[1:], " "))
		if err != nil {
			return err
		}
		fmt.Fprintf(s.w, "+%d xp, total %d\n", result.PointsAdded, result.Total)
		if result.Evolution != nil {
			fmt.Fprintf(s.w, "evolved to level %d: %s\n", result.Evolution.Level, result.Evolution.Description)
		}
		return nil

	default:
		kind, err := model.ParseInteractionKind(command)
		if err != nil {
			return goerr.Wrap(model.ErrValidation, "unknown command, type 'help'", goerr.V("command", command))
		}
		amount := 0
		if len(args) > 0 {
			if amount, err = parseNumber(args[0]); err != nil {
				return err
			}
		}
		result, err := s.uc.Interact(ctx, s.owner, kind, amount)
		if err != nil {
			return err
		}
		fmt.Fprintln(s.w, statusLine(result.Companion))
		return nil
	}
}

func parseNumber(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, goerr.Wrap(model.ErrValidation, "not a number", goerr.V("input", s))
	}
	return n, nil
}
