package cli

import (
	"bufio"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/passforge/passforge-go/internal/engine"
	"github.com/passforge/passforge-go/internal/estimate"
	"github.com/passforge/passforge-go/internal/model"
	"github.com/passforge/passforge-go/internal/service"
)

var errNoPassword = errors.New("no password given")

func newStrengthCmd(cli *CLI) *cobra.Command {
	var hints []string

	cmd := &cobra.Command{
		Use:   "strength [password]",
		Short: "Rate an existing password",
		Long: `Rate an existing password.

With no argument the password is read from the first line of stdin, which
keeps it out of shell history.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := passwordArg(cli, args)
			if err != nil {
				return err
			}

			resp, err := service.NewStrengthService().Evaluate(model.StrengthRequest{
				Password: password,
				Hints:    hints,
			})
			if err != nil {
				return err
			}

			cli.Output("score:    %d/%d", resp.Score, engine.MaxScore)
			cli.Output("strength: %s", resp.Strength)
			cli.Output("estimate: %d/%d, %.1f bits, cracked in %s",
				resp.Estimate.Score, estimate.MaxScore, resp.Estimate.Entropy, resp.Estimate.CrackTimeDisplay)
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&hints, "hint", nil, "Personal words that make the password easier to guess (repeatable)")
	return cmd
}

func passwordArg(cli *CLI, args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}

	scanner := bufio.NewScanner(cli.Stdin)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", err
		}
		return "", errNoPassword
	}
	password := strings.TrimRight(scanner.Text(), "\r")
	if password == "" {
		return "", errNoPassword
	}
	return password, nil
}
