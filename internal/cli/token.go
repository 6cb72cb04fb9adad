package cli

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/passforge/passforge-go/internal/auth"
)

const defaultTokenExpiry = 24 * time.Hour

var errSecretRequired = errors.New("a signing secret is required, set --secret or JWT_SECRET")

func newTokenCmd(cli *CLI) *cobra.Command {
	var (
		subject string
		secret  string
		expiry  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for the stats endpoint",
		Long: `Mint a bearer token for the stats endpoint.

The secret and lifetime fall back to JWT_SECRET and JWT_EXPIRY, the
variables the API server is configured with.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if secret == "" {
				secret = os.Getenv("JWT_SECRET")
			}
			if secret == "" {
				return errSecretRequired
			}

			if !cmd.Flags().Changed("expiry") && os.Getenv(envPrefix+"_EXPIRY") == "" {
				if v := os.Getenv("JWT_EXPIRY"); v != "" {
					d, err := time.ParseDuration(v)
					if err != nil {
						return fmt.Errorf("JWT_EXPIRY: %w", err)
					}
					expiry = d
				}
			}

			token, err := auth.GenerateToken(subject, secret, expiry)
			if err != nil {
				return err
			}
			cli.Output("%s", token)
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "admin", "Token subject")
	cmd.Flags().StringVar(&secret, "secret", "", "Signing secret, defaults to $JWT_SECRET")
	cmd.Flags().DurationVar(&expiry, "expiry", defaultTokenExpiry, "Token lifetime, defaults to $JWT_EXPIRY or 24h")
	return cmd
}
