// Package cli implements the pwgen command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/passforge/passforge-go/internal/clipboard"
	"github.com/passforge/passforge-go/internal/controller"
)

const envPrefix = "PASSFORGE"

// CLI exposes common dependencies to commands.
type CLI struct {
	Stdin     io.Reader
	Stdout    io.Writer
	Stderr    io.Writer
	Clipboard controller.Copier
}

// NewCLI returns a CLI bound to the standard streams and the system clipboard.
func NewCLI() *CLI {
	return &CLI{
		Stdin:     os.Stdin,
		Stdout:    os.Stdout,
		Stderr:    os.Stderr,
		Clipboard: clipboard.NewCopier(os.Stderr),
	}
}

// Output writes a line to CLI.Stdout.
func (c *CLI) Output(format string, args ...any) {
	fmt.Fprintf(c.Stdout, format+"\n", args...)
}

// Warn writes a line to CLI.Stderr.
func (c *CLI) Warn(format string, args ...any) {
	fmt.Fprintf(c.Stderr, format+"\n", args...)
}

// Run executes the root command with args, which must not include the
// binary name.
func Run(ctx context.Context, cli *CLI, args ...string) error {
	cmd := NewRootCmd(cli)
	cmd.SetArgs(args)
	cmd.SetIn(cli.Stdin)
	cmd.SetOut(cli.Stdout)
	cmd.SetErr(cli.Stderr)
	return cmd.ExecuteContext(ctx)
}

// NewRootCmd builds pwgen: the root command generates, subcommands rate,
// prompt and mint tokens.
func NewRootCmd(cli *CLI) *cobra.Command {
	var opts generateOptions
	var verbose bool

	rootCmd := &cobra.Command{
		Use:               "pwgen",
		Short:             "Generate random passwords and rate their strength",
		Args:              cobra.NoArgs,
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := defaultsFromEnv(envPrefix, cmd.Flags()); err != nil {
				return err
			}
			setupLogging(cli.Stderr, verbose)
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cli, opts)
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output to stderr")
	opts.register(rootCmd.Flags())

	rootCmd.AddCommand(
		newStrengthCmd(cli),
		newInteractiveCmd(cli),
		newTokenCmd(cli),
	)
	return rootCmd
}

// defaultsFromEnv sets every flag not given on the command line from
// PREFIX_FLAG_NAME, if that variable exists.
func defaultsFromEnv(prefix string, flags *pflag.FlagSet) error {
	replacer := strings.NewReplacer("-", "_")

	var errs []error
	flags.VisitAll(func(flag *pflag.Flag) {
		if flag.Changed {
			return
		}

		key := strings.ToUpper(prefix + "_" + replacer.Replace(flag.Name))
		v, exists := os.LookupEnv(key)
		if !exists {
			return
		}
		if err := flag.Value.Set(v); err != nil {
			errs = append(errs, fmt.Errorf("failed to set %v from environment variable %v: %w", flag.Name, key, err))
		}
	})
	return errors.Join(errs...)
}

func setupLogging(w io.Writer, verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}
