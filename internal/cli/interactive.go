package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/passforge/passforge-go/internal/clipboard"
	"github.com/passforge/passforge-go/internal/controller"
	"github.com/passforge/passforge-go/internal/engine"
)

var errUsage = errors.New("invalid usage, type 'help' for commands")

func newInteractiveCmd(cli *CLI) *cobra.Command {
	var flags configFlags

	cmd := &cobra.Command{
		Use:     "interactive",
		Aliases: []string{"i"},
		Short:   "Adjust settings and regenerate in a prompt",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			gen, err := flags.generator()
			if err != nil {
				return err
			}
			ctrl := controller.New(gen, cli.Clipboard, flags.engineConfig())
			return runREPL(cmd.Context(), cli, ctrl)
		},
	}

	flags.register(cmd.Flags())
	return cmd
}

// runREPL reads commands from cli.Stdin until quit, EOF or ctx is done.
// Every setting change regenerates the password and prints the new view.
func runREPL(ctx context.Context, cli *CLI, ctrl *controller.Controller) error {
	cli.Output("pwgen interactive mode (type 'help' for commands, 'quit' to exit)")
	render(cli, ctrl.View())

	readCtx, stopReading := context.WithCancel(ctx)
	defer stopReading()
	input := scanLines(readCtx, cli.Stdin)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprint(cli.Stdout, prompt(ctrl.View()))

		var line string
		select {
		case <-ctx.Done():
			cli.Output("")
			return ctx.Err()
		case l, ok := <-input.lines:
			if !ok {
				cli.Output("")
				return input.err
			}
			line = strings.TrimSpace(l)
		}
		if line == "" {
			continue
		}

		done, err := handleCommand(cli, ctrl, line)
		if err != nil {
			cli.Warn("error: %v", err)
			continue
		}
		if done {
			return nil
		}
	}
}

// lineScanner delivers input lines on a channel so that a read blocked on
// stdin does not delay cancellation. err is set before lines is closed.
type lineScanner struct {
	lines chan string
	err   error
}

// scanLines starts reading r. The reading goroutine exits at EOF, on a read
// error, or at the next line after ctx is done.
func scanLines(ctx context.Context, r io.Reader) *lineScanner {
	s := &lineScanner{lines: make(chan string)}
	go func() {
		defer close(s.lines)

		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case s.lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		s.err = scanner.Err()
	}()
	return s
}

func handleCommand(cli *CLI, ctrl *controller.Controller, line string) (bool, error) {
	fields := strings.Fields(line)
	cmd, args := strings.ToLower(fields[0]), fields[1:]

	switch cmd {
	case "quit", "exit", "q":
		return true, nil

	case "help", "h", "?":
		printHelp(cli)

	case "show", "s":
		render(cli, ctrl.View())

	case "generate", "g":
		ctrl.Generate()
		render(cli, ctrl.View())

	case "length", "l":
		if len(args) != 1 {
			return false, errUsage
		}
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return false, fmt.Errorf("length must be a number: %q", args[0])
		}
		ctrl.SetLength(n)
		render(cli, ctrl.View())

	case "toggle", "t", "on", "off":
		if len(args) != 1 {
			return false, errUsage
		}
		class, err := engine.ParseClass(args[0])
		if err != nil {
			return false, fmt.Errorf("%w: %q", err, args[0])
		}
		switch cmd {
		case "on":
			ctrl.SetClass(class, true)
		case "off":
			ctrl.SetClass(class, false)
		default:
			ctrl.Toggle(class)
		}
		render(cli, ctrl.View())

	case "copy", "c":
		if ctrl.View().Empty {
			return false, errors.New("nothing to copy")
		}
		method, err := ctrl.Copy()
		switch {
		case errors.Is(err, clipboard.ErrUnavailable):
			cli.Warn("warning: %v", err)
		case err != nil:
			return false, err
		case method == clipboard.MethodNone:
			cli.Warn("warning: clipboard unavailable")
		default:
			cli.Output("copied to %s", method)
		}

	default:
		return false, fmt.Errorf("unknown command %q, type 'help' for commands", cmd)
	}
	return false, nil
}

func render(cli *CLI, v controller.View) {
	if v.Empty {
		cli.Output("password: (select at least one character class)")
	} else {
		cli.Output("password: %s", v.Password)
	}
	cli.Output("strength: %s (%d/%d)", v.Strength.Label, v.Strength.Score, engine.MaxScore)

	classes := v.Classes.String()
	if classes == "" {
		classes = "none"
	}
	cli.Output("length:   %d, classes: %s", v.Length, classes)
}

func prompt(v controller.View) string {
	if v.Copied {
		return "pwgen [copied]> "
	}
	return "pwgen> "
}

func printHelp(cli *CLI) {
	cli.Output(`Commands:
  generate, g          generate a new password
  length N, l N        set the length (%d-%d) and regenerate
  toggle CLASS, t      flip a character class and regenerate
  on CLASS, off CLASS  enable or disable a character class
  copy, c              copy the password to the clipboard
  show, s              print the current password
  help, h              show this help
  quit, q              exit

Classes: uppercase, lowercase, numbers, symbols`, engine.MinLength, engine.MaxLength)
}
