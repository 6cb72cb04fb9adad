package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/pflag"

	"github.com/passforge/passforge-go/internal/engine"
)

var (
	errInvalidCount  = errors.New("count must be at least 1")
	errUnknownSource = errors.New("source must be crypto or math")
)

// configFlags are the generation settings shared by pwgen and pwgen interactive.
type configFlags struct {
	length    int
	uppercase bool
	lowercase bool
	numbers   bool
	symbols   bool
	source    string
	seed      uint64
}

func (f *configFlags) register(fs *pflag.FlagSet) {
	fs.IntVarP(&f.length, "length", "l", engine.DefaultLength, "Password length")
	fs.BoolVar(&f.uppercase, "uppercase", true, "Include uppercase letters (A-Z)")
	fs.BoolVar(&f.lowercase, "lowercase", true, "Include lowercase letters (a-z)")
	fs.BoolVar(&f.numbers, "numbers", true, "Include digits (0-9)")
	fs.BoolVar(&f.symbols, "symbols", true, "Include symbols (!@#$...)")
	fs.StringVar(&f.source, "source", "crypto", "Random source: crypto or math")
	fs.Uint64Var(&f.seed, "seed", 0, "Seed for the math source, 0 seeds from the clock")
}

func (f configFlags) engineConfig() engine.Config {
	var classes engine.ClassSet
	if f.uppercase {
		classes = classes.With(engine.Uppercase)
	}
	if f.lowercase {
		classes = classes.With(engine.Lowercase)
	}
	if f.numbers {
		classes = classes.With(engine.Numbers)
	}
	if f.symbols {
		classes = classes.With(engine.Symbols)
	}
	return engine.Config{Length: f.length, Classes: classes}
}

func (f configFlags) generator() (*engine.Generator, error) {
	switch f.source {
	case "crypto":
		return engine.NewGenerator(engine.NewCryptoSource()), nil
	case "math":
		seed := f.seed
		if seed == 0 {
			seed = uint64(time.Now().UnixNano())
		}
		slog.Debug("using non-cryptographic random source", "seed", seed)
		return engine.NewGenerator(engine.NewMathSource(seed)), nil
	}
	return nil, fmt.Errorf("%w, got %q", errUnknownSource, f.source)
}

type generateOptions struct {
	configFlags
	count int
	copy  bool
	quiet bool
}

func (o *generateOptions) register(fs *pflag.FlagSet) {
	o.configFlags.register(fs)
	fs.IntVarP(&o.count, "count", "c", 1, "Number of passwords to generate")
	fs.BoolVar(&o.copy, "copy", false, "Copy the last password to the clipboard")
	fs.BoolVarP(&o.quiet, "quiet", "q", false, "Print passwords only")
}

func runGenerate(cli *CLI, opts generateOptions) error {
	if err := engine.CheckLength(opts.length); err != nil {
		return err
	}
	if opts.count < 1 {
		return errInvalidCount
	}

	gen, err := opts.generator()
	if err != nil {
		return err
	}

	cfg := opts.engineConfig()
	var last string
	for i := 0; i < opts.count; i++ {
		res := gen.Run(cfg)
		if res.Empty {
			cli.Warn("no character classes selected")
			return nil
		}

		if opts.quiet {
			cli.Output("%s", res.Password)
		} else {
			cli.Output("%s\t%s (%d/%d)", res.Password, res.Strength.Label, res.Strength.Score, engine.MaxScore)
		}
		last = res.Password
	}

	if opts.copy {
		copyToClipboard(cli, last)
	}
	return nil
}

// copyToClipboard reports the outcome on stderr. A failed copy is a warning,
// never an error.
func copyToClipboard(cli *CLI, text string) {
	if cli.Clipboard == nil {
		cli.Warn("warning: clipboard unavailable")
		return
	}

	method, err := cli.Clipboard.Copy(text)
	if err != nil {
		cli.Warn("warning: %v", err)
		return
	}
	cli.Warn("copied to %s", method)
}
