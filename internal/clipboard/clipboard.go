// Package clipboard copies text to the system clipboard, falling back to a
// terminal escape sequence when no clipboard utility is available.
package clipboard

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/atotto/clipboard"
)

var (
	// ErrUnavailable is returned by Copier.Copy when every writer failed.
	ErrUnavailable = errors.New("clipboard unavailable")

	errUnsupported = errors.New("no clipboard utility found")
	errNoTerminal  = errors.New("no terminal to write to")
)

// Writer places text on a clipboard.
type Writer interface {
	WriteAll(text string) error
}

// System writes through the platform clipboard (pbcopy, xclip, wl-copy, ...).
type System struct{}

// WriteAll fails with errUnsupported when no clipboard utility is installed.
func (System) WriteAll(text string) error {
	if clipboard.Unsupported {
		return errUnsupported
	}
	return clipboard.WriteAll(text)
}

// OSC52 asks the terminal on Out to copy text using the OSC 52 escape sequence.
type OSC52 struct {
	Out io.Writer
}

// WriteAll writes the escape sequence. Success means the sequence was written,
// not that the terminal honoured it.
func (o OSC52) WriteAll(text string) error {
	if o.Out == nil {
		return errNoTerminal
	}
	_, err := fmt.Fprintf(o.Out, "\x1b]52;c;%s\a", base64.StdEncoding.EncodeToString([]byte(text)))
	return err
}

// Method reports which writer handled a copy.
type Method int

const (
	MethodNone Method = iota
	MethodPrimary
	MethodFallback
)

// String names the clipboard that received the text.
func (m Method) String() string {
	switch m {
	case MethodPrimary:
		return "clipboard"
	case MethodFallback:
		return "terminal"
	}
	return "none"
}

// Copier tries Primary and then Fallback.
type Copier struct {
	Primary  Writer
	Fallback Writer
}

// NewCopier returns a Copier using the system clipboard with an OSC 52
// fallback written to term.
func NewCopier(term io.Writer) *Copier {
	return &Copier{
		Primary:  System{},
		Fallback: OSC52{Out: term},
	}
}

// Copy writes text to the clipboard. Empty text is a no-op. When both writers
// fail the returned error wraps ErrUnavailable.
func (c *Copier) Copy(text string) (Method, error) {
	if text == "" {
		return MethodNone, nil
	}

	var errs []error
	if c.Primary != nil {
		err := c.Primary.WriteAll(text)
		if err == nil {
			return MethodPrimary, nil
		}
		slog.Debug("clipboard write failed, trying fallback", "error", err)
		errs = append(errs, err)
	}

	if c.Fallback != nil {
		err := c.Fallback.WriteAll(text)
		if err == nil {
			return MethodFallback, nil
		}
		errs = append(errs, err)
	}

	if len(errs) == 0 {
		return MethodNone, ErrUnavailable
	}
	return MethodNone, fmt.Errorf("%w: %w", ErrUnavailable, errors.Join(errs...))
}
