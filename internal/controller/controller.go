// Package controller keeps the state of an interactive generator session and
// re-runs the engine on every change, the way a form re-renders on input.
package controller

import (
	"github.com/passforge/passforge-go/internal/clipboard"
	"github.com/passforge/passforge-go/internal/engine"
)

// Copier writes text to a clipboard.
type Copier interface {
	Copy(text string) (clipboard.Method, error)
}

// View is what a front-end displays.
type View struct {
	Length   int
	Classes  engine.ClassSet
	Password string
	Strength engine.Strength
	Empty    bool
	Copied   bool
}

// Controller owns the session configuration and the current result.
type Controller struct {
	gen    *engine.Generator
	copier Copier
	flash  *clipboard.Flash
	cfg    engine.Config
	result engine.Result
}

// New creates a Controller and generates the initial password.
func New(gen *engine.Generator, copier Copier, cfg engine.Config) *Controller {
	c := &Controller{
		gen:    gen,
		copier: copier,
		flash:  clipboard.NewFlash(clipboard.AckDuration),
		cfg:    cfg,
	}
	c.cfg.Length = clampLength(cfg.Length)
	c.Generate()
	return c
}

// SetLength clamps n to the allowed range and regenerates.
func (c *Controller) SetLength(n int) {
	c.cfg.Length = clampLength(n)
	c.Generate()
}

// SetClass enables or disables class and regenerates.
func (c *Controller) SetClass(class engine.Class, on bool) {
	if on {
		c.cfg.Classes = c.cfg.Classes.With(class)
	} else {
		c.cfg.Classes = c.cfg.Classes.Without(class)
	}
	c.Generate()
}

// Toggle flips class and regenerates.
func (c *Controller) Toggle(class engine.Class) {
	c.cfg.Classes = c.cfg.Classes.Toggle(class)
	c.Generate()
}

// Generate replaces the current password.
func (c *Controller) Generate() {
	c.result = c.gen.Run(c.cfg)
}

// Copy puts the current password on the clipboard and raises the copied
// acknowledgement. With nothing displayed it does nothing.
func (c *Controller) Copy() (clipboard.Method, error) {
	if c.result.Empty || c.copier == nil {
		return clipboard.MethodNone, nil
	}

	method, err := c.copier.Copy(c.result.Password)
	if err != nil {
		return method, err
	}
	c.flash.Show()
	return method, nil
}

// View returns the current display state.
func (c *Controller) View() View {
	return View{
		Length:   c.cfg.Length,
		Classes:  c.cfg.Classes,
		Password: c.result.Password,
		Strength: c.result.Strength,
		Empty:    c.result.Empty,
		Copied:   c.flash.Active(),
	}
}

func clampLength(n int) int {
	return max(engine.MinLength, min(n, engine.MaxLength))
}
