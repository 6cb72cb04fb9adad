package engine

import (
	crand "crypto/rand"
	"errors"
	"math/rand/v2"
	"strings"
	"sync"
)

// Length bounds applied by the front-ends. Generate itself accepts any length.
const (
	MinLength     = 4
	MaxLength     = 128
	DefaultLength = 16
)

var (
	ErrLengthTooShort = errors.New("password length must be at least 4")
	ErrLengthTooLong  = errors.New("password length must be at most 128")
)

// CheckLength reports whether n lies within [MinLength, MaxLength].
func CheckLength(n int) error {
	if n < MinLength {
		return ErrLengthTooShort
	}
	if n > MaxLength {
		return ErrLengthTooLong
	}
	return nil
}

// Source supplies uniformly distributed integers in [0, n).
type Source interface {
	IntN(n int) int
}

// NewCryptoSource returns a ChaCha8 source seeded from crypto/rand.
func NewCryptoSource() Source {
	var seed [32]byte
	crand.Read(seed[:])
	return rand.New(rand.NewChaCha8(seed))
}

// NewMathSource returns a deterministic, non-cryptographic PCG source.
func NewMathSource(seed uint64) Source {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Config configures a single generation.
type Config struct {
	Length  int
	Classes ClassSet
}

// DefaultConfig returns 16 characters with every class enabled.
func DefaultConfig() Config {
	return Config{
		Length:  DefaultLength,
		Classes: AllClasses(),
	}
}

// Generator samples passwords from a Source. It is safe for concurrent use.
type Generator struct {
	mu  sync.Mutex
	src Source
}

// NewGenerator creates a Generator. A nil src selects NewCryptoSource.
func NewGenerator(src Source) *Generator {
	if src == nil {
		src = NewCryptoSource()
	}
	return &Generator{src: src}
}

// Generate draws cfg.Length characters independently and uniformly, with
// replacement, from the charset of cfg.Classes. It returns false when no class
// is enabled. Enabled classes are not guaranteed to appear in the result.
func (g *Generator) Generate(cfg Config) (string, bool) {
	charset := BuildCharset(cfg.Classes)
	if charset == "" {
		return "", false
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	var sb strings.Builder
	if cfg.Length > 0 {
		sb.Grow(cfg.Length)
	}
	for i := 0; i < cfg.Length; i++ {
		sb.WriteByte(charset[g.src.IntN(len(charset))])
	}
	return sb.String(), true
}

// Result is the output of one pass through the pipeline.
type Result struct {
	Password string
	Strength Strength
	Empty    bool
}

// Run generates a password and evaluates it. With no class enabled the
// result is empty with a zero score.
func (g *Generator) Run(cfg Config) Result {
	password, ok := g.Generate(cfg)
	if !ok {
		return Result{Empty: true, Strength: Evaluate("")}
	}
	return Result{
		Password: password,
		Strength: Evaluate(password),
	}
}
