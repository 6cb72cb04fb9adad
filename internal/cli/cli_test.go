package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/passforge/passforge-go/internal/auth"
	"github.com/passforge/passforge-go/internal/clipboard"
	"github.com/passforge/passforge-go/internal/engine"
)

type fakeWriter struct {
	err  error
	text string
}

func (f *fakeWriter) WriteAll(text string) error {
	if f.err != nil {
		return f.err
	}
	f.text = text
	return nil
}

func newTestCLI(stdin string, copier *clipboard.Copier) (*CLI, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	cli := &CLI{
		Stdin:  strings.NewReader(stdin),
		Stdout: &stdout,
		Stderr: &stderr,
	}
	if copier != nil {
		cli.Clipboard = copier
	}
	return cli, &stdout, &stderr
}

func outputLines(s string) []string {
	return strings.Split(strings.TrimRight(s, "\n"), "\n")
}

func TestGenerate(t *testing.T) {
	cli, stdout, _ := newTestCLI("", nil)
	if err := Run(context.Background(), cli, "--length", "20", "--source", "math", "--seed", "1"); err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}

	lines := outputLines(stdout.String())
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %q", stdout.String())
	}
	password, rating, ok := strings.Cut(lines[0], "\t")
	if !ok {
		t.Fatalf("expected password and rating separated by a tab, got %q", lines[0])
	}
	if len(password) != 20 {
		t.Errorf("password length = %d, want 20", len(password))
	}
	s := engine.Evaluate(password)
	if want := s.Label.String() + " ("; !strings.HasPrefix(rating, want) {
		t.Errorf("rating = %q, want prefix %q", rating, want)
	}
}

func TestGenerateSeedIsReproducible(t *testing.T) {
	args := []string{"--source", "math", "--seed", "99", "--count", "3", "-q"}

	cli1, out1, _ := newTestCLI("", nil)
	cli2, out2, _ := newTestCLI("", nil)
	if err := Run(context.Background(), cli1, args...); err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}
	if err := Run(context.Background(), cli2, args...); err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}

	if out1.String() != out2.String() {
		t.Errorf("same seed produced %q and %q", out1.String(), out2.String())
	}
	if n := len(outputLines(out1.String())); n != 3 {
		t.Errorf("expected 3 passwords, got %d", n)
	}
}

func TestGenerateClassFlags(t *testing.T) {
	cli, stdout, _ := newTestCLI("", nil)
	err := Run(context.Background(), cli, "-q", "-l", "64", "--uppercase=false", "--lowercase=false", "--symbols=false")
	if err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}

	password := strings.TrimSpace(stdout.String())
	for _, c := range password {
		if c < '0' || c > '9' {
			t.Fatalf("unexpected character %q in digits-only password %q", c, password)
		}
	}
}

func TestGenerateNoClasses(t *testing.T) {
	cli, stdout, stderr := newTestCLI("", nil)
	err := Run(context.Background(), cli, "--uppercase=false", "--lowercase=false", "--numbers=false", "--symbols=false")
	if err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}
	if stdout.Len() != 0 {
		t.Errorf("expected no password, got %q", stdout.String())
	}
	if !strings.Contains(stderr.String(), "no character classes selected") {
		t.Errorf("expected notice on stderr, got %q", stderr.String())
	}
}

func TestGenerateInvalidInput(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want error
	}{
		{"too short", []string{"--length", "3"}, engine.ErrLengthTooShort},
		{"too long", []string{"--length", "129"}, engine.ErrLengthTooLong},
		{"zero count", []string{"--count", "0"}, errInvalidCount},
		{"unknown source", []string{"--source", "dice"}, errUnknownSource},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cli, _, _ := newTestCLI("", nil)
			if err := Run(context.Background(), cli, tt.args...); !errors.Is(err, tt.want) {
				t.Errorf("Run() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestGenerateFromEnv(t *testing.T) {
	t.Setenv("PASSFORGE_LENGTH", "24")
	t.Setenv("PASSFORGE_SYMBOLS", "false")

	cli, stdout, _ := newTestCLI("", nil)
	if err := Run(context.Background(), cli, "-q"); err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}

	password := strings.TrimSpace(stdout.String())
	if len(password) != 24 {
		t.Errorf("password length = %d, want 24", len(password))
	}
	if strings.ContainsAny(password, "!@#$%^&*()_+-=[]{}|;:,.<>?") {
		t.Errorf("password %q contains symbols", password)
	}
}

func TestFlagOverridesEnv(t *testing.T) {
	t.Setenv("PASSFORGE_LENGTH", "24")

	cli, stdout, _ := newTestCLI("", nil)
	if err := Run(context.Background(), cli, "-q", "-l", "8"); err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}
	if n := len(strings.TrimSpace(stdout.String())); n != 8 {
		t.Errorf("password length = %d, want 8", n)
	}
}

func TestInvalidEnv(t *testing.T) {
	t.Setenv("PASSFORGE_LENGTH", "long")

	cli, _, _ := newTestCLI("", nil)
	err := Run(context.Background(), cli)
	if err == nil || !strings.Contains(err.Error(), "PASSFORGE_LENGTH") {
		t.Errorf("Run() error = %v, want PASSFORGE_LENGTH failure", err)
	}
}

func TestGenerateCopy(t *testing.T) {
	primary := &fakeWriter{}
	cli, stdout, stderr := newTestCLI("", &clipboard.Copier{Primary: primary})

	if err := Run(context.Background(), cli, "-q", "--copy", "--count", "2"); err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}

	lines := outputLines(stdout.String())
	if primary.text != lines[len(lines)-1] {
		t.Errorf("copied %q, want last password %q", primary.text, lines[len(lines)-1])
	}
	if !strings.Contains(stderr.String(), "copied to clipboard") {
		t.Errorf("expected copy acknowledgement, got %q", stderr.String())
	}
}

func TestGenerateCopyUnavailable(t *testing.T) {
	copier := &clipboard.Copier{
		Primary:  &fakeWriter{err: errors.New("no xclip")},
		Fallback: &fakeWriter{err: errors.New("no tty")},
	}
	cli, stdout, stderr := newTestCLI("", copier)

	if err := Run(context.Background(), cli, "-q", "--copy"); err != nil {
		t.Fatalf("copy failure should not fail the command: %v", err)
	}
	if stdout.Len() == 0 {
		t.Error("expected the password to be printed")
	}
	if !strings.Contains(stderr.String(), "warning: clipboard unavailable") {
		t.Errorf("expected warning, got %q", stderr.String())
	}
}

func TestStrength(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		stdin string
		want  []string
	}{
		{
			name: "argument",
			args: []string{"strength", "Abcdefgh12"},
			want: []string{"score:    60/100", "strength: Good"},
		},
		{
			name:  "stdin",
			args:  []string{"strength"},
			stdin: "Ab3#Xy9!Qz1@\n",
			want:  []string{"score:    100/100", "strength: Strong"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cli, stdout, _ := newTestCLI(tt.stdin, nil)
			if err := Run(context.Background(), cli, tt.args...); err != nil {
				t.Fatalf("Run() unexpected error: %v", err)
			}
			for _, w := range tt.want {
				if !strings.Contains(stdout.String(), w) {
					t.Errorf("output %q missing %q", stdout.String(), w)
				}
			}
			if !strings.Contains(stdout.String(), "estimate: ") {
				t.Errorf("output %q missing estimate", stdout.String())
			}
		})
	}
}

func TestStrengthNoPassword(t *testing.T) {
	cli, _, _ := newTestCLI("", nil)
	if err := Run(context.Background(), cli, "strength"); !errors.Is(err, errNoPassword) {
		t.Errorf("Run() error = %v, want %v", err, errNoPassword)
	}
}

func TestToken(t *testing.T) {
	cli, stdout, _ := newTestCLI("", nil)
	if err := Run(context.Background(), cli, "token", "--secret", "test-secret", "--subject", "ops"); err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}

	claims, err := auth.ValidateToken(strings.TrimSpace(stdout.String()), "test-secret")
	if err != nil {
		t.Fatalf("ValidateToken() unexpected error: %v", err)
	}
	if claims.Subject != "ops" {
		t.Errorf("subject = %q, want ops", claims.Subject)
	}
}

func TestTokenSecretFromEnv(t *testing.T) {
	t.Setenv("JWT_SECRET", "env-secret")

	cli, stdout, _ := newTestCLI("", nil)
	if err := Run(context.Background(), cli, "token"); err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}
	if _, err := auth.ValidateToken(strings.TrimSpace(stdout.String()), "env-secret"); err != nil {
		t.Errorf("ValidateToken() unexpected error: %v", err)
	}
}

// unsetenv removes key for the duration of the test.
func unsetenv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	os.Unsetenv(key)
}

func tokenLifetime(t *testing.T, out, secret string) time.Duration {
	t.Helper()

	claims, err := auth.ValidateToken(strings.TrimSpace(out), secret)
	if err != nil {
		t.Fatalf("ValidateToken() unexpected error: %v", err)
	}
	return claims.ExpiresAt.Sub(claims.IssuedAt.Time)
}

func TestTokenExpiry(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		args []string
		want time.Duration
	}{
		{"default", nil, nil, 24 * time.Hour},
		{"JWT_EXPIRY", map[string]string{"JWT_EXPIRY": "90m"}, nil, 90 * time.Minute},
		{"PASSFORGE_EXPIRY wins over JWT_EXPIRY", map[string]string{"JWT_EXPIRY": "90m", "PASSFORGE_EXPIRY": "2h"}, nil, 2 * time.Hour},
		{"flag wins over environment", map[string]string{"JWT_EXPIRY": "90m"}, []string{"--expiry", "10m"}, 10 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			unsetenv(t, "JWT_EXPIRY")
			unsetenv(t, "PASSFORGE_EXPIRY")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cli, stdout, _ := newTestCLI("", nil)
			args := append([]string{"token", "--secret", "s"}, tt.args...)
			if err := Run(context.Background(), cli, args...); err != nil {
				t.Fatalf("Run() unexpected error: %v", err)
			}
			if got := tokenLifetime(t, stdout.String(), "s"); got != tt.want {
				t.Errorf("lifetime = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTokenInvalidExpiryEnv(t *testing.T) {
	unsetenv(t, "PASSFORGE_EXPIRY")
	t.Setenv("JWT_EXPIRY", "tomorrow")

	cli, _, _ := newTestCLI("", nil)
	err := Run(context.Background(), cli, "token", "--secret", "s")
	if err == nil || !strings.Contains(err.Error(), "JWT_EXPIRY") {
		t.Errorf("Run() error = %v, want JWT_EXPIRY failure", err)
	}
}

func TestTokenRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	cli, _, _ := newTestCLI("", nil)
	if err := Run(context.Background(), cli, "token"); !errors.Is(err, errSecretRequired) {
		t.Errorf("Run() error = %v, want %v", err, errSecretRequired)
	}
}
