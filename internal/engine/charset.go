// Package engine builds character pools, samples passwords from them and
// scores the result with a fixed additive rubric.
package engine

import (
	"errors"
	"strings"
)

// Class is one of the fixed character categories a password draws from.
type Class uint8

const (
	Uppercase Class = 1 << iota
	Lowercase
	Numbers
	Symbols
)

const (
	uppercaseChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	lowercaseChars = "abcdefghijklmnopqrstuvwxyz"
	numberChars    = "0123456789"
	symbolChars    = "!@#$%^&*()_+-=[]{}|;:,.<>?"
)

// Classes lists every class in charset order.
var Classes = []Class{Uppercase, Lowercase, Numbers, Symbols}

// ErrUnknownClass is returned by ParseClass for names it does not recognise.
var ErrUnknownClass = errors.New("unknown character class")

// Chars returns the member characters of c, or "" for an unknown class.
func (c Class) Chars() string {
	switch c {
	case Uppercase:
		return uppercaseChars
	case Lowercase:
		return lowercaseChars
	case Numbers:
		return numberChars
	case Symbols:
		return symbolChars
	}
	return ""
}

// String returns the lowercase class name.
func (c Class) String() string {
	switch c {
	case Uppercase:
		return "uppercase"
	case Lowercase:
		return "lowercase"
	case Numbers:
		return "numbers"
	case Symbols:
		return "symbols"
	}
	return "unknown"
}

// ParseClass accepts the class name, its singular form or a one-letter alias.
func ParseClass(s string) (Class, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "uppercase", "upper", "u":
		return Uppercase, nil
	case "lowercase", "lower", "l":
		return Lowercase, nil
	case "numbers", "number", "digits", "n":
		return Numbers, nil
	case "symbols", "symbol", "s":
		return Symbols, nil
	}
	return 0, ErrUnknownClass
}

// ClassSet is a set of enabled classes. The zero value is the empty set.
type ClassSet uint8

// NewClassSet returns a set holding the given classes.
func NewClassSet(classes ...Class) ClassSet {
	var s ClassSet
	for _, c := range classes {
		s = s.With(c)
	}
	return s
}

// AllClasses returns the set with every class enabled.
func AllClasses() ClassSet {
	return NewClassSet(Classes...)
}

// Has reports whether c is enabled.
func (s ClassSet) Has(c Class) bool { return s&ClassSet(c) != 0 }

// With returns s with c enabled.
func (s ClassSet) With(c Class) ClassSet { return s | ClassSet(c) }

// Without returns s with c disabled.
func (s ClassSet) Without(c Class) ClassSet { return s &^ ClassSet(c) }

// Toggle returns s with c flipped.
func (s ClassSet) Toggle(c Class) ClassSet { return s ^ ClassSet(c) }

// Empty reports whether no class is enabled.
func (s ClassSet) Empty() bool { return s&AllClasses() == 0 }

// List returns the enabled classes in charset order.
func (s ClassSet) List() []Class {
	var out []Class
	for _, c := range Classes {
		if s.Has(c) {
			out = append(out, c)
		}
	}
	return out
}

// String joins the enabled class names with commas, in charset order.
func (s ClassSet) String() string {
	names := make([]string, 0, len(Classes))
	for _, c := range s.List() {
		names = append(names, c.String())
	}
	return strings.Join(names, ",")
}

// BuildCharset concatenates the characters of every enabled class in the
// fixed order uppercase, lowercase, numbers, symbols.
func BuildCharset(s ClassSet) string {
	var sb strings.Builder
	for _, c := range s.List() {
		sb.WriteString(c.Chars())
	}
	return sb.String()
}
