package engine

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Label is the coarse strength bucket derived from a score.
type Label int

const (
	Weak Label = iota
	Fair
	Good
	Strong
)

// Labels lists every label from weakest to strongest.
var Labels = []Label{Weak, Fair, Good, Strong}

// ErrUnknownLabel is returned by ParseLabel for names it does not recognise.
var ErrUnknownLabel = errors.New("unknown strength label")

const (
	MaxScore = 100

	fairThreshold   = 30
	goodThreshold   = 60
	strongThreshold = 80
)

// String returns the capitalised label name.
func (l Label) String() string {
	switch l {
	case Weak:
		return "Weak"
	case Fair:
		return "Fair"
	case Good:
		return "Good"
	case Strong:
		return "Strong"
	}
	return fmt.Sprintf("Label(%d)", int(l))
}

// ParseLabel is the case-insensitive inverse of Label.String.
func ParseLabel(s string) (Label, error) {
	for _, l := range Labels {
		if strings.EqualFold(s, l.String()) {
			return l, nil
		}
	}
	return Weak, fmt.Errorf("%w: %q", ErrUnknownLabel, s)
}

// Score rates a password in [0, MaxScore]:
//
//	length >= 8            +25
//	length >= 12           +25
//	a lowercase letter     +10
//	an uppercase letter    +10
//	a digit                +15
//	anything else          +15
func Score(password string) int {
	score := 0

	n := utf8.RuneCountInString(password)
	if n >= 8 {
		score += 25
	}
	if n >= 12 {
		score += 25
	}

	var hasLower, hasUpper, hasDigit, hasOther bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= '0' && r <= '9':
			hasDigit = true
		default:
			hasOther = true
		}
	}
	if hasLower {
		score += 10
	}
	if hasUpper {
		score += 10
	}
	if hasDigit {
		score += 15
	}
	if hasOther {
		score += 15
	}

	return min(score, MaxScore)
}

// Classify maps a score to its label. Each band includes its lower bound.
func Classify(score int) Label {
	switch {
	case score < fairThreshold:
		return Weak
	case score < goodThreshold:
		return Fair
	case score < strongThreshold:
		return Good
	default:
		return Strong
	}
}

// Strength pairs a score with its label.
type Strength struct {
	Score int
	Label Label
}

// Evaluate scores password and classifies the score.
func Evaluate(password string) Strength {
	score := Score(password)
	return Strength{Score: score, Label: Classify(score)}
}
