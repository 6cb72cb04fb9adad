// Package estimate adds a pattern-aware guessability estimate next to the
// rubric score from package engine.
package estimate

import (
	zxcvbn "github.com/ccojocar/zxcvbn-go"
)

// MaxScore is the top of the zxcvbn 0..4 scale.
const MaxScore = 4

// Estimate summarises a zxcvbn evaluation.
type Estimate struct {
	Score            int     `json:"score"`
	Entropy          float64 `json:"entropy"`
	CrackTime        float64 `json:"crack_time"`
	CrackTimeDisplay string  `json:"crack_time_display"`
}

// Of evaluates password. Hints are user-specific words (email, name) that
// make a password easier to guess when it contains them.
func Of(password string, hints ...string) Estimate {
	if password == "" {
		return Estimate{CrackTimeDisplay: "instant"}
	}

	result := zxcvbn.PasswordStrength(password, hints)
	return Estimate{
		Score:            result.Score,
		Entropy:          result.Entropy,
		CrackTime:        result.CrackTime,
		CrackTimeDisplay: result.CrackTimeDisplay,
	}
}
