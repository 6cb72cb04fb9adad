package model

import "github.com/passforge/passforge-go/internal/estimate"

// StrengthRequest asks for the strength of an existing password.
type StrengthRequest struct {
	Password string   `json:"password"`
	Hints    []string `json:"hints,omitempty"`
}

// StrengthResponse carries the rubric score, its label and a zxcvbn estimate.
type StrengthResponse struct {
	Score    int               `json:"score"`
	Strength string            `json:"strength"`
	Estimate estimate.Estimate `json:"estimate"`
}
