package service

import (
	"errors"
	"unicode/utf8"

	"github.com/passforge/passforge-go/internal/engine"
	"github.com/passforge/passforge-go/internal/estimate"
	"github.com/passforge/passforge-go/internal/model"
)

const maxEvaluateLength = 256

// Validation errors returned by StrengthService.Evaluate.
var (
	ErrPasswordRequired = errors.New("password is required")
	ErrPasswordTooLong  = errors.New("password must be at most 256 characters")
)

// StrengthService scores existing passwords.
type StrengthService struct{}

// NewStrengthService creates a new StrengthService.
func NewStrengthService() *StrengthService {
	return &StrengthService{}
}

// Evaluate scores req.Password with the rubric and a zxcvbn estimate.
func (s *StrengthService) Evaluate(req model.StrengthRequest) (model.StrengthResponse, error) {
	if req.Password == "" {
		return model.StrengthResponse{}, ErrPasswordRequired
	}
	if utf8.RuneCountInString(req.Password) > maxEvaluateLength {
		return model.StrengthResponse{}, ErrPasswordTooLong
	}

	strength := engine.Evaluate(req.Password)
	return model.StrengthResponse{
		Score:    strength.Score,
		Strength: strength.Label.String(),
		Estimate: estimate.Of(req.Password, req.Hints...),
	}, nil
}
