package service

import (
	"context"

	"github.com/passforge/passforge-go/internal/model"
)

// StatsReader aggregates stored generation events.
type StatsReader interface {
	Summary(ctx context.Context) (model.StatsResponse, error)
}

// StatsService exposes generation statistics to operators.
type StatsService struct {
	repo StatsReader
}

// NewStatsService creates a new StatsService reading from repo.
func NewStatsService(repo StatsReader) *StatsService {
	return &StatsService{repo: repo}
}

// Summary returns event totals per strength label and the average length.
func (s *StatsService) Summary(ctx context.Context) (model.StatsResponse, error) {
	return s.repo.Summary(ctx)
}
