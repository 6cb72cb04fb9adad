package service

import (
	"context"
	"log/slog"

	"github.com/passforge/passforge-go/internal/engine"
	"github.com/passforge/passforge-go/internal/model"
)

// EventRecorder stores generation events.
type EventRecorder interface {
	Insert(ctx context.Context, event *model.GenerationEvent) error
}

// GeneratorService handles password generation business logic.
type GeneratorService struct {
	gen           *engine.Generator
	events        EventRecorder
	defaultLength int
}

// NewGeneratorService creates a new GeneratorService. events may be nil.
func NewGeneratorService(gen *engine.Generator, events EventRecorder, defaultLength int) *GeneratorService {
	if defaultLength == 0 {
		defaultLength = engine.DefaultLength
	}
	return &GeneratorService{
		gen:           gen,
		events:        events,
		defaultLength: defaultLength,
	}
}

// Generate produces a password based on the given request. Selecting no
// character class is not an error: the response is empty with a zero score.
func (s *GeneratorService) Generate(ctx context.Context, req model.GenerateRequest) (model.GenerateResponse, error) {
	cfg := engine.Config{
		Length:  req.Length,
		Classes: req.Classes(),
	}
	if cfg.Length == 0 {
		cfg.Length = s.defaultLength
	}
	if err := engine.CheckLength(cfg.Length); err != nil {
		return model.GenerateResponse{}, err
	}

	res := s.gen.Run(cfg)

	if !res.Empty {
		s.record(ctx, cfg, res.Strength)
	}

	return model.NewGenerateResponse(res), nil
}

// record stores an audit event. Failures are logged and never fail the request.
func (s *GeneratorService) record(ctx context.Context, cfg engine.Config, strength engine.Strength) {
	if s.events == nil {
		return
	}

	event := &model.GenerationEvent{
		Length:   cfg.Length,
		Classes:  cfg.Classes.String(),
		Score:    strength.Score,
		Strength: strength.Label.String(),
	}
	if err := s.events.Insert(ctx, event); err != nil {
		slog.Warn("recording generation event failed", "error", err)
	}
}
