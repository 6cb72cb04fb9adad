package repository

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"log/slog"

	"github.com/passforge/passforge-go/internal/engine"
	"github.com/passforge/passforge-go/internal/model"
)

//go:embed schema.sql
var schema string

// EventRepository persists generation events.
type EventRepository struct {
	db *sql.DB
}

// NewEventRepository creates a new EventRepository.
func NewEventRepository(db *sql.DB) *EventRepository {
	return &EventRepository{db: db}
}

// Migrate creates the generation_events table if it does not exist.
func (r *EventRepository) Migrate(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// Insert stores an event and sets its generated ID.
func (r *EventRepository) Insert(ctx context.Context, event *model.GenerationEvent) error {
	query := `INSERT INTO generation_events (length, classes, score, strength) VALUES (?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query, event.Length, event.Classes, event.Score, event.Strength)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}

	event.ID = id
	return nil
}

// strengthCount is one row of the per-label aggregate.
type strengthCount struct {
	Strength    string
	Count       int64
	TotalLength int64
}

// Summary aggregates all recorded events by strength label.
func (r *EventRepository) Summary(ctx context.Context) (model.StatsResponse, error) {
	query := `SELECT strength, COUNT(*), COALESCE(SUM(length), 0) FROM generation_events GROUP BY strength`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return model.StatsResponse{}, fmt.Errorf("query summary: %w", err)
	}
	defer rows.Close()

	var counts []strengthCount
	for rows.Next() {
		var c strengthCount
		if err := rows.Scan(&c.Strength, &c.Count, &c.TotalLength); err != nil {
			return model.StatsResponse{}, err
		}
		counts = append(counts, c)
	}
	if err := rows.Err(); err != nil {
		return model.StatsResponse{}, err
	}

	return buildSummary(counts), nil
}

func buildSummary(counts []strengthCount) model.StatsResponse {
	resp := model.StatsResponse{ByStrength: make(map[string]int64, len(engine.Labels))}
	for _, l := range engine.Labels {
		resp.ByStrength[l.String()] = 0
	}

	var totalLength int64
	for _, c := range counts {
		label, err := engine.ParseLabel(c.Strength)
		if err != nil {
			slog.Warn("skipping events with unknown strength", "strength", c.Strength, "count", c.Count)
			continue
		}
		resp.ByStrength[label.String()] += c.Count
		resp.Total += c.Count
		totalLength += c.TotalLength
	}
	if resp.Total > 0 {
		resp.AverageLength = float64(totalLength) / float64(resp.Total)
	}

	return resp
}
