package model

import "time"

// GenerationEvent records one generation request. The password itself is never stored.
type GenerationEvent struct {
	ID        int64
	Length    int
	Classes   string
	Score     int
	Strength  string
	CreatedAt time.Time
}

// StatsResponse summarises recorded generation events.
type StatsResponse struct {
	Total         int64            `json:"total"`
	ByStrength    map[string]int64 `json:"by_strength"`
	AverageLength float64          `json:"average_length"`
}
