package model

import "github.com/passforge/passforge-go/internal/engine"

// GenerateRequest is the body of POST /api/v1/generate. A missing class
// flag means enabled, so pointers tell nil apart from an explicit false.
type GenerateRequest struct {
	Length    int   `json:"length"`
	Uppercase *bool `json:"uppercase"`
	Lowercase *bool `json:"lowercase"`
	Numbers   *bool `json:"numbers"`
	Symbols   *bool `json:"symbols"`
}

// Classes returns the selected character classes.
func (r GenerateRequest) Classes() engine.ClassSet {
	var set engine.ClassSet
	if enabled(r.Uppercase) {
		set = set.With(engine.Uppercase)
	}
	if enabled(r.Lowercase) {
		set = set.With(engine.Lowercase)
	}
	if enabled(r.Numbers) {
		set = set.With(engine.Numbers)
	}
	if enabled(r.Symbols) {
		set = set.With(engine.Symbols)
	}
	return set
}

// enabled treats a missing flag as true.
func enabled(flag *bool) bool {
	return flag == nil || *flag
}

// GenerateResponse carries a generated password and its rating. With no
// class selected Empty is true, Password is "" and the rating is 0/Weak.
type GenerateResponse struct {
	Password string `json:"password"`
	Length   int    `json:"length"`
	Score    int    `json:"score"`
	Strength string `json:"strength"`
	Empty    bool   `json:"empty"`
}

// NewGenerateResponse flattens an engine result for JSON.
func NewGenerateResponse(res engine.Result) GenerateResponse {
	return GenerateResponse{
		Password: res.Password,
		Length:   len(res.Password),
		Score:    res.Strength.Score,
		Strength: res.Strength.Label.String(),
		Empty:    res.Empty,
	}
}
