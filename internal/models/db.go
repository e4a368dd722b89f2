package models

import (
	"encoding/json"
	"time"
)

// Outcome is how one search call ended
type Outcome string

const (
	OutcomeOK              Outcome = "OK"
	OutcomeEmpty           Outcome = "EMPTY"
	OutcomeCached          Outcome = "CACHED"
	OutcomeBlocked         Outcome = "BLOCKED"
	OutcomeNotFound        Outcome = "NOT_FOUND"
	OutcomeNavigationError Outcome = "NAVIGATION_ERROR"
)

// Failed is true for outcomes that returned an error to the caller
func (o Outcome) Failed() bool {
	switch o {
	case OutcomeBlocked, OutcomeNotFound, OutcomeNavigationError:
		return true
	}
	return false
}

// SearchRun is the audit record of one search call. It never holds listing data.
type SearchRun struct {
	ID        int64         `json:"id"`
	Source    string        `json:"source"`
	Query     string        `json:"query"`
	Location  string        `json:"location"`
	Outcome   Outcome       `json:"outcome"`
	JobCount  int           `json:"job_count"`
	Error     string        `json:"error,omitempty"`
	Duration  time.Duration `json:"-"`
	CreatedAt time.Time     `json:"created_at"`
}

// MarshalJSON reports Duration as whole milliseconds under duration_ms
func (r SearchRun) MarshalJSON() ([]byte, error) {
	type run SearchRun
	return json.Marshal(struct {
		run
		DurationMS int64 `json:"duration_ms"`
	}{run(r), r.Duration.Milliseconds()})
}
