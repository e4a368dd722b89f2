package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchRun_JSONDurationMillis(t *testing.T) {
	run := SearchRun{
		ID:        3,
		Source:    "LinkedIn",
		Query:     "golang",
		Outcome:   OutcomeOK,
		JobCount:  25,
		Duration:  4250 * time.Millisecond,
		CreatedAt: time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC),
	}

	data, err := json.Marshal(run)
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(data, &body))
	assert.Equal(t, float64(4250), body["duration_ms"])
	assert.NotContains(t, body, "duration")
	assert.Equal(t, "OK", body["outcome"])
	assert.Equal(t, float64(25), body["job_count"])
	assert.Equal(t, "2026-10-17T09:00:00Z", body["created_at"])
	assert.NotContains(t, body, "error")
}

func TestOutcome_Failed(t *testing.T) {
	for _, o := range []Outcome{OutcomeBlocked, OutcomeNotFound, OutcomeNavigationError} {
		assert.True(t, o.Failed(), o)
	}
	for _, o := range []Outcome{OutcomeOK, OutcomeEmpty, OutcomeCached} {
		assert.False(t, o.Failed(), o)
	}
}
