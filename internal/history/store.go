// Package history persists completed script runs for later retrieval.
// Each run is stored as a typed record keyed by a generated run ID.
package history

import (
	"time"

	"github.com/google/uuid"

	"github.com/deixis/scriptor"
)

// Record holds one completed script run.
type Record struct {
	ID         string                 `json:"id"`
	Script     string                 `json:"script"`
	Strategy   string                 `json:"strategy"`
	StartedAt  time.Time              `json:"started_at"`
	DurationMS int64                  `json:"duration_ms"`
	Success    bool                   `json:"success"`
	Output     scriptor.ProcessOutput `json:"output"`
}

// NewRecord builds a Record for a completed run with a fresh run ID.
func NewRecord(script, strategy string, started time.Time, out *scriptor.ProcessOutput) *Record {
	return &Record{
		ID:         uuid.New().String(),
		Script:     script,
		Strategy:   strategy,
		StartedAt:  started,
		DurationMS: time.Since(started).Milliseconds(),
		Success:    out.Success(),
		Output:     *out,
	}
}

// Store persists and retrieves run records.
type Store interface {
	Save(rec *Record) error
	Load(runID string) (*Record, error)
}
