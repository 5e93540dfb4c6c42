package notify

import (
	"context"
	"time"
)

// RunEvent announces a completed allocation run.
type RunEvent struct {
	RunID     string    `json:"run_id"`
	ProjectID int64     `json:"project_id"`
	Created   int       `json:"created_count"`
	Keep      bool      `json:"keep_previous"`
	Time      time.Time `json:"time"`
}

// Publisher pushes run events to interested consumers. Publishing is best
// effort; a failed publish never fails the run.
type Publisher interface {
	PublishRunCompleted(ctx context.Context, ev RunEvent) error
	Close() error
}
