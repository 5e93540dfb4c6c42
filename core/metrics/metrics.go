package metrics

import "time"

// AssignmentEvent represents one committed requirement-to-member assignment.
type AssignmentEvent struct {
	RunID         string
	ProjectID     int64
	AssignmentID  int64
	RequirementID int64
	MemberID      int64
	Category      string
	Score         float64
	Fallback      bool
	Time          time.Time
}

// RunEvent summarizes one allocation run.
type RunEvent struct {
	RunID     string
	ProjectID int64
	Created   int
	Keep      bool
	Time      time.Time
}

// Sink records assignment events for observability purposes.
type Sink interface {
	RecordAssignments(events []AssignmentEvent) error
}

// RunRecorder records run summaries. Sinks may implement it in addition to
// Sink.
type RunRecorder interface {
	RecordRun(ev RunEvent) error
}

// NopSink implements Sink with no-op methods.
type NopSink struct{}

func (NopSink) RecordAssignments([]AssignmentEvent) error { return nil }
func (NopSink) RecordRun(RunEvent) error                  { return nil }
