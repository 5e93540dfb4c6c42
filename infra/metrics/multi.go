package metrics

import coremetrics "github.com/taskforge/allocd/core/metrics"

// MultiSink fans allocation events out to multiple sinks.
type MultiSink struct {
	Sinks []coremetrics.Sink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...coremetrics.Sink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordAssignments forwards the events to all sinks, returning the first
// error encountered.
func (m *MultiSink) RecordAssignments(events []coremetrics.AssignmentEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordAssignments(events); err != nil {
			return err
		}
	}
	return nil
}

// RecordRun forwards the run summary to sinks that record runs.
func (m *MultiSink) RecordRun(ev coremetrics.RunEvent) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(coremetrics.RunRecorder); ok {
			if err := rec.RecordRun(ev); err != nil {
				return err
			}
		}
	}
	return nil
}
