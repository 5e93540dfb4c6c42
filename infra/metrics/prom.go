package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/taskforge/allocd/core/metrics"
)

// PromSink records allocation events in Prometheus metrics.
type PromSink struct {
	assignments *prometheus.CounterVec
	runs        *prometheus.CounterVec
	scores      *prometheus.HistogramVec
}

// NewPromSink registers allocation metrics on the provided registerer. If reg
// is nil the default registerer is used. Already-registered collectors are
// reused.
func NewPromSink(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	assignments := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "assignments_created_total",
		Help: "Total number of assignments created",
	}, []string{"category", "fallback"})
	runs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "assignment_runs_total",
		Help: "Total number of allocation runs",
	}, []string{"keep"})
	scores := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "assignment_score",
		Help:    "Winning score distribution per assignment",
		Buckets: []float64{0, 1, 2, 4, 6, 10, 15, 25},
	}, []string{"category"})

	s := &PromSink{assignments: assignments, runs: runs, scores: scores}
	if err := register(reg, &s.assignments); err != nil {
		return nil, err
	}
	if err := register(reg, &s.runs); err != nil {
		return nil, err
	}
	if err := registerHist(reg, &s.scores); err != nil {
		return nil, err
	}
	return s, nil
}

func register(reg prometheus.Registerer, c **prometheus.CounterVec) error {
	if err := reg.Register(*c); err != nil {
		are, ok := err.(prometheus.AlreadyRegisteredError)
		if !ok {
			return err
		}
		*c = are.ExistingCollector.(*prometheus.CounterVec)
	}
	return nil
}

func registerHist(reg prometheus.Registerer, h **prometheus.HistogramVec) error {
	if err := reg.Register(*h); err != nil {
		are, ok := err.(prometheus.AlreadyRegisteredError)
		if !ok {
			return err
		}
		*h = are.ExistingCollector.(*prometheus.HistogramVec)
	}
	return nil
}

// RecordAssignments increments the counters for each created assignment.
func (s *PromSink) RecordAssignments(events []coremetrics.AssignmentEvent) error {
	for _, ev := range events {
		cat := ev.Category
		if cat == "" {
			cat = "none"
		}
		s.assignments.WithLabelValues(cat, strconv.FormatBool(ev.Fallback)).Inc()
		s.scores.WithLabelValues(cat).Observe(ev.Score)
	}
	return nil
}

// RecordRun counts the run per commit mode.
func (s *PromSink) RecordRun(ev coremetrics.RunEvent) error {
	s.runs.WithLabelValues(strconv.FormatBool(ev.Keep)).Inc()
	return nil
}
