package assign

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/taskforge/allocd/core/logger"
	"github.com/taskforge/allocd/core/metrics"
	"github.com/taskforge/allocd/core/model"
	"github.com/taskforge/allocd/core/notify"
	"github.com/taskforge/allocd/core/store"
)

// Precondition errors reported before any mutation takes place.
var (
	ErrNoMembers      = errors.New("project has no team members")
	ErrNoRequirements = errors.New("project has no confirmed requirements")
)

// RunOptions selects the commit mode of a run.
type RunOptions struct {
	// Keep appends the new batch instead of replacing prior auto-generated
	// assignments.
	Keep bool
}

// Engine runs the full allocation pipeline: read inputs, allocate, commit
// atomically, shape the result. It holds no state between runs.
type Engine struct {
	requirements store.RequirementStore
	members      store.MemberStore
	assignments  store.AssignmentStore
	sink         metrics.Sink
	notifier     notify.Publisher
	log          logger.Logger
}

// NewEngine creates an Engine. The sink and notifier are optional; the stores
// are not.
func NewEngine(requirements store.RequirementStore, members store.MemberStore, assignments store.AssignmentStore, sink metrics.Sink, notifier notify.Publisher, log logger.Logger) (*Engine, error) {
	if requirements == nil || members == nil || assignments == nil {
		return nil, fmt.Errorf("assign: nil store provided to NewEngine")
	}
	if sink == nil {
		sink = metrics.NopSink{}
	}
	if log == nil {
		log = nopLogger{}
	}
	return &Engine{
		requirements: requirements,
		members:      members,
		assignments:  assignments,
		sink:         sink,
		notifier:     notifier,
		log:          log,
	}, nil
}

// Run performs one synchronous allocation for the project. Every confirmed
// requirement ends up with exactly one new assignment, or none do: the batch
// commits in a single transaction and a failing commit leaves no partial
// rows. Repeated runs with identical inputs produce identical mappings.
func (e *Engine) Run(ctx context.Context, projectID int64, opts RunOptions) (*Result, error) {
	runID := uuid.NewString()

	members, err := e.members.ListMembers(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	if len(members) == 0 {
		return nil, ErrNoMembers
	}
	reqs, err := e.requirements.ListConfirmed(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("list confirmed requirements: %w", err)
	}
	if len(reqs) == 0 {
		return nil, ErrNoRequirements
	}

	profiles := BuildProfiles(members)
	pending := Allocate(reqs, profiles, e.log)

	batch := make([]model.Assignment, len(pending))
	for i, p := range pending {
		batch[i] = model.Assignment{
			RequirementID: p.Requirement.ID,
			MemberID:      p.Member.ID,
			AutoAssigned:  true,
		}
	}

	var committed []model.Assignment
	if opts.Keep {
		committed, err = e.assignments.Append(ctx, projectID, batch)
	} else {
		committed, err = e.assignments.ReplaceAuto(ctx, projectID, batch)
	}
	if err != nil {
		return nil, fmt.Errorf("commit assignment batch: %w", err)
	}

	res := BuildResult(runID, opts.Keep, pending, committed)
	e.record(projectID, runID, opts.Keep, pending, committed)
	e.announce(ctx, projectID, res)
	st := Stats(pending)
	e.log.Infof("run %s assigned %d requirements across %d members (keep=%v, mean score %.2f, fallback rate %.2f)",
		runID, len(committed), len(res.AssignmentsGrouped), opts.Keep, st.MeanScore, st.FallbackRate)
	return res, nil
}

// record forwards run observability data; sink errors are logged, never fatal.
func (e *Engine) record(projectID int64, runID string, keep bool, pending []PendingAssignment, committed []model.Assignment) {
	now := time.Now().UTC()
	events := make([]metrics.AssignmentEvent, len(committed))
	for i, a := range committed {
		events[i] = metrics.AssignmentEvent{
			RunID:         runID,
			ProjectID:     projectID,
			AssignmentID:  a.ID,
			RequirementID: a.RequirementID,
			MemberID:      a.MemberID,
			Category:      pending[i].Category,
			Score:         pending[i].Score,
			Fallback:      pending[i].Fallback,
			Time:          now,
		}
	}
	if err := e.sink.RecordAssignments(events); err != nil {
		e.log.Errorf("metrics error: %v", err)
	}
	if rec, ok := e.sink.(metrics.RunRecorder); ok {
		ev := metrics.RunEvent{RunID: runID, ProjectID: projectID, Created: len(committed), Keep: keep, Time: now}
		if err := rec.RecordRun(ev); err != nil {
			e.log.Errorf("run metrics error: %v", err)
		}
	}
}

// announce publishes the run event when a notifier is configured.
func (e *Engine) announce(ctx context.Context, projectID int64, res *Result) {
	if e.notifier == nil {
		return
	}
	ev := notify.RunEvent{
		RunID:     res.RunID,
		ProjectID: projectID,
		Created:   res.CreatedCount,
		Keep:      res.KeepPrevious,
		Time:      time.Now().UTC(),
	}
	if err := e.notifier.PublishRunCompleted(ctx, ev); err != nil {
		e.log.Warnf("run notification failed: %v", err)
	}
}

// nopLogger keeps the engine quiet when no logger is supplied.
type nopLogger struct{}

func (nopLogger) Debugf(string, ...any)         {}
func (nopLogger) Debugw(string, map[string]any) {}
func (nopLogger) Infof(string, ...any)          {}
func (nopLogger) Warnf(string, ...any)          {}
func (nopLogger) Errorf(string, ...any)         {}
