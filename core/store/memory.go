package store

import (
	"context"
	"sync"
	"time"

	"github.com/taskforge/allocd/core/model"
)

// MemoryStore keeps all records in memory for tests and one-shot runs. It
// implements RequirementStore, MemberStore and AssignmentStore.
type MemoryStore struct {
	mu           sync.Mutex
	members      map[int64][]model.TeamMember
	requirements map[int64][]model.Requirement
	assignments  map[int64][]model.Assignment
	seq          int64

	// InsertErr, when set, makes the next batch write fail without mutating
	// any state. Used to exercise rollback behaviour.
	InsertErr error
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		members:      map[int64][]model.TeamMember{},
		requirements: map[int64][]model.Requirement{},
		assignments:  map[int64][]model.Assignment{},
	}
}

var (
	_ RequirementStore = (*MemoryStore)(nil)
	_ MemberStore      = (*MemoryStore)(nil)
	_ AssignmentStore  = (*MemoryStore)(nil)
)

func (s *MemoryStore) nextID() int64 {
	s.seq++
	return s.seq
}

// AddMember stores a team member, assigning an identifier when absent.
func (s *MemoryStore) AddMember(m model.TeamMember) model.TeamMember {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m.ID == 0 {
		m.ID = s.nextID()
	} else if m.ID > s.seq {
		s.seq = m.ID
	}
	s.members[m.ProjectID] = append(s.members[m.ProjectID], m)
	return m
}

// AddRequirement stores a requirement, assigning an identifier when absent.
func (s *MemoryStore) AddRequirement(r model.Requirement) model.Requirement {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r.ID == 0 {
		r.ID = s.nextID()
	} else if r.ID > s.seq {
		s.seq = r.ID
	}
	s.requirements[r.ProjectID] = append(s.requirements[r.ProjectID], r)
	return r
}

// ListMembers returns the project roster in insertion order.
func (s *MemoryStore) ListMembers(_ context.Context, projectID int64) ([]model.TeamMember, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.TeamMember, len(s.members[projectID]))
	copy(out, s.members[projectID])
	return out, nil
}

// ListConfirmed returns the project's confirmed requirements in insertion order.
func (s *MemoryStore) ListConfirmed(_ context.Context, projectID int64) ([]model.Requirement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Requirement
	for _, r := range s.requirements[projectID] {
		if r.Confirmed {
			out = append(out, r)
		}
	}
	return out, nil
}

// ReplaceAuto drops prior auto-generated assignments for the project and
// inserts the batch. The whole operation happens under one lock and mutates
// nothing when the injected error fires.
func (s *MemoryStore) ReplaceAuto(_ context.Context, projectID int64, batch []model.Assignment) ([]model.Assignment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.InsertErr != nil {
		return nil, s.InsertErr
	}
	var kept []model.Assignment
	for _, a := range s.assignments[projectID] {
		if !a.AutoAssigned {
			kept = append(kept, a)
		}
	}
	s.assignments[projectID] = kept
	return s.insert(projectID, batch), nil
}

// Append inserts the batch leaving prior assignments untouched.
func (s *MemoryStore) Append(_ context.Context, projectID int64, batch []model.Assignment) ([]model.Assignment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.InsertErr != nil {
		return nil, s.InsertErr
	}
	return s.insert(projectID, batch), nil
}

func (s *MemoryStore) insert(projectID int64, batch []model.Assignment) []model.Assignment {
	now := time.Now().UTC()
	out := make([]model.Assignment, 0, len(batch))
	for _, a := range batch {
		a.ID = s.nextID()
		a.CreatedAt = now
		s.assignments[projectID] = append(s.assignments[projectID], a)
		out = append(out, a)
	}
	return out
}

// ListAssignments returns the project's assignments in insertion order.
func (s *MemoryStore) ListAssignments(_ context.Context, projectID int64) ([]model.Assignment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Assignment, len(s.assignments[projectID]))
	copy(out, s.assignments[projectID])
	return out, nil
}
