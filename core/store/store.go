// Package store defines the persistence contracts the assignment engine
// depends on. Implementations must keep read order stable (ascending id) and
// commit assignment batches atomically.
package store

import (
	"context"

	"github.com/taskforge/allocd/core/model"
)

// RequirementStore reads a project's requirements.
type RequirementStore interface {
	// ListConfirmed returns the project's confirmed requirements ordered by
	// ascending identifier.
	ListConfirmed(ctx context.Context, projectID int64) ([]model.Requirement, error)
}

// MemberStore reads a project's roster.
type MemberStore interface {
	// ListMembers returns the project's team members ordered by ascending
	// identifier.
	ListMembers(ctx context.Context, projectID int64) ([]model.TeamMember, error)
}

// AssignmentStore persists assignment batches. Both write operations are
// all-or-nothing: a failing batch leaves no partial rows behind.
type AssignmentStore interface {
	// ReplaceAuto deletes every auto-generated assignment belonging to the
	// project's members and inserts the batch, in one transaction. The
	// inserted assignments are returned in batch order with identifiers set.
	ReplaceAuto(ctx context.Context, projectID int64, batch []model.Assignment) ([]model.Assignment, error)
	// Append inserts the batch without touching prior assignments.
	Append(ctx context.Context, projectID int64, batch []model.Assignment) ([]model.Assignment, error)
	// ListAssignments returns the assignments of the project's members
	// ordered by ascending identifier.
	ListAssignments(ctx context.Context, projectID int64) ([]model.Assignment, error)
}
