package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskforge/allocd/core/model"
)

func TestMemoryStore_ListConfirmedFiltersAndOrders(t *testing.T) {
	s := NewMemoryStore()
	s.AddRequirement(model.Requirement{ProjectID: 1, Title: "a", Confirmed: true})
	s.AddRequirement(model.Requirement{ProjectID: 1, Title: "b", Confirmed: false})
	s.AddRequirement(model.Requirement{ProjectID: 2, Title: "c", Confirmed: true})

	reqs, err := s.ListConfirmed(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, reqs, 1)
	assert.Equal(t, "a", reqs[0].Title)
}

func TestMemoryStore_ReplaceAuto(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	m := s.AddMember(model.TeamMember{ProjectID: 1, Name: "A"})
	r := s.AddRequirement(model.Requirement{ProjectID: 1, Title: "x", Confirmed: true})

	manual := model.Assignment{RequirementID: r.ID, MemberID: m.ID, AutoAssigned: false}
	_, err := s.Append(ctx, 1, []model.Assignment{manual})
	require.NoError(t, err)

	auto := model.Assignment{RequirementID: r.ID, MemberID: m.ID, AutoAssigned: true}
	_, err = s.ReplaceAuto(ctx, 1, []model.Assignment{auto})
	require.NoError(t, err)
	_, err = s.ReplaceAuto(ctx, 1, []model.Assignment{auto})
	require.NoError(t, err)

	list, err := s.ListAssignments(ctx, 1)
	require.NoError(t, err)
	// the manual assignment survives, auto rows never accumulate
	require.Len(t, list, 2)
	autoCount := 0
	for _, a := range list {
		if a.AutoAssigned {
			autoCount++
		}
	}
	assert.Equal(t, 1, autoCount)
}

func TestMemoryStore_InsertErrMutatesNothing(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	s.InsertErr = errors.New("boom")

	_, err := s.Append(ctx, 1, []model.Assignment{{RequirementID: 1, MemberID: 1}})
	require.Error(t, err)
	_, err = s.ReplaceAuto(ctx, 1, []model.Assignment{{RequirementID: 1, MemberID: 1}})
	require.Error(t, err)

	s.InsertErr = nil
	list, err := s.ListAssignments(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestMemoryStore_AssignsIDs(t *testing.T) {
	s := NewMemoryStore()
	a := s.AddMember(model.TeamMember{ProjectID: 1, Name: "A"})
	b := s.AddMember(model.TeamMember{ProjectID: 1, Name: "B"})
	assert.Greater(t, b.ID, a.ID)

	inserted, err := s.Append(context.Background(), 1, []model.Assignment{
		{RequirementID: 1, MemberID: a.ID, AutoAssigned: true},
	})
	require.NoError(t, err)
	require.Len(t, inserted, 1)
	assert.NotZero(t, inserted[0].ID)
	assert.False(t, inserted[0].CreatedAt.IsZero())
}
