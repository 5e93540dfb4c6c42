package assign

import (
	"strings"

	"github.com/taskforge/allocd/core/model"
)

// defaultRoleText fills the display role when a requirement carries neither a
// title nor a summary. The Korean phrase means "to-do".
const defaultRoleText = "할 일"

// CreatedRef identifies one created assignment.
type CreatedRef struct {
	AssignmentID  int64 `json:"assignment_id"`
	RequirementID int64 `json:"requirement_id"`
	MemberID      int64 `json:"member_id"`
}

// MemberCount is the number of assignments a member received in one run.
type MemberCount struct {
	MemberID int64 `json:"member_id"`
	Count    int   `json:"count"`
}

// AssignmentRow is a flat per-assignment view.
type AssignmentRow struct {
	AssignmentID     int64    `json:"assignment_id"`
	RequirementID    int64    `json:"requirement_id"`
	MemberID         int64    `json:"member_id"`
	RequirementTitle string   `json:"requirement_title"`
	RoleText         string   `json:"role_text"`
	Category         string   `json:"category"`
	AssignedTo       string   `json:"assigned_to"`
	Score            float64  `json:"score"`
	MatchedSkills    []string `json:"matched_skills"`
}

// MemberTask is one task inside a member group.
type MemberTask struct {
	AssignmentID  int64    `json:"assignment_id"`
	RequirementID int64    `json:"requirement_id"`
	Title         string   `json:"title"`
	RoleText      string   `json:"role_text"`
	Category      string   `json:"category"`
	Score         float64  `json:"score"`
	MatchedSkills []string `json:"matched_skills"`
}

// MemberGroup collects a member's identity and received tasks.
type MemberGroup struct {
	MemberID  int64        `json:"member_id"`
	Name      string       `json:"name"`
	Role      string       `json:"role"`
	Skills    string       `json:"skills"`
	Email     string       `json:"email,omitempty"`
	TaskCount int          `json:"task_count"`
	Tasks     []MemberTask `json:"tasks"`
}

// Result is the shaped outcome of one allocation run.
type Result struct {
	RunID              string          `json:"run_id"`
	Message            string          `json:"message"`
	KeepPrevious       bool            `json:"keep_previous"`
	CreatedCount       int             `json:"created_count"`
	Created            []CreatedRef    `json:"created"`
	SummaryByMember    []MemberCount   `json:"summary_by_member"`
	Assignments        []AssignmentRow `json:"assignments"`
	AssignmentsGrouped []MemberGroup   `json:"assignments_grouped"`
}

// BuildResult shapes the committed batch for the caller. Ordering is
// deterministic: rows follow the allocation order, groups and the summary
// follow each member's first assignment.
func BuildResult(runID string, keep bool, pending []PendingAssignment, committed []model.Assignment) *Result {
	res := &Result{
		RunID:        runID,
		Message:      "auto assignment completed (skill and stack based)",
		KeepPrevious: keep,
		CreatedCount: len(committed),
		Created:      make([]CreatedRef, 0, len(committed)),
	}

	groupIdx := make(map[int64]int)
	countIdx := make(map[int64]int)
	for i, a := range committed {
		p := pending[i]
		roleText := strings.TrimSpace(p.Requirement.Title)
		if roleText == "" {
			roleText = strings.TrimSpace(p.Requirement.Summary)
		}
		if roleText == "" {
			roleText = defaultRoleText
		}

		res.Created = append(res.Created, CreatedRef{
			AssignmentID:  a.ID,
			RequirementID: p.Requirement.ID,
			MemberID:      p.Member.ID,
		})
		res.Assignments = append(res.Assignments, AssignmentRow{
			AssignmentID:     a.ID,
			RequirementID:    p.Requirement.ID,
			MemberID:         p.Member.ID,
			RequirementTitle: p.Requirement.Title,
			RoleText:         roleText,
			Category:         p.Category,
			AssignedTo:       p.Member.Name,
			Score:            p.Score,
			MatchedSkills:    p.MatchedSkills,
		})

		task := MemberTask{
			AssignmentID:  a.ID,
			RequirementID: p.Requirement.ID,
			Title:         p.Requirement.Title,
			RoleText:      roleText,
			Category:      p.Category,
			Score:         p.Score,
			MatchedSkills: p.MatchedSkills,
		}
		if gi, ok := groupIdx[p.Member.ID]; ok {
			res.AssignmentsGrouped[gi].Tasks = append(res.AssignmentsGrouped[gi].Tasks, task)
			res.AssignmentsGrouped[gi].TaskCount++
		} else {
			groupIdx[p.Member.ID] = len(res.AssignmentsGrouped)
			res.AssignmentsGrouped = append(res.AssignmentsGrouped, MemberGroup{
				MemberID:  p.Member.ID,
				Name:      p.Member.Name,
				Role:      p.Member.Role,
				Skills:    p.Member.Skills,
				Email:     p.Member.Email,
				TaskCount: 1,
				Tasks:     []MemberTask{task},
			})
		}

		if ci, ok := countIdx[p.Member.ID]; ok {
			res.SummaryByMember[ci].Count++
		} else {
			countIdx[p.Member.ID] = len(res.SummaryByMember)
			res.SummaryByMember = append(res.SummaryByMember, MemberCount{MemberID: p.Member.ID, Count: 1})
		}
	}
	return res
}
