package model

import "time"

// Requirement is a confirmed unit of work belonging to a project. Description
// may hold a structured planning payload as JSON; it is tolerated when empty
// or unparsable.
type Requirement struct {
	ID          int64  `json:"id"`
	ProjectID   int64  `json:"project_id"`
	Title       string `json:"title"`
	Summary     string `json:"summary"`
	Description string `json:"description,omitempty"`
	Confirmed   bool   `json:"confirmed"`
}

// TeamMember is a project collaborator with free-text role and skills.
type TeamMember struct {
	ID        int64  `json:"id"`
	ProjectID int64  `json:"project_id"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	Skills    string `json:"skills"`
	Email     string `json:"email,omitempty"`
}

// Assignment links exactly one requirement to one team member. Start and end
// dates are reserved for downstream scheduling and never set by the engine.
type Assignment struct {
	ID            int64      `json:"id"`
	RequirementID int64      `json:"requirement_id"`
	MemberID      int64      `json:"member_id"`
	AutoAssigned  bool       `json:"auto_assigned"`
	StartDate     *time.Time `json:"start_date,omitempty"`
	EndDate       *time.Time `json:"end_date,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}
