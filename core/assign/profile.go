package assign

import (
	"strings"

	"github.com/taskforge/allocd/core/model"
)

// Profile is a team member's normalized matching view, computed once per run.
type Profile struct {
	Member model.TeamMember
	// Tokens covers skills and role text combined.
	Tokens TokenSet
	// SkillTokens covers the skills text alone and feeds the matched-skills
	// diagnostics.
	SkillTokens TokenSet

	role string
}

// NewProfile builds the profile for one member.
func NewProfile(m model.TeamMember) Profile {
	return Profile{
		Member:      m,
		Tokens:      Tokens(m.Skills + " " + m.Role),
		SkillTokens: Tokens(m.Skills),
		role:        strings.ToLower(m.Role),
	}
}

// BuildProfiles builds profiles preserving the member retrieval order. The
// order is load-bearing: score ties and the round-robin fallback both resolve
// by position.
func BuildProfiles(members []model.TeamMember) []Profile {
	profiles := make([]Profile, 0, len(members))
	for _, m := range members {
		profiles = append(profiles, NewProfile(m))
	}
	return profiles
}
