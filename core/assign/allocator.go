package assign

import (
	"math"
	"sort"

	"github.com/taskforge/allocd/core/logger"
	"github.com/taskforge/allocd/core/model"
)

// maxMatchedSkills caps the matched-skill tokens kept for display.
const maxMatchedSkills = 10

// PendingAssignment is one requirement-to-member decision before persistence.
type PendingAssignment struct {
	Requirement model.Requirement
	Member      model.TeamMember
	Category    string
	// Score is the winning score rounded to two decimals. On a fallback pick
	// it still reports the best score seen, which is zero or negative.
	Score         float64
	MatchedSkills []string
	Fallback      bool
}

// Allocate assigns every requirement to exactly one member profile in a
// single deterministic pass. Requirements are processed ascending by
// identifier; profiles are scanned in retrieval order and the first maximum
// wins. When no profile yields a positive score the shared round-robin cursor
// picks the next member, so coverage is complete even without any textual
// signal. The load map and the cursor live only for the duration of the call.
func Allocate(requirements []model.Requirement, profiles []Profile, log logger.Logger) []PendingAssignment {
	if len(profiles) == 0 || len(requirements) == 0 {
		return nil
	}

	ordered := make([]model.Requirement, len(requirements))
	copy(ordered, requirements)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].ID < ordered[j].ID })

	load := make(map[int64]int, len(profiles))
	cursor := 0

	pending := make([]PendingAssignment, 0, len(ordered))
	for _, req := range ordered {
		reqTokens := RequirementTokens(req, log)
		cat := Classify(reqTokens)

		var best *Profile
		bestScore := -9999.0
		for i := range profiles {
			s := Score(reqTokens, cat, profiles[i], load[profiles[i].Member.ID])
			if s > bestScore {
				bestScore = s
				best = &profiles[i]
			}
		}

		fallback := false
		if best == nil || bestScore <= 0 {
			best = &profiles[cursor%len(profiles)]
			cursor++
			fallback = true
		}
		load[best.Member.ID]++

		matched := best.SkillTokens.Intersect(reqTokens)
		if len(matched) > maxMatchedSkills {
			matched = matched[:maxMatchedSkills]
		}

		if log != nil {
			log.Debugw("requirement allocated", map[string]any{
				"requirement_id": req.ID,
				"member_id":      best.Member.ID,
				"category":       cat,
				"score":          bestScore,
				"fallback":       fallback,
			})
		}

		pending = append(pending, PendingAssignment{
			Requirement:   req,
			Member:        best.Member,
			Category:      cat,
			Score:         round2(bestScore),
			MatchedSkills: matched,
			Fallback:      fallback,
		})
	}
	return pending
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
