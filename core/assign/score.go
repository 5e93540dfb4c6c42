package assign

import "strings"

// roleMarker grants a bonus when the member's lowered role text contains one
// of the markers for the requirement's category. The docs bonus is
// intentionally smaller than the rest.
type roleMarker struct {
	words []string
	bonus float64
}

var roleMarkers = map[string]roleMarker{
	"backend":  {words: []string{"backend", "백엔드"}, bonus: 2},
	"frontend": {words: []string{"frontend", "프론트"}, bonus: 2},
	"ai":       {words: []string{"ai", "ml", "데이터"}, bonus: 2},
	"devops":   {words: []string{"devops", "infra", "ops"}, bonus: 2},
	"data":     {words: []string{"data"}, bonus: 2},
	"mobile":   {words: []string{"mobile", "android", "ios"}, bonus: 2},
	"docs":     {words: []string{"pm", "기획", "문서"}, bonus: 1},
}

// Score rates one member profile against one requirement.
//
//	overlap      = |requirement tokens ∩ member tokens|
//	role bonus   = marker bonus when the role text names the category,
//	               +1 when the category keywords hit the member tokens directly
//	fairness     = 0.1 per assignment the member already holds in this run
//	score        = 2*overlap + role bonus - fairness
//
// The fairness penalty softly discourages piling work on one member; a large
// token overlap still wins through it. Without an inferred category the role
// bonus contributes nothing.
func Score(reqTokens TokenSet, cat string, p Profile, load int) float64 {
	overlap := float64(p.Tokens.IntersectCount(reqTokens))

	var bonus float64
	if cat != "" {
		if marker, ok := roleMarkers[cat]; ok {
			for _, w := range marker.words {
				if strings.Contains(p.role, w) {
					bonus += marker.bonus
					break
				}
			}
		}
		if categoryWords(cat).IntersectCount(p.Tokens) > 0 {
			bonus++
		}
	}

	penalty := 0.1 * float64(load)
	return overlap*2 + bonus - penalty
}
