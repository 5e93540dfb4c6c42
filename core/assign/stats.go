package assign

import "gonum.org/v1/gonum/stat"

// RunStats summarizes the winning scores of one allocation run.
type RunStats struct {
	MeanScore    float64 `json:"mean_score"`
	StdDevScore  float64 `json:"stddev_score"`
	MinScore     float64 `json:"min_score"`
	MaxScore     float64 `json:"max_score"`
	FallbackRate float64 `json:"fallback_rate"`
}

// Stats computes score statistics over the pending batch. Fallback picks carry
// their raw score like any other.
func Stats(pending []PendingAssignment) RunStats {
	if len(pending) == 0 {
		return RunStats{}
	}
	scores := make([]float64, len(pending))
	fallbacks := 0
	min, max := pending[0].Score, pending[0].Score
	for i, p := range pending {
		scores[i] = p.Score
		if p.Fallback {
			fallbacks++
		}
		if p.Score < min {
			min = p.Score
		}
		if p.Score > max {
			max = p.Score
		}
	}
	mean, std := stat.MeanStdDev(scores, nil)
	if len(scores) < 2 {
		std = 0
	}
	return RunStats{
		MeanScore:    round2(mean),
		StdDevScore:  round2(std),
		MinScore:     min,
		MaxScore:     max,
		FallbackRate: round2(float64(fallbacks) / float64(len(pending))),
	}
}
