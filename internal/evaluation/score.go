package evaluation

import "math"

// Band names for the overall score.
const (
	BandExcellent = "우수"
	BandGood      = "양호"
	BandFair      = "보통"
	BandPoor      = "개선 필요"
)

// OverallScore is the mean weight of all grades, rounded half up. An empty
// map scores 0.
func OverallScore(grades map[string]Grade) int {
	if len(grades) == 0 {
		return 0
	}
	total := 0
	for _, g := range grades {
		total += g.Weight()
	}
	return int(math.Floor(float64(total)/float64(len(grades)) + 0.5))
}

// OverallGrade maps a score to its band.
func OverallGrade(score int) string {
	switch {
	case score >= 90:
		return BandExcellent
	case score >= 70:
		return BandGood
	case score >= 50:
		return BandFair
	default:
		return BandPoor
	}
}

// OverallDescription is the one-line summary for a score's band.
func OverallDescription(score int) string {
	switch {
	case score >= 90:
		return "핵심 체크리스트를 매우 잘 준수했습니다."
	case score >= 70:
		return "대부분의 핵심 체크리스트를 잘 준수했습니다."
	case score >= 50:
		return "일부 핵심 체크리스트를 준수했습니다."
	default:
		return "핵심 체크리스트 준수도가 낮습니다. 개선이 필요합니다."
	}
}
