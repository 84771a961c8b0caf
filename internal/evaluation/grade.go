// Package evaluation turns a graded conversation into display state: the
// overall score and band, per-category bars and improvement tips.
package evaluation

// Grade is the categorical mark for one checklist item.
type Grade string

const (
	GradeHigh Grade = "상"
	GradeMid  Grade = "중"
	GradeLow  Grade = "하"
)

// Weight returns the score weight of g. Anything that is not 상 or 중 weighs
// as 하.
func (g Grade) Weight() int {
	switch g {
	case GradeHigh:
		return 100
	case GradeMid:
		return 60
	default:
		return 30
	}
}

// Normalize maps unknown grade strings to GradeLow.
func (g Grade) Normalize() Grade {
	switch g {
	case GradeHigh, GradeMid:
		return g
	default:
		return GradeLow
	}
}

// Badge returns the style class for g.
func (g Grade) Badge() string {
	switch g {
	case GradeHigh:
		return "excellent"
	case GradeMid:
		return "good"
	default:
		return "poor"
	}
}

// Category is one item of the consultation checklist.
type Category struct {
	Key   string
	Label string
}

// Categories lists the checklist in display order.
var Categories = []Category{
	{"symptom_location", "어디가 아픈지 구체적인 위치"},
	{"symptom_timing", "언제부터 아픈지 시작 시기"},
	{"symptom_severity", "증상이 얼마나 심한지 강도"},
	{"current_medication", "현재 복용 중인 약물"},
	{"allergy_info", "알레르기 여부"},
	{"diagnosis_info", "의사의 진단명과 진단 근거"},
	{"prescription_info", "처방약의 이름과 복용 방법"},
	{"side_effects", "약의 부작용과 주의사항"},
	{"followup_plan", "다음 진료 계획과 재방문 시기"},
	{"emergency_plan", "증상 악화 시 언제 다시 와야 하는지"},
}

var categoryIndex = func() map[string]int {
	m := make(map[string]int, len(Categories))
	for i, c := range Categories {
		m[c.Key] = i
	}
	return m
}()

// Label returns the human label for a category key, or the key itself.
func Label(key string) string {
	if i, ok := categoryIndex[key]; ok {
		return Categories[i].Label
	}
	return key
}

// CategoryOrder returns the position of key in Categories and whether it is
// a known category.
func CategoryOrder(key string) (int, bool) {
	i, ok := categoryIndex[key]
	return i, ok
}
