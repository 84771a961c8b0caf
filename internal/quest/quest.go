// Package quest derives practice goals from the latest evaluation and
// tracks which of them the participant has met during a retry visit.
package quest

import (
	"github.com/bobbyhwsong/voice-chat-app/internal/api"
	"github.com/bobbyhwsong/voice-chat-app/internal/evaluation"
)

const defaultReason = "개선이 필요한 항목입니다."

// Quest is a single practice goal.
type Quest struct {
	ID          string
	Title       string
	Description string
	Grade       evaluation.Grade // empty for default quests
	Icon        string
	Keywords    []string
	Tips        []string
}

// Source records where a quest list came from.
type Source int

const (
	SourceLowGrades Source = iota
	SourceMidGrades
	SourceDefault
)

func (s Source) String() string {
	switch s {
	case SourceLowGrades:
		return "low"
	case SourceMidGrades:
		return "mid"
	default:
		return "default"
	}
}

// Defaults returns the fixed quest set used when there is no usable
// evaluation.
func Defaults() []Quest {
	return []Quest{
		{
			ID:          "symptom",
			Title:       "증상을 구체적으로 설명하기",
			Description: "어디가, 언제부터, 얼마나 심한지 구체적으로 말해보세요.",
			Icon:        "📋",
			Keywords:    []string{"위치", "시작", "강도", "지속"},
			Tips:        catalog["symptom_description"].Tips,
		},
		{
			ID:          "medication",
			Title:       "복용 중인 약물 언급하기",
			Description: "현재 먹고 있는 약이 있다면 반드시 언급해주세요.",
			Icon:        "💊",
			Keywords:    []string{"약", "복용", "처방", "투약"},
			Tips:        medicationTips,
		},
		{
			ID:          "history",
			Title:       "과거 병력과 알레르기 말하기",
			Description: "과거 병력이나 알레르기가 있다면 미리 준비해두세요.",
			Icon:        "🏥",
			Keywords:    []string{"과거", "알레르기", "병력", "만성"},
			Tips:        historyTips,
		},
	}
}

// Derive builds the quest list from a feedback entry. Categories graded 하
// win; without any, categories graded 중 are used; without those, or with
// no entry at all, the defaults apply. Exactly one branch is taken.
func Derive(entry *api.FeedbackEntry) ([]Quest, Source) {
	if entry == nil {
		return Defaults(), SourceDefault
	}
	ev := entry.EvaluationResult
	if qs := fromGrade(ev, evaluation.GradeLow); len(qs) > 0 {
		return qs, SourceLowGrades
	}
	if qs := fromGrade(ev, evaluation.GradeMid); len(qs) > 0 {
		return qs, SourceMidGrades
	}
	return Defaults(), SourceDefault
}

func fromGrade(ev api.Evaluation, want evaluation.Grade) []Quest {
	var out []Quest
	for _, category := range evaluation.SortKeys(ev.Grades) {
		if evaluation.Grade(ev.Grades[category]) != want {
			continue
		}
		reason := ev.ScoreReasons[category]
		if reason == "" {
			reason = defaultReason
		}
		def := Lookup(category)
		out = append(out, Quest{
			ID:          category,
			Title:       def.Title,
			Description: reason,
			Grade:       want,
			Icon:        def.Icon,
			Keywords:    def.Keywords,
			Tips:        def.Tips,
		})
	}
	return out
}
