package evaluation

import (
	"fmt"
	"sort"

	"github.com/bobbyhwsong/voice-chat-app/internal/api"
)

// Status is the load state of an evaluation view.
type Status int

const (
	StatusPending Status = iota
	StatusLoaded
	StatusNoData
	StatusError
)

// Summary is the headline of an evaluation view.
type Summary struct {
	Score       int
	Title       string
	Description string
}

// Row is one category line of an evaluation view.
type Row struct {
	Key         string
	Label       string
	Grade       Grade
	Percent     int
	Badge       string
	Reason      string
	ReasonShown bool
}

// Tip is one improvement suggestion.
type Tip struct {
	Text      string
	Important bool
}

const praiseTip = "훌륭합니다! 핵심 체크리스트를 잘 준수했습니다."

// State holds the grade map of the current evaluation and everything
// derived from it. The overall score is recomputed from the grade map on
// every read.
type State struct {
	status  Status
	grades  map[string]Grade
	reasons map[string]string
	tips    []string
	shown   map[string]bool
}

// NewState returns a pending State.
func NewState() *State {
	return &State{
		grades:  map[string]Grade{},
		reasons: map[string]string{},
		shown:   map[string]bool{},
	}
}

// Status returns the current load state.
func (s *State) Status() Status {
	return s.status
}

// Apply loads a complete evaluation from the backend.
func (s *State) Apply(ev api.Evaluation) {
	grades := make(map[string]Grade, len(ev.Grades))
	for k, g := range ev.Grades {
		grades[k] = Grade(g)
	}
	s.ApplyGrades(grades)
	s.reasons = make(map[string]string, len(ev.ScoreReasons))
	for k, r := range ev.ScoreReasons {
		s.reasons[k] = r
	}
	s.tips = append([]string(nil), ev.ImprovementTips...)
}

// ApplyGrades replaces the grade map. Applying the same map twice leaves
// the view unchanged. Reason visibility is kept.
func (s *State) ApplyGrades(grades map[string]Grade) {
	s.grades = make(map[string]Grade, len(grades))
	for k, g := range grades {
		s.grades[k] = g
	}
	s.status = StatusLoaded
}

// SetNoData switches to the "no conversation yet" state.
func (s *State) SetNoData() {
	s.reset()
	s.status = StatusNoData
}

// SetError switches to the evaluation failure state. Nothing from a failed
// evaluation is kept.
func (s *State) SetError() {
	s.reset()
	s.status = StatusError
}

func (s *State) reset() {
	s.grades = map[string]Grade{}
	s.reasons = map[string]string{}
	s.tips = nil
}

// Grades returns a copy of the grade map.
func (s *State) Grades() map[string]Grade {
	out := make(map[string]Grade, len(s.grades))
	for k, g := range s.grades {
		out[k] = g
	}
	return out
}

// Summary returns the overall score, band and description.
func (s *State) Summary() Summary {
	switch s.status {
	case StatusNoData:
		return Summary{Score: 0, Title: "데이터 없음", Description: "진료 연습을 먼저 진행해주세요."}
	case StatusError:
		return Summary{Score: 0, Title: "평가 오류", Description: "평가 중 오류가 발생했습니다. 다시 시도해주세요."}
	case StatusPending:
		return Summary{Score: 0, Title: "평가 중", Description: "대화 내용을 평가하고 있습니다..."}
	}
	score := OverallScore(s.grades)
	return Summary{Score: score, Title: OverallGrade(score), Description: OverallDescription(score)}
}

// Rows returns one row per graded category: known categories in checklist
// order, then unknown keys sorted.
func (s *State) Rows() []Row {
	keys := SortKeys(s.grades)
	rows := make([]Row, 0, len(keys))
	for _, k := range keys {
		g := s.grades[k]
		rows = append(rows, Row{
			Key:         k,
			Label:       Label(k),
			Grade:       g.Normalize(),
			Percent:     g.Weight(),
			Badge:       g.Badge(),
			Reason:      s.reasons[k],
			ReasonShown: s.shown[k],
		})
	}
	return rows
}

// ToggleReason flips the visibility of a category's score reason and
// returns the new visibility. Reasons start hidden.
func (s *State) ToggleReason(key string) bool {
	s.shown[key] = !s.shown[key]
	return s.shown[key]
}

// Reason returns the stored score reason for key.
func (s *State) Reason(key string) string {
	return s.reasons[key]
}

// Tips returns improvement suggestions. When any category is graded 하 the
// backend's tips are shown, or one generic tip per 하 category if it sent
// none. Otherwise a single praise line is returned.
func (s *State) Tips() []Tip {
	if s.status != StatusLoaded {
		return nil
	}
	var poor []string
	for _, k := range SortKeys(s.grades) {
		if s.grades[k].Normalize() == GradeLow {
			poor = append(poor, k)
		}
	}
	if len(poor) == 0 {
		return []Tip{{Text: praiseTip}}
	}
	var tips []Tip
	if len(s.tips) > 0 {
		for _, t := range s.tips {
			tips = append(tips, Tip{Text: t, Important: true})
		}
		return tips
	}
	for _, k := range poor {
		tips = append(tips, Tip{Text: fmt.Sprintf("%s 항목을 개선해주세요.", Label(k)), Important: true})
	}
	return tips
}

// SortKeys orders category keys: known checklist keys first in checklist
// order, then anything else alphabetically.
func SortKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		oi, ki := CategoryOrder(keys[i])
		oj, kj := CategoryOrder(keys[j])
		switch {
		case ki && kj:
			return oi < oj
		case ki != kj:
			return ki
		default:
			return keys[i] < keys[j]
		}
	})
	return keys
}
