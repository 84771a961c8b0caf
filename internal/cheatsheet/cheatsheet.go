// Package cheatsheet produces the personalised consultation script shown
// after a visit, falling back to a generic script when generation fails.
package cheatsheet

import (
	"context"
	"errors"

	"github.com/bobbyhwsong/voice-chat-app/internal/api"
)

// Outcome is the result of a generation attempt.
type Outcome int

const (
	Generated Outcome = iota
	GenerateFailed
	Unreachable
	NoParticipant
)

const (
	LoadingScript = "AI가 맞춤형 스크립트를 생성하고 있습니다..."
	LoadingShort  = "생성 중..."
	CopiedMessage = "전체 내용이 클립보드에 복사되었습니다."
	CopyFailed    = "클립보드 복사에 실패했습니다."
)

// Message is the notification text for the outcome.
func (o Outcome) Message() string {
	switch o {
	case Generated:
		return "진료 스크립트가 성공적으로 생성되었습니다."
	case GenerateFailed:
		return "스크립트 생성 중 오류가 발생했습니다."
	case Unreachable:
		return "서버 연결에 실패했습니다."
	default:
		return "사용자 정보를 찾을 수 없습니다."
	}
}

// Success reports whether the outcome should be announced as a success.
func (o Outcome) Success() bool { return o == Generated }

// Generator is the part of api.Client used here.
type Generator interface {
	GenerateCheatsheet(ctx context.Context, participantID string) (*api.Cheatsheet, error)
}

// Generate asks the backend for a cheatsheet. Backend and transport failures
// yield Default(); a missing participant yields nil.
func Generate(ctx context.Context, g Generator, participantID string) (*api.Cheatsheet, Outcome, error) {
	if participantID == "" {
		return nil, NoParticipant, nil
	}
	cs, err := g.GenerateCheatsheet(ctx, participantID)
	if err == nil {
		return cs, Generated, nil
	}
	var status *api.ErrStatus
	if errors.As(err, &status) {
		return Default(), GenerateFailed, err
	}
	return Default(), Unreachable, err
}

// Default is the generic cheatsheet.
func Default() *api.Cheatsheet {
	return &api.Cheatsheet{
		Script: []api.ScriptItem{
			{Title: "기본 인사말", Content: `"안녕하세요, 의사선생님. 저는 [이름]입니다. 오늘 [증상] 때문에 방문했습니다."`},
			{Title: "증상 설명", Content: `"[증상]이 [언제부터] 시작되어서 [어떤 정도]로 나타나고 있습니다."`},
		},
		Questions: []api.QuestionItem{
			{Title: "증상 관련 질문", Question: `"언제부터 증상이 나타났나요?"`, Answer: `"약 [시간/일] 전부터 시작되었습니다."`},
			{Title: "통증 관련 질문", Question: `"통증의 정도는 어느 정도인가요?"`, Answer: `"10점 만점에 약 [숫자]점 정도입니다."`},
		},
		MyQuestions: []api.TextItem{
			{Title: "치료 관련 질문", Text: `"이 병은 얼마나 오래 치료해야 하나요?"`},
			{Title: "생활 관리 질문", Text: `"일상생활에서 주의해야 할 점이 있나요?"`},
		},
		Precautions: []api.TextItem{
			{Title: "약물 복용 주의사항", Text: "처방받은 약을 정확한 시간에 복용하고, 부작용이 나타나면 즉시 의료진에 연락하세요."},
			{Title: "증상 악화 시 대응", Text: "증상이 악화되거나 새로운 증상이 나타나면 즉시 병원을 방문하세요."},
		},
	}
}
