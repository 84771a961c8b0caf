// Package guideline holds the pre-visit checklist a participant confirms
// before the practice consultation starts.
package guideline

import (
	"context"
	"fmt"
	"time"

	"github.com/bobbyhwsong/voice-chat-app/internal/session"
)

// Items are the checklist entries, in display order.
var Items = []string{
	"조용한 곳에서 연습하고 있으며 스피커(또는 이어폰) 소리가 잘 들립니다.",
	"증상의 위치, 시작 시점, 강도, 지속 기간을 설명할 준비가 되었습니다.",
	"복용 중인 약과 과거 병력, 알레르기를 정리해 두었습니다.",
	"의사에게 궁금한 점을 질문할 준비가 되었습니다.",
	"연습 대화가 기록되고 평가에 사용된다는 것에 동의합니다.",
}

// Ready reports whether every item is checked. An empty checklist is not
// ready.
func Ready(checked []bool) bool {
	if len(checked) == 0 {
		return false
	}
	for _, c := range checked {
		if !c {
			return false
		}
	}
	return true
}

// Complete records that the guideline was finished at the given time.
func Complete(ctx context.Context, sessions *session.Store, checked []bool, at time.Time) (session.UserSession, error) {
	if !Ready(checked) {
		return session.UserSession{}, fmt.Errorf("guideline: %d of %d items unchecked", unchecked(checked), len(checked))
	}
	return sessions.MarkGuidelineCompleted(ctx, at)
}

func unchecked(checked []bool) int {
	n := 0
	for _, c := range checked {
		if !c {
			n++
		}
	}
	return n
}
