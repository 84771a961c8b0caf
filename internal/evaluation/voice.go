package evaluation

import "github.com/bobbyhwsong/voice-chat-app/internal/api"

// VoiceMessages flattens conversation logs into the role/content pairs the
// voice analysis expects.
func VoiceMessages(logs []api.LogEntry) []api.VoiceMessage {
	msgs := make([]api.VoiceMessage, 0, 2*len(logs))
	for _, l := range logs {
		if l.UserMessage != "" {
			msgs = append(msgs, api.VoiceMessage{Role: "user", Content: l.UserMessage})
		}
		if l.BotResponse != "" {
			msgs = append(msgs, api.VoiceMessage{Role: "assistant", Content: l.BotResponse})
		}
	}
	return msgs
}

// VoiceFallback is shown when the voice analysis is unavailable.
func VoiceFallback() api.VoiceAnalysis {
	return api.VoiceAnalysis{
		Summary: "음성 분석 결과를 불러오지 못했지만 걱정하지 마세요.",
		Details: "대화 내용은 정상적으로 기록되었습니다. 위의 평가 결과를 참고해 다음 연습을 준비해 보세요.",
		PositiveAspects: []string{
			"끝까지 진료 대화를 마쳤습니다.",
		},
		Suggestions: []string{
			"증상의 위치, 시작 시점, 강도를 구체적으로 말해 보세요.",
			"궁금한 점은 진료가 끝나기 전에 꼭 질문하세요.",
		},
	}
}
