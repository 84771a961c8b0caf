package feedback

import (
	"errors"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobbyhwsong/voice-chat-app/internal/api"
	"github.com/bobbyhwsong/voice-chat-app/internal/evaluation"
	"github.com/bobbyhwsong/voice-chat-app/internal/screen"
	"github.com/bobbyhwsong/voice-chat-app/internal/screens/screentest"
)

func isLocal(msg tea.Msg) bool {
	switch msg.(type) {
	case logsMsg, evaluatedMsg, voiceMsg:
		return true
	}
	return false
}

var sampleLogs = []api.LogEntry{
	{Timestamp: "2026-04-02T10:00:00", UserMessage: "머리가 아파요", BotResponse: "언제부터 아프셨나요?"},
	{Timestamp: "2026-04-02T10:01:00", UserMessage: "사흘 전부터요", BotResponse: "드시는 약이 있나요?"},
}

func withLogs(env *screentest.Env, logs []api.LogEntry) *api.PageType {
	var page api.PageType
	env.Client.LogsFunc = func(pid string, p api.PageType) (*api.LogsResponse, error) {
		page = p
		return &api.LogsResponse{Logs: logs, Date: "2026-04-02", ParticipantID: pid}, nil
	}
	return &page
}

func load(t *testing.T, env *screentest.Env) *FeedbackScreen {
	t.Helper()
	f := New(env.Deps)
	screentest.Pump(f, f.Init(), isLocal)
	return f
}

func TestEvaluationLoaded(t *testing.T) {
	env := screentest.NewEnv(t, "P001")
	page := withLogs(env, sampleLogs)
	var evalReq api.EvaluateRequest
	env.Client.EvaluateFunc = func(req api.EvaluateRequest) (*api.Evaluation, error) {
		evalReq = req
		return &api.Evaluation{
			Grades:       map[string]string{"symptom_location": "상", "current_medication": "하"},
			ScoreReasons: map[string]string{"current_medication": "약에 대한 언급이 없었습니다."},
		}, nil
	}
	var voiceReq api.AnalyzeVoiceRequest
	env.Client.AnalyzeVoiceFunc = func(req api.AnalyzeVoiceRequest) (*api.VoiceAnalysis, error) {
		voiceReq = req
		return &api.VoiceAnalysis{Summary: "또박또박 말했습니다."}, nil
	}

	f := load(t, env)

	assert.Equal(t, api.PageChat, *page)
	assert.Equal(t, sampleLogs, evalReq.Logs)
	assert.Equal(t, "P001", evalReq.ParticipantID)
	assert.Len(t, voiceReq.Messages, 4)

	require.Equal(t, evaluation.StatusLoaded, f.state.Status())
	assert.Equal(t, 65, f.state.Summary().Score)
	assert.Equal(t, "또박또박 말했습니다.", f.voice.Summary)
	assert.False(t, f.voiceFailed)

	view := f.View(100, 200)
	assert.Contains(t, view, "65점")
	assert.Contains(t, view, "머리가 아파요")
}

func TestReasonToggle(t *testing.T) {
	env := screentest.NewEnv(t, "P001")
	withLogs(env, sampleLogs)
	env.Client.EvaluateFunc = func(api.EvaluateRequest) (*api.Evaluation, error) {
		return &api.Evaluation{
			Grades:       map[string]string{"symptom_location": "상", "current_medication": "하"},
			ScoreReasons: map[string]string{"current_medication": "약에 대한 언급이 없었습니다."},
		}, nil
	}

	f := load(t, env)
	assert.NotContains(t, f.View(100, 200), "약에 대한 언급이 없었습니다.")

	f.Update(screentest.Key('j'))
	f.Update(screentest.Key(' '))
	assert.Contains(t, f.View(100, 200), "약에 대한 언급이 없었습니다.")

	f.Update(screentest.Key(' '))
	assert.NotContains(t, f.View(100, 200), "약에 대한 언급이 없었습니다.")
}

func TestNoLogsShowsNoData(t *testing.T) {
	env := screentest.NewEnv(t, "P001")
	withLogs(env, nil)

	f := load(t, env)
	assert.Equal(t, evaluation.StatusNoData, f.state.Status())
	assert.Equal(t, 0, env.Client.CallCount("/api/evaluate"))
	assert.Contains(t, f.View(100, 100), "데이터 없음")
	assert.Contains(t, f.View(100, 100), noConversation)
}

func TestLogsFailureShowsNoData(t *testing.T) {
	env := screentest.NewEnv(t, "P001")
	f := load(t, env)
	assert.Equal(t, evaluation.StatusNoData, f.state.Status())
}

func TestEvaluationFailure(t *testing.T) {
	env := screentest.NewEnv(t, "P001")
	withLogs(env, sampleLogs)
	env.Client.EvaluateFunc = func(api.EvaluateRequest) (*api.Evaluation, error) {
		return nil, &api.ErrStatus{Endpoint: "/api/evaluate", Status: "error"}
	}

	f := load(t, env)
	assert.Equal(t, evaluation.StatusError, f.state.Status())
	assert.Contains(t, f.View(100, 200), "평가 오류")
}

func TestVoiceFallback(t *testing.T) {
	env := screentest.NewEnv(t, "P001")
	withLogs(env, sampleLogs)
	env.Client.AnalyzeVoiceFunc = func(api.AnalyzeVoiceRequest) (*api.VoiceAnalysis, error) {
		return nil, errors.New("timeout")
	}

	f := load(t, env)
	require.NotNil(t, f.voice)
	assert.True(t, f.voiceFailed)
	assert.Equal(t, evaluation.VoiceFallback().Summary, f.voice.Summary)
}

func TestNextSteps(t *testing.T) {
	env := screentest.NewEnv(t, "P001")
	f := New(env.Deps)

	_, cmd := f.Update(screentest.Key('r'))
	require.NotNil(t, cmd)
	assert.Equal(t, screen.RouteRetry, env.Nav.Last())

	_, cmd = f.Update(screentest.Key('c'))
	require.NotNil(t, cmd)
	assert.Equal(t, screen.RouteCheatsheet, env.Nav.Last())
}
