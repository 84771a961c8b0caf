package cmd

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobbyhwsong/voice-chat-app/internal/api"
	"github.com/bobbyhwsong/voice-chat-app/internal/config"
	"github.com/bobbyhwsong/voice-chat-app/internal/screens/login"
)

// setup points the commands at a temporary database and a MockClient.
func setup(t *testing.T) *api.MockClient {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("VOICECHAT_DB", filepath.Join(dir, "voicechat.db"))
	t.Setenv("VOICECHAT_LOG_FILE", filepath.Join(dir, "voicechat.log"))
	t.Setenv("VOICECHAT_AUDIO_ENABLED", "false")

	mock := &api.MockClient{}
	prevClient, prevInteractive := newClient, isInteractive
	newClient = func(*config.Config) api.Client { return mock }
	isInteractive = func() bool { return false }
	t.Cleanup(func() { newClient, isInteractive = prevClient, prevInteractive })
	return mock
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	if args == nil {
		args = []string{}
	}
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestLoginStoresSession(t *testing.T) {
	mock := setup(t)
	var saved api.UserData
	mock.SaveUserDataFunc = func(d api.UserData) error { saved = d; return nil }

	out, err := run(t, "login", "--id", "P001", "--symptoms", "두통", "--consent")
	require.NoError(t, err)
	assert.Contains(t, out, "환영합니다, P001 님!")
	assert.Equal(t, "P001", saved.ParticipantID)
	assert.Equal(t, "두통", saved.Symptoms)

	out, err = run(t, "doctor", "--recent", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "P001")
	assert.Contains(t, out, "/api/save-user-data")
}

func TestLoginSurvivesBackendFailure(t *testing.T) {
	setup(t)
	_, err := run(t, "login", "--id", "P002", "--consent")
	require.NoError(t, err)

	_, err = run(t, "clear")
	assert.Error(t, err, "clear uses the unavailable backend")
}

func TestLoginValidation(t *testing.T) {
	setup(t)
	_, err := run(t, "login", "--consent")
	require.Error(t, err)
	assert.Equal(t, login.MissingID, err.Error())

	_, err = run(t, "login", "--id", "P003")
	require.Error(t, err)
	assert.Equal(t, login.MissingConsent, err.Error())
}

func TestLogoutThenCommandsNeedLogin(t *testing.T) {
	setup(t)
	_, err := run(t, "login", "--id", "P004", "--consent")
	require.NoError(t, err)

	out, err := run(t, "logout")
	require.NoError(t, err)
	assert.Contains(t, out, "로그아웃되었습니다.")

	_, err = run(t, "logs")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "voicechat login")
}

func TestLogsPrintsExchanges(t *testing.T) {
	mock := setup(t)
	mock.LogsFunc = func(pid string, page api.PageType) (*api.LogsResponse, error) {
		assert.Equal(t, api.PageRetry, page)
		return &api.LogsResponse{
			Date: "2026-04-02",
			Logs: []api.LogEntry{{Timestamp: "2026-04-02T10:00:00", UserMessage: "배가 아파요", BotResponse: "언제부터요?"}},
		}, nil
	}
	_, err := run(t, "login", "--id", "P005", "--consent")
	require.NoError(t, err)

	out, err := run(t, "logs", "--page", "retry")
	require.NoError(t, err)
	assert.Contains(t, out, "이전 대화 기록 (2026-04-02) - P005")
	assert.Contains(t, out, "환자: 배가 아파요")
	assert.Contains(t, out, "의사: 언제부터요?")

	_, err = run(t, "logs", "--page", "other")
	assert.Error(t, err)
}

func TestFeedbackPrintsLatestEvaluation(t *testing.T) {
	mock := setup(t)
	mock.FeedbackFunc = func(string) ([]api.FeedbackEntry, error) {
		return []api.FeedbackEntry{
			{EvaluationDate: "2026-04-01T09:00:00", EvaluationResult: api.Evaluation{Grades: map[string]string{"symptom_location": "상"}}},
			{EvaluationDate: "2026-04-02T09:00:00", EvaluationResult: api.Evaluation{Grades: map[string]string{
				"symptom_location":   "상",
				"current_medication": "하",
			}}},
		}, nil
	}
	_, err := run(t, "login", "--id", "P006", "--consent")
	require.NoError(t, err)

	out, err := run(t, "feedback")
	require.NoError(t, err)
	assert.Contains(t, out, "종합 점수: 65점")
	assert.Contains(t, out, "현재 복용 중인 약물")

	out, err = run(t, "quests", "--history", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "퀘스트 (low)")
	assert.Contains(t, out, "[하]")
}

func TestCheatsheetFallsBackToDefault(t *testing.T) {
	setup(t)
	_, err := run(t, "login", "--id", "P007", "--consent")
	require.NoError(t, err)

	out, err := run(t, "cheatsheet", "--raw")
	require.NoError(t, err)
	assert.Contains(t, out, "서버 연결에 실패했습니다.")
	assert.Contains(t, out, "## 📝 진료 스크립트")
}

func TestRootRequiresTerminal(t *testing.T) {
	setup(t)
	_, err := run(t)
	assert.ErrorIs(t, err, errNotTerminal)
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "voicechat")
}
