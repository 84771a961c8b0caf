package api

import (
	"context"
	"sync"
)

// MockClient is a deterministic Client for testing. Each operation runs its
// function field when set and otherwise fails with ErrUnavailable. Calls are
// recorded by endpoint.
type MockClient struct {
	ChatFunc               func(ChatRequest) (string, error)
	TTSFunc                func(TTSRequest) (string, error)
	EvaluateFunc           func(EvaluateRequest) (*Evaluation, error)
	AnalyzeVoiceFunc       func(AnalyzeVoiceRequest) (*VoiceAnalysis, error)
	AnalyzeQuestFunc       func(AnalyzeQuestRequest) ([]string, error)
	LogsFunc               func(participantID string, page PageType) (*LogsResponse, error)
	FeedbackFunc           func(participantID string) ([]FeedbackEntry, error)
	ClearFunc              func(participantID string) error
	GenerateCheatsheetFunc func(participantID string) (*Cheatsheet, error)
	SaveUserDataFunc       func(UserData) error
	HealthFunc             func() error

	mu    sync.Mutex
	calls map[string]int
}

var _ Client = (*MockClient)(nil)

func (m *MockClient) hit(endpoint string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.calls == nil {
		m.calls = make(map[string]int)
	}
	m.calls[endpoint]++
	return &ErrUnavailable{Endpoint: endpoint}
}

// CallCount returns how many times endpoint was called.
func (m *MockClient) CallCount(endpoint string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[endpoint]
}

func (m *MockClient) Chat(_ context.Context, req ChatRequest) (string, error) {
	err := m.hit("/api/chat")
	if m.ChatFunc == nil {
		return "", err
	}
	return m.ChatFunc(req)
}

func (m *MockClient) TTS(_ context.Context, req TTSRequest) (string, error) {
	err := m.hit("/api/tts")
	if m.TTSFunc == nil {
		return "", err
	}
	return m.TTSFunc(req)
}

func (m *MockClient) Evaluate(_ context.Context, req EvaluateRequest) (*Evaluation, error) {
	err := m.hit("/api/evaluate")
	if m.EvaluateFunc == nil {
		return nil, err
	}
	return m.EvaluateFunc(req)
}

func (m *MockClient) AnalyzeVoice(_ context.Context, req AnalyzeVoiceRequest) (*VoiceAnalysis, error) {
	err := m.hit("/api/analyze-voice")
	if m.AnalyzeVoiceFunc == nil {
		return nil, err
	}
	return m.AnalyzeVoiceFunc(req)
}

func (m *MockClient) AnalyzeQuest(_ context.Context, req AnalyzeQuestRequest) ([]string, error) {
	err := m.hit("/api/analyze-quest")
	if m.AnalyzeQuestFunc == nil {
		return nil, err
	}
	return m.AnalyzeQuestFunc(req)
}

func (m *MockClient) Logs(_ context.Context, participantID string, page PageType) (*LogsResponse, error) {
	err := m.hit("/api/logs")
	if m.LogsFunc == nil {
		return nil, err
	}
	return m.LogsFunc(participantID, page)
}

func (m *MockClient) Feedback(_ context.Context, participantID string) ([]FeedbackEntry, error) {
	err := m.hit("/api/feedback")
	if m.FeedbackFunc == nil {
		return nil, err
	}
	return m.FeedbackFunc(participantID)
}

func (m *MockClient) Clear(_ context.Context, participantID string) error {
	err := m.hit("/api/clear")
	if m.ClearFunc == nil {
		return err
	}
	return m.ClearFunc(participantID)
}

func (m *MockClient) GenerateCheatsheet(_ context.Context, participantID string) (*Cheatsheet, error) {
	err := m.hit("/api/generate-cheatsheet")
	if m.GenerateCheatsheetFunc == nil {
		return nil, err
	}
	return m.GenerateCheatsheetFunc(participantID)
}

func (m *MockClient) SaveUserData(_ context.Context, data UserData) error {
	err := m.hit("/api/save-user-data")
	if m.SaveUserDataFunc == nil {
		return err
	}
	return m.SaveUserDataFunc(data)
}

func (m *MockClient) Health(context.Context) error {
	err := m.hit("/api/health")
	if m.HealthFunc == nil {
		return err
	}
	return m.HealthFunc()
}

func (m *MockClient) AudioURL(path string) string {
	return DefaultBaseURL + path
}
