package api

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/bobbyhwsong/voice-chat-app/internal/store"
)

// LoggingClient is a decorator that records every backend call as an event
// and in the application log.
type LoggingClient struct {
	inner     Client
	eventRepo store.EventRepo
	log       *zap.Logger
}

var _ Client = (*LoggingClient)(nil)

// WithLogging wraps a Client with event logging. repo may be nil.
func WithLogging(c Client, repo store.EventRepo, log *zap.Logger) *LoggingClient {
	if log == nil {
		log = zap.NewNop()
	}
	return &LoggingClient{inner: c, eventRepo: repo, log: log}
}

func (l *LoggingClient) record(ctx context.Context, endpoint string, page PageType, participantID string, start time.Time, err error) {
	latency := time.Since(start)
	data := store.APIRequestEventData{
		Endpoint:      endpoint,
		PageType:      string(page),
		ParticipantID: participantID,
		LatencyMs:     latency.Milliseconds(),
		Success:       err == nil,
	}
	fields := []zap.Field{
		zap.String("endpoint", endpoint),
		zap.String("participant_id", participantID),
		zap.Duration("latency", latency),
	}
	if page != "" {
		fields = append(fields, zap.String("page_type", string(page)))
	}
	if err != nil {
		data.ErrorMessage = err.Error()
		l.log.Warn("backend call failed", append(fields, zap.Error(err))...)
	} else {
		l.log.Debug("backend call", fields...)
	}

	if l.eventRepo == nil {
		return
	}
	// A failed event write must not fail the call it describes.
	if logErr := l.eventRepo.AppendAPIRequest(context.WithoutCancel(ctx), data); logErr != nil {
		l.log.Warn("failed to record api event", zap.Error(logErr))
	}
}

func (l *LoggingClient) Chat(ctx context.Context, req ChatRequest) (string, error) {
	start := time.Now()
	resp, err := l.inner.Chat(ctx, req)
	l.record(ctx, "/api/chat", req.PageType, req.ParticipantID, start, err)
	return resp, err
}

func (l *LoggingClient) TTS(ctx context.Context, req TTSRequest) (string, error) {
	start := time.Now()
	resp, err := l.inner.TTS(ctx, req)
	l.record(ctx, "/api/tts", "", req.ParticipantID, start, err)
	return resp, err
}

func (l *LoggingClient) Evaluate(ctx context.Context, req EvaluateRequest) (*Evaluation, error) {
	start := time.Now()
	resp, err := l.inner.Evaluate(ctx, req)
	l.record(ctx, "/api/evaluate", "", req.ParticipantID, start, err)
	return resp, err
}

func (l *LoggingClient) AnalyzeVoice(ctx context.Context, req AnalyzeVoiceRequest) (*VoiceAnalysis, error) {
	start := time.Now()
	resp, err := l.inner.AnalyzeVoice(ctx, req)
	l.record(ctx, "/api/analyze-voice", "", req.ParticipantID, start, err)
	return resp, err
}

func (l *LoggingClient) AnalyzeQuest(ctx context.Context, req AnalyzeQuestRequest) ([]string, error) {
	start := time.Now()
	resp, err := l.inner.AnalyzeQuest(ctx, req)
	l.record(ctx, "/api/analyze-quest", PageRetry, req.ParticipantID, start, err)
	return resp, err
}

func (l *LoggingClient) Logs(ctx context.Context, participantID string, page PageType) (*LogsResponse, error) {
	start := time.Now()
	resp, err := l.inner.Logs(ctx, participantID, page)
	l.record(ctx, "/api/logs", page, participantID, start, err)
	return resp, err
}

func (l *LoggingClient) Feedback(ctx context.Context, participantID string) ([]FeedbackEntry, error) {
	start := time.Now()
	resp, err := l.inner.Feedback(ctx, participantID)
	l.record(ctx, "/api/feedback", "", participantID, start, err)
	return resp, err
}

func (l *LoggingClient) Clear(ctx context.Context, participantID string) error {
	start := time.Now()
	err := l.inner.Clear(ctx, participantID)
	l.record(ctx, "/api/clear", "", participantID, start, err)
	return err
}

func (l *LoggingClient) GenerateCheatsheet(ctx context.Context, participantID string) (*Cheatsheet, error) {
	start := time.Now()
	resp, err := l.inner.GenerateCheatsheet(ctx, participantID)
	l.record(ctx, "/api/generate-cheatsheet", "", participantID, start, err)
	return resp, err
}

func (l *LoggingClient) SaveUserData(ctx context.Context, data UserData) error {
	start := time.Now()
	err := l.inner.SaveUserData(ctx, data)
	l.record(ctx, "/api/save-user-data", "", data.ParticipantID, start, err)
	return err
}

func (l *LoggingClient) Health(ctx context.Context) error {
	start := time.Now()
	err := l.inner.Health(ctx)
	l.record(ctx, "/api/health", "", "", start, err)
	return err
}

func (l *LoggingClient) AudioURL(path string) string {
	return l.inner.AudioURL(path)
}
