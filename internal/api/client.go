// Package api is the client for the consultation backend's HTTP API.
//
// Every call is a single request/response exchange. Nothing is retried and
// no timeout is imposed unless the caller configures one. Any response whose
// "status" is not "success" is returned as an error.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultBaseURL is used when no base URL is configured.
const DefaultBaseURL = "http://localhost:5000"

// Client is the set of backend operations the application uses.
type Client interface {
	Chat(ctx context.Context, req ChatRequest) (string, error)
	TTS(ctx context.Context, req TTSRequest) (string, error)
	Evaluate(ctx context.Context, req EvaluateRequest) (*Evaluation, error)
	AnalyzeVoice(ctx context.Context, req AnalyzeVoiceRequest) (*VoiceAnalysis, error)
	AnalyzeQuest(ctx context.Context, req AnalyzeQuestRequest) ([]string, error)
	Logs(ctx context.Context, participantID string, page PageType) (*LogsResponse, error)
	Feedback(ctx context.Context, participantID string) ([]FeedbackEntry, error)
	Clear(ctx context.Context, participantID string) error
	GenerateCheatsheet(ctx context.Context, participantID string) (*Cheatsheet, error)
	SaveUserData(ctx context.Context, data UserData) error
	Health(ctx context.Context) error
	AudioURL(path string) string
}

// HTTPClient talks to the backend over HTTP.
type HTTPClient struct {
	baseURL string
	http    *http.Client
}

var _ Client = (*HTTPClient)(nil)

// Option configures an HTTPClient.
type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(c *http.Client) Option {
	return func(h *HTTPClient) { h.http = c }
}

// WithTimeout sets a per-request timeout. Zero means none.
func WithTimeout(d time.Duration) Option {
	return func(h *HTTPClient) { h.http.Timeout = d }
}

// New creates an HTTPClient for baseURL. An empty baseURL selects
// DefaultBaseURL.
func New(baseURL string, opts ...Option) *HTTPClient {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &HTTPClient{
		baseURL: baseURL,
		http:    &http.Client{},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// BaseURL returns the resolved backend address.
func (c *HTTPClient) BaseURL() string {
	return c.baseURL
}

func (c *HTTPClient) Chat(ctx context.Context, req ChatRequest) (string, error) {
	var out struct {
		Response string `json:"response"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/chat", nil, req, chatSchema, &out); err != nil {
		return "", err
	}
	return out.Response, nil
}

func (c *HTTPClient) TTS(ctx context.Context, req TTSRequest) (string, error) {
	var out struct {
		AudioURL string `json:"audio_url"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/tts", nil, req, ttsSchema, &out); err != nil {
		return "", err
	}
	return out.AudioURL, nil
}

func (c *HTTPClient) Evaluate(ctx context.Context, req EvaluateRequest) (*Evaluation, error) {
	if req.EvaluationType == "" {
		req.EvaluationType = "conversation_based"
	}
	var out struct {
		Evaluation Evaluation `json:"evaluation"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/evaluate", nil, req, evaluateSchema, &out); err != nil {
		return nil, err
	}
	return &out.Evaluation, nil
}

func (c *HTTPClient) AnalyzeVoice(ctx context.Context, req AnalyzeVoiceRequest) (*VoiceAnalysis, error) {
	if req.AnalysisType == "" {
		req.AnalysisType = "voice_communication"
	}
	var out struct {
		Analysis VoiceAnalysis `json:"analysis"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/analyze-voice", nil, req, analyzeVoiceSchema, &out); err != nil {
		return nil, err
	}
	return &out.Analysis, nil
}

func (c *HTTPClient) AnalyzeQuest(ctx context.Context, req AnalyzeQuestRequest) ([]string, error) {
	var out struct {
		CompletedQuests []string `json:"completed_quests"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/analyze-quest", nil, req, analyzeQuestSchema, &out); err != nil {
		return nil, err
	}
	return out.CompletedQuests, nil
}

func (c *HTTPClient) Logs(ctx context.Context, participantID string, page PageType) (*LogsResponse, error) {
	q := url.Values{}
	q.Set("participant_id", participantID)
	if page != "" {
		q.Set("page_type", string(page))
	}
	var out LogsResponse
	if err := c.do(ctx, http.MethodGet, "/api/logs", q, nil, logsSchema, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Feedback(ctx context.Context, participantID string) ([]FeedbackEntry, error) {
	q := url.Values{}
	q.Set("participant_id", participantID)
	var out struct {
		FeedbackData []FeedbackEntry `json:"feedback_data"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/feedback", q, nil, feedbackSchema, &out); err != nil {
		return nil, err
	}
	return out.FeedbackData, nil
}

func (c *HTTPClient) Clear(ctx context.Context, participantID string) error {
	body := map[string]string{}
	if participantID != "" {
		body["participant_id"] = participantID
	}
	return c.do(ctx, http.MethodPost, "/api/clear", nil, body, nil, nil)
}

func (c *HTTPClient) GenerateCheatsheet(ctx context.Context, participantID string) (*Cheatsheet, error) {
	req := map[string]string{"participant_id": participantID}
	var out struct {
		Cheatsheet json.RawMessage `json:"cheatsheet"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/generate-cheatsheet", nil, req, cheatsheetSchema, &out); err != nil {
		return nil, err
	}
	sheet, err := decodeCheatsheet(out.Cheatsheet)
	if err != nil {
		return nil, &ErrInvalidResponse{Endpoint: "/api/generate-cheatsheet", Content: out.Cheatsheet, Err: err}
	}
	return sheet, nil
}

// decodeCheatsheet accepts the generator's document either bare or wrapped
// in a second "cheatsheet" key.
func decodeCheatsheet(raw json.RawMessage) (*Cheatsheet, error) {
	var wrapped struct {
		Cheatsheet *Cheatsheet `json:"cheatsheet"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, fmt.Errorf("decode cheatsheet: %w", err)
	}
	if wrapped.Cheatsheet != nil {
		return wrapped.Cheatsheet, nil
	}
	var sheet Cheatsheet
	if err := json.Unmarshal(raw, &sheet); err != nil {
		return nil, fmt.Errorf("decode cheatsheet: %w", err)
	}
	return &sheet, nil
}

func (c *HTTPClient) SaveUserData(ctx context.Context, data UserData) error {
	return c.do(ctx, http.MethodPost, "/api/save-user-data", nil, data, nil, nil)
}

// Health checks GET /api/health, which answers "healthy" rather than
// "success".
func (c *HTTPClient) Health(ctx context.Context) error {
	const endpoint = "/api/health"
	resp, raw, err := c.send(ctx, http.MethodGet, endpoint, nil, nil)
	if err != nil {
		return err
	}
	var env struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return &ErrInvalidResponse{Endpoint: endpoint, Content: raw, Err: err}
	}
	if env.Status != "healthy" && env.Status != "success" {
		return &ErrStatus{Endpoint: endpoint, HTTPStatus: resp.StatusCode, Status: env.Status, Message: env.Message}
	}
	return nil
}

// AudioURL resolves an audio path returned by TTS against the base URL.
func (c *HTTPClient) AudioURL(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.baseURL + path
}

// do sends a request, checks the status envelope, validates the payload
// against schema and decodes it into out.
func (c *HTTPClient) do(ctx context.Context, method, endpoint string, query url.Values, body any, schema *Schema, out any) error {
	resp, raw, err := c.send(ctx, method, endpoint, query, body)
	if err != nil {
		return err
	}

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return &ErrInvalidResponse{Endpoint: endpoint, Content: raw, Err: fmt.Errorf("invalid JSON: %w", err)}
	}

	var env struct {
		Status  string `json:"status"`
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	_ = json.Unmarshal(raw, &env)
	if env.Status != "success" {
		msg := env.Error
		if msg == "" {
			msg = env.Message
		}
		return &ErrStatus{Endpoint: endpoint, HTTPStatus: resp.StatusCode, Status: env.Status, Message: msg}
	}

	if err := validateResponse(endpoint, schema, raw, parsed); err != nil {
		return err
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &ErrInvalidResponse{Endpoint: endpoint, Content: raw, Err: err}
	}
	return nil
}

func (c *HTTPClient) send(ctx context.Context, method, endpoint string, query url.Values, body any) (*http.Response, []byte, error) {
	u := c.baseURL + endpoint
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: encode request: %w", endpoint, err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: build request: %w", endpoint, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, nil, &ErrUnavailable{Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, &ErrUnavailable{Endpoint: endpoint, Err: fmt.Errorf("read body: %w", err)}
	}
	return resp, raw, nil
}
