package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *HTTPClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return New(server.URL)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func TestNewDefaultsBaseURL(t *testing.T) {
	if got := New("").BaseURL(); got != DefaultBaseURL {
		t.Errorf("BaseURL() = %q, want %q", got, DefaultBaseURL)
	}
	if got := New("http://example.test:5001/").BaseURL(); got != "http://example.test:5001" {
		t.Errorf("trailing slash not trimmed: %q", got)
	}
}

func TestChat_HappyPath(t *testing.T) {
	var gotBody ChatRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/chat" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&gotBody)
		writeJSON(w, http.StatusOK, map[string]any{"status": "success", "response": "어디가 불편하세요?"})
	})

	resp, err := c.Chat(context.Background(), ChatRequest{Message: "안녕하세요", ParticipantID: "p1", PageType: PageRetry})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp != "어디가 불편하세요?" {
		t.Errorf("response = %q", resp)
	}
	if gotBody.Message != "안녕하세요" || gotBody.ParticipantID != "p1" || gotBody.PageType != PageRetry {
		t.Errorf("request body = %+v", gotBody)
	}
}

func TestChat_NonSuccessStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "메시지가 없습니다."})
	})

	_, err := c.Chat(context.Background(), ChatRequest{})
	var statusErr *ErrStatus
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected ErrStatus, got %T: %v", err, err)
	}
	if statusErr.HTTPStatus != http.StatusBadRequest || statusErr.Message != "메시지가 없습니다." {
		t.Errorf("unexpected status error %+v", statusErr)
	}
	if !IsRemoteFailure(err) {
		t.Error("expected IsRemoteFailure to be true")
	}
}

func TestChat_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	_, err := New(url).Chat(context.Background(), ChatRequest{Message: "hi"})
	var unavailable *ErrUnavailable
	if !errors.As(err, &unavailable) {
		t.Fatalf("expected ErrUnavailable, got %T: %v", err, err)
	}
}

func TestChat_MalformedJSON(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>oops</html>"))
	})

	_, err := c.Chat(context.Background(), ChatRequest{Message: "hi"})
	var invalid *ErrInvalidResponse
	if !errors.As(err, &invalid) {
		t.Fatalf("expected ErrInvalidResponse, got %T: %v", err, err)
	}
}

func TestTTS_MissingAudioURLIsInvalid(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"status": "success"})
	})

	_, err := c.TTS(context.Background(), TTSRequest{Text: "hello"})
	var invalid *ErrInvalidResponse
	if !errors.As(err, &invalid) {
		t.Fatalf("expected ErrInvalidResponse, got %T: %v", err, err)
	}
}

func TestTTS_AudioURLResolution(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"status": "success", "audio_url": "/api/audio/tts_1.mp3"})
	})

	path, err := c.TTS(context.Background(), TTSRequest{Text: "hello"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := c.AudioURL(path); got != c.BaseURL()+"/api/audio/tts_1.mp3" {
		t.Errorf("AudioURL = %q", got)
	}
	if got := c.AudioURL("https://cdn.test/a.mp3"); got != "https://cdn.test/a.mp3" {
		t.Errorf("absolute URL rewritten: %q", got)
	}
}

func TestEvaluate_DefaultsEvaluationType(t *testing.T) {
	var got EvaluateRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got)
		writeJSON(w, http.StatusOK, map[string]any{
			"status": "success",
			"evaluation": map[string]any{
				"grades":           map[string]any{"symptom_location": "상", "allergy_info": "하"},
				"score_reasons":    map[string]any{"allergy_info": "알레르기를 언급하지 않음"},
				"improvement_tips": []any{"알레르기 여부를 말해보세요"},
				"overall_score":    65,
			},
		})
	})

	eval, err := c.Evaluate(context.Background(), EvaluateRequest{
		Logs: []LogEntry{{UserMessage: "머리가 아파요", BotResponse: "언제부터요?"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.EvaluationType != "conversation_based" {
		t.Errorf("evaluation_type = %q", got.EvaluationType)
	}
	if eval.Grades["allergy_info"] != "하" || len(eval.ImprovementTips) != 1 {
		t.Errorf("unexpected evaluation %+v", eval)
	}
}

func TestEvaluate_GradesMustBeStrings(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"status":     "success",
			"evaluation": map[string]any{"grades": map[string]any{"symptom_location": 3}},
		})
	})

	_, err := c.Evaluate(context.Background(), EvaluateRequest{})
	var invalid *ErrInvalidResponse
	if !errors.As(err, &invalid) {
		t.Fatalf("expected ErrInvalidResponse, got %T: %v", err, err)
	}
}

func TestLogs_QueryParameters(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("method = %s", r.Method)
		}
		if r.URL.Query().Get("participant_id") != "p 1" || r.URL.Query().Get("page_type") != "chat" {
			t.Errorf("query = %s", r.URL.RawQuery)
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"status": "success",
			"date":   "20260301",
			"logs": []any{
				map[string]any{"timestamp": "2026-03-01T10:00:00", "user_message": "a", "bot_response": "b"},
			},
		})
	})

	resp, err := c.Logs(context.Background(), "p 1", PageChat)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Date != "20260301" || len(resp.Logs) != 1 || resp.Logs[0].BotResponse != "b" {
		t.Errorf("unexpected logs %+v", resp)
	}
}

func TestFeedback(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"status": "success",
			"feedback_data": []any{
				map[string]any{
					"participant_id":    "p1",
					"evaluation_date":   "2026-03-01T10:00:00.000001",
					"conversation_logs": []any{},
					"evaluation_result": map[string]any{"grades": map[string]any{"allergy_info": "하"}},
				},
			},
		})
	})

	entries, err := c.Feedback(context.Background(), "p1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 1 || entries[0].EvaluationResult.Grades["allergy_info"] != "하" {
		t.Errorf("unexpected entries %+v", entries)
	}
}

func TestAnalyzeQuest(t *testing.T) {
	var got AnalyzeQuestRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got)
		writeJSON(w, http.StatusOK, map[string]any{"status": "success", "completed_quests": []any{"medication"}})
	})

	ids, err := c.AnalyzeQuest(context.Background(), AnalyzeQuestRequest{
		UserMessage:  "혈압약을 복용하고 있어요",
		BotResponse:  "알겠습니다",
		ActiveQuests: []ActiveQuest{{ID: "medication", Keywords: []string{"복용"}}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ids) != 1 || ids[0] != "medication" {
		t.Errorf("ids = %v", ids)
	}
	if len(got.ActiveQuests) != 1 || got.ActiveQuests[0].Keywords[0] != "복용" {
		t.Errorf("active quests not sent: %+v", got)
	}
}

func TestGenerateCheatsheet_NestedAndFlat(t *testing.T) {
	sheet := map[string]any{
		"title":       "진료 스크립트",
		"script":      []any{map[string]any{"title": "증상 설명", "content": "머리가 아파요", "example": "어제부터"}},
		"questions":   []any{map[string]any{"question": "언제부터요?", "answer": "어제요"}},
		"listening":   []any{"진단명과 근거"},
		"my_questions": []any{"부작용은 무엇인가요?"},
		"precautions": []any{map[string]any{"title": "복용", "content": "시간 맞춰 드세요"}},
	}

	tests := []struct {
		name    string
		payload any
	}{
		{"nested", map[string]any{"cheatsheet": sheet}},
		{"flat", sheet},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusOK, map[string]any{"status": "success", "cheatsheet": tt.payload})
			})
			got, err := c.GenerateCheatsheet(context.Background(), "p1")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Title != "진료 스크립트" || len(got.Script) != 1 || got.Script[0].Example != "어제부터" {
				t.Errorf("unexpected sheet %+v", got)
			}
			if got.MyQuestions[0].Text != "부작용은 무엇인가요?" {
				t.Errorf("string item not decoded: %+v", got.MyQuestions)
			}
			if got.Precautions[0].Title != "복용" || got.Precautions[0].Text != "시간 맞춰 드세요" {
				t.Errorf("object item not decoded: %+v", got.Precautions)
			}
		})
	}
}

func TestHealth(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"status": "healthy", "message": "ok"})
	})
	if err := c.Health(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestClearAndSaveUserData(t *testing.T) {
	paths := map[string]int{}
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		paths[r.URL.Path]++
		writeJSON(w, http.StatusOK, map[string]any{"status": "success", "message": "done"})
	})

	if err := c.Clear(context.Background(), "p1"); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if err := c.SaveUserData(context.Background(), UserData{ParticipantID: "p1", Consent: true}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if paths["/api/clear"] != 1 || paths["/api/save-user-data"] != 1 {
		t.Errorf("unexpected calls %v", paths)
	}
}
