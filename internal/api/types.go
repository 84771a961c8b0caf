package api

import (
	"encoding/json"
	"strings"
)

// PageType tells the backend which screen a conversation belongs to.
type PageType string

const (
	PageChat  PageType = "chat"
	PageRetry PageType = "retry"
)

// ChatRequest is the body of POST /api/chat.
type ChatRequest struct {
	Message       string   `json:"message"`
	ParticipantID string   `json:"participant_id,omitempty"`
	PageType      PageType `json:"page_type,omitempty"`
}

// TTSRequest is the body of POST /api/tts.
type TTSRequest struct {
	Text          string `json:"text"`
	ParticipantID string `json:"participant_id,omitempty"`
}

// LogEntry is one user/bot exchange as stored by the backend.
type LogEntry struct {
	Timestamp     string `json:"timestamp"`
	UserMessage   string `json:"user_message"`
	BotResponse   string `json:"bot_response"`
	SessionID     string `json:"session_id,omitempty"`
	ParticipantID string `json:"participant_id,omitempty"`
}

// LogsResponse is the payload of GET /api/logs.
type LogsResponse struct {
	Logs          []LogEntry `json:"logs"`
	Date          string     `json:"date"`
	ParticipantID string     `json:"participant_id"`
}

// EvaluateRequest is the body of POST /api/evaluate.
type EvaluateRequest struct {
	Logs           []LogEntry `json:"logs"`
	ParticipantID  string     `json:"participant_id,omitempty"`
	EvaluationType string     `json:"evaluation_type"`
}

// Evaluation is the grading of one conversation. Grades hold "상", "중"
// or "하" per checklist category.
type Evaluation struct {
	Grades          map[string]string `json:"grades"`
	ScoreReasons    map[string]string `json:"score_reasons"`
	ImprovementTips []string          `json:"improvement_tips"`
	OverallScore    *int              `json:"overall_score,omitempty"`
}

// FeedbackEntry is a stored evaluation together with the logs it graded.
type FeedbackEntry struct {
	ParticipantID    string     `json:"participant_id"`
	EvaluationDate   string     `json:"evaluation_date"`
	ConversationLogs []LogEntry `json:"conversation_logs"`
	EvaluationResult Evaluation `json:"evaluation_result"`
}

// VoiceMessage is one line of the transcript sent for voice analysis.
type VoiceMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// AnalyzeVoiceRequest is the body of POST /api/analyze-voice.
type AnalyzeVoiceRequest struct {
	Messages      []VoiceMessage `json:"messages"`
	ParticipantID string         `json:"participant_id,omitempty"`
	AnalysisType  string         `json:"analysis_type"`
}

// VoiceAnalysis is the backend's commentary on how the patient spoke.
type VoiceAnalysis struct {
	Summary         string   `json:"summary"`
	Details         string   `json:"details"`
	PositiveAspects []string `json:"positive_aspects"`
	Suggestions     []string `json:"suggestions"`
}

// ActiveQuest describes a quest the backend should check a reply against.
type ActiveQuest struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Keywords        []string `json:"keywords"`
	ImprovementTips []string `json:"improvement_tips"`
}

// AnalyzeQuestRequest is the body of POST /api/analyze-quest.
type AnalyzeQuestRequest struct {
	UserMessage   string        `json:"user_message"`
	BotResponse   string        `json:"bot_response"`
	ActiveQuests  []ActiveQuest `json:"active_quests"`
	ParticipantID string        `json:"participant_id,omitempty"`
}

// UserData is the body of POST /api/save-user-data.
type UserData struct {
	ParticipantID string `json:"participantId"`
	Symptoms      string `json:"symptoms"`
	Consent       bool   `json:"consent"`
	LoginTime     string `json:"loginTime"`
}

// Cheatsheet is the generated consultation script.
type Cheatsheet struct {
	Title       string         `json:"title"`
	PatientInfo PatientInfo    `json:"patient_info"`
	Script      []ScriptItem   `json:"script"`
	Questions   []QuestionItem `json:"questions"`
	Listening   []TextItem     `json:"listening"`
	MyQuestions []TextItem     `json:"my_questions"`
	Precautions []TextItem     `json:"precautions"`
}

// PatientInfo heads the cheatsheet.
type PatientInfo struct {
	ParticipantID   string `json:"participant_id"`
	InitialSymptoms string `json:"initial_symptoms"`
	GeneratedDate   string `json:"generated_date"`
}

// ScriptItem is a phrase the patient can read out.
type ScriptItem struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Example string `json:"example,omitempty"`
}

// QuestionItem is a question the doctor may ask with a model answer.
type QuestionItem struct {
	Title    string `json:"title,omitempty"`
	Question string `json:"question"`
	Answer   string `json:"answer,omitempty"`
}

// TextItem is a list entry that the generator emits either as a plain
// string or as an object with a title and a body.
type TextItem struct {
	Title string `json:"title,omitempty"`
	Text  string `json:"text"`
}

func (t *TextItem) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*t = TextItem{Text: s}
		return nil
	}
	var obj struct {
		Title    string `json:"title"`
		Content  string `json:"content"`
		Question string `json:"question"`
		Text     string `json:"text"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return err
	}
	text := obj.Content
	for _, alt := range []string{obj.Question, obj.Text} {
		if text == "" {
			text = alt
		}
	}
	*t = TextItem{Title: strings.TrimSpace(obj.Title), Text: text}
	return nil
}
