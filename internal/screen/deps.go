package screen

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/bobbyhwsong/voice-chat-app/internal/api"
	"github.com/bobbyhwsong/voice-chat-app/internal/session"
	"github.com/bobbyhwsong/voice-chat-app/internal/speech"
	"github.com/bobbyhwsong/voice-chat-app/internal/store"
)

// Deps are the services shared by every screen. Speaker and Events may be
// nil.
type Deps struct {
	Client   api.Client
	Sessions *session.Store
	Events   store.EventRepo
	Speaker  *speech.Speaker
	Logger   *zap.Logger
	Nav      Navigator
	VisitID  string
	Now      func() time.Time
}

// Clock returns Now or time.Now.
func (d Deps) Clock() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

// Log returns the logger or a no-op logger.
func (d Deps) Log() *zap.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return zap.NewNop()
}

// StopSpeech stops any audio output.
func (d Deps) StopSpeech() {
	if d.Speaker != nil {
		d.Speaker.Stop()
	}
}

// Speak reads text aloud and reports when playback ends. It returns nil when
// no speaker is configured.
func (d Deps) Speak(participantID, text string) tea.Cmd {
	if d.Speaker == nil || text == "" {
		return nil
	}
	sp, log := d.Speaker, d.Log()
	return func() tea.Msg {
		if err := sp.Speak(context.Background(), participantID, text).Wait(); err != nil {
			log.Warn("speech failed", zap.Error(err))
		}
		return SpeechDoneMsg{}
	}
}

// SessionChangedMsg announces a login or logout. Participant is empty after
// logout.
type SessionChangedMsg struct {
	Participant string
}

// SpeechDoneMsg is sent when an utterance finished or was stopped.
type SpeechDoneMsg struct{}
