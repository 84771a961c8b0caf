package conversation

import (
	"context"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/bobbyhwsong/voice-chat-app/internal/api"
	"github.com/bobbyhwsong/voice-chat-app/internal/notify"
	"github.com/bobbyhwsong/voice-chat-app/internal/quest"
	"github.com/bobbyhwsong/voice-chat-app/internal/store"
)

// Event sources recorded for quest completion changes.
const (
	sourceAI      = "ai"
	sourceKeyword = "keyword"
	sourceManual  = "manual"
)

func (s *Screen) loadQuests() tea.Cmd {
	client, pid := s.deps.Client, s.user.ParticipantID
	return func() tea.Msg {
		entries, err := client.Feedback(context.Background(), pid)
		return feedbackMsg{entries: entries, err: err}
	}
}

// onFeedback derives the quest list. Any failure falls back to the default
// quests.
func (s *Screen) onFeedback(msg feedbackMsg) {
	var entry *api.FeedbackEntry
	if msg.err != nil {
		s.deps.Log().Warn("load feedback failed, using default quests", zap.Error(msg.err))
	} else {
		entry = api.LatestFeedback(msg.entries)
	}
	quests, source := quest.Derive(entry)
	s.tracker.Load(quests, source)
	s.questCursor = 0
	s.deps.Log().Info("quests loaded",
		zap.String("participant_id", s.user.ParticipantID),
		zap.Stringer("source", source),
		zap.Int("count", len(quests)))
}

// analyze asks the backend which active quests one exchange satisfied. It
// is skipped when nothing is left to complete.
func (s *Screen) analyze(user, bot string) tea.Cmd {
	if s.tracker.Phase() == quest.PhaseInit || len(s.tracker.Active()) == 0 {
		return nil
	}
	client := s.deps.Client
	req := api.AnalyzeQuestRequest{
		UserMessage:   user,
		BotResponse:   bot,
		ActiveQuests:  s.tracker.ActiveRequest(),
		ParticipantID: s.user.ParticipantID,
	}
	return func() tea.Msg {
		ids, err := client.AnalyzeQuest(context.Background(), req)
		return analyzedMsg{user: user, bot: bot, ids: ids, err: err}
	}
}

func (s *Screen) onAnalyzed(msg analyzedMsg) tea.Cmd {
	if msg.err != nil {
		s.deps.Log().Warn("quest analysis failed, matching keywords", zap.Error(msg.err))
	}
	newly, fallback := s.tracker.Resolve(msg.ids, msg.err, msg.user, msg.bot)

	source := sourceAI
	if fallback {
		source = sourceKeyword
	}
	var cmds []tea.Cmd
	for _, q := range newly {
		s.recordQuest(q.ID, source, true)
		cmds = append(cmds, notify.QuestCmd(q.Icon, q.Title, string(q.Grade)))
	}
	return tea.Batch(cmds...)
}

func (s *Screen) recordQuest(id, source string, completed bool) {
	if s.deps.Events == nil {
		return
	}
	err := s.deps.Events.AppendQuestEvent(context.Background(), store.QuestEventData{
		ParticipantID: s.user.ParticipantID,
		VisitID:       s.deps.VisitID,
		QuestID:       id,
		Source:        source,
		Completed:     completed,
	})
	if err != nil {
		s.deps.Log().Warn("record quest event failed", zap.String("quest_id", id), zap.Error(err))
	}
}

// handleQuestKey moves focus to and within the quest panel.
func (s *Screen) handleQuestKey(msg tea.KeyPressMsg) (tea.Cmd, bool) {
	key := msg.String()
	if key == "tab" || (key == "esc" && s.focus == focusQuests) {
		if s.focus == focusQuests {
			s.focus = focusInput
			return s.input.Focus(), true
		}
		if len(s.tracker.Quests()) == 0 {
			return nil, true
		}
		s.focus = focusQuests
		s.input.Blur()
		return nil, true
	}
	if s.focus != focusQuests {
		return nil, false
	}

	quests := s.tracker.Quests()
	switch key {
	case "up", "k":
		if s.questCursor > 0 {
			s.questCursor--
		}
	case "down", "j":
		if s.questCursor < len(quests)-1 {
			s.questCursor++
		}
	case "space", "x", "enter":
		if s.questCursor < len(quests) {
			id := quests[s.questCursor].ID
			if completed, ok := s.tracker.Toggle(id); ok {
				s.recordQuest(id, sourceManual, completed)
			}
		}
	case "t":
		if s.questCursor < len(quests) {
			id := quests[s.questCursor].ID
			s.tipsShown[id] = !s.tipsShown[id]
		}
	}
	return nil, true
}
