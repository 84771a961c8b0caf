package quest

import (
	"strings"

	"github.com/bobbyhwsong/voice-chat-app/internal/api"
)

// Phase is the lifecycle position of a Tracker.
type Phase int

const (
	PhaseInit Phase = iota
	PhaseLoaded
	PhaseUpdated
)

// Progress summarizes quest completion.
type Progress struct {
	Completed int
	Total     int
}

// Percent returns Completed/Total*100, or 0 when there are no quests.
func (p Progress) Percent() float64 {
	if p.Total == 0 {
		return 0
	}
	return float64(p.Completed) / float64(p.Total) * 100
}

// Tracker holds one visit's quest list and completion set. The set is never
// persisted; a new visit starts empty.
type Tracker struct {
	phase     Phase
	source    Source
	quests    []Quest
	completed map[string]bool
}

// NewTracker returns a Tracker in PhaseInit.
func NewTracker() *Tracker {
	return &Tracker{completed: map[string]bool{}}
}

// Load installs the quest list for this visit and clears completion.
func (t *Tracker) Load(quests []Quest, source Source) {
	t.quests = append([]Quest(nil), quests...)
	t.source = source
	t.completed = map[string]bool{}
	t.phase = PhaseLoaded
}

// Phase returns the current lifecycle phase.
func (t *Tracker) Phase() Phase { return t.phase }

// Source reports how the quest list was derived.
func (t *Tracker) Source() Source { return t.source }

// Quests returns the quest list in display order.
func (t *Tracker) Quests() []Quest { return t.quests }

// Quest returns the quest with id.
func (t *Tracker) Quest(id string) (Quest, bool) {
	for _, q := range t.quests {
		if q.ID == id {
			return q, true
		}
	}
	return Quest{}, false
}

// IsCompleted reports whether quest id is completed.
func (t *Tracker) IsCompleted(id string) bool {
	return t.completed[id]
}

// Active returns the quests not yet completed.
func (t *Tracker) Active() []Quest {
	var out []Quest
	for _, q := range t.quests {
		if !t.completed[q.ID] {
			out = append(out, q)
		}
	}
	return out
}

// ActiveRequest converts the active quests to the analyzer's wire format.
func (t *Tracker) ActiveRequest() []api.ActiveQuest {
	active := t.Active()
	out := make([]api.ActiveQuest, 0, len(active))
	for _, q := range active {
		out = append(out, api.ActiveQuest{
			ID:              q.ID,
			Title:           q.Title,
			Description:     q.Description,
			Keywords:        q.Keywords,
			ImprovementTips: q.Tips,
		})
	}
	return out
}

// ApplyAnalysis marks the given quest ids completed and returns the quests
// that were newly completed, in the order given. Ids that are unknown or
// already completed are ignored.
func (t *Tracker) ApplyAnalysis(ids []string) []Quest {
	var newly []Quest
	for _, id := range ids {
		q, ok := t.Quest(id)
		if !ok || t.completed[id] {
			continue
		}
		t.completed[id] = true
		newly = append(newly, q)
	}
	if len(newly) > 0 {
		t.phase = PhaseUpdated
	}
	return newly
}

// FallbackMatch completes every active quest with a keyword contained in
// the exchange, compared case-insensitively, and returns the newly
// completed quests.
func (t *Tracker) FallbackMatch(userMessage, botResponse string) []Quest {
	text := strings.ToLower(userMessage + " " + botResponse)
	var ids []string
	for _, q := range t.Active() {
		for _, kw := range q.Keywords {
			if kw != "" && strings.Contains(text, strings.ToLower(kw)) {
				ids = append(ids, q.ID)
				break
			}
		}
	}
	return t.ApplyAnalysis(ids)
}

// Toggle flips a quest's completion without notifying anyone and returns
// the new state. Unknown ids return false, false.
func (t *Tracker) Toggle(id string) (completed, ok bool) {
	if _, ok := t.Quest(id); !ok {
		return false, false
	}
	if t.completed[id] {
		delete(t.completed, id)
	} else {
		t.completed[id] = true
	}
	t.phase = PhaseUpdated
	return t.completed[id], true
}

// Progress returns the completion counts.
func (t *Tracker) Progress() Progress {
	return Progress{Completed: len(t.completed), Total: len(t.quests)}
}

// Resolve applies the outcome of a remote analysis of one exchange. On
// error the keyword fallback runs instead, with the same effect on the
// completion set.
func (t *Tracker) Resolve(ids []string, err error, userMessage, botResponse string) (newly []Quest, fallback bool) {
	if err != nil {
		return t.FallbackMatch(userMessage, botResponse), true
	}
	return t.ApplyAnalysis(ids), false
}
