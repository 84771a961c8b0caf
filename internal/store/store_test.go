package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	s, err := Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil db")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	s := openTestStore(t)
	if err := migrate(context.Background(), s.DB()); err != nil {
		t.Fatalf("second migrate: %v", err)
	}
}

func TestUserDataRoundTrip(t *testing.T) {
	s := openTestStore(t)
	repo := s.UserDataRepo()
	ctx := context.Background()

	if _, err := repo.Load(ctx); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on empty store, got %v", err)
	}

	if err := repo.Save(ctx, []byte(`{"participantId":"p1"}`)); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := repo.Save(ctx, []byte(`{"participantId":"p2"}`)); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	got, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(got) != `{"participantId":"p2"}` {
		t.Errorf("payload = %s, want the latest save", got)
	}

	if err := repo.Delete(ctx); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.Load(ctx); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := repo.Delete(ctx); err != nil {
		t.Fatalf("delete on empty: %v", err)
	}
}

func TestAPIRequestEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for _, ep := range []string{"/api/chat", "/api/tts", "/api/evaluate"} {
		err := repo.AppendAPIRequest(ctx, APIRequestEventData{
			Endpoint:      ep,
			PageType:      "chat",
			ParticipantID: "p1",
			LatencyMs:     12,
			Success:       ep != "/api/tts",
		})
		if err != nil {
			t.Fatalf("append %s: %v", ep, err)
		}
	}

	all, err := repo.QueryAPIRequests(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 events, got %d", len(all))
	}
	if all[0].Endpoint != "/api/evaluate" {
		t.Errorf("expected newest first, got %s", all[0].Endpoint)
	}
	if all[1].Success {
		t.Error("expected tts event to be recorded as failed")
	}
	if all[0].Timestamp.IsZero() {
		t.Error("expected timestamp to round-trip")
	}

	limited, err := repo.QueryAPIRequests(ctx, QueryOpts{Limit: 1})
	if err != nil {
		t.Fatalf("query limited: %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("expected 1 event with limit, got %d", len(limited))
	}

	after, err := repo.QueryAPIRequests(ctx, QueryOpts{After: all[1].Sequence})
	if err != nil {
		t.Fatalf("query after: %v", err)
	}
	if len(after) != 1 || after[0].Sequence != all[0].Sequence {
		t.Errorf("expected only the newest event after seq %d, got %+v", all[1].Sequence, after)
	}

	future, err := repo.QueryAPIRequests(ctx, QueryOpts{From: time.Now().Add(time.Hour)})
	if err != nil {
		t.Fatalf("query from: %v", err)
	}
	if len(future) != 0 {
		t.Errorf("expected no events in the future, got %d", len(future))
	}
}

func TestQuestEventsFilteredByParticipant(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []QuestEventData{
		{ParticipantID: "p1", VisitID: "v1", QuestID: "medication", Source: "ai", Completed: true},
		{ParticipantID: "p2", VisitID: "v2", QuestID: "symptom", Source: "manual", Completed: true},
		{ParticipantID: "p1", VisitID: "v1", QuestID: "medication", Source: "manual", Completed: false},
	}
	for _, e := range events {
		if err := repo.AppendQuestEvent(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	got, err := repo.QueryQuestEvents(ctx, "p1", QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 events for p1, got %d", len(got))
	}
	if got[0].Completed || got[0].Source != "manual" {
		t.Errorf("expected newest event to be the manual uncheck, got %+v", got[0])
	}
	if got[1].QuestID != "medication" || !got[1].Completed {
		t.Errorf("unexpected oldest event %+v", got[1])
	}
}
