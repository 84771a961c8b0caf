// Package session keeps the signed-in participant's identity between runs.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bobbyhwsong/voice-chat-app/internal/api"
	"github.com/bobbyhwsong/voice-chat-app/internal/store"
)

// ErrNoSession is returned when no usable identity is stored. Screens that
// need an identity treat it as fatal and send the user back to login.
var ErrNoSession = errors.New("no user session")

// UserSession is the identity record written at login. Field names match
// the JSON document the web front end keeps under "userData".
type UserSession struct {
	ParticipantID        string     `json:"participantId"`
	Symptoms             string     `json:"symptoms,omitempty"`
	Consent              bool       `json:"consent"`
	LoginTime            time.Time  `json:"loginTime"`
	GuidelineCompletedAt *time.Time `json:"guidelineCompleted,omitempty"`
}

// GuidelineCompleted reports whether the pre-visit checklist was finished.
func (u UserSession) GuidelineCompleted() bool {
	return u.GuidelineCompletedAt != nil
}

// UserData is the registration payload sent to the backend at login.
func (u UserSession) UserData() api.UserData {
	return api.UserData{
		ParticipantID: u.ParticipantID,
		Symptoms:      u.Symptoms,
		Consent:       u.Consent,
		LoginTime:     u.LoginTime.Format(time.RFC3339),
	}
}

// Store reads and writes the UserSession. There is no expiry: the record
// lives until Clear is called or the database is removed.
type Store struct {
	repo store.UserDataRepo
}

// NewStore creates a Store over the given repository.
func NewStore(repo store.UserDataRepo) *Store {
	return &Store{repo: repo}
}

// Get returns the stored identity. A missing, undecodable or anonymous
// record yields ErrNoSession.
func (s *Store) Get(ctx context.Context) (*UserSession, error) {
	raw, err := s.repo.Load(ctx)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	var u UserSession
	if err := json.Unmarshal(raw, &u); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrNoSession, err)
	}
	if strings.TrimSpace(u.ParticipantID) == "" {
		return nil, ErrNoSession
	}
	return &u, nil
}

// Require is Get for guarded screens: every failure collapses into
// ErrNoSession so the caller has a single redirect path.
func (s *Store) Require(ctx context.Context) (UserSession, error) {
	u, err := s.Get(ctx)
	if err != nil {
		if errors.Is(err, ErrNoSession) {
			return UserSession{}, err
		}
		return UserSession{}, fmt.Errorf("%w: %v", ErrNoSession, err)
	}
	return *u, nil
}

// Set replaces the stored identity.
func (s *Store) Set(ctx context.Context, u UserSession) error {
	if strings.TrimSpace(u.ParticipantID) == "" {
		return errors.New("participant id is required")
	}
	raw, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	return s.repo.Save(ctx, raw)
}

// Clear removes the stored identity.
func (s *Store) Clear(ctx context.Context) error {
	return s.repo.Delete(ctx)
}

// MarkGuidelineCompleted stamps the checklist completion time on the
// current identity.
func (s *Store) MarkGuidelineCompleted(ctx context.Context, at time.Time) (UserSession, error) {
	u, err := s.Require(ctx)
	if err != nil {
		return UserSession{}, err
	}
	at = at.UTC()
	u.GuidelineCompletedAt = &at
	if err := s.Set(ctx, u); err != nil {
		return UserSession{}, err
	}
	return u, nil
}
