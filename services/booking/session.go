package booking

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"bookify/config"
	"bookify/models"
)

// WizardSession is the persisted state of one admin booking wizard: the cart
// under construction and which step is active. Steps themselves are
// stateless between requests; transient caches are rebuilt through the
// hash-based reload checks.
type WizardSession struct {
	SessionID    string                            `json:"sessionId"`
	Cart         *models.Cart                      `json:"cart"`
	ActiveStepID string                            `json:"activeStepId,omitempty"`
	Properties   map[string]map[string]interface{} `json:"properties,omitempty"`
}

// SessionStore keeps wizard sessions in Redis with a TTL, so handlers stay
// stateless and the widget survives page reloads.
type SessionStore struct {
	cache *redis.Client
}

func NewSessionStore(cache *redis.Client) *SessionStore {
	return &SessionStore{cache: cache}
}

// Create stores a fresh session around the given cart and returns it.
func (s *SessionStore) Create(ctx context.Context, cart *models.Cart) (*WizardSession, error) {
	session := &WizardSession{
		SessionID: uuid.New().String(),
		Cart:      cart,
	}
	if err := s.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Save writes the session back, refreshing its TTL.
func (s *SessionStore) Save(ctx context.Context, session *WizardSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal wizard session: %w", err)
	}
	if err := s.cache.Set(ctx, sessionKey(session.SessionID), data, config.SessionTTL()).Err(); err != nil {
		return fmt.Errorf("failed to store wizard session: %w", err)
	}
	return nil
}

// Get loads a session; an unknown or expired id is an error.
func (s *SessionStore) Get(ctx context.Context, sessionID string) (*WizardSession, error) {
	data, err := s.cache.Get(ctx, sessionKey(sessionID)).Result()
	if err != nil {
		return nil, fmt.Errorf("wizard session not found or expired: %w", err)
	}
	var session WizardSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to parse wizard session: %w", err)
	}
	return &session, nil
}

// Delete removes a session explicitly (cancel or completed checkout).
func (s *SessionStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.cache.Del(ctx, sessionKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to delete wizard session: %w", err)
	}
	return nil
}

func sessionKey(sessionID string) string {
	return "wizard:session:" + sessionID
}
