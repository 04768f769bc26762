package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"dermassist/internal/domain/entity"
	"dermassist/pkg/jwt"

	"github.com/sirupsen/logrus"
)

const (
	TokenKey = "auth_token"
	UserKey  = "user_profile"
)

// Manager reads and writes the two persisted session entries: the auth token
// and the serialized user profile.
type Manager struct {
	store Store
	log   *logrus.Logger
	now   func() time.Time
}

func NewManager(store Store, log *logrus.Logger) *Manager {
	return &Manager{store: store, log: log, now: time.Now}
}

// Save persists the token and user profile after a successful login or signup.
func (m *Manager) Save(ctx context.Context, token string, user *entity.User) error {
	if err := m.store.Set(ctx, TokenKey, token); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	if user == nil {
		return nil
	}
	return m.SaveUser(ctx, user)
}

// SaveUser replaces the cached user profile.
func (m *Manager) SaveUser(ctx context.Context, user *entity.User) error {
	b, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	if err := m.store.Set(ctx, UserKey, string(b)); err != nil {
		return fmt.Errorf("save user: %w", err)
	}
	return nil
}

// Token returns the stored token, or "" when logged out.
func (m *Manager) Token(ctx context.Context) (string, error) {
	token, _, err := m.store.Get(ctx, TokenKey)
	return token, err
}

// CurrentUser returns the cached profile, or nil when none is stored.
func (m *Manager) CurrentUser(ctx context.Context) (*entity.User, error) {
	raw, ok, err := m.store.Get(ctx, UserKey)
	if err != nil || !ok || raw == "" {
		return nil, err
	}
	var user entity.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		m.log.Warnf("Failed to decode cached user profile: %+v", err)
		return nil, nil
	}
	return &user, nil
}

// Clear removes both session entries. Both deletes are attempted even when
// the first fails.
func (m *Manager) Clear(ctx context.Context) error {
	tokenErr := m.store.Delete(ctx, TokenKey)
	userErr := m.store.Delete(ctx, UserKey)
	if tokenErr != nil {
		return fmt.Errorf("delete token: %w", tokenErr)
	}
	if userErr != nil {
		return fmt.Errorf("delete user: %w", userErr)
	}
	return nil
}

// IsAuthenticated reports whether a usable token is stored. JWTs whose exp
// claim has passed count as logged out.
func (m *Manager) IsAuthenticated(ctx context.Context) (bool, error) {
	token, err := m.Token(ctx)
	if err != nil {
		return false, err
	}
	if token == "" {
		return false, nil
	}
	if exp, ok := jwt.PeekExpiry(token); ok && !m.now().Before(exp) {
		return false, nil
	}
	return true, nil
}
