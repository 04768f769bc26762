package repository

import (
	"context"
	"strings"
	"sync"
	"time"

	domainRepo "dermassist/internal/domain/repository"
)

type expiringCode struct {
	code      string
	expiresAt time.Time
}

type passwordResetRepository struct {
	mu     sync.Mutex
	otps   map[string]expiringCode
	tokens map[string]expiringCode
}

func NewPasswordResetRepository() domainRepo.PasswordResetRepository {
	return &passwordResetRepository{
		otps:   make(map[string]expiringCode),
		tokens: make(map[string]expiringCode),
	}
}

func (r *passwordResetRepository) SaveOTP(_ context.Context, email, otp string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.otps[strings.ToLower(email)] = expiringCode{code: otp, expiresAt: expiresAt}
	return nil
}

func (r *passwordResetRepository) ConsumeOTP(_ context.Context, email, otp string, now time.Time) (bool, error) {
	return r.consume(r.otps, email, otp, now), nil
}

func (r *passwordResetRepository) SaveResetToken(_ context.Context, email, token string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens[strings.ToLower(email)] = expiringCode{code: token, expiresAt: expiresAt}
	return nil
}

func (r *passwordResetRepository) ConsumeResetToken(_ context.Context, email, token string, now time.Time) (bool, error) {
	return r.consume(r.tokens, email, token, now), nil
}

func (r *passwordResetRepository) consume(codes map[string]expiringCode, email, code string, now time.Time) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := strings.ToLower(email)
	stored, ok := codes[key]
	if !ok || stored.code != code {
		return false
	}
	delete(codes, key)
	return now.Before(stored.expiresAt)
}
