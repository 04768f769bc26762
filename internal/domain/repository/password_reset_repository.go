package repository

import (
	"context"
	"time"
)

type PasswordResetRepository interface {
	SaveOTP(ctx context.Context, email, otp string, expiresAt time.Time) error
	// ConsumeOTP deletes and returns true for a matching, unexpired code.
	ConsumeOTP(ctx context.Context, email, otp string, now time.Time) (bool, error)
	SaveResetToken(ctx context.Context, email, token string, expiresAt time.Time) error
	ConsumeResetToken(ctx context.Context, email, token string, now time.Time) (bool, error)
}
