package service

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
)

// OTPSender delivers password reset codes to the account's email address.
type OTPSender interface {
	SendOTP(ctx context.Context, email, otp string) error
}

// LogOTPSender is the development delivery channel: it writes the code to the
// server log instead of sending mail.
type LogOTPSender struct {
	log *logrus.Logger
}

func NewLogOTPSender(log *logrus.Logger) *LogOTPSender {
	return &LogOTPSender{log: log}
}

func (s *LogOTPSender) SendOTP(_ context.Context, email, otp string) error {
	s.log.WithField("email", email).Infof("Password reset code: %s", otp)
	return nil
}

// OTPCall records a single call to SendOTP.
type OTPCall struct {
	Email string
	OTP   string
}

// CaptureOTPSender is a test double that remembers every code it was asked
// to send.
type CaptureOTPSender struct {
	mu    sync.Mutex
	calls []OTPCall
}

func (c *CaptureOTPSender) SendOTP(_ context.Context, email, otp string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, OTPCall{Email: email, OTP: otp})
	return nil
}

// Last returns the most recent code sent to email.
func (c *CaptureOTPSender) Last(email string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := len(c.calls) - 1; i >= 0; i-- {
		if c.calls[i].Email == email {
			return c.calls[i].OTP, true
		}
	}
	return "", false
}
