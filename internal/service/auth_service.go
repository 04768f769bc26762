package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"dermassist/internal/converter"
	"dermassist/internal/delivery/dto"
	"dermassist/internal/domain/entity"
	"dermassist/internal/domain/repository"
	"dermassist/pkg/jwt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

const (
	otpTTL        = 10 * time.Minute
	resetTokenTTL = 15 * time.Minute
)

type AuthService interface {
	Signup(ctx context.Context, req *dto.SignupRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	ForgotPassword(ctx context.Context, req *dto.ForgotPasswordRequest) error
	VerifyOTP(ctx context.Context, req *dto.VerifyOTPRequest) (*dto.VerifyOTPResponse, error)
	ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) error
}

type authService struct {
	log        *logrus.Logger
	userRepo   repository.UserRepository
	resetRepo  repository.PasswordResetRepository
	jwtService *jwt.JWTService
	otpSender  OTPSender
	now        func() time.Time
}

func NewAuthService(
	log *logrus.Logger,
	userRepo repository.UserRepository,
	resetRepo repository.PasswordResetRepository,
	jwtService *jwt.JWTService,
	otpSender OTPSender,
) AuthService {
	return &authService{
		log:        log,
		userRepo:   userRepo,
		resetRepo:  resetRepo,
		jwtService: jwtService,
		otpSender:  otpSender,
		now:        time.Now,
	}
}

func (s *authService) Signup(ctx context.Context, req *dto.SignupRequest) (*dto.AuthResponse, error) {
	// Hash password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	user := converter.SignupToRecord(req, uuid.New().String(), string(hashedPassword), s.now().UTC())

	if err := s.userRepo.Create(ctx, user); err != nil {
		switch err {
		case repository.ErrUsernameTaken:
			return nil, ErrUsernameAlreadyExists
		case repository.ErrEmailTaken:
			return nil, ErrEmailAlreadyExists
		}
		s.log.Warnf("Failed to create user: %+v", err)
		return nil, err
	}

	s.log.Infof("User registered: id=%s, role=%s", user.ID, user.Role)
	return s.issue(converter.RecordToUser(user))
}

// Login accepts either the username or the email address.
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByLogin(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		s.log.Warnf("Failed to find user: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issue(converter.RecordToUser(user))
}

func (s *authService) issue(user *entity.User) (*dto.AuthResponse, error) {
	token, _, err := s.jwtService.GenerateAccessToken(user.ID, string(user.Role))
	if err != nil {
		s.log.Warnf("Failed to generate access token: %+v", err)
		return nil, err
	}
	return &dto.AuthResponse{Token: token, User: user}, nil
}

// ForgotPassword sends a six digit code when the email belongs to an
// account. Unknown addresses succeed silently.
func (s *authService) ForgotPassword(ctx context.Context, req *dto.ForgotPasswordRequest) error {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		s.log.Warnf("Failed to find user by email: %+v", err)
		return err
	}
	if user == nil {
		return nil
	}

	otp, err := generateOTP()
	if err != nil {
		s.log.Warnf("Failed to generate OTP: %+v", err)
		return err
	}
	if err := s.resetRepo.SaveOTP(ctx, user.Email, otp, s.now().Add(otpTTL)); err != nil {
		s.log.Warnf("Failed to store OTP: %+v", err)
		return err
	}
	if err := s.otpSender.SendOTP(ctx, user.Email, otp); err != nil {
		s.log.Warnf("Failed to send OTP: %+v", err)
		return err
	}
	return nil
}

func (s *authService) VerifyOTP(ctx context.Context, req *dto.VerifyOTPRequest) (*dto.VerifyOTPResponse, error) {
	ok, err := s.resetRepo.ConsumeOTP(ctx, req.Email, req.OTP, s.now())
	if err != nil {
		s.log.Warnf("Failed to verify OTP: %+v", err)
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidOTP
	}

	resetToken := uuid.New().String()
	if err := s.resetRepo.SaveResetToken(ctx, req.Email, resetToken, s.now().Add(resetTokenTTL)); err != nil {
		s.log.Warnf("Failed to store reset token: %+v", err)
		return nil, err
	}
	return &dto.VerifyOTPResponse{ResetToken: resetToken}, nil
}

func (s *authService) ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) error {
	ok, err := s.resetRepo.ConsumeResetToken(ctx, req.Email, req.ResetToken, s.now())
	if err != nil {
		s.log.Warnf("Failed to check reset token: %+v", err)
		return err
	}
	if !ok {
		return ErrInvalidResetToken
	}

	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		s.log.Warnf("Failed to hash password: %+v", err)
		return err
	}
	if err := s.userRepo.UpdatePassword(ctx, user.ID, string(hashedPassword)); err != nil {
		s.log.Warnf("Failed to update password: %+v", err)
		return err
	}

	s.log.Infof("Password reset: user=%s", user.ID)
	return nil
}

func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
