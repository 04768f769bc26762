package usecase

import (
	"context"
	"strings"

	"dermassist/internal/apiclient"
	"dermassist/internal/delivery/dto"
	"dermassist/internal/domain/entity"
	"dermassist/pkg/validator"

	"github.com/sirupsen/logrus"
)

type AuthUsecase interface {
	Signup(ctx context.Context, req *dto.SignupRequest) (*entity.User, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*entity.User, error)
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (*entity.User, error)
	RefreshCurrentUser(ctx context.Context) (*entity.User, error)
	IsAuthenticated(ctx context.Context) (bool, error)
	CheckUsername(ctx context.Context, username string) (bool, error)
	RequestPasswordReset(ctx context.Context, req *dto.ForgotPasswordRequest) error
	VerifyOTP(ctx context.Context, req *dto.VerifyOTPRequest) (string, error)
	ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) error
}

type authUsecase struct {
	log       *logrus.Logger
	api       API
	session   Session
	validator *validator.CustomValidator
}

func NewAuthUsecase(log *logrus.Logger, api API, session Session, validator *validator.CustomValidator) AuthUsecase {
	return &authUsecase{
		log:       log,
		api:       api,
		session:   session,
		validator: validator,
	}
}

// Signup creates the account. When the backend answers with a token the
// session is stored right away.
func (u *authUsecase) Signup(ctx context.Context, req *dto.SignupRequest) (*entity.User, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	if err := validate(u.validator, req); err != nil {
		return nil, err
	}

	var res dto.AuthResponse
	if err := u.api.Post(ctx, "/auth/signup", req, &res); err != nil {
		u.log.Warnf("Failed to sign up %s: %+v", req.Username, err)
		return nil, err
	}

	if res.Token != "" {
		if err := u.session.Save(ctx, res.Token, res.User); err != nil {
			u.log.Warnf("Failed to persist session after signup: %+v", err)
			return nil, err
		}
	}
	u.log.Infof("Signed up user %s as %s", req.Username, req.Role)
	return res.User, nil
}

func (u *authUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*entity.User, error) {
	req.Username = strings.TrimSpace(req.Username)
	if err := validate(u.validator, req); err != nil {
		return nil, err
	}

	var res dto.AuthResponse
	if err := u.api.Post(ctx, "/auth/login", req, &res); err != nil {
		u.log.Warnf("Failed to log in %s: %+v", req.Username, err)
		return nil, err
	}
	if res.Token == "" || res.User == nil {
		return nil, apiclient.NewError(apiclient.KindUnknown, "Login response did not include a session.")
	}

	if err := u.session.Save(ctx, res.Token, res.User); err != nil {
		u.log.Warnf("Failed to persist session: %+v", err)
		return nil, err
	}
	u.log.Infof("Logged in as %s (%s)", res.User.Username, res.User.Role)
	return res.User, nil
}

// Logout drops the local session; the token is simply forgotten.
func (u *authUsecase) Logout(ctx context.Context) error {
	if err := u.session.Clear(ctx); err != nil {
		u.log.Warnf("Failed to clear session: %+v", err)
		return err
	}
	u.log.Info("Logged out")
	return nil
}

func (u *authUsecase) CurrentUser(ctx context.Context) (*entity.User, error) {
	user, err := u.session.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotAuthenticated
	}
	return user, nil
}

// RefreshCurrentUser fetches the profile from the backend and re-caches it.
func (u *authUsecase) RefreshCurrentUser(ctx context.Context) (*entity.User, error) {
	var user entity.User
	if _, err := u.api.Get(ctx, "/auth/me", nil, &user); err != nil {
		return nil, err
	}
	if err := u.session.SaveUser(ctx, &user); err != nil {
		u.log.Warnf("Failed to cache user profile: %+v", err)
	}
	return &user, nil
}

func (u *authUsecase) IsAuthenticated(ctx context.Context) (bool, error) {
	return u.session.IsAuthenticated(ctx)
}

// CheckUsername reports whether the username is still free.
func (u *authUsecase) CheckUsername(ctx context.Context, username string) (bool, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return false, apiclient.NewValidationError(map[string]string{"Username": "Username is required"})
	}

	var res dto.UsernameAvailabilityResponse
	params := struct {
		Username string `url:"username"`
	}{Username: username}
	if _, err := u.api.Get(ctx, "/auth/check-username", params, &res); err != nil {
		return false, err
	}
	return res.Available, nil
}

func (u *authUsecase) RequestPasswordReset(ctx context.Context, req *dto.ForgotPasswordRequest) error {
	if err := validate(u.validator, req); err != nil {
		return err
	}
	if err := u.api.Post(ctx, "/auth/forgot-password", req, nil); err != nil {
		u.log.Warnf("Failed to request password reset: %+v", err)
		return err
	}
	return nil
}

// VerifyOTP exchanges the emailed code for a one-time reset token.
func (u *authUsecase) VerifyOTP(ctx context.Context, req *dto.VerifyOTPRequest) (string, error) {
	if err := validate(u.validator, req); err != nil {
		return "", err
	}
	var res dto.VerifyOTPResponse
	if err := u.api.Post(ctx, "/auth/verify-otp", req, &res); err != nil {
		return "", err
	}
	if res.ResetToken == "" {
		return "", apiclient.NewError(apiclient.KindUnknown, "Verification response did not include a reset token.")
	}
	return res.ResetToken, nil
}

func (u *authUsecase) ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) error {
	if err := validate(u.validator, req); err != nil {
		return err
	}
	if err := u.api.Post(ctx, "/auth/reset-password", req, nil); err != nil {
		u.log.Warnf("Failed to reset password: %+v", err)
		return err
	}
	return nil
}
