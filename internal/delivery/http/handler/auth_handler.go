package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"dermassist/internal/delivery/dto"
	"dermassist/internal/service"
	"dermassist/pkg/response"
	"dermassist/pkg/validator"
)

type AuthHandler struct {
	authService service.AuthService
	userService service.UserService
	validator   *validator.CustomValidator
}

func NewAuthHandler(authService service.AuthService, userService service.UserService, validator *validator.CustomValidator) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		userService: userService,
		validator:   validator,
	}
}

// Signup handles account registration
// @Summary Register a patient or dermatologist
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.SignupRequest true "Signup Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /auth/signup [post]
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req dto.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	res, err := h.authService.Signup(r.Context(), &req)
	if err != nil {
		switch err {
		case service.ErrUsernameAlreadyExists:
			response.Error(w, http.StatusConflict, "Username already exists", nil)
		case service.ErrEmailAlreadyExists:
			response.Error(w, http.StatusConflict, "Email already exists", nil)
		default:
			response.InternalServerError(w, "Failed to register user")
		}
		return
	}

	response.Success(w, http.StatusCreated, "User registered successfully", res)
}

// Login handles user login
// @Summary Login user
// @Description Login with username or email and password
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	res, err := h.authService.Login(r.Context(), &req)
	if err != nil {
		switch err {
		case service.ErrInvalidCredentials:
			response.Error(w, http.StatusUnauthorized, "Invalid username or password", nil)
		default:
			response.InternalServerError(w, "Failed to login")
		}
		return
	}

	response.Success(w, http.StatusOK, "Login successful", res)
}

// GetCurrentUser handles getting current user info
// @Summary Get current user
// @Tags Auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/me [get]
func (h *AuthHandler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	caller, ok := currentUser(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	user, err := h.userService.Me(r.Context(), caller.ID)
	if err != nil {
		switch err {
		case service.ErrUserNotFound:
			response.NotFound(w, "User not found")
		default:
			response.InternalServerError(w, "Failed to get user info")
		}
		return
	}

	response.Success(w, http.StatusOK, "User info retrieved successfully", user)
}

// CheckUsername reports whether a username is still available
// @Summary Check username availability
// @Tags Auth
// @Produce json
// @Param username query string true "Username"
// @Success 200 {object} response.Response
// @Router /auth/check-username [get]
func (h *AuthHandler) CheckUsername(w http.ResponseWriter, r *http.Request) {
	username := strings.TrimSpace(r.URL.Query().Get("username"))
	if username == "" {
		response.ValidationError(w, map[string]string{"Username": "Username is required"})
		return
	}

	available, err := h.userService.CheckUsername(r.Context(), username)
	if err != nil {
		response.InternalServerError(w, "Failed to check username")
		return
	}

	response.Success(w, http.StatusOK, "Username checked", dto.UsernameAvailabilityResponse{
		Username:  username,
		Available: available,
	})
}

// ForgotPassword starts the OTP password reset flow
// @Summary Request a password reset code
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.ForgotPasswordRequest true "Forgot Password Request"
// @Success 200 {object} response.Response
// @Router /auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req dto.ForgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	if err := h.authService.ForgotPassword(r.Context(), &req); err != nil {
		response.InternalServerError(w, "Failed to send verification code")
		return
	}

	response.Success(w, http.StatusOK, "If the email is registered, a verification code has been sent", nil)
}

// VerifyOTP exchanges a verification code for a reset token
// @Summary Verify password reset code
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.VerifyOTPRequest true "Verify OTP Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /auth/verify-otp [post]
func (h *AuthHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req dto.VerifyOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	res, err := h.authService.VerifyOTP(r.Context(), &req)
	if err != nil {
		switch err {
		case service.ErrInvalidOTP:
			response.Error(w, http.StatusBadRequest, "Invalid or expired verification code", nil)
		default:
			response.InternalServerError(w, "Failed to verify code")
		}
		return
	}

	response.Success(w, http.StatusOK, "Code verified", res)
}

// ResetPassword sets a new password using a verified reset token
// @Summary Reset password
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.ResetPasswordRequest true "Reset Password Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /auth/reset-password [post]
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req dto.ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	if err := h.authService.ResetPassword(r.Context(), &req); err != nil {
		switch err {
		case service.ErrInvalidResetToken:
			response.Error(w, http.StatusBadRequest, "Invalid or expired reset token", nil)
		case service.ErrUserNotFound:
			response.NotFound(w, "User not found")
		default:
			response.InternalServerError(w, "Failed to reset password")
		}
		return
	}

	response.Success(w, http.StatusOK, "Password reset successfully", nil)
}
