package dto

import "dermassist/internal/domain/entity"

// Request DTOs

// LoginRequest accepts either a username or an email address in Username.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type SignupRequest struct {
	Username string      `json:"username" validate:"required,min=3,max=30,username"`
	Email    string      `json:"email" validate:"required,email"`
	Password string      `json:"password" validate:"required,min=8"`
	FullName string      `json:"full_name" validate:"omitempty,max=100"`
	Role     entity.Role `json:"role" validate:"required,oneof=patient dermatologist"`

	// Required for dermatologist accounts only.
	LicenseNumber     string `json:"license_number,omitempty" validate:"required_if=Role dermatologist"`
	Specialization    string `json:"specialization,omitempty" validate:"required_if=Role dermatologist"`
	ClinicName        string `json:"clinic_name,omitempty" validate:"omitempty,max=200"`
	YearsOfExperience int    `json:"years_of_experience,omitempty" validate:"gte=0,lte=80"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type VerifyOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"required,len=6,numeric"`
}

type ResetPasswordRequest struct {
	Email           string `json:"email" validate:"required,email"`
	ResetToken      string `json:"reset_token" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=NewPassword"`
}

// Response DTOs

type AuthResponse struct {
	Token string       `json:"token"`
	User  *entity.User `json:"user"`
}

type UsernameAvailabilityResponse struct {
	Username  string `json:"username"`
	Available bool   `json:"available"`
}

type VerifyOTPResponse struct {
	ResetToken string `json:"reset_token"`
}
