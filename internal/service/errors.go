package service

import "errors"

var (
	ErrInvalidCredentials    = errors.New("invalid username or password")
	ErrUserNotFound          = errors.New("user not found")
	ErrUsernameAlreadyExists = errors.New("username already exists")
	ErrEmailAlreadyExists    = errors.New("email already exists")
	ErrInvalidOTP            = errors.New("invalid or expired verification code")
	ErrInvalidResetToken     = errors.New("invalid or expired reset token")

	ErrInvalidImage       = errors.New("uploaded file is not a supported image")
	ErrPredictionNotFound = errors.New("prediction not found")
	ErrNotPredictionOwner = errors.New("prediction does not belong to you")

	ErrDermatologistNotFound  = errors.New("dermatologist not found")
	ErrNotADermatologist      = errors.New("selected user is not a dermatologist")
	ErrDuplicateReviewRequest = errors.New("a pending review request already exists for this prediction and dermatologist")
	ErrReviewRequestNotFound  = errors.New("review request not found")
	ErrReviewAlreadyProcessed = errors.New("review request already processed")
	ErrEmptyReviewComment     = errors.New("review comment is required")
	ErrNotAssigned            = errors.New("review request is not assigned to you")
	ErrNotParticipant         = errors.New("you are not part of this review request")

	ErrNotificationNotFound = errors.New("notification not found")
	ErrTreatmentNotFound    = errors.New("treatment suggestion not found")
)
