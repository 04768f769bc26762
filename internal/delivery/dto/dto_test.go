package dto

import (
	"testing"

	"dermassist/internal/domain/entity"
	"dermassist/pkg/validator"
)

func TestSignupRequest_DermatologistNeedsProfessionalFields(t *testing.T) {
	v := validator.NewValidator()

	patient := SignupRequest{Username: "pat_1", Email: "pat@example.com", Password: "password1", Role: entity.RolePatient}
	if err := v.Validate(&patient); err != nil {
		t.Fatalf("patient signup should validate: %v", err)
	}

	derm := patient
	derm.Role = entity.RoleDermatologist
	err := v.Validate(&derm)
	if err == nil {
		t.Fatal("dermatologist signup without license should fail")
	}
	fields := v.FormatValidationErrors(err)
	if _, ok := fields["LicenseNumber"]; !ok {
		t.Errorf("missing LicenseNumber error: %v", fields)
	}
	if _, ok := fields["Specialization"]; !ok {
		t.Errorf("missing Specialization error: %v", fields)
	}

	derm.LicenseNumber = "LIC-42"
	derm.Specialization = "Cosmetic dermatology"
	if err := v.Validate(&derm); err != nil {
		t.Errorf("complete dermatologist signup should validate: %v", err)
	}
}

func TestSignupRequest_RejectsUnknownRole(t *testing.T) {
	v := validator.NewValidator()
	req := SignupRequest{Username: "x_user", Email: "x@example.com", Password: "password1", Role: "admin"}
	fields := v.FormatValidationErrors(v.Validate(&req))
	if fields["Role"] != "Role must be one of: patient dermatologist" {
		t.Errorf("fields = %v", fields)
	}
}

func TestSubmitReviewRequest_BlankComment(t *testing.T) {
	v := validator.NewValidator()
	if err := v.Validate(&SubmitReviewRequest{Comment: " \n\t"}); err == nil {
		t.Fatal("blank comment should fail validation")
	}
	if err := v.Validate(&SubmitReviewRequest{Comment: "Looks benign"}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestVerifyOTPRequest(t *testing.T) {
	v := validator.NewValidator()
	tests := []struct {
		otp  string
		want bool
	}{
		{"123456", true},
		{"12345", false},
		{"12a456", false},
	}
	for _, tt := range tests {
		err := v.Validate(&VerifyOTPRequest{Email: "a@example.com", OTP: tt.otp})
		if (err == nil) != tt.want {
			t.Errorf("OTP %q valid = %v, want %v", tt.otp, err == nil, tt.want)
		}
	}
}

func TestResetPasswordRequest_ConfirmMustMatch(t *testing.T) {
	v := validator.NewValidator()
	req := ResetPasswordRequest{Email: "a@example.com", ResetToken: "t", NewPassword: "newpassword", ConfirmPassword: "different1"}
	fields := v.FormatValidationErrors(v.Validate(&req))
	if fields["ConfirmPassword"] != "ConfirmPassword must match NewPassword" {
		t.Errorf("fields = %v", fields)
	}
}
