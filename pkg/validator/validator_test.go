package validator

import "testing"

type signupForm struct {
	Username string `json:"username" validate:"required,min=3,max=30,username"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Comment  string `json:"comment" validate:"notblank"`
}

func TestValidate_Valid(t *testing.T) {
	v := NewValidator()
	form := signupForm{Username: "jane_doe", Email: "jane@example.com", Password: "s3cretpass", Comment: "ok"}
	if err := v.Validate(&form); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestFormatValidationErrors(t *testing.T) {
	v := NewValidator()
	form := signupForm{Username: "jane doe", Email: "not-an-email", Password: "short", Comment: "   "}

	err := v.Validate(&form)
	if err == nil {
		t.Fatal("expected validation error")
	}
	fields := v.FormatValidationErrors(err)

	want := map[string]string{
		"Username": "Username may only contain letters, numbers and underscores",
		"Email":    "Email must be a valid email address",
		"Password": "Password must be at least 8 characters",
		"Comment":  "Comment is required",
	}
	for field, msg := range want {
		if fields[field] != msg {
			t.Errorf("fields[%q] = %q, want %q", field, fields[field], msg)
		}
	}
}

func TestFormatValidationErrors_NonValidationError(t *testing.T) {
	v := NewValidator()
	if got := v.FormatValidationErrors(nil); len(got) != 0 {
		t.Errorf("expected empty map, got %v", got)
	}
}
