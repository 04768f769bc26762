package navigation

import (
	"testing"

	"dermassist/internal/domain/entity"
)

func TestForUser(t *testing.T) {
	tests := []struct {
		name string
		user *entity.User
		want string
	}{
		{"signed out", nil, "auth"},
		{"patient", &entity.User{Role: entity.RolePatient}, "patient"},
		{"dermatologist", &entity.User{Role: entity.RoleDermatologist}, "dermatologist"},
		{"unknown role", &entity.User{Role: "admin"}, "auth"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ForUser(tt.user).Name(); got != tt.want {
				t.Errorf("ForUser().Name() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGraphsAreDisjointByRole(t *testing.T) {
	has := func(routes []Route, name string) bool {
		for _, r := range routes {
			if r.Name == name {
				return true
			}
		}
		return false
	}

	patient := Routes(entity.RolePatient)
	dermatologist := Routes(entity.RoleDermatologist)

	if !has(patient, "scan") || has(dermatologist, "scan") {
		t.Error("only patients can reach the scan screen")
	}
	if !has(dermatologist, "pending") || has(patient, "pending") {
		t.Error("only dermatologists can reach the pending reviews screen")
	}
	if has(patient, "login") || has(dermatologist, "login") {
		t.Error("signed-in graphs must not contain auth routes")
	}
}

func TestTabs(t *testing.T) {
	if n := len(Tabs(PatientGraph{})); n != 5 {
		t.Errorf("patient tabs = %d, want 5", n)
	}
	if n := len(Tabs(AuthGraph{})); n != 0 {
		t.Errorf("auth tabs = %d, want 0", n)
	}
}
