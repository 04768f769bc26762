package converter

import (
	"testing"
	"time"

	"dermassist/internal/delivery/dto"
	"dermassist/internal/domain/entity"
)

func TestSignupToRecord(t *testing.T) {
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	tests := []struct {
		name        string
		role        entity.Role
		wantLicense string
	}{
		{"patient drops professional fields", entity.RolePatient, ""},
		{"dermatologist keeps them", entity.RoleDermatologist, "LIC-9"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := &dto.SignupRequest{
				Username:      " jane ",
				Email:         "Jane@Example.COM ",
				Role:          tt.role,
				LicenseNumber: "LIC-9",
			}
			rec := SignupToRecord(req, "u1", "hash", now)
			if rec.Username != "jane" || rec.Email != "jane@example.com" {
				t.Errorf("identity not normalized: %+v", rec.User)
			}
			if rec.LicenseNumber != tt.wantLicense {
				t.Errorf("LicenseNumber = %q, want %q", rec.LicenseNumber, tt.wantLicense)
			}
			if rec.PasswordHash != "hash" || !rec.CreatedAt.Equal(now) {
				t.Errorf("record = %+v", rec)
			}
		})
	}
}

func TestRecordToSummary_HidesLicense(t *testing.T) {
	rec := SignupToRecord(&dto.SignupRequest{Username: "doc", Role: entity.RoleDermatologist, LicenseNumber: "LIC-1"}, "d1", "h", time.Now())

	if got := RecordToSummary(rec); got.LicenseNumber != "" || got.Username != "doc" {
		t.Errorf("summary = %+v", got)
	}
	if rec.LicenseNumber != "LIC-1" {
		t.Error("summary modified the record")
	}
	if RecordToUser(nil) != nil {
		t.Error("RecordToUser(nil) != nil")
	}
}
