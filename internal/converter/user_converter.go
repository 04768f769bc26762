package converter

import (
	"strings"
	"time"

	"dermassist/internal/delivery/dto"
	"dermassist/internal/domain/entity"
	"dermassist/internal/domain/repository"
)

// SignupToRecord converts a signup request into a stored user record.
// Professional attributes are only kept for dermatologists.
func SignupToRecord(req *dto.SignupRequest, id, passwordHash string, now time.Time) *repository.UserRecord {
	record := &repository.UserRecord{
		User: entity.User{
			ID:        id,
			Username:  strings.TrimSpace(req.Username),
			Email:     strings.ToLower(strings.TrimSpace(req.Email)),
			FullName:  strings.TrimSpace(req.FullName),
			Role:      req.Role,
			CreatedAt: now,
		},
		PasswordHash: passwordHash,
	}
	if req.Role == entity.RoleDermatologist {
		record.LicenseNumber = strings.TrimSpace(req.LicenseNumber)
		record.Specialization = strings.TrimSpace(req.Specialization)
		record.ClinicName = strings.TrimSpace(req.ClinicName)
		record.YearsOfExperience = req.YearsOfExperience
	}
	return record
}

// RecordToUser converts a stored record to the public user, dropping the
// credential hash.
func RecordToUser(record *repository.UserRecord) *entity.User {
	if record == nil {
		return nil
	}
	user := record.User
	return &user
}

// RecordToSummary is RecordToUser without the dermatologist's license
// number, for embedding in another user's view.
func RecordToSummary(record *repository.UserRecord) *entity.User {
	user := RecordToUser(record)
	if user != nil {
		user.LicenseNumber = ""
	}
	return user
}
