package entity

import "time"

// User is the locally cached copy of the authenticated account. The
// authoritative record lives on the backend.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"full_name,omitempty"`
	Role     Role   `json:"role"`

	// Dermatologist-only professional attributes.
	LicenseNumber     string `json:"license_number,omitempty"`
	Specialization    string `json:"specialization,omitempty"`
	ClinicName        string `json:"clinic_name,omitempty"`
	YearsOfExperience int    `json:"years_of_experience,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// DisplayName returns the full name when present, falling back to the username.
func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	if u.FullName != "" {
		return u.FullName
	}
	return u.Username
}

func (u *User) IsDermatologist() bool {
	return u != nil && u.Role == RoleDermatologist
}

func (u *User) IsPatient() bool {
	return u != nil && u.Role == RolePatient
}
