package entity

// Role represents a user role in the system
type Role string

const (
	RolePatient       Role = "patient"
	RoleDermatologist Role = "dermatologist"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RolePatient || r == RoleDermatologist
}
