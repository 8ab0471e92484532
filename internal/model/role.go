package model

// Role identifies which of the three portal roles a session belongs to.
type Role string

const (
	RoleStudent     Role = "student"
	RoleCoordinator Role = "coordinator"
	RoleOfficer     Role = "officer"
)

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleCoordinator, RoleOfficer:
		return true
	}
	return false
}
