package domain

import "time"

// Role enumerates the access levels in the campus reporting system.
type Role string

const (
	RoleUser      Role = "USER"
	RoleSecurity  Role = "SECURITY"
	RoleAdmin     Role = "ADMIN"
	RoleSuperuser Role = "SUPERUSER"
)

// UserType distinguishes the two kinds of end-users.
type UserType string

const (
	UserTypeStudent UserType = "ESTUDIANTE"
	UserTypeTeacher UserType = "DOCENTE"
)

// User is the domain model for everyone who can sign in: students and
// teachers who file reports, security staff assigned to patrol zones, and
// administrators. Exactly one superuser exists per installation.
type User struct {
	ID            string
	Name          string
	Email         string
	Phone         string
	PasswordHash  string
	Role          Role
	UserType      *UserType
	Campus        string
	AssignedZones []string
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
	LastLogin     *time.Time
}

// IsStaff reports whether the user may view reports beyond their own.
func (u *User) IsStaff() bool {
	return u.Role == RoleSecurity || u.Role == RoleAdmin || u.Role == RoleSuperuser
}

// HasZone reports whether the zone is among the user's assigned zones.
func (u *User) HasZone(zone string) bool {
	for _, z := range u.AssignedZones {
		if z == zone {
			return true
		}
	}
	return false
}
