package domain

import "strings"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User is an account holder. Password carries the credential digest; it is
// persisted in the document and copied into the session snapshot.
type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// ValidRole reports whether r is one of the known roles.
func ValidRole(r string) bool {
	return r == RoleAdmin || r == RoleUser
}

// SameEmail compares two addresses the way logins and registrations do.
func SameEmail(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// Capabilities lists the role-gated controls a viewer may use.
type Capabilities struct {
	CanDeleteRecords bool `json:"can_delete_records"`
	CanManageClients bool `json:"can_manage_clients"`
	CanManageUsers   bool `json:"can_manage_users"`
	CanBackup        bool `json:"can_backup"`
}

func CapabilitiesFor(role string) Capabilities {
	admin := role == RoleAdmin
	return Capabilities{
		CanDeleteRecords: admin,
		CanManageClients: admin,
		CanManageUsers:   admin,
		CanBackup:        admin,
	}
}
