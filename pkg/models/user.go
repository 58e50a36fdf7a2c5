package models

import "github.com/wongivan852/asset-movement-tracking-system/pkg/roles"

type User struct {
	ID           int        `json:"id" db:"id"`
	Username     string     `json:"username" db:"username"`
	Fullname     string     `json:"fullname" db:"fullname"`
	PasswordHash string     `json:"-" db:"password_hash"`
	Role         roles.Role `json:"role" db:"role"`
	IsSuperuser  bool       `json:"is_superuser" db:"is_superuser"`
	Active       bool       `json:"active" db:"active"`
}

// Capabilities resolves the user's role into capability predicates.
func (u *User) Capabilities() roles.CapabilitySet {
	return roles.Capabilities(u.Role, u.IsSuperuser)
}

func (u *User) Can(capability roles.Capability) bool {
	return u.Capabilities().Has(capability)
}

func (u *User) CreateLogView() ActivityLog {
	return ActivityLog{
		TargetID:   u.ID,
		TargetType: "user",
	}
}
