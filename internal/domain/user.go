package domain

import (
	"fmt"
	"time"
)

// Role is a closed enumeration; there is deliberately no way to carry an
// arbitrary string through the system as a role.
type Role string

const (
	RoleGuest Role = "guest"
	RoleHost  Role = "host"
	RoleAdmin Role = "admin"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleGuest, RoleHost, RoleAdmin:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

type User struct {
	ID           string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Role         Role
	Verified     bool
	Phone        *string
	AvatarURL    *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (u User) FullName() string { return u.FirstName + " " + u.LastName }
