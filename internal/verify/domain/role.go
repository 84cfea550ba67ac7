package domain

import "strings"

type Role string

const (
	RoleSeeker   Role = "SEEKER"
	RoleEmployer Role = "EMPLOYER"
	RoleAdmin    Role = "ADMIN"
)

// ParseRole normalises case once at ingress.
func ParseRole(s string) (Role, error) {
	switch r := Role(strings.ToUpper(strings.TrimSpace(s))); r {
	case RoleSeeker, RoleEmployer, RoleAdmin:
		return r, nil
	}
	return "", Validation("unknown role %q", s)
}

func (r Role) String() string { return string(r) }

type UserStatus string

const (
	UserActive    UserStatus = "ACTIVE"
	UserSuspended UserStatus = "SUSPENDED"
)

func ParseUserStatus(s string) (UserStatus, error) {
	switch st := UserStatus(strings.ToUpper(strings.TrimSpace(s))); st {
	case UserActive, UserSuspended:
		return st, nil
	}
	return "", Validation("unknown user status %q", s)
}
