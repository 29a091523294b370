package domain

import "time"

// Role is the authorization level of a user.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleMember
}

// User models a registered blog reader or author.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// IsAdmin is the single guard predicate for post mutations. Only the stored
// role counts; the numeric id never grants rights.
func IsAdmin(u *User) bool {
	return u != nil && u.Role == RoleAdmin
}
