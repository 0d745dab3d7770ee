package domain

import "time"

// Role is the coarse permission level carried by every user.
type Role string

const (
	RoleEmployee Role = "employee"
	RoleClient   Role = "client"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleEmployee || r == RoleClient
}

// User is a member of the user directory.
type User struct {
	ID           string    `json:"_id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         Role      `json:"role" db:"role"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// UserPatch carries the fields of a partial user update. Nil fields are left untouched.
type UserPatch struct {
	Name         *string
	Username     *string
	PasswordHash *string
	Role         *Role
}
