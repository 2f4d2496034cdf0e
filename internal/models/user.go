package models

import "time"

// User roles. The reserved username "admin" is seeded with RoleAdmin so the
// admin-only surface is a role check, not a username comparison.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`

	Username     string `bson:"username" json:"username"`
	PasswordHash string `bson:"password_hash" json:"-"` // never returned in JSON
	Nickname     string `bson:"nickname" json:"nickname"`
	Bio          string `bson:"bio" json:"bio"`
	Avatar       string `bson:"avatar,omitempty" json:"avatar,omitempty"` // data URI or CDN URL
	Role         string `bson:"role" json:"-"`
	SignupIP     string `bson:"signup_ip,omitempty" json:"-"`
}

// IsAdmin reports whether the user carries the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
