package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role constants for user authorization.
const (
	RoleUser       = "user"
	RoleAdmin      = "admin"
	RoleSuperAdmin = "superadmin"
)

var ValidRoles = []string{RoleUser, RoleAdmin, RoleSuperAdmin}

const (
	DefaultAvatar = "✍️"
	DefaultBio    = "Writer | Storyteller | Dreamer"
)

type User struct {
	ID         primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name       string               `bson:"name" json:"name"`
	Phone      string               `bson:"phone" json:"phone"`
	Email      string               `bson:"email,omitempty" json:"email,omitempty"`
	Avatar     string               `bson:"avatar" json:"avatar"`
	Bio        string               `bson:"bio" json:"bio"`
	Role       string               `bson:"role" json:"role"`
	Password   string               `bson:"password,omitempty" json:"-"` // bcrypt hash, admin accounts only
	IsVerified bool                 `bson:"isVerified" json:"isVerified"`
	LastActive time.Time            `bson:"lastActive" json:"lastActive"`
	Followers  []primitive.ObjectID `bson:"followers,omitempty" json:"followers,omitempty"`
	Following  []primitive.ObjectID `bson:"following,omitempty" json:"following,omitempty"`
	CreatedAt  time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time            `bson:"updatedAt" json:"updatedAt"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin || u.Role == RoleSuperAdmin
}

func (u *User) IsSuperAdmin() bool {
	return u.Role == RoleSuperAdmin
}

// UserRef is the slim projection of a user attached to documents that
// reference one (reviews, posts, events) for display.
type UserRef struct {
	ID     primitive.ObjectID `bson:"_id" json:"id"`
	Name   string             `bson:"name" json:"name"`
	Avatar string             `bson:"avatar" json:"avatar"`
	Bio    string             `bson:"bio,omitempty" json:"bio,omitempty"`
}

func (u *User) Ref() *UserRef {
	return &UserRef{ID: u.ID, Name: u.Name, Avatar: u.Avatar, Bio: u.Bio}
}
