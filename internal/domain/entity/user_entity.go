package entity

import (
	"slices"
	"time"
)

// Media is a reference to an asset held by the media store.
type Media struct {
	PublicID string `json:"public_id"`
	URL      string `json:"url"`
}

// User is the aggregate root for the user domain. The JSON form doubles as the
// session snapshot; Password holds the bcrypt hash and is never serialized.
type User struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Password   string    `json:"-"`
	Role       Role      `json:"role"`
	IsVerified bool      `json:"is_verified"`
	Avatar     *Media    `json:"avatar,omitempty"`
	Courses    []string  `json:"courses"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// HasCourse reports whether courseID is in the user's purchased list.
func (u *User) HasCourse(courseID string) bool {
	return slices.Contains(u.Courses, courseID)
}

// Ref is the denormalized author snapshot stored on questions and reviews.
func (u *User) Ref() UserRef {
	return UserRef{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role, Avatar: u.Avatar}
}

type UserRef struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email,omitempty"`
	Role   Role   `json:"role"`
	Avatar *Media `json:"avatar,omitempty"`
}
