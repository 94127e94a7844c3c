// Package blog holds the domain model and storage for the blog API:
// users, posts and their comments.
package blog

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

type User struct {
	ID         int64
	Username   string
	Email      string
	Password   string // bcrypt hash, never serialized
	DateJoined time.Time
}

// SetPassword replaces the stored hash with a hash of rawPassword.
func (u *User) SetPassword(rawPassword string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(rawPassword), bcrypt.DefaultCost)

	if err != nil {
		return err
	}

	u.Password = string(hash)
	return nil
}

// CheckPassword reports whether rawPassword matches the stored hash.
func (u *User) CheckPassword(rawPassword string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(rawPassword)) == nil
}

type Post struct {
	ID          int64
	AuthorID    int64
	Title       string
	Body        string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	IsPublished bool
}

type Comment struct {
	ID         int64
	PostID     int64
	AuthorID   int64
	Body       string
	CreatedAt  time.Time
	UpdatedAt  time.Time
	IsApproved bool
}
