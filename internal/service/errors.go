// Package service contains the business logic of the blog service.
package service

import (
	"errors"

	"github.com/GunarsK-portfolio/blog-service/internal/repository"
)

var (
	// ErrNotFound is returned for unknown posts, comments and users.
	ErrNotFound = repository.ErrNotFound
	// ErrSlugTaken is returned when a post slug still collides after the timestamped retry.
	ErrSlugTaken = repository.ErrSlugTaken
	// ErrEmailTaken is returned when registering an email that already has an account.
	ErrEmailTaken = repository.ErrEmailTaken

	ErrForbidden          = errors.New("not the author of this resource")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrInvalidPage        = errors.New("invalid page")
)

// Identity is the authenticated caller on whose behalf an operation runs.
type Identity struct {
	UserID int64
	Email  string
}

// Owns reports whether the caller is the author identified by authorID.
func (i Identity) Owns(authorID int64) bool {
	return i.UserID != 0 && i.UserID == authorID
}

// Page selects one page of a listing. Number is 1-based.
type Page struct {
	Number int
	Size   int
}

// Offset returns the number of rows preceding the page.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

func (p Page) validate() error {
	if p.Number < 1 || p.Size < 1 {
		return ErrInvalidPage
	}
	return nil
}

// checkBounds rejects pages past the end; the first page may be empty.
func (p Page) checkBounds(total int64) error {
	if p.Number > 1 && int64(p.Offset()) >= total {
		return ErrInvalidPage
	}
	return nil
}
