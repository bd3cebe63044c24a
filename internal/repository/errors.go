package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when the requested row does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrSlugTaken is returned when a post insert violates the unique slug index.
	ErrSlugTaken = errors.New("slug already taken")
	// ErrEmailTaken is returned when a user insert violates the unique email index.
	ErrEmailTaken = errors.New("email already registered")
)

const pgUniqueViolation = "23505"

// isUniqueViolation recognises unique-constraint failures from GORM's error
// translation, from pgx, and from the sqlite driver's error text.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// likePattern builds a case-insensitive substring pattern for LIKE ... ESCAPE '\'.
func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.ToLower(s)) + "%"
}
