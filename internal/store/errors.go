package store

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

var (
	// ErrRecordNotFound wraps GORM's not found error for consistency
	ErrRecordNotFound = errors.New("record not found")

	// ErrEmailConflict is returned when an email address is already registered
	ErrEmailConflict = errors.New("email already registered")

	// ErrDuplicateReview is returned when a (user, movie) review already exists.
	// The unique index raises this for concurrent double-submits too, so the
	// outcome matches a pre-check failure.
	ErrDuplicateReview = errors.New("user has already reviewed this movie")

	// ErrDuplicateWatchlistEntry is returned when a movie is already on the
	// user's watchlist
	ErrDuplicateWatchlistEntry = errors.New("movie already in watchlist")
)

// isUniqueViolation reports whether err is a unique-constraint failure from
// any supported driver.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || // sqlite
		strings.Contains(msg, "duplicate key value violates unique constraint") // postgres
}
