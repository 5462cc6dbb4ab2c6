package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/Jayzwillz/backend-movie-app/internal/metrics"
	"github.com/Jayzwillz/backend-movie-app/internal/models"
	"github.com/Jayzwillz/backend-movie-app/internal/store"
)

var (
	ErrEmailInUse            = errors.New("email already in use")
	ErrMovieAlreadyInList    = errors.New("movie already in watchlist")
	ErrMovieNotInList        = errors.New("movie not found in watchlist")
	ErrWatchlistMovieMissing = errors.New("movie id and title are required")
)

// Profile is a user's own view of their account.
type Profile struct {
	User           *models.User
	WatchlistCount int64
}

// AccountService covers self-service profile access, the watchlist,
// and account deletion.
type AccountService struct {
	store   *store.Store
	metrics metrics.Recorder
}

func NewAccountService(s *store.Store, rec metrics.Recorder) *AccountService {
	return &AccountService{store: s, metrics: rec}
}

// GetProfile returns the user's own profile. Self-access only.
func (s *AccountService) GetProfile(ctx context.Context, requesterID, userID string) (*Profile, error) {
	if requesterID != userID {
		return nil, ErrAccessDenied
	}

	user, err := s.store.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	count, err := s.store.CountWatchlist(userID)
	if err != nil {
		return nil, fmt.Errorf("count watchlist: %w", err)
	}

	return &Profile{User: user, WatchlistCount: count}, nil
}

// UpdateProfile changes name and/or email. Empty values are left
// unchanged. A new email must not belong to another account.
func (s *AccountService) UpdateProfile(ctx context.Context, requesterID, userID, name, email string) (*models.User, error) {
	if requesterID != userID {
		return nil, ErrAccessDenied
	}

	user, err := s.store.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if name = strings.TrimSpace(name); name != "" {
		user.Name = name
	}

	if email = normalizeEmail(email); email != "" && email != user.Email {
		if _, err := s.store.GetUserByEmail(email); err == nil {
			return nil, ErrEmailInUse
		} else if !errors.Is(err, store.ErrRecordNotFound) {
			return nil, fmt.Errorf("lookup email: %w", err)
		}
		user.Email = email
	}

	if err := s.store.UpdateUser(user); err != nil {
		if errors.Is(err, store.ErrEmailConflict) {
			return nil, ErrEmailInUse
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

// AddToWatchlist appends a movie to the owner's watchlist. Each movie
// appears at most once per user; different users save independently.
func (s *AccountService) AddToWatchlist(ctx context.Context, requesterID, userID, movieID, title, poster, year string) ([]models.WatchlistEntry, error) {
	if requesterID != userID {
		return nil, ErrAccessDenied
	}
	if movieID == "" || strings.TrimSpace(title) == "" {
		return nil, ErrWatchlistMovieMissing
	}

	entry := &models.WatchlistEntry{
		UserID:  userID,
		MovieID: movieID,
		Title:   strings.TrimSpace(title),
		Poster:  poster,
		Year:    year,
		AddedAt: time.Now(),
	}

	if err := s.store.AddWatchlistEntry(entry); err != nil {
		s.metrics.RecordWatchlistChange("add", false)
		if errors.Is(err, store.ErrDuplicateWatchlistEntry) {
			return nil, ErrMovieAlreadyInList
		}
		return nil, fmt.Errorf("add watchlist entry: %w", err)
	}

	s.metrics.RecordWatchlistChange("add", true)
	return s.store.ListWatchlist(userID)
}

// RemoveFromWatchlist removes one movie from the owner's watchlist.
func (s *AccountService) RemoveFromWatchlist(ctx context.Context, requesterID, userID, movieID string) ([]models.WatchlistEntry, error) {
	if requesterID != userID {
		return nil, ErrAccessDenied
	}

	if err := s.store.RemoveWatchlistEntry(userID, movieID); err != nil {
		s.metrics.RecordWatchlistChange("remove", false)
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, ErrMovieNotInList
		}
		return nil, fmt.Errorf("remove watchlist entry: %w", err)
	}

	s.metrics.RecordWatchlistChange("remove", true)
	return s.store.ListWatchlist(userID)
}

// Watchlist lists the owner's saved movies, most recently added first.
// The ordering is computed at read time.
func (s *AccountService) Watchlist(ctx context.Context, requesterID, userID string) ([]models.WatchlistEntry, error) {
	if requesterID != userID {
		return nil, ErrAccessDenied
	}
	return s.store.ListWatchlist(userID)
}

// DeleteAccount removes the user and everything they own. Reviews (and
// their vote bookkeeping) go first, inside the same transaction as the
// user row, so a failure leaves nothing orphaned and nothing deleted.
func (s *AccountService) DeleteAccount(ctx context.Context, requesterID, userID string) (int64, error) {
	if requesterID != userID {
		return 0, ErrAccessDenied
	}

	deleted, err := s.store.DeleteUserWithReviews(userID)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return 0, ErrUserNotFound
		}
		return 0, fmt.Errorf("delete account: %w", err)
	}

	if deleted > 0 {
		s.metrics.RecordReviewDeleted("cascade")
	}
	log.Printf("[Account] Deleted user=%s with %d reviews", userID, deleted)
	return deleted, nil
}
