package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/Jayzwillz/backend-movie-app/internal/metrics"
	"github.com/Jayzwillz/backend-movie-app/internal/models"
	"github.com/Jayzwillz/backend-movie-app/internal/store"
)

var (
	ErrSelfDelete   = errors.New("you cannot delete your own admin account")
	ErrSelfDemote   = errors.New("cannot demote yourself")
	ErrAlreadyAdmin = errors.New("user is already an admin")
	ErrAlreadyUser  = errors.New("user is already a regular user")
)

// Stats is the admin dashboard aggregate.
type Stats struct {
	TotalUsers            int64
	TotalAdmins           int64
	TotalReviews          int64
	RecentUsers           int64
	TopReviewers          []store.ReviewerStat
	AverageReviewsPerUser float64
}

// UserDeletion reports what an admin user removal took with it. The
// identity fields are captured before the delete so callers can echo
// who was removed.
type UserDeletion struct {
	UserID         string
	Name           string
	Email          string
	WatchlistCount int64
	ReviewsDeleted int64
}

// AdminService is the privileged layer over the stores: listings,
// moderation, role management, and aggregate statistics.
type AdminService struct {
	store   *store.Store
	metrics metrics.Recorder
}

func NewAdminService(s *store.Store, rec metrics.Recorder) *AdminService {
	return &AdminService{store: s, metrics: rec}
}

// ListUsers returns one page of users, newest first, watchlists included.
func (s *AdminService) ListUsers(ctx context.Context, page, limit int) ([]models.User, store.PaginationResult, error) {
	return s.store.ListUsers(store.NewPaginationParams(page, limit))
}

// ListReviews returns one page of all reviews with author identity.
func (s *AdminService) ListReviews(ctx context.Context, page, limit int) ([]store.ReviewWithAuthor, store.PaginationResult, error) {
	return s.store.ListReviews(store.NewPaginationParams(page, limit))
}

// DeleteUser removes any account and cascades its reviews, the same
// way self-deletion does. Admins cannot delete themselves; that would
// allow an admin to lock the system out of moderation.
func (s *AdminService) DeleteUser(ctx context.Context, actorID, targetID string) (*UserDeletion, error) {
	if actorID == targetID {
		return nil, ErrSelfDelete
	}

	user, err := s.store.GetUserByID(targetID)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	watchlistCount, err := s.store.CountWatchlist(targetID)
	if err != nil {
		return nil, fmt.Errorf("count watchlist: %w", err)
	}

	deleted, err := s.store.DeleteUserWithReviews(targetID)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("delete user: %w", err)
	}

	if deleted > 0 {
		s.metrics.RecordReviewDeleted("cascade")
	}
	log.Printf("[Admin] actor=%s deleted user=%s with %d reviews", actorID, targetID, deleted)
	return &UserDeletion{
		UserID:         targetID,
		Name:           user.Name,
		Email:          user.Email,
		WatchlistCount: watchlistCount,
		ReviewsDeleted: deleted,
	}, nil
}

// DeleteReview removes any review unconditionally.
func (s *AdminService) DeleteReview(ctx context.Context, actorID, reviewID string) error {
	if err := s.store.DeleteReview(reviewID); err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return ErrReviewNotFound
		}
		return fmt.Errorf("delete review: %w", err)
	}

	s.metrics.RecordReviewDeleted("admin")
	log.Printf("[Admin] actor=%s deleted review=%s", actorID, reviewID)
	return nil
}

// PromoteUser grants the admin role.
func (s *AdminService) PromoteUser(ctx context.Context, targetID string) (*models.User, error) {
	user, err := s.store.GetUserByID(targetID)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if user.IsAdmin() {
		return nil, ErrAlreadyAdmin
	}

	user.Role = models.RoleAdmin
	if err := s.store.UpdateUser(user); err != nil {
		return nil, fmt.Errorf("update role: %w", err)
	}
	return user, nil
}

// DemoteUser revokes the admin role. Self-demotion is blocked so an
// admin cannot strip their own access mid-session.
func (s *AdminService) DemoteUser(ctx context.Context, actorID, targetID string) (*models.User, error) {
	user, err := s.store.GetUserByID(targetID)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if !user.IsAdmin() {
		return nil, ErrAlreadyUser
	}
	if actorID == targetID {
		return nil, ErrSelfDemote
	}

	user.Role = models.RoleUser
	if err := s.store.UpdateUser(user); err != nil {
		return nil, fmt.Errorf("update role: %w", err)
	}
	return user, nil
}

// GetStats aggregates totals, signups over the last 30 days, and the
// five most prolific reviewers.
func (s *AdminService) GetStats(ctx context.Context) (*Stats, error) {
	totalUsers, err := s.store.CountUsers()
	if err != nil {
		s.metrics.RecordDatabaseQueryError("count_users")
		return nil, fmt.Errorf("count users: %w", err)
	}

	totalAdmins, err := s.store.CountAdmins()
	if err != nil {
		s.metrics.RecordDatabaseQueryError("count_admins")
		return nil, fmt.Errorf("count admins: %w", err)
	}

	totalReviews, err := s.store.CountReviews()
	if err != nil {
		s.metrics.RecordDatabaseQueryError("count_reviews")
		return nil, fmt.Errorf("count reviews: %w", err)
	}

	recentUsers, err := s.store.CountUsersCreatedSince(time.Now().AddDate(0, 0, -30))
	if err != nil {
		s.metrics.RecordDatabaseQueryError("count_recent_users")
		return nil, fmt.Errorf("count recent users: %w", err)
	}

	topReviewers, err := s.store.TopReviewers(5)
	if err != nil {
		s.metrics.RecordDatabaseQueryError("top_reviewers")
		return nil, fmt.Errorf("top reviewers: %w", err)
	}

	avg := 0.0
	if totalUsers > 0 {
		avg = math.Round(float64(totalReviews)/float64(totalUsers)*100) / 100
	}

	return &Stats{
		TotalUsers:            totalUsers,
		TotalAdmins:           totalAdmins,
		TotalReviews:          totalReviews,
		RecentUsers:           recentUsers,
		TopReviewers:          topReviewers,
		AverageReviewsPerUser: avg,
	}, nil
}
