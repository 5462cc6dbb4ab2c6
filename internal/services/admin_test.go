package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jayzwillz/backend-movie-app/internal/metrics"
	"github.com/Jayzwillz/backend-movie-app/internal/models"
	"github.com/Jayzwillz/backend-movie-app/internal/store"
)

func newAdminService(t *testing.T) (*AdminService, *store.Store) {
	t.Helper()
	s := setupTestStore(t)
	return NewAdminService(s, metrics.NewNoopMetrics()), s
}

func createTestAdmin(t *testing.T, s *store.Store, email string) *models.User {
	t.Helper()
	user := createTestUser(t, s, email, true)
	user.Role = models.RoleAdmin
	require.NoError(t, s.UpdateUser(user))
	return user
}

func TestListUsers_Pagination(t *testing.T) {
	svc, s := newAdminService(t)
	ctx := context.Background()

	for i := 0; i < 12; i++ {
		createTestUser(t, s, fmt.Sprintf("user%d@example.com", i), true)
	}

	users, page, err := svc.ListUsers(ctx, 1, 5)
	require.NoError(t, err)
	assert.Len(t, users, 5)
	assert.Equal(t, int64(12), page.Total)
	assert.Equal(t, 3, page.TotalPages)
	assert.True(t, page.HasNext)
	assert.False(t, page.HasPrev)

	users, page, err = svc.ListUsers(ctx, 3, 5)
	require.NoError(t, err)
	assert.Len(t, users, 2)
	assert.False(t, page.HasNext)
	assert.True(t, page.HasPrev)
}

func TestAdminDeleteUser(t *testing.T) {
	svc, s := newAdminService(t)
	ctx := context.Background()
	admin := createTestAdmin(t, s, "admin@example.com")
	target := createTestUser(t, s, "target@example.com", true)
	createTestReview(t, s, target.ID, "m1", 5)
	createTestReview(t, s, target.ID, "m2", 6)

	// Admins cannot remove their own account
	_, err := svc.DeleteUser(ctx, admin.ID, admin.ID)
	assert.ErrorIs(t, err, ErrSelfDelete)

	result, err := svc.DeleteUser(ctx, admin.ID, target.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), result.ReviewsDeleted)

	_, err = svc.DeleteUser(ctx, admin.ID, target.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestAdminDeleteReview(t *testing.T) {
	svc, s := newAdminService(t)
	ctx := context.Background()
	admin := createTestAdmin(t, s, "admin@example.com")
	author := createTestUser(t, s, "author@example.com", true)
	review := createTestReview(t, s, author.ID, "m1", 5)

	// Admin removal needs no ownership
	require.NoError(t, svc.DeleteReview(ctx, admin.ID, review.ID))
	assert.ErrorIs(t, svc.DeleteReview(ctx, admin.ID, review.ID), ErrReviewNotFound)
}

func TestPromoteAndDemote(t *testing.T) {
	svc, s := newAdminService(t)
	ctx := context.Background()
	admin := createTestAdmin(t, s, "admin@example.com")
	user := createTestUser(t, s, "user@example.com", true)

	promoted, err := svc.PromoteUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, promoted.Role)

	_, err = svc.PromoteUser(ctx, user.ID)
	assert.ErrorIs(t, err, ErrAlreadyAdmin)

	// Admins cannot demote themselves
	_, err = svc.DemoteUser(ctx, admin.ID, admin.ID)
	assert.ErrorIs(t, err, ErrSelfDemote)

	demoted, err := svc.DemoteUser(ctx, admin.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, demoted.Role)

	_, err = svc.DemoteUser(ctx, admin.ID, user.ID)
	assert.ErrorIs(t, err, ErrAlreadyUser)

	_, err = svc.PromoteUser(ctx, "missing-user")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestGetStats(t *testing.T) {
	svc, s := newAdminService(t)
	ctx := context.Background()

	createTestAdmin(t, s, "admin@example.com")
	alice := createTestUser(t, s, "alice@example.com", true)
	bob := createTestUser(t, s, "bob@example.com", true)

	for _, movieID := range []string{"m1", "m2", "m3"} {
		createTestReview(t, s, alice.ID, movieID, 7)
	}
	createTestReview(t, s, bob.ID, "m1", 8)

	stats, err := svc.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.TotalUsers)
	assert.Equal(t, int64(1), stats.TotalAdmins)
	assert.Equal(t, int64(4), stats.TotalReviews)
	assert.Equal(t, int64(3), stats.RecentUsers)
	// 4 reviews / 3 users, rounded to two decimals
	assert.Equal(t, 1.33, stats.AverageReviewsPerUser)

	require.NotEmpty(t, stats.TopReviewers)
	assert.Equal(t, alice.ID, stats.TopReviewers[0].UserID)
	assert.Equal(t, int64(3), stats.TopReviewers[0].ReviewCount)
}
