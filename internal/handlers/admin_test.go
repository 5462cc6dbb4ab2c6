package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jayzwillz/backend-movie-app/internal/models"
)

func TestAdminRoutes_RequireAdminRole(t *testing.T) {
	app := newTestApp(t, "")
	_, userTok := app.createUser(t, "alice@example.com", "user")

	w, body := app.do(t, http.MethodGet, "/api/admin/users", userTok, nil)

	require.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Access denied. Admin privileges required.", body["message"])
}

func TestAdminListUsers_Pagination(t *testing.T) {
	app := newTestApp(t, "")
	_, adminTok := app.createUser(t, "admin@example.com", models.RoleAdmin)
	for i := 0; i < 7; i++ {
		app.createUser(t, fmt.Sprintf("user%d@example.com", i), "user")
	}

	w, body := app.do(t, http.MethodGet, "/api/admin/users?page=1&limit=5", adminTok, nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, body["users"], 5)

	pagination := body["pagination"].(map[string]any)
	assert.Equal(t, float64(1), pagination["currentPage"])
	assert.Equal(t, float64(2), pagination["totalPages"])
	assert.Equal(t, float64(8), pagination["totalUsers"])
	assert.Equal(t, true, pagination["hasNext"])
	assert.Equal(t, false, pagination["hasPrev"])
}

func TestAdminDeleteUser(t *testing.T) {
	app := newTestApp(t, "")
	admin, adminTok := app.createUser(t, "admin@example.com", models.RoleAdmin)
	target, _ := app.createUser(t, "target@example.com", "user")
	app.createReview(t, target.ID, "m1", 5)
	app.createReview(t, target.ID, "m2", 6)

	w, body := app.do(t, http.MethodDelete, "/api/admin/users/"+target.ID, adminTok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "User account deleted successfully by admin.", body["message"])
	assert.Equal(t, float64(2), body["deletedReviewsCount"])
	assert.Equal(t, "target@example.com", body["deletedUser"].(map[string]any)["email"])

	// Self-deletion stays blocked.
	w, body = app.do(t, http.MethodDelete, "/api/admin/users/"+admin.ID, adminTok, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "You cannot delete your own admin account", body["message"])
}

func TestAdminPromoteDemote(t *testing.T) {
	app := newTestApp(t, "")
	admin, adminTok := app.createUser(t, "admin@example.com", models.RoleAdmin)
	target, _ := app.createUser(t, "target@example.com", "user")

	w, body := app.do(t, http.MethodPatch, "/api/admin/users/"+target.ID+"/promote", adminTok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "User promoted to admin successfully", body["message"])
	assert.Equal(t, "admin", body["user"].(map[string]any)["role"])

	w, body = app.do(t, http.MethodPatch, "/api/admin/users/"+target.ID+"/promote", adminTok, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "User is already an admin", body["message"])

	w, body = app.do(t, http.MethodPatch, "/api/admin/users/"+target.ID+"/demote", adminTok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Admin demoted to user successfully", body["message"])
	assert.Equal(t, "user", body["user"].(map[string]any)["role"])

	w, body = app.do(t, http.MethodPatch, "/api/admin/users/"+admin.ID+"/demote", adminTok, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Cannot demote yourself", body["message"])
}

func TestAdminListReviews(t *testing.T) {
	app := newTestApp(t, "")
	_, adminTok := app.createUser(t, "admin@example.com", models.RoleAdmin)
	alice, _ := app.createUser(t, "alice@example.com", "user")
	app.createReview(t, alice.ID, "m1", 5)

	w, body := app.do(t, http.MethodGet, "/api/admin/reviews", adminTok, nil)

	require.Equal(t, http.StatusOK, w.Code)
	reviews := body["reviews"].([]any)
	require.Len(t, reviews, 1)
	author := reviews[0].(map[string]any)["user"].(map[string]any)
	assert.Equal(t, "alice@example.com", author["email"])
}

func TestAdminDeleteReview(t *testing.T) {
	app := newTestApp(t, "")
	_, adminTok := app.createUser(t, "admin@example.com", models.RoleAdmin)
	alice, _ := app.createUser(t, "alice@example.com", "user")
	review := app.createReview(t, alice.ID, "m1", 5)

	w, body := app.do(t, http.MethodDelete, "/api/admin/reviews/"+review.ID, adminTok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Review deleted successfully by admin", body["message"])

	w, body = app.do(t, http.MethodDelete, "/api/admin/reviews/"+review.ID, adminTok, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Review not found", body["message"])
}

func TestAdminStats(t *testing.T) {
	app := newTestApp(t, "")
	_, adminTok := app.createUser(t, "admin@example.com", models.RoleAdmin)
	alice, _ := app.createUser(t, "alice@example.com", "user")
	app.createReview(t, alice.ID, "m1", 5)
	app.createReview(t, alice.ID, "m2", 6)

	w, body := app.do(t, http.MethodGet, "/api/admin/stats", adminTok, nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(2), body["totalUsers"])
	assert.Equal(t, float64(1), body["totalAdmins"])
	assert.Equal(t, float64(2), body["totalReviews"])
	assert.Equal(t, float64(2), body["recentUsers"])
	assert.Equal(t, float64(1), body["averageReviewsPerUser"])

	top := body["topReviewers"].([]any)
	require.Len(t, top, 1)
	assert.Equal(t, "alice@example.com", top[0].(map[string]any)["userEmail"])
	assert.Equal(t, float64(2), top[0].(map[string]any)["reviewCount"])
}
