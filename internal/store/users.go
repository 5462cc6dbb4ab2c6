package store

import (
	"errors"
	"time"

	"github.com/Jayzwillz/backend-movie-app/internal/models"

	"gorm.io/gorm"
)

func (s *Store) CreateUser(user *models.User) error {
	if err := s.db.Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrEmailConflict
		}
		return err
	}
	return nil
}

func (s *Store) GetUserByID(id string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *Store) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *Store) UpdateUser(user *models.User) error {
	if err := s.db.Save(user).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrEmailConflict
		}
		return err
	}
	return nil
}

// DeleteUserWithReviews removes the user's reviews first and the user record
// last, so a cleanup failure aborts the deletion instead of orphaning data.
// Votes cast by the user on other reviews are withdrawn so counters stay
// consistent. Returns the number of reviews deleted.
func (s *Store) DeleteUserWithReviews(userID string) (int64, error) {
	var deletedReviews int64

	err := s.db.Transaction(func(tx *gorm.DB) error {
		// Withdraw the user's votes on any review, adjusting counters.
		var votes []models.ReviewVote
		if err := tx.Where("user_id = ?", userID).Find(&votes).Error; err != nil {
			return err
		}
		for _, v := range votes {
			column := "likes"
			if v.Direction == models.VoteDislike {
				column = "dislikes"
			}
			if err := tx.Model(&models.Review{}).
				Where("id = ?", v.ReviewID).
				UpdateColumn(column, gorm.Expr("CASE WHEN "+column+" > 0 THEN "+column+" - 1 ELSE 0 END")).
				Error; err != nil {
				return err
			}
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.ReviewVote{}).Error; err != nil {
			return err
		}

		// Drop votes held against the user's own reviews.
		if err := tx.Where(
			"review_id IN (?)",
			tx.Model(&models.Review{}).Select("id").Where("user_id = ?", userID),
		).Delete(&models.ReviewVote{}).Error; err != nil {
			return err
		}

		res := tx.Where("user_id = ?", userID).Delete(&models.Review{})
		if res.Error != nil {
			return res.Error
		}
		deletedReviews = res.RowsAffected

		if err := tx.Where("user_id = ?", userID).Delete(&models.WatchlistEntry{}).Error; err != nil {
			return err
		}

		res = tx.Where("id = ?", userID).Delete(&models.User{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrRecordNotFound
		}
		return nil
	})

	if err != nil {
		return 0, err
	}
	return deletedReviews, nil
}

// ListUsers returns one page of users, newest first, with watchlists
// preloaded for count display.
func (s *Store) ListUsers(params PaginationParams) ([]models.User, PaginationResult, error) {
	var total int64
	if err := s.db.Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, PaginationResult{}, err
	}

	var users []models.User
	if err := s.db.Preload("Watchlist").
		Order("created_at DESC").
		Offset(params.Offset()).
		Limit(params.Limit).
		Find(&users).Error; err != nil {
		return nil, PaginationResult{}, err
	}

	return users, CalculatePagination(total, params.Page, params.Limit), nil
}

func (s *Store) CountUsers() (int64, error) {
	var count int64
	err := s.db.Model(&models.User{}).Count(&count).Error
	return count, err
}

func (s *Store) CountAdmins() (int64, error) {
	var count int64
	err := s.db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count).Error
	return count, err
}

func (s *Store) CountUsersCreatedSince(since time.Time) (int64, error) {
	var count int64
	err := s.db.Model(&models.User{}).Where("created_at >= ?", since).Count(&count).Error
	return count, err
}
