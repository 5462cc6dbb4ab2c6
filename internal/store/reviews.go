package store

import (
	"errors"

	"github.com/Jayzwillz/backend-movie-app/internal/models"

	"gorm.io/gorm"
)

// ReviewWithAuthor joins a review with its author's display fields at query
// time. The author name is a read-time join, not an independently maintained
// copy.
type ReviewWithAuthor struct {
	models.Review
	AuthorName  string
	AuthorEmail string
}

// VoteResult is the state of a review's counters after a toggle, plus the
// caller's resulting vote ("like", "dislike", or "" for none) and what the
// toggle did ("added", "removed", "switched").
type VoteResult struct {
	Likes    int
	Dislikes int
	UserVote string
	Action   string
}

// ReviewerStat is one row of the top-reviewers aggregate.
type ReviewerStat struct {
	UserID      string
	ReviewCount int64
	Name        string
	Email       string
}

func (s *Store) CreateReview(review *models.Review) error {
	if err := s.db.Create(review).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateReview
		}
		return err
	}
	return nil
}

func (s *Store) GetReviewByID(id string) (*models.Review, error) {
	var review models.Review
	if err := s.db.Where("id = ?", id).First(&review).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &review, nil
}

func (s *Store) UpdateReview(review *models.Review) error {
	return s.db.Save(review).Error
}

// DeleteReview removes the review and any votes held against it.
func (s *Store) DeleteReview(id string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("review_id = ?", id).Delete(&models.ReviewVote{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&models.Review{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrRecordNotFound
		}
		return nil
	})
}

// ListMovieReviews returns all reviews for a movie, newest first, with the
// author's name joined in.
func (s *Store) ListMovieReviews(movieID string) ([]ReviewWithAuthor, error) {
	var reviews []ReviewWithAuthor
	err := s.db.Model(&models.Review{}).
		Select("reviews.*, users.name AS author_name, users.email AS author_email").
		Joins("JOIN users ON users.id = reviews.user_id").
		Where("reviews.movie_id = ?", movieID).
		Order("reviews.created_at DESC").
		Scan(&reviews).Error
	return reviews, err
}

func (s *Store) ListUserReviews(userID string) ([]models.Review, error) {
	var reviews []models.Review
	err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}

// ListReviews returns one page of all reviews, newest first, for the admin
// surface.
func (s *Store) ListReviews(params PaginationParams) ([]ReviewWithAuthor, PaginationResult, error) {
	var total int64
	if err := s.db.Model(&models.Review{}).Count(&total).Error; err != nil {
		return nil, PaginationResult{}, err
	}

	var reviews []ReviewWithAuthor
	if err := s.db.Model(&models.Review{}).
		Select("reviews.*, users.name AS author_name, users.email AS author_email").
		Joins("JOIN users ON users.id = reviews.user_id").
		Order("reviews.created_at DESC").
		Offset(params.Offset()).
		Limit(params.Limit).
		Scan(&reviews).Error; err != nil {
		return nil, PaginationResult{}, err
	}

	return reviews, CalculatePagination(total, params.Page, params.Limit), nil
}

func (s *Store) CountReviews() (int64, error) {
	var count int64
	err := s.db.Model(&models.Review{}).Count(&count).Error
	return count, err
}

// TopReviewers aggregates review counts per author, joined with the author's
// display name and email.
func (s *Store) TopReviewers(limit int) ([]ReviewerStat, error) {
	var stats []ReviewerStat
	err := s.db.Model(&models.Review{}).
		Select("reviews.user_id AS user_id, COUNT(reviews.id) AS review_count, users.name AS name, users.email AS email").
		Joins("JOIN users ON users.id = reviews.user_id").
		Group("reviews.user_id, users.name, users.email").
		Order("review_count DESC").
		Limit(limit).
		Scan(&stats).Error
	return stats, err
}

// GetUserVote returns the direction of the user's vote on a review, or ""
// when no vote is held.
func (s *Store) GetUserVote(reviewID, userID string) (string, error) {
	var vote models.ReviewVote
	err := s.db.Where("review_id = ? AND user_id = ?", reviewID, userID).First(&vote).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return vote.Direction, nil
}

// ToggleVote applies a like/dislike toggle as a single transaction: counter
// adjustments and vote-row membership commit together, so concurrent votes
// from different users never lose updates. Same-direction toggles withdraw
// the vote; opposite-direction toggles move it.
func (s *Store) ToggleVote(reviewID, userID, direction string) (*VoteResult, error) {
	result := &VoteResult{}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var review models.Review
		if err := tx.Where("id = ?", reviewID).First(&review).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRecordNotFound
			}
			return err
		}

		var existing models.ReviewVote
		err := tx.Where("review_id = ? AND user_id = ?", reviewID, userID).First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			// No current vote: add one.
			vote := models.ReviewVote{ReviewID: reviewID, UserID: userID, Direction: direction}
			if err := tx.Create(&vote).Error; err != nil {
				return err
			}
			if err := adjustCounter(tx, reviewID, direction, +1); err != nil {
				return err
			}
			result.UserVote = direction
			result.Action = "added"

		case err != nil:
			return err

		case existing.Direction == direction:
			// Same direction: withdraw the vote.
			if err := tx.Delete(&existing).Error; err != nil {
				return err
			}
			if err := adjustCounter(tx, reviewID, direction, -1); err != nil {
				return err
			}
			result.UserVote = ""
			result.Action = "removed"

		default:
			// Opposite direction: move the vote.
			if err := tx.Model(&existing).Update("direction", direction).Error; err != nil {
				return err
			}
			if err := adjustCounter(tx, reviewID, existing.Direction, -1); err != nil {
				return err
			}
			if err := adjustCounter(tx, reviewID, direction, +1); err != nil {
				return err
			}
			result.UserVote = direction
			result.Action = "switched"
		}

		// Read the committed counters back for the response.
		if err := tx.Where("id = ?", reviewID).First(&review).Error; err != nil {
			return err
		}
		result.Likes = review.Likes
		result.Dislikes = review.Dislikes
		return nil
	})

	if err != nil {
		return nil, err
	}
	return result, nil
}

// adjustCounter applies an atomic increment or floored decrement to the
// likes/dislikes counter matching direction.
func adjustCounter(tx *gorm.DB, reviewID, direction string, delta int) error {
	column := "likes"
	if direction == models.VoteDislike {
		column = "dislikes"
	}
	expr := column + " + 1"
	if delta < 0 {
		expr = "CASE WHEN " + column + " > 0 THEN " + column + " - 1 ELSE 0 END"
	}
	return tx.Model(&models.Review{}).
		Where("id = ?", reviewID).
		UpdateColumn(column, gorm.Expr(expr)).
		Error
}
