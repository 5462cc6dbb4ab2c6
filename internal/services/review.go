package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"

	"github.com/Jayzwillz/backend-movie-app/internal/metrics"
	"github.com/Jayzwillz/backend-movie-app/internal/models"
	"github.com/Jayzwillz/backend-movie-app/internal/store"
)

var (
	ErrReviewNotFound   = errors.New("review not found")
	ErrDuplicateReview  = errors.New("you have already reviewed this movie")
	ErrNotReviewOwner   = errors.New("you can only modify your own reviews")
	ErrAccessDenied     = errors.New("access denied")
	ErrInvalidRating    = errors.New("rating must be between 1 and 10")
	ErrInvalidComment   = errors.New("comment must be between 1 and 1000 characters")
	ErrInvalidTitle     = errors.New("title must be at most 100 characters")
	ErrInvalidDirection = errors.New("vote direction must be like or dislike")
)

// MovieReviews is the public per-movie listing with its aggregate.
type MovieReviews struct {
	Reviews       []store.ReviewWithAuthor
	Total         int
	AverageRating float64
}

// ReviewService owns review creation, partial updates, deletion, vote
// toggling, and the per-movie aggregate.
type ReviewService struct {
	store   *store.Store
	metrics metrics.Recorder
}

func NewReviewService(s *store.Store, rec metrics.Recorder) *ReviewService {
	return &ReviewService{store: s, metrics: rec}
}

// AddReview creates the author's single review for a movie. A second
// submission for the same movie is a conflict, whether caught by the
// pre-check or by the unique index under a concurrent double-submit.
func (s *ReviewService) AddReview(ctx context.Context, userID, movieID, movieTitle string, rating int, comment, title string) (*models.Review, error) {
	if rating < 1 || rating > 10 {
		return nil, ErrInvalidRating
	}
	comment = strings.TrimSpace(comment)
	if len(comment) < 1 || len(comment) > 1000 {
		return nil, ErrInvalidComment
	}
	title = strings.TrimSpace(title)
	if len(title) > 100 {
		return nil, ErrInvalidTitle
	}

	review := &models.Review{
		ID:         uuid.NewString(),
		MovieID:    movieID,
		UserID:     userID,
		Rating:     rating,
		Title:      title,
		Comment:    comment,
		MovieTitle: movieTitle,
	}

	if err := s.store.CreateReview(review); err != nil {
		s.metrics.RecordReviewCreated(false)
		if errors.Is(err, store.ErrDuplicateReview) {
			return nil, ErrDuplicateReview
		}
		return nil, fmt.Errorf("create review: %w", err)
	}

	s.metrics.RecordReviewCreated(true)
	return review, nil
}

// UpdateReview applies a partial update by the review's author. Zero
// values mean "no change": a rating of 0 or an empty comment/title
// leaves the stored field untouched, so the title cannot be cleared
// through this operation.
func (s *ReviewService) UpdateReview(ctx context.Context, userID, reviewID string, rating int, comment, title string) (*models.Review, error) {
	review, err := s.store.GetReviewByID(reviewID)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, fmt.Errorf("lookup review: %w", err)
	}

	if review.UserID != userID {
		return nil, ErrNotReviewOwner
	}

	if rating != 0 {
		if rating < 1 || rating > 10 {
			return nil, ErrInvalidRating
		}
		review.Rating = rating
	}
	if comment = strings.TrimSpace(comment); comment != "" {
		if len(comment) > 1000 {
			return nil, ErrInvalidComment
		}
		review.Comment = comment
	}
	if title = strings.TrimSpace(title); title != "" {
		if len(title) > 100 {
			return nil, ErrInvalidTitle
		}
		review.Title = title
	}

	if err := s.store.UpdateReview(review); err != nil {
		return nil, fmt.Errorf("update review: %w", err)
	}
	return review, nil
}

// DeleteReview removes the author's own review. Admin removal goes
// through the admin service instead.
func (s *ReviewService) DeleteReview(ctx context.Context, userID, reviewID string) error {
	review, err := s.store.GetReviewByID(reviewID)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return ErrReviewNotFound
		}
		return fmt.Errorf("lookup review: %w", err)
	}

	if review.UserID != userID {
		return ErrNotReviewOwner
	}

	if err := s.store.DeleteReview(reviewID); err != nil {
		return fmt.Errorf("delete review: %w", err)
	}

	s.metrics.RecordReviewDeleted("owner")
	return nil
}

// ToggleVote flips the caller's like/dislike on a review. Voting the
// held direction withdraws it; voting the opposite direction moves it.
// A user holds at most one vote per review at any time.
func (s *ReviewService) ToggleVote(ctx context.Context, userID, reviewID, direction string) (*store.VoteResult, error) {
	if direction != models.VoteLike && direction != models.VoteDislike {
		return nil, ErrInvalidDirection
	}

	result, err := s.store.ToggleVote(reviewID, userID, direction)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, fmt.Errorf("toggle vote: %w", err)
	}

	s.metrics.RecordVote(direction, result.Action)
	return result, nil
}

// MovieReviews lists a movie's reviews newest first with the average
// rating rounded to one decimal, or 0 when the movie has no reviews.
func (s *ReviewService) MovieReviews(ctx context.Context, movieID string) (*MovieReviews, error) {
	reviews, err := s.store.ListMovieReviews(movieID)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}

	var sum int
	for _, r := range reviews {
		sum += r.Rating
	}

	avg := 0.0
	if len(reviews) > 0 {
		avg = math.Round(float64(sum)/float64(len(reviews))*10) / 10
	}

	return &MovieReviews{
		Reviews:       reviews,
		Total:         len(reviews),
		AverageRating: avg,
	}, nil
}

// UserReviews lists a user's own reviews. Self-access only; admins use
// the bulk listing instead.
func (s *ReviewService) UserReviews(ctx context.Context, requesterID, userID string) ([]models.Review, error) {
	if requesterID != userID {
		return nil, ErrAccessDenied
	}

	reviews, err := s.store.ListUserReviews(userID)
	if err != nil {
		return nil, fmt.Errorf("list user reviews: %w", err)
	}
	return reviews, nil
}
