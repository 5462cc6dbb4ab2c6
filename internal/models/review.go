package models

import (
	"time"
)

// Vote direction constants
const (
	VoteLike    = "like"
	VoteDislike = "dislike"
)

// Review is one user's review of one movie. The (UserID, MovieID) unique
// index enforces the one-review-per-user-per-movie invariant at the store
// level, so a concurrent double-submit fails the same way as a pre-check.
type Review struct {
	ID         string `gorm:"primaryKey"`
	MovieID    string `gorm:"uniqueIndex:idx_review_user_movie;index;not null"` // TMDB id
	UserID     string `gorm:"uniqueIndex:idx_review_user_movie;index;not null"`
	Rating     int    `gorm:"not null"` // 1..10
	Title      string // optional, <= 100 chars
	Comment    string `gorm:"not null"` // 1..1000 chars
	MovieTitle string `gorm:"not null"` // denormalized for display

	// Denormalized counters, kept consistent with review_votes inside the
	// toggle transaction.
	Likes    int `gorm:"not null;default:0"`
	Dislikes int `gorm:"not null;default:0"`

	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
}

// ReviewVote records one user's current vote on one review. The unique
// (ReviewID, UserID) index guarantees a user holds at most one of
// {like, dislike} at any time.
type ReviewVote struct {
	ID        uint   `gorm:"primaryKey"`
	ReviewID  string `gorm:"uniqueIndex:idx_vote_review_user;index;not null"`
	UserID    string `gorm:"uniqueIndex:idx_vote_review_user;not null"`
	Direction string `gorm:"not null"` // "like" or "dislike"
	CreatedAt time.Time
}

func (ReviewVote) TableName() string {
	return "review_votes"
}
