package models

import (
	"time"
)

// WatchlistEntry is a saved movie on one user's watchlist. Entries are owned
// by the containing user and have no independent lifecycle: appended on add,
// removed by movie id, never mutated.
type WatchlistEntry struct {
	ID      uint   `gorm:"primaryKey"`
	UserID  string `gorm:"uniqueIndex:idx_watchlist_user_movie;not null"`
	MovieID string `gorm:"uniqueIndex:idx_watchlist_user_movie;not null"` // TMDB id
	Title   string `gorm:"not null"`
	Poster  string
	Year    string
	AddedAt time.Time `gorm:"index;not null"`
}

func (WatchlistEntry) TableName() string {
	return "watchlist_entries"
}
