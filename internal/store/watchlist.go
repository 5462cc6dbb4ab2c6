package store

import (
	"github.com/Jayzwillz/backend-movie-app/internal/models"
)

func (s *Store) AddWatchlistEntry(entry *models.WatchlistEntry) error {
	if err := s.db.Create(entry).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateWatchlistEntry
		}
		return err
	}
	return nil
}

func (s *Store) RemoveWatchlistEntry(userID, movieID string) error {
	res := s.db.Where("user_id = ? AND movie_id = ?", userID, movieID).
		Delete(&models.WatchlistEntry{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// ListWatchlist returns the user's watchlist most-recently-added first. The
// ordering is computed at read time.
func (s *Store) ListWatchlist(userID string) ([]models.WatchlistEntry, error) {
	var entries []models.WatchlistEntry
	err := s.db.Where("user_id = ?", userID).
		Order("added_at DESC").
		Find(&entries).Error
	return entries, err
}

func (s *Store) CountWatchlist(userID string) (int64, error) {
	var count int64
	err := s.db.Model(&models.WatchlistEntry{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
