package store

import (
	"github.com/Jayzwillz/backend-movie-app/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Store struct {
	db *gorm.DB
}

func New(driver, dsn string) (*Store, error) {
	dialector, err := GetDialector(driver, dsn)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	// Auto migrate
	if err := db.AutoMigrate(
		&models.User{},
		&models.WatchlistEntry{},
		&models.Review{},
		&models.ReviewVote{},
	); err != nil {
		return nil, err
	}

	return &Store{db: db}, nil
}

// Health checks database connectivity
func (s *Store) Health() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// DB returns the underlying gorm.DB instance
func (s *Store) DB() *gorm.DB {
	return s.db
}
