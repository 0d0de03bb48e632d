package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// HighScore is one row per board; the board key encodes the grid size so
// scores from different board sizes do not compete.
type HighScore struct {
	Board     string `gorm:"primaryKey;size:64"`
	Score     int    `gorm:"not null"`
	UpdatedAt time.Time
}

func (HighScore) TableName() string {
	return "high_scores"
}

// BoardKey names the board for a grid size
func BoardKey(width, height int) string {
	return fmt.Sprintf("%dx%d", width, height)
}

func OpenPostgres(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	return db, nil
}

type PostgresStore struct {
	db    *gorm.DB
	board string
}

func NewPostgresStore(db *gorm.DB, board string) *PostgresStore {
	return &PostgresStore{db: db, board: board}
}

// Migrate creates the high_scores table if needed
func (s *PostgresStore) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&HighScore{}); err != nil {
		return fmt.Errorf("migrate high_scores: %w", err)
	}
	return nil
}

func (s *PostgresStore) Load(ctx context.Context) (int, error) {
	var row HighScore
	err := s.db.WithContext(ctx).Where("board = ?", s.board).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("load high score %s: %w", s.board, err)
	}
	return row.Score, nil
}

func (s *PostgresStore) Save(ctx context.Context, score int) error {
	row := HighScore{Board: s.board, Score: score, UpdatedAt: time.Now()}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "board"}},
		DoUpdates: clause.AssignmentColumns([]string{"score", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("save high score %s: %w", s.board, err)
	}
	return nil
}
