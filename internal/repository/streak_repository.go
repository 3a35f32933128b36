package repository

import (
	"errors"
	"fmt"

	"github.com/riaz37/portfolio-backend/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type StreakRepository struct {
	DB *gorm.DB
}

func NewStreakRepository(db *gorm.DB) *StreakRepository {
	return &StreakRepository{DB: db}
}

// Get returns the user's streak state, or (nil, nil) when the user has no
// completions yet.
func (r *StreakRepository) Get(userID uint) (*model.StreakState, error) {
	var state model.StreakState
	err := r.DB.Where("user_id = ?", userID).First(&state).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get streak user=%d: %w", userID, err)
	}
	return &state, nil
}

// Upsert writes the streak for the user, inserting on first completion.
func (r *StreakRepository) Upsert(userID uint, currentStreak int, lastCompletedDate string) error {
	state := model.StreakState{
		UserID:            userID,
		CurrentStreak:     currentStreak,
		LastCompletedDate: lastCompletedDate,
	}
	err := r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"current_streak", "last_completed_date", "updated_at"}),
	}).Create(&state).Error
	if err != nil {
		return fmt.Errorf("upsert streak user=%d: %w", userID, err)
	}
	return nil
}
