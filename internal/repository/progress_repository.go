package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/riaz37/portfolio-backend/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProgressRepository is the durable store for per-(user, learning path)
// completion state. All mutations are single-row conditional writes so that
// concurrent requests converge without any in-process locking: the unique
// indexes plus ON CONFLICT DO NOTHING make inserts set-adds, and removals are
// plain deletes.
type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

// FindSnapshot returns the snapshot for (userID, pathID), or (nil, nil) when
// the pair has never been seen.
func (r *ProgressRepository) FindSnapshot(userID uint, pathID string) (*model.ProgressSnapshot, error) {
	var snap model.ProgressSnapshot
	err := r.DB.Where("user_id = ? AND learning_path_id = ?", userID, pathID).First(&snap).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find snapshot user=%d path=%s: %w", userID, pathID, err)
	}
	return &snap, nil
}

// CreateDefault inserts an empty snapshot if none exists and returns the
// stored row. Safe under concurrent first-access calls for the same key: the
// conditional insert resolves the race to a single row.
func (r *ProgressRepository) CreateDefault(userID uint, pathID string, at time.Time) (*model.ProgressSnapshot, error) {
	snap := model.ProgressSnapshot{
		UserID:         userID,
		LearningPathID: pathID,
		LastAccessed:   at,
	}
	err := r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "learning_path_id"}},
		DoNothing: true,
	}).Create(&snap).Error
	if err != nil {
		return nil, fmt.Errorf("create snapshot user=%d path=%s: %w", userID, pathID, err)
	}

	// Re-read so the loser of a concurrent insert sees the winner's row.
	existing, err := r.FindSnapshot(userID, pathID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, fmt.Errorf("create snapshot user=%d path=%s: row vanished after upsert", userID, pathID)
	}
	return existing, nil
}

// AddCompletion records one (resource, skill) completion. Returns true when a
// new record was inserted, false when the pair was already completed — in the
// idempotent case neither the row nor its CompletedAt change.
func (r *ProgressRepository) AddCompletion(userID uint, pathID, resourceID, skillID string) (bool, error) {
	rec := model.CompletionRecord{
		UserID:         userID,
		LearningPathID: pathID,
		ResourceID:     resourceID,
		SkillID:        skillID,
		CompletedAt:    time.Now(),
	}
	result := r.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "user_id"}, {Name: "learning_path_id"},
			{Name: "resource_id"}, {Name: "skill_id"},
		},
		DoNothing: true,
	}).Create(&rec)
	if result.Error != nil {
		return false, fmt.Errorf("add completion user=%d path=%s resource=%s: %w", userID, pathID, resourceID, result.Error)
	}
	return result.RowsAffected > 0, nil
}

// RemoveCompletion deletes the record entirely; a soft flag would break the
// set semantics the aggregator relies on. No-op when absent.
func (r *ProgressRepository) RemoveCompletion(userID uint, pathID, resourceID, skillID string) error {
	err := r.DB.
		Where("user_id = ? AND learning_path_id = ? AND resource_id = ? AND skill_id = ?",
			userID, pathID, resourceID, skillID).
		Delete(&model.CompletionRecord{}).Error
	if err != nil {
		return fmt.Errorf("remove completion user=%d path=%s resource=%s: %w", userID, pathID, resourceID, err)
	}
	return nil
}

// ListCompletions returns every completion for (userID, pathID).
func (r *ProgressRepository) ListCompletions(userID uint, pathID string) ([]model.CompletionRecord, error) {
	var recs []model.CompletionRecord
	err := r.DB.Where("user_id = ? AND learning_path_id = ?", userID, pathID).Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("list completions user=%d path=%s: %w", userID, pathID, err)
	}
	return recs, nil
}

// TouchLastAccessed advances the snapshot's last-access marker. The guard
// makes the write a max-timestamp operation: of two unordered concurrent
// touches, the newer one wins regardless of which lands last, so the marker
// never moves backwards.
func (r *ProgressRepository) TouchLastAccessed(userID uint, pathID, resourceID string, at time.Time) error {
	err := r.DB.Model(&model.ProgressSnapshot{}).
		Where("user_id = ? AND learning_path_id = ? AND last_accessed < ?", userID, pathID, at).
		Updates(map[string]interface{}{
			"last_accessed":    at,
			"last_resource_id": resourceID,
		}).Error
	if err != nil {
		return fmt.Errorf("touch snapshot user=%d path=%s: %w", userID, pathID, err)
	}
	return nil
}

// LatestSnapshot returns the user's most recently touched snapshot, or
// (nil, nil) when the user has none.
func (r *ProgressRepository) LatestSnapshot(userID uint) (*model.ProgressSnapshot, error) {
	var snap model.ProgressSnapshot
	err := r.DB.Where("user_id = ?", userID).Order("last_accessed DESC").First(&snap).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("latest snapshot user=%d: %w", userID, err)
	}
	return &snap, nil
}
