package repository

import (
	"fmt"

	"github.com/riaz37/portfolio-backend/internal/model"
	"github.com/riaz37/portfolio-backend/internal/util"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SubscriberRepository struct {
	DB *gorm.DB
}

func NewSubscriberRepository(db *gorm.DB) *SubscriberRepository {
	return &SubscriberRepository{DB: db}
}

// Create inserts the subscriber; duplicate emails report ErrAlreadySubscribed
// without touching the existing row.
func (r *SubscriberRepository) Create(sub *model.Subscriber) error {
	result := r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoNothing: true,
	}).Create(sub)
	if result.Error != nil {
		return fmt.Errorf("create subscriber %s: %w", sub.Email, result.Error)
	}
	if result.RowsAffected == 0 {
		return util.ErrAlreadySubscribed
	}
	return nil
}

func (r *SubscriberRepository) DeleteByEmail(email string) error {
	result := r.DB.Where("email = ?", email).Delete(&model.Subscriber{})
	if result.Error != nil {
		return fmt.Errorf("delete subscriber %s: %w", email, result.Error)
	}
	if result.RowsAffected == 0 {
		return util.ErrNotSubscribed
	}
	return nil
}

func (r *SubscriberRepository) List(page, limit int) ([]model.Subscriber, int64, error) {
	var subs []model.Subscriber
	var total int64

	query := r.DB.Model(&model.Subscriber{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count subscribers: %w", err)
	}

	offset := (page - 1) * limit
	err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&subs).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list subscribers: %w", err)
	}
	return subs, total, nil
}
