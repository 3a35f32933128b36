package repository

import (
	"errors"
	"fmt"

	"github.com/riaz37/portfolio-backend/internal/model"
	"github.com/riaz37/portfolio-backend/internal/util"
	"gorm.io/gorm"
)

// CurriculumRepository is the read-only accessor for the career path →
// learning path → skill → resource tree. Authoring happens out of band; this
// service never mutates the structure.
type CurriculumRepository struct {
	DB *gorm.DB
}

func NewCurriculumRepository(db *gorm.DB) *CurriculumRepository {
	return &CurriculumRepository{DB: db}
}

func (r *CurriculumRepository) ListCareerPaths() ([]model.CareerPath, error) {
	var paths []model.CareerPath
	err := r.DB.
		Preload("LearningPaths", orderByPosition).
		Order("position asc").
		Find(&paths).Error
	if err != nil {
		return nil, fmt.Errorf("list career paths: %w", err)
	}
	return paths, nil
}

func (r *CurriculumRepository) FindCareerPath(id string) (*model.CareerPath, error) {
	var path model.CareerPath
	err := r.DB.
		Preload("LearningPaths", orderByPosition).
		Preload("LearningPaths.Skills", orderByPosition).
		Preload("LearningPaths.Skills.Resources", orderByPosition).
		Where("id = ?", id).
		First(&path).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrCareerPathNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find career path %s: %w", id, err)
	}
	return &path, nil
}

// FindLearningPath loads the full skill/resource tree for one learning path.
func (r *CurriculumRepository) FindLearningPath(id string) (*model.LearningPath, error) {
	var path model.LearningPath
	err := r.DB.
		Preload("Skills", orderByPosition).
		Preload("Skills.Resources", orderByPosition).
		Where("id = ?", id).
		First(&path).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrPathNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find learning path %s: %w", id, err)
	}
	return &path, nil
}

func orderByPosition(db *gorm.DB) *gorm.DB {
	return db.Order("position asc")
}
