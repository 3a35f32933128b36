package model

import "time"

// ProgressSnapshot is the per-(user, learning path) unit of mutation.
// Created lazily on first read or write and never deleted by this service.
// swagger:model ProgressSnapshot
type ProgressSnapshot struct {
	BaseModel
	UserID         uint      `gorm:"index:idx_user_path,unique;not null" json:"userId"`
	LearningPathID string    `gorm:"index:idx_user_path,unique;type:varchar(36);not null" json:"learningPathId"`
	LastAccessed   time.Time `gorm:"index" json:"lastAccessed"`
	LastResourceID string    `gorm:"type:varchar(36)" json:"lastResourceId,omitempty"`
}

func (ProgressSnapshot) TableName() string {
	return "progress_snapshots"
}

// CompletionRecord is one fact that a user finished one resource within one
// skill of one learning path. The composite unique index makes re-marking
// complete an insert no-op; un-marking deletes the row outright.
// swagger:model CompletionRecord
type CompletionRecord struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	UserID         uint      `gorm:"index:idx_completion,unique;not null" json:"userId"`
	LearningPathID string    `gorm:"index:idx_completion,unique;type:varchar(36);not null" json:"learningPathId"`
	ResourceID     string    `gorm:"index:idx_completion,unique;type:varchar(36);not null" json:"resourceId"`
	SkillID        string    `gorm:"index:idx_completion,unique;type:varchar(36);not null" json:"skillId"`
	CompletedAt    time.Time `gorm:"not null" json:"completedAt"`
}

func (CompletionRecord) TableName() string {
	return "completion_records"
}
