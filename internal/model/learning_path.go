package model

// LearningPath is an ordered sequence of skills plus metadata.
// swagger:model LearningPath
type LearningPath struct {
	UUIDBase
	CareerPathID  string          `gorm:"index;type:varchar(36)" json:"careerPathId"`
	Title         string          `gorm:"size:255;not null" json:"title"`
	Description   string          `gorm:"type:text" json:"description"`
	Difficulty    DifficultyLevel `gorm:"size:20;not null" json:"difficulty"`
	EstimatedTime string          `gorm:"size:50" json:"estimatedTime"`
	Position      int             `gorm:"default:0" json:"position"`
	Skills        []Skill         `gorm:"foreignKey:LearningPathID" json:"skills"`
}

func (LearningPath) TableName() string {
	return "learning_paths"
}
