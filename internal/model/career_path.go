package model

// CareerPath is an ordered sequence of learning paths representing a full
// curriculum.
// swagger:model CareerPath
type CareerPath struct {
	UUIDBase
	Title         string         `gorm:"size:255;not null" json:"title"`
	Description   string         `gorm:"type:text" json:"description"`
	Icon          string         `gorm:"size:100" json:"icon"`
	Position      int            `gorm:"default:0" json:"position"`
	LearningPaths []LearningPath `gorm:"foreignKey:CareerPathID" json:"learningPaths"`
}

func (CareerPath) TableName() string {
	return "career_paths"
}
