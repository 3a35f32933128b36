package model

// Skill is a named competency inside a learning path. Prerequisites refer to
// other skill ids within the same path; the graph is validated to be acyclic
// when the curriculum is defined.
// swagger:model Skill
type Skill struct {
	UUIDBase
	LearningPathID string          `gorm:"index;type:varchar(36)" json:"learningPathId"`
	Name           string          `gorm:"size:255;not null" json:"name"`
	Level          DifficultyLevel `gorm:"size:20;not null" json:"level"`
	Position       int             `gorm:"default:0" json:"position"`
	Prerequisites  StringSet       `gorm:"type:text" json:"prerequisites"`
	Resources      []Resource      `gorm:"foreignKey:SkillID" json:"resources"`
}

func (Skill) TableName() string {
	return "skills"
}

// ResourceIDs returns the skill's resource ids in display order.
func (s *Skill) ResourceIDs() []string {
	ids := make([]string, 0, len(s.Resources))
	for _, r := range s.Resources {
		ids = append(ids, r.ID)
	}
	return ids
}
