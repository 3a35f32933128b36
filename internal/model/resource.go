package model

type ResourceType string

const (
	Video         ResourceType = "video"
	Article       ResourceType = "article"
	Documentation ResourceType = "documentation"
	Course        ResourceType = "course"
	Practice      ResourceType = "practice"
)

// Valid reports whether t is one of the published resource kinds. The set is
// closed: anything else is rejected at authoring time.
func (t ResourceType) Valid() bool {
	switch t {
	case Video, Article, Documentation, Course, Practice:
		return true
	}
	return false
}

type DifficultyLevel string

const (
	Beginner     DifficultyLevel = "beginner"
	Intermediate DifficultyLevel = "intermediate"
	Advanced     DifficultyLevel = "advanced"
)

func (l DifficultyLevel) Valid() bool {
	switch l {
	case Beginner, Intermediate, Advanced:
		return true
	}
	return false
}

// Resource is the smallest unit of learning content. Immutable once
// published; this service only ever reads it.
// swagger:model Resource
type Resource struct {
	UUIDBase
	SkillID     string          `gorm:"index;type:varchar(36)" json:"skillId"`
	Title       string          `gorm:"size:255;not null" json:"title"`
	Description string          `gorm:"type:text" json:"description"`
	Type        ResourceType    `gorm:"size:20;not null" json:"type"`
	Level       DifficultyLevel `gorm:"size:20;not null" json:"level"`
	URL         string          `gorm:"size:512" json:"url"`
	Tags        StringSet       `gorm:"type:text" json:"tags"`
	Position    int             `gorm:"default:0" json:"position"`

	// Only set for practice resources.
	CodeLanguage string `gorm:"size:50" json:"codeLanguage,omitempty"`
	StarterCode  string `gorm:"type:text" json:"starterCode,omitempty"`
}

func (Resource) TableName() string {
	return "resources"
}
