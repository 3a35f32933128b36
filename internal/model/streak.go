package model

// StreakState tracks consecutive calendar days with at least one new
// completion. LastCompletedDate is a timezone-naive day string (2006-01-02)
// in the zone configured for the progress engine; comparing day strings is
// what keeps the streak rules independent of clock precision.
// swagger:model StreakState
type StreakState struct {
	BaseModel
	UserID            uint   `gorm:"uniqueIndex;not null" json:"userId"`
	CurrentStreak     int    `gorm:"default:0" json:"currentStreak"`
	LastCompletedDate string `gorm:"size:10" json:"lastCompletedDate"`
}

func (StreakState) TableName() string {
	return "streak_states"
}
