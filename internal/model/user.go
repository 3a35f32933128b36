package model

import "time"

type UserRole string

const (
	Admin  UserRole = "admin"
	Member UserRole = "member"
)

// User represents an account able to track learning progress. The single
// admin account is bootstrapped at startup.
// swagger:model User
type User struct {
	BaseModel
	Name      string     `gorm:"size:100;not null" json:"name"`
	Email     string     `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password  string     `gorm:"size:255;not null" json:"-"`
	Role      UserRole   `gorm:"size:20;default:'member'" json:"role"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`
}

func (User) TableName() string {
	return "users"
}
