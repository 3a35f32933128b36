package model

// Subscriber is a newsletter signup. Delivery happens elsewhere; this service
// only owns the list.
// swagger:model Subscriber
type Subscriber struct {
	BaseModel
	Email string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Name  string `gorm:"size:100" json:"name,omitempty"`
}

func (Subscriber) TableName() string {
	return "subscribers"
}
