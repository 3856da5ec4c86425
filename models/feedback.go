package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderFeedback is a recipient's rating of a fulfilled order.
type OrderFeedback struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderID   string    `json:"order_id" gorm:"type:varchar(36);uniqueIndex:idx_feedback_order_user;not null"`
	UserID    string    `json:"user_id" gorm:"type:varchar(36);uniqueIndex:idx_feedback_order_user;not null"`
	Rating    int       `json:"rating" gorm:"not null"`
	Feedback  *string   `json:"feedback"`
	CreatedAt time.Time `json:"created_at"`
}

func (OrderFeedback) TableName() string {
	return "order_feedback"
}

func (f *OrderFeedback) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}
