package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RequestStatus string

const (
	RequestPending   RequestStatus = "pending"
	RequestApproved  RequestStatus = "approved"
	RequestFulfilled RequestStatus = "fulfilled"
)

// Request is a meal request submitted by a trusted adult on behalf of children.
type Request struct {
	ID           string        `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID       string        `json:"user_id" gorm:"type:varchar(36);index;not null"`
	FoodType     string        `json:"food_type" gorm:"not null"`
	Quantity     int           `json:"quantity" gorm:"not null"`
	Location     string        `json:"location" gorm:"not null"`
	MealTime     string        `json:"meal_time" gorm:"not null"`
	NumChildren  int           `json:"num_children" gorm:"not null"`
	PhoneNumber  string        `json:"phone_number" gorm:"not null"`
	DietaryNeeds string        `json:"dietary_needs"`
	Status       RequestStatus `json:"status" gorm:"type:varchar(20);index;not null;default:'pending'"`
	CreatedAt    time.Time     `json:"created_at"`
}

func (r *Request) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.Status == "" {
		r.Status = RequestPending
	}
	return nil
}
