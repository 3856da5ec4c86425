package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DonationStatus string

const (
	DonationPending   DonationStatus = "pending"
	DonationCompleted DonationStatus = "completed"
)

type Donation struct {
	ID        string         `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID    string         `json:"user_id" gorm:"type:varchar(36);index;not null"`
	FoodType  string         `json:"food_type" gorm:"not null"`
	Quantity  int            `json:"quantity" gorm:"not null"`
	Status    DonationStatus `json:"status" gorm:"type:varchar(20);index;not null"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func (d *Donation) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	if d.Status == "" {
		d.Status = DonationPending
	}
	return nil
}
