package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderProcessing OrderStatus = "processing"
	OrderPreparing  OrderStatus = "preparing"
	OrderReady      OrderStatus = "ready"
	OrderFulfilled  OrderStatus = "fulfilled"
	OrderCancelled  OrderStatus = "cancelled"
)

// Order links a provider to the request it accepted.
type Order struct {
	ID                 string      `json:"id" gorm:"primaryKey;type:varchar(36)"`
	RequestID          string      `json:"request_id" gorm:"type:varchar(36);index;not null"`
	ProviderID         string      `json:"provider_id" gorm:"type:varchar(36);index;not null"`
	DonationID         *string     `json:"donation_id" gorm:"type:varchar(36);index"`
	Status             OrderStatus `json:"status" gorm:"type:varchar(20);index;not null"`
	EstimatedTime      *string     `json:"estimated_time"`
	Address            string      `json:"address"`
	GPSLocation        *string     `json:"gps_location"`
	FulfilledAt        *time.Time  `json:"fulfilled_at"`
	PhotoURL           *string     `json:"photo_url"`
	CancellationReason *string     `json:"cancellation_reason"`
	CreatedAt          time.Time   `json:"created_at"`
	UpdatedAt          time.Time   `json:"updated_at"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	if o.Status == "" {
		o.Status = OrderProcessing
	}
	return nil
}
