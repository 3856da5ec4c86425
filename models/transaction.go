package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TransactionType string

const (
	TransactionDeposit   TransactionType = "deposit"
	TransactionDeduction TransactionType = "deduction"
)

// Transaction is an append-only ledger entry against a user's balance.
type Transaction struct {
	ID          string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID      string          `json:"user_id" gorm:"type:varchar(36);index;not null"`
	Type        TransactionType `json:"type" gorm:"type:varchar(20);not null"`
	Amount      float64         `json:"amount" gorm:"not null"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"created_at" gorm:"index"`
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
