package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/nourishnet/nourishnet-api/metrics"
	"github.com/nourishnet/nourishnet-api/models"
	"github.com/nourishnet/nourishnet-api/utils"
	"gorm.io/gorm"
)

// DonorService answers the donor dashboard and processes donations.
type DonorService struct {
	DB      *gorm.DB
	Gateway PaymentGateway
	Metrics *metrics.Metrics
}

type DonorStats struct {
	TotalDonated   float64 `json:"totalDonated"`
	MealsFunded    int64   `json:"mealsFunded"`
	AvgCostPerMeal float64 `json:"avgCostPerMeal"`
}

type TransactionView struct {
	ID        string    `json:"id"`
	Date      time.Time `json:"date"`
	Amount    float64   `json:"amount"`
	Recipient string    `json:"recipient"`
	Status    string    `json:"status"`
	Type      string    `json:"type"`
}

type DeliveryView struct {
	DonationID    string     `json:"donationId"`
	OrderID       *string    `json:"orderId"`
	FoodType      string     `json:"foodType"`
	Quantity      int        `json:"quantity"`
	DonatedAt     time.Time  `json:"donatedAt"`
	DeliveredAt   *time.Time `json:"deliveredAt"`
	Address       *string    `json:"address"`
	GPSLocation   *string    `json:"gpsLocation"`
	RecipientName string     `json:"recipientName"`
	Status        string     `json:"status"`
}

type FeedbackView struct {
	ID            string    `json:"id"`
	Rating        int       `json:"rating"`
	Message       string    `json:"message"`
	RecipientName string    `json:"recipientName"`
	OrderID       string    `json:"orderId"`
	CreatedAt     time.Time `json:"createdAt"`
}

type DonateInput struct {
	Amount        float64      `json:"amount" validate:"gte=1"`
	PaymentMethod string       `json:"paymentMethod" validate:"oneof=card paypal bank_transfer"`
	CardDetails   *CardDetails `json:"cardDetails" validate:"omitempty"`
}

var donateMessages = utils.Messages{
	"amount":                     "Amount must be at least $1",
	"paymentMethod":              "Invalid payment method",
	"cardDetails.cardNumber":     "Invalid card number",
	"cardDetails.expiryMonth":    "Invalid expiry month",
	"cardDetails.cvv":            "Invalid CVV",
	"cardDetails.cardholderName": "Cardholder name is required",
}

type TransactionSummary struct {
	ID          string    `json:"id"`
	Amount      float64   `json:"amount"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

type PaymentDetails struct {
	TransactionID string `json:"transactionId"`
	Last4         string `json:"last4"`
}

type DonationResult struct {
	Transaction    TransactionSummary `json:"transaction"`
	PaymentDetails PaymentDetails     `json:"paymentDetails"`
}

func (s *DonorService) Stats(userID string) (*DonorStats, error) {
	var total float64
	if err := s.DB.Model(&models.Transaction{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("user_id = ? AND type = ?", userID, models.TransactionDeposit).
		Row().Scan(&total); err != nil {
		return nil, fmt.Errorf("sum deposits: %w", err)
	}

	var meals int64
	if err := s.DB.Model(&models.Donation{}).
		Where("user_id = ? AND status = ?", userID, models.DonationCompleted).
		Count(&meals).Error; err != nil {
		return nil, fmt.Errorf("count donations: %w", err)
	}

	return &DonorStats{
		TotalDonated:   round2(total),
		MealsFunded:    meals,
		AvgCostPerMeal: avgCostPerMeal(total, meals),
	}, nil
}

func avgCostPerMeal(total float64, meals int64) float64 {
	if meals <= 0 || total <= 0 {
		return 0
	}
	return round2(total / float64(meals))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func (s *DonorService) Transactions(userID string, page utils.Page) ([]TransactionView, int64, error) {
	var total int64
	if err := s.DB.Model(&models.Transaction{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count transactions: %w", err)
	}

	var rows []models.Transaction
	if err := s.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(page.Limit).Offset(page.Offset).
		Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("list transactions: %w", err)
	}

	views := make([]TransactionView, 0, len(rows))
	for _, t := range rows {
		recipient := t.Description
		if recipient == "" {
			recipient = "NourishNet Platform"
		}
		status := "Unknown"
		if t.Type == models.TransactionDeposit || t.Type == models.TransactionDeduction {
			status = "Completed"
		}
		views = append(views, TransactionView{
			ID:        t.ID,
			Date:      t.CreatedAt,
			Amount:    t.Amount,
			Recipient: recipient,
			Status:    status,
			Type:      string(t.Type),
		})
	}
	return views, total, nil
}

type deliveryRow struct {
	DonationID    string
	FoodType      string
	Quantity      int
	DonatedAt     time.Time
	OrderID       *string
	Address       *string
	GPSLocation   *string
	FulfilledAt   *time.Time
	OrderStatus   *string
	RecipientName *string
}

func (s *DonorService) Deliveries(userID string, page utils.Page) ([]DeliveryView, int64, error) {
	var total int64
	if err := s.DB.Model(&models.Donation{}).
		Where("user_id = ? AND status = ?", userID, models.DonationCompleted).
		Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count deliveries: %w", err)
	}

	var rows []deliveryRow
	if err := s.DB.Table("donations d").
		Select(`d.id AS donation_id, d.food_type, d.quantity, d.created_at AS donated_at,
			o.id AS order_id, o.address, o.gps_location, o.fulfilled_at, o.status AS order_status,
			u.name AS recipient_name`).
		Joins("LEFT JOIN orders o ON o.donation_id = d.id").
		Joins("LEFT JOIN requests r ON r.id = o.request_id").
		Joins("LEFT JOIN users u ON u.id = r.user_id").
		Where("d.user_id = ? AND d.status = ?", userID, models.DonationCompleted).
		Order("CASE WHEN o.fulfilled_at IS NULL THEN 1 ELSE 0 END, o.fulfilled_at DESC, d.created_at DESC").
		Limit(page.Limit).Offset(page.Offset).
		Scan(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("list deliveries: %w", err)
	}

	views := make([]DeliveryView, 0, len(rows))
	for _, r := range rows {
		v := DeliveryView{
			DonationID:    r.DonationID,
			OrderID:       r.OrderID,
			FoodType:      r.FoodType,
			Quantity:      r.Quantity,
			DonatedAt:     r.DonatedAt,
			DeliveredAt:   r.FulfilledAt,
			Address:       r.Address,
			GPSLocation:   r.GPSLocation,
			RecipientName: "Anonymous",
			Status:        string(models.OrderProcessing),
		}
		if r.RecipientName != nil && *r.RecipientName != "" {
			v.RecipientName = *r.RecipientName
		}
		if r.OrderStatus != nil {
			v.Status = *r.OrderStatus
		}
		views = append(views, v)
	}
	return views, total, nil
}

type feedbackRow struct {
	ID            string
	Rating        int
	Feedback      string
	CreatedAt     time.Time
	RecipientName string
	OrderID       string
}

func (s *DonorService) Feedback(userID string, limit int) ([]FeedbackView, error) {
	var rows []feedbackRow
	if err := s.DB.Table("order_feedback f").
		Select("f.id, f.rating, f.feedback, f.created_at, u.name AS recipient_name, o.id AS order_id").
		Joins("JOIN orders o ON o.id = f.order_id").
		Joins("JOIN donations d ON d.id = o.donation_id").
		Joins("JOIN users u ON u.id = f.user_id").
		Where("d.user_id = ? AND f.feedback IS NOT NULL", userID).
		Order("f.created_at DESC").
		Limit(limit).
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("list feedback: %w", err)
	}

	views := make([]FeedbackView, 0, len(rows))
	for _, r := range rows {
		views = append(views, FeedbackView{
			ID:            r.ID,
			Rating:        r.Rating,
			Message:       r.Feedback,
			RecipientName: r.RecipientName,
			OrderID:       r.OrderID,
			CreatedAt:     r.CreatedAt,
		})
	}
	return views, nil
}

func (s *DonorService) Balance(userID string) (float64, error) {
	var user models.User
	if err := s.DB.Select("balance").Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, utils.NewNotFoundError("User not found")
		}
		return 0, fmt.Errorf("load balance: %w", err)
	}
	return user.Balance, nil
}

// Donate charges the donor and records the deposit, balance change and donation in one transaction.
func (s *DonorService) Donate(ctx context.Context, userID string, in DonateInput) (*DonationResult, error) {
	if err := utils.ValidateStruct(in, donateMessages); err != nil {
		return nil, err
	}

	var result DonationResult
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txnID, err := s.Gateway.Charge(ctx, PaymentRequest{
			Amount:        in.Amount,
			PaymentMethod: in.PaymentMethod,
			Card:          in.CardDetails,
		})
		if err != nil {
			return err
		}

		entry := models.Transaction{
			UserID:      userID,
			Type:        models.TransactionDeposit,
			Amount:      in.Amount,
			Description: fmt.Sprintf("Donation via %s - Transaction ID: %s", in.PaymentMethod, txnID),
		}
		if err := tx.Create(&entry).Error; err != nil {
			return fmt.Errorf("insert transaction: %w", err)
		}

		res := tx.Model(&models.User{}).Where("id = ?", userID).
			Update("balance", gorm.Expr("balance + ?", in.Amount))
		if res.Error != nil {
			return fmt.Errorf("update balance: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return utils.NewNotFoundError("User not found")
		}

		donation := models.Donation{
			UserID:   userID,
			FoodType: "General Donation",
			Quantity: int(math.Floor(in.Amount / 2.5)),
			Status:   models.DonationPending,
		}
		if err := tx.Create(&donation).Error; err != nil {
			return fmt.Errorf("insert donation: %w", err)
		}

		result = DonationResult{
			Transaction: TransactionSummary{
				ID:          entry.ID,
				Amount:      entry.Amount,
				Description: entry.Description,
				CreatedAt:   entry.CreatedAt,
			},
			PaymentDetails: PaymentDetails{TransactionID: txnID, Last4: last4(in.CardDetails)},
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Metrics.ObserveDonation(in.Amount)
	return &result, nil
}
