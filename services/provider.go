package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/nourishnet/nourishnet-api/metrics"
	"github.com/nourishnet/nourishnet-api/models"
	"github.com/nourishnet/nourishnet-api/utils"
	"gorm.io/gorm"
)

// ProviderService covers the provider's view of requests and orders.
type ProviderService struct {
	DB      *gorm.DB
	Metrics *metrics.Metrics

	now func() time.Time
}

func NewProviderService(db *gorm.DB, m *metrics.Metrics) *ProviderService {
	return &ProviderService{DB: db, Metrics: m, now: time.Now}
}

type AvailableRequest struct {
	ID            string    `json:"id"`
	FoodType      string    `json:"food_type"`
	Quantity      int       `json:"quantity"`
	Location      string    `json:"location"`
	MealTime      string    `json:"meal_time"`
	NumChildren   int       `json:"num_children"`
	PhoneNumber   string    `json:"phone_number"`
	DietaryNeeds  string    `json:"dietary_needs"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	RequesterName string    `json:"requester_name"`
}

type ProviderOrder struct {
	OrderID       string     `json:"order_id"`
	OrderStatus   string     `json:"order_status"`
	FulfilledAt   *time.Time `json:"fulfilled_at"`
	AcceptedAt    time.Time  `json:"accepted_at"`
	RequestID     string     `json:"request_id"`
	FoodType      string     `json:"food_type"`
	Quantity      int        `json:"quantity"`
	Location      string     `json:"location"`
	MealTime      string     `json:"meal_time"`
	NumChildren   int        `json:"num_children"`
	PhoneNumber   string     `json:"phone_number"`
	DietaryNeeds  string     `json:"dietary_needs"`
	RequesterName string     `json:"requester_name"`
}

type ProviderStats struct {
	ActiveOrders    int64 `json:"activeOrders"`
	CompletedOrders int64 `json:"completedOrders"`
	TotalOrders     int64 `json:"totalOrders"`
	MealsServed     int64 `json:"mealsServed"`
}

type AcceptInput struct {
	RequestID     string  `json:"requestId" validate:"required,uuid"`
	EstimatedTime *string `json:"estimatedTime"`
}

type StatusInput struct {
	OrderID  string  `json:"orderId" validate:"required,uuid"`
	Status   string  `json:"status" validate:"oneof=processing preparing ready fulfilled"`
	PhotoURL *string `json:"photoUrl" validate:"omitempty,url"`
}

type CancelInput struct {
	OrderID string  `json:"orderId" validate:"required,uuid"`
	Reason  *string `json:"reason"`
}

var providerMessages = utils.Messages{
	"requestId": "Valid request ID required",
	"orderId":   "Valid order ID required",
	"status":    "Invalid status",
	"photoUrl":  "Valid photo URL required",
}

func (s *ProviderService) AvailableRequests(page utils.Page) ([]AvailableRequest, int64, error) {
	var total int64
	if err := s.DB.Model(&models.Request{}).Where("status = ?", models.RequestPending).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count requests: %w", err)
	}

	rows := []AvailableRequest{}
	if err := s.DB.Table("requests r").
		Select(`r.id, r.food_type, r.quantity, r.location, r.meal_time, r.num_children,
			r.phone_number, r.dietary_needs, r.status, r.created_at, u.name AS requester_name`).
		Joins("JOIN users u ON u.id = r.user_id").
		Where("r.status = ?", models.RequestPending).
		Order("r.created_at DESC").
		Limit(page.Limit).Offset(page.Offset).
		Scan(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("list requests: %w", err)
	}
	return rows, total, nil
}

func (s *ProviderService) Orders(providerID, status string, page utils.Page) ([]ProviderOrder, int64, error) {
	count := s.DB.Model(&models.Order{}).Where("provider_id = ?", providerID)
	list := s.DB.Table("orders o").
		Select(`o.id AS order_id, o.status AS order_status, o.fulfilled_at, o.created_at AS accepted_at,
			r.id AS request_id, r.food_type, r.quantity, r.location, r.meal_time, r.num_children,
			r.phone_number, r.dietary_needs, u.name AS requester_name`).
		Joins("JOIN requests r ON r.id = o.request_id").
		Joins("JOIN users u ON u.id = r.user_id").
		Where("o.provider_id = ?", providerID)
	if status != "" {
		count = count.Where("status = ?", status)
		list = list.Where("o.status = ?", status)
	}

	var total int64
	if err := count.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}

	rows := []ProviderOrder{}
	if err := list.Order("o.created_at DESC").Limit(page.Limit).Offset(page.Offset).Scan(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}
	return rows, total, nil
}

// Accept claims a pending request for the provider and opens an order for it.
func (s *ProviderService) Accept(providerID string, in AcceptInput) (*models.Order, error) {
	if err := utils.ValidateStruct(in, providerMessages); err != nil {
		return nil, err
	}

	var order models.Order
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Request{}).
			Where("id = ? AND status = ?", in.RequestID, models.RequestPending).
			Update("status", models.RequestApproved)
		if res.Error != nil {
			return fmt.Errorf("claim request: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return utils.NewNotFoundError("Request not found or already accepted")
		}

		var req models.Request
		if err := tx.Where("id = ?", in.RequestID).First(&req).Error; err != nil {
			return fmt.Errorf("load request: %w", err)
		}

		order = models.Order{
			RequestID:     req.ID,
			ProviderID:    providerID,
			Status:        models.OrderProcessing,
			EstimatedTime: in.EstimatedTime,
			Address:       req.Location,
		}
		if err := tx.Create(&order).Error; err != nil {
			return fmt.Errorf("create order: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Metrics.ObserveOrderTransition(string(models.OrderProcessing))
	return &order, nil
}

// UpdateStatus moves an owned order along its lifecycle. Fulfilment cascades to the
// request and allocates the oldest pending donation.
func (s *ProviderService) UpdateStatus(providerID string, in StatusInput) (*models.Order, error) {
	if err := utils.ValidateStruct(in, providerMessages); err != nil {
		return nil, err
	}
	target := models.OrderStatus(in.Status)

	var order models.Order
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND provider_id = ?", in.OrderID, providerID).First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.NewNotFoundError("Order not found")
			}
			return fmt.Errorf("load order: %w", err)
		}
		if err := CanTransitionOrder(order.Status, target); err != nil {
			return err
		}

		updates := map[string]interface{}{"status": target}
		if in.PhotoURL != nil {
			updates["photo_url"] = *in.PhotoURL
		}
		if target == models.OrderFulfilled {
			updates["fulfilled_at"] = s.now()
		}
		res := tx.Model(&models.Order{}).
			Where("id = ? AND status = ?", order.ID, order.Status).
			Updates(updates)
		if res.Error != nil {
			return fmt.Errorf("update order: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return utils.NewNotFoundError("Order not found")
		}

		if target == models.OrderFulfilled {
			if err := tx.Model(&models.Request{}).Where("id = ?", order.RequestID).
				Update("status", models.RequestFulfilled).Error; err != nil {
				return fmt.Errorf("fulfil request: %w", err)
			}
			if err := allocateDonation(tx, order.ID); err != nil {
				return err
			}
		}

		return tx.Where("id = ?", order.ID).First(&order).Error
	})
	if err != nil {
		return nil, err
	}

	s.Metrics.ObserveOrderTransition(string(target))
	return &order, nil
}

const allocateAttempts = 3

// allocateDonation links the oldest pending donation to the order and completes it.
// Having no pending donation is not an error.
func allocateDonation(tx *gorm.DB, orderID string) error {
	for i := 0; i < allocateAttempts; i++ {
		var donation models.Donation
		err := tx.Where("status = ?", models.DonationPending).Order("created_at ASC").First(&donation).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("find donation: %w", err)
		}

		res := tx.Model(&models.Donation{}).
			Where("id = ? AND status = ?", donation.ID, models.DonationPending).
			Update("status", models.DonationCompleted)
		if res.Error != nil {
			return fmt.Errorf("complete donation: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			continue
		}
		if err := tx.Model(&models.Order{}).Where("id = ?", orderID).
			Update("donation_id", donation.ID).Error; err != nil {
			return fmt.Errorf("link donation: %w", err)
		}
		return nil
	}
	return nil
}

// Cancel cancels an owned, non-terminal order and returns its request to the pending pool.
func (s *ProviderService) Cancel(providerID string, in CancelInput) error {
	if err := utils.ValidateStruct(in, providerMessages); err != nil {
		return err
	}
	notCancellable := utils.NewNotFoundError("Order not found or cannot be cancelled")

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.Where("id = ? AND provider_id = ?", in.OrderID, providerID).First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notCancellable
			}
			return fmt.Errorf("load order: %w", err)
		}
		if IsTerminalOrderStatus(order.Status) {
			return notCancellable
		}

		res := tx.Model(&models.Order{}).
			Where("id = ? AND status = ?", order.ID, order.Status).
			Updates(map[string]interface{}{
				"status":              models.OrderCancelled,
				"cancellation_reason": in.Reason,
			})
		if res.Error != nil {
			return fmt.Errorf("cancel order: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return notCancellable
		}

		if err := tx.Model(&models.Request{}).Where("id = ?", order.RequestID).
			Update("status", models.RequestPending).Error; err != nil {
			return fmt.Errorf("reopen request: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.Metrics.ObserveOrderTransition(string(models.OrderCancelled))
	return nil
}

func (s *ProviderService) Stats(providerID string) (*ProviderStats, error) {
	var stats ProviderStats
	base := func() *gorm.DB { return s.DB.Model(&models.Order{}).Where("provider_id = ?", providerID) }

	if err := base().Where("status IN ?", ActiveOrderStatuses()).Count(&stats.ActiveOrders).Error; err != nil {
		return nil, fmt.Errorf("count active orders: %w", err)
	}
	if err := base().Where("status = ?", models.OrderFulfilled).Count(&stats.CompletedOrders).Error; err != nil {
		return nil, fmt.Errorf("count completed orders: %w", err)
	}
	if err := base().Count(&stats.TotalOrders).Error; err != nil {
		return nil, fmt.Errorf("count orders: %w", err)
	}
	if err := s.DB.Table("orders o").
		Select("COALESCE(SUM(r.quantity), 0)").
		Joins("JOIN requests r ON r.id = o.request_id").
		Where("o.provider_id = ? AND o.status = ?", providerID, models.OrderFulfilled).
		Row().Scan(&stats.MealsServed); err != nil {
		return nil, fmt.Errorf("sum meals: %w", err)
	}
	return &stats, nil
}
