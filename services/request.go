package services

import (
	"errors"
	"fmt"

	"github.com/nourishnet/nourishnet-api/models"
	"github.com/nourishnet/nourishnet-api/utils"
	"gorm.io/gorm"
)

// RequestService handles meal requests and recipient feedback.
type RequestService struct {
	DB *gorm.DB
}

type CreateRequestInput struct {
	UserID       string  `json:"userId"`
	FoodType     string  `json:"foodType" validate:"required"`
	Quantity     int     `json:"quantity" validate:"gte=1"`
	Location     string  `json:"location" validate:"required"`
	MealTime     string  `json:"mealTime" validate:"required"`
	NumChildren  int     `json:"numChildren" validate:"gte=1"`
	PhoneNumber  string  `json:"phoneNumber" validate:"required"`
	DietaryNeeds *string `json:"dietaryNeeds"`
}

type FeedbackInput struct {
	OrderID  string  `json:"orderId" validate:"required,uuid"`
	Rating   int     `json:"rating" validate:"gte=1,lte=5"`
	Feedback *string `json:"feedback"`
}

var feedbackMessages = utils.Messages{
	"orderId": "Valid order ID required",
	"rating":  "Rating must be between 1 and 5",
}

// Create stores a pending request. Only admins may file on behalf of another user.
func (s *RequestService) Create(callerID string, role models.Role, in CreateRequestInput) (*models.Request, error) {
	if err := utils.ValidateStruct(in, nil); err != nil {
		return nil, err
	}

	owner := callerID
	if in.UserID != "" && in.UserID != callerID {
		if role != models.RoleAdmin {
			return nil, utils.NewForbiddenError("Forbidden: cannot create requests for another user")
		}
		var count int64
		if err := s.DB.Model(&models.User{}).Where("id = ?", in.UserID).Count(&count).Error; err != nil {
			return nil, fmt.Errorf("check user: %w", err)
		}
		if count == 0 {
			return nil, utils.NewNotFoundError("User not found")
		}
		owner = in.UserID
	}

	req := models.Request{
		UserID:      owner,
		FoodType:    in.FoodType,
		Quantity:    in.Quantity,
		Location:    in.Location,
		MealTime:    in.MealTime,
		NumChildren: in.NumChildren,
		PhoneNumber: in.PhoneNumber,
		Status:      models.RequestPending,
	}
	if in.DietaryNeeds != nil {
		req.DietaryNeeds = *in.DietaryNeeds
	}
	if err := s.DB.Create(&req).Error; err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	return &req, nil
}

// ListByUser returns a user's requests, newest first. Non-admins only see their own.
func (s *RequestService) ListByUser(callerID string, role models.Role, userID string, page utils.Page) ([]models.Request, int64, error) {
	if userID == "" {
		userID = callerID
	}
	if userID != callerID && role != models.RoleAdmin {
		return nil, 0, utils.NewForbiddenError("Forbidden: insufficient role")
	}

	var total int64
	if err := s.DB.Model(&models.Request{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count requests: %w", err)
	}

	rows := []models.Request{}
	if err := s.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(page.Limit).Offset(page.Offset).
		Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("list requests: %w", err)
	}
	return rows, total, nil
}

// SubmitFeedback rates a fulfilled order placed against one of the caller's requests.
func (s *RequestService) SubmitFeedback(callerID string, role models.Role, in FeedbackInput) (*models.OrderFeedback, error) {
	if err := utils.ValidateStruct(in, feedbackMessages); err != nil {
		return nil, err
	}

	var fb models.OrderFeedback
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		q := tx.Table("orders o").
			Select("o.id").
			Joins("JOIN requests r ON r.id = o.request_id").
			Where("o.id = ? AND o.status = ?", in.OrderID, models.OrderFulfilled)
		if role != models.RoleAdmin {
			q = q.Where("r.user_id = ?", callerID)
		}
		var ids []string
		if err := q.Limit(1).Pluck("o.id", &ids).Error; err != nil {
			return fmt.Errorf("load order: %w", err)
		}
		if len(ids) == 0 {
			return utils.NewNotFoundError("Order not found or not yet fulfilled")
		}

		var existing models.OrderFeedback
		err := tx.Where("order_id = ? AND user_id = ?", in.OrderID, callerID).First(&existing).Error
		if err == nil {
			return utils.NewConflictError("Feedback already submitted for this order")
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("check feedback: %w", err)
		}

		fb = models.OrderFeedback{
			OrderID:  in.OrderID,
			UserID:   callerID,
			Rating:   in.Rating,
			Feedback: in.Feedback,
		}
		if err := tx.Create(&fb).Error; err != nil {
			return fmt.Errorf("create feedback: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &fb, nil
}
