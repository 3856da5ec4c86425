package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/nourishnet/nourishnet-api/models"
	"github.com/nourishnet/nourishnet-api/utils"
	"gorm.io/gorm"
)

// UserService manages the caller's own account.
type UserService struct {
	DB       *gorm.DB
	Avatars  utils.AvatarStore
	MaxBytes int64
}

type ProfileInput struct {
	Name     *string `json:"name" validate:"omitempty,min=1"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Phone    *string `json:"phone"`
	Location *string `json:"location"`
}

type PreferencesInput struct {
	Preferences models.Preferences `json:"preferences"`
}

func (s *UserService) GetProfile(userID string) (*models.User, error) {
	var user models.User
	if err := s.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewNotFoundError("User not found")
		}
		return nil, fmt.Errorf("load profile: %w", err)
	}
	return &user, nil
}

func (s *UserService) UpdateProfile(userID string, in ProfileInput) (*models.User, error) {
	if in.Email != nil {
		e := normalizeEmail(*in.Email)
		in.Email = &e
	}
	if err := utils.ValidateStruct(in, nil); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if in.Name != nil {
		updates["name"] = *in.Name
	}
	if in.Email != nil {
		updates["email"] = *in.Email
	}
	if in.Phone != nil {
		updates["phone"] = *in.Phone
	}
	if in.Location != nil {
		updates["location"] = *in.Location
	}
	if len(updates) == 0 {
		return nil, utils.NewBadRequest("No valid fields to update")
	}

	var user models.User
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if in.Email != nil {
			var count int64
			if err := tx.Unscoped().Model(&models.User{}).
				Where("email = ? AND id <> ?", *in.Email, userID).
				Count(&count).Error; err != nil {
				return fmt.Errorf("check email: %w", err)
			}
			if count > 0 {
				return utils.NewConflictError("Email already registered")
			}
		}

		res := tx.Model(&models.User{}).Where("id = ?", userID).Updates(updates)
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return utils.NewConflictError("Email already registered")
		}
		if res.Error != nil {
			return fmt.Errorf("update profile: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return utils.NewNotFoundError("User not found")
		}
		return tx.Where("id = ?", userID).First(&user).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserService) UpdatePreferences(userID string, in PreferencesInput) (models.Preferences, error) {
	if in.Preferences == nil {
		return nil, utils.NewValidationError(utils.FieldError{Field: "preferences", Msg: "preferences must be an object"})
	}
	res := s.DB.Model(&models.User{}).Where("id = ?", userID).Update("preferences", in.Preferences)
	if res.Error != nil {
		return nil, fmt.Errorf("update preferences: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, utils.NewNotFoundError("User not found")
	}
	return in.Preferences, nil
}

// UploadAvatar checks size and content type, stores the image and records its URL.
func (s *UserService) UploadAvatar(ctx context.Context, userID string, data []byte) (*models.User, error) {
	if len(data) == 0 {
		return nil, utils.NewBadRequest("No file uploaded")
	}
	if s.MaxBytes > 0 && int64(len(data)) > s.MaxBytes {
		return nil, utils.NewBadRequest(fmt.Sprintf("File too large. Maximum size is %d MB", s.MaxBytes/(1024*1024)))
	}
	ext, err := utils.DetectImage(data)
	if err != nil {
		return nil, err
	}

	if _, err := s.GetProfile(userID); err != nil {
		return nil, err
	}

	url, err := s.Avatars.Save(ctx, userID, data, ext)
	if err != nil {
		return nil, fmt.Errorf("store avatar: %w", err)
	}
	if err := s.DB.Model(&models.User{}).Where("id = ?", userID).Update("avatar_url", url).Error; err != nil {
		return nil, fmt.Errorf("record avatar: %w", err)
	}
	return s.GetProfile(userID)
}

// DeleteAccount soft deletes the user.
func (s *UserService) DeleteAccount(userID string) error {
	res := s.DB.Where("id = ?", userID).Delete(&models.User{})
	if res.Error != nil {
		return fmt.Errorf("delete account: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return utils.NewNotFoundError("User not found or already deleted")
	}
	return nil
}
