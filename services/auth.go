package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nourishnet/nourishnet-api/models"
	"github.com/nourishnet/nourishnet-api/utils"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const resetMessage = "If the email exists, a reset link has been sent."

// AuthService owns registration, verification, login and password resets.
type AuthService struct {
	DB         *gorm.DB
	Tokens     *utils.TokenManager
	Mailer     utils.Mailer
	Log        *logrus.Logger
	BaseURL    string
	BcryptCost int
	ResetTTL   time.Duration

	now func() time.Time
}

func NewAuthService(db *gorm.DB, tokens *utils.TokenManager, mailer utils.Mailer, log *logrus.Logger, baseURL string, bcryptCost int, resetTTL time.Duration) *AuthService {
	return &AuthService{
		DB:         db,
		Tokens:     tokens,
		Mailer:     mailer,
		Log:        log,
		BaseURL:    strings.TrimSuffix(baseURL, "/"),
		BcryptCost: bcryptCost,
		ResetTTL:   resetTTL,
		now:        time.Now,
	}
}

type RegisterInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"min=8"`
	Role     string `json:"role" validate:"role"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ResetRequestInput struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetConfirmInput struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"min=8"`
}

// LoginResult is handed back to the controller, which sets the refresh cookie.
type LoginResult struct {
	AccessToken  string            `json:"accessToken"`
	RefreshToken string            `json:"-"`
	User         models.PublicUser `json:"user"`
}

func (s *AuthService) Register(in RegisterInput) error {
	in.Email = normalizeEmail(in.Email)
	if err := utils.ValidateStruct(in, nil); err != nil {
		return err
	}

	var count int64
	if err := s.DB.Unscoped().Model(&models.User{}).Where("email = ?", in.Email).Count(&count).Error; err != nil {
		return fmt.Errorf("check email: %w", err)
	}
	if count > 0 {
		return utils.NewConflictError("Email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.BcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	token := utils.NewToken()
	user := models.User{
		Name:              in.Name,
		Email:             in.Email,
		PasswordHash:      string(hash),
		Role:              models.Role(in.Role),
		VerificationToken: &token,
	}
	if err := s.DB.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return utils.NewConflictError("Email already registered")
		}
		return fmt.Errorf("create user: %w", err)
	}

	verifyURL := fmt.Sprintf("%s/auth/verify-email?token=%s", s.BaseURL, token)
	utils.SendAsync(s.Mailer, s.Log, user.Email, "Verify your email",
		fmt.Sprintf(`<p>Click <a href="%s">here</a> to verify your email.</p>`, verifyURL))
	return nil
}

func (s *AuthService) VerifyEmail(token string) error {
	if token == "" {
		return utils.NewNotFoundError("Invalid or expired token")
	}
	res := s.DB.Model(&models.User{}).
		Where("verification_token = ?", token).
		Updates(map[string]interface{}{"email_verified": true, "verification_token": nil})
	if res.Error != nil {
		return fmt.Errorf("verify email: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return utils.NewNotFoundError("Invalid or expired token")
	}
	return nil
}

func (s *AuthService) Login(in LoginInput) (*LoginResult, error) {
	in.Email = normalizeEmail(in.Email)
	if err := utils.ValidateStruct(in, nil); err != nil {
		return nil, err
	}

	var user models.User
	if err := s.DB.Where("email = ?", in.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewAuthError("Invalid credentials")
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	if !user.EmailVerified {
		return nil, utils.NewAuthError("Email not verified")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, utils.NewAuthError("Invalid credentials")
	}

	access, err := s.Tokens.AccessToken(user.ID, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}
	refresh, err := s.Tokens.RefreshToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("sign refresh token: %w", err)
	}
	return &LoginResult{AccessToken: access, RefreshToken: refresh, User: user.Public()}, nil
}

// Refresh mints a new access token from a refresh token cookie.
func (s *AuthService) Refresh(refreshToken string) (*LoginResult, error) {
	if refreshToken == "" {
		return nil, utils.NewAuthError("No refresh token provided")
	}
	userID, err := s.Tokens.ParseRefresh(refreshToken)
	if err != nil {
		return nil, utils.NewForbiddenError("Invalid refresh token")
	}

	var user models.User
	if err := s.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewAuthError("User not found")
		}
		return nil, fmt.Errorf("load refresh user: %w", err)
	}

	access, err := s.Tokens.AccessToken(user.ID, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}
	return &LoginResult{AccessToken: access, User: user.Public()}, nil
}

// RequestPasswordReset always returns the same message whether or not the email exists.
func (s *AuthService) RequestPasswordReset(in ResetRequestInput) (string, error) {
	in.Email = normalizeEmail(in.Email)
	if err := utils.ValidateStruct(in, nil); err != nil {
		return "", err
	}

	var user models.User
	if err := s.DB.Where("email = ?", in.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return resetMessage, nil
		}
		return "", fmt.Errorf("find user: %w", err)
	}

	token := utils.NewToken()
	expires := s.now().Add(s.ResetTTL)
	if err := s.DB.Model(&user).Updates(map[string]interface{}{
		"reset_password_token":   token,
		"reset_password_expires": expires,
	}).Error; err != nil {
		return "", fmt.Errorf("store reset token: %w", err)
	}

	resetURL := fmt.Sprintf("%s/reset-password/confirm?token=%s", s.BaseURL, token)
	utils.SendAsync(s.Mailer, s.Log, user.Email, "Password Reset",
		fmt.Sprintf(`<p>Click <a href="%s">here</a> to reset your password. This link expires in %s.</p>`, resetURL, humanTTL(s.ResetTTL)))
	return resetMessage, nil
}

func (s *AuthService) ResetPassword(in ResetConfirmInput) error {
	if err := utils.ValidateStruct(in, nil); err != nil {
		return err
	}

	var user models.User
	if err := s.DB.Where("reset_password_token = ?", in.Token).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NewBadRequest("Invalid or expired token")
		}
		return fmt.Errorf("find reset token: %w", err)
	}
	if user.ResetPasswordExpires == nil || user.ResetPasswordExpires.Before(s.now()) {
		return utils.NewBadRequest("Token expired")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.BcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	// The token guard keeps the reset single-use.
	res := s.DB.Model(&models.User{}).
		Where("id = ? AND reset_password_token = ?", user.ID, in.Token).
		Updates(map[string]interface{}{
			"password_hash":          string(hash),
			"reset_password_token":   nil,
			"reset_password_expires": nil,
		})
	if res.Error != nil {
		return fmt.Errorf("reset password: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return utils.NewBadRequest("Invalid or expired token")
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func humanTTL(d time.Duration) string {
	if d == time.Hour {
		return "1 hour"
	}
	return d.String()
}
