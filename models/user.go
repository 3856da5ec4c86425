package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role string

const (
	RoleDonor     Role = "donor"
	RoleRecipient Role = "recipient"
	RoleProvider  Role = "provider"
	RoleAdmin     Role = "admin"
)

type User struct {
	ID                   string         `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name                 string         `json:"name" gorm:"not null"`
	Email                string         `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash         string         `json:"-" gorm:"not null"`
	Role                 Role           `json:"role" gorm:"type:varchar(20);not null"`
	EmailVerified        bool           `json:"email_verified" gorm:"not null;default:false"`
	VerificationToken    *string        `json:"-" gorm:"index"`
	ResetPasswordToken   *string        `json:"-" gorm:"index"`
	ResetPasswordExpires *time.Time     `json:"-"`
	Balance              float64        `json:"balance" gorm:"not null;default:0"`
	Phone                string         `json:"phone"`
	Location             string         `json:"location"`
	AvatarURL            string         `json:"avatar_url"`
	Preferences          Preferences    `json:"preferences"`
	CreatedAt            time.Time      `json:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at"`
	DeletedAt            gorm.DeletedAt `json:"-" gorm:"index"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// PublicUser is the projection returned on login and refresh.
type PublicUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

// ValidRole reports whether r is one of the roles a user may register with.
func ValidRole(r Role) bool {
	switch r {
	case RoleDonor, RoleRecipient, RoleProvider, RoleAdmin:
		return true
	}
	return false
}
