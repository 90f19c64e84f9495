package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID            uint64         `gorm:"primarykey" json:"id"`
	Username      string         `gorm:"type:varchar(150);uniqueIndex;not null" json:"username"`
	Email         string         `gorm:"type:varchar(255);not null" json:"email"`
	PasswordHash  string         `gorm:"type:varchar(255);not null" json:"-"`
	IsActive      bool           `gorm:"not null;default:true" json:"is_active"`
	IsStaff       bool           `gorm:"not null;default:false" json:"is_staff"`
	EmailVerified bool           `gorm:"not null;default:false" json:"email_verified"`
	VerifyToken   string         `gorm:"type:varchar(64)" json:"-"`
	LastLogin     *time.Time     `json:"last_login"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Jobs []Job `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
