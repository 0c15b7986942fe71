package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	Id              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email           string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	FullName        string    `gorm:"type:varchar(255);not null"`
	PasswordHash    *string   `gorm:"type:varchar(255)"`
	GoogleId        *string   `gorm:"type:varchar(255);index"`
	Role            string    `gorm:"type:varchar(32);not null;default:'user'"`
	Status          string    `gorm:"type:varchar(32);not null;default:'pending'"`
	EmailVerified   bool      `gorm:"not null;default:false"`
	OtpHash         *string   `gorm:"type:varchar(255)"`
	OtpExpiresAt    *time.Time
	ResetTokenHash  *string `gorm:"type:varchar(255)"`
	ResetExpiresAt  *time.Time
	CreatedAt       time.Time      `gorm:"autoCreateTime"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime"`
	DeletedAt       gorm.DeletedAt `gorm:"index"`
}

func (User) TableName() string {
	return "users"
}
