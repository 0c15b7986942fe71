package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"

	UserStatusPending = "pending"
	UserStatusActive  = "active"
)

type User struct {
	Id             uuid.UUID
	Email          string
	FullName       string
	PasswordHash   *string
	GoogleId       *string
	Role           string
	Status         string
	EmailVerified  bool
	OtpHash        *string
	OtpExpiresAt   *time.Time
	ResetTokenHash *string
	ResetExpiresAt *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
