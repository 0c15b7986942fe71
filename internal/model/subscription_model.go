package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SubscriptionPlan struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name         string    `gorm:"type:varchar(100);not null"`
	Slug         string    `gorm:"type:varchar(100);not null;uniqueIndex"`
	Description  string    `gorm:"type:text"`
	Price        int64     `gorm:"not null"`
	BillingCycle string    `gorm:"type:varchar(32);not null;default:'monthly'"`
	PageQuota    int       `gorm:"not null;default:0"`
	AiEnabled    bool      `gorm:"not null;default:false"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

func (SubscriptionPlan) TableName() string {
	return "subscription_plans"
}

type Subscription struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    uuid.UUID `gorm:"type:uuid;not null;index"`
	PlanId    uuid.UUID `gorm:"type:uuid;not null"`
	OrderId   string    `gorm:"type:varchar(64);not null;uniqueIndex"`
	Status    string    `gorm:"type:varchar(32);not null;default:'pending'"`
	StartAt   *time.Time
	EndAt     *time.Time
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}
