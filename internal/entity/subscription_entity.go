package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	SubscriptionPending  = "pending"
	SubscriptionActive   = "active"
	SubscriptionExpired  = "expired"
	SubscriptionCanceled = "canceled"
)

type SubscriptionPlan struct {
	Id           uuid.UUID
	Name         string
	Slug         string
	Description  string
	Price        int64
	BillingCycle string
	PageQuota    int
	AiEnabled    bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Subscription struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	PlanId    uuid.UUID
	OrderId   string
	Status    string
	StartAt   *time.Time
	EndAt     *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}
