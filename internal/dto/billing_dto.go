package dto

import (
	"time"

	"github.com/google/uuid"
)

type CheckoutRequest struct {
	PlanSlug string `json:"plan_slug" validate:"required"`
}

type CheckoutResponse struct {
	OrderId     string `json:"order_id"`
	Token       string `json:"token"`
	RedirectURL string `json:"redirect_url"`
}

type PlanResponse struct {
	Id           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	Description  string    `json:"description"`
	Price        int64     `json:"price"`
	BillingCycle string    `json:"billing_cycle"`
	PageQuota    int       `json:"page_quota"`
	AiEnabled    bool      `json:"ai_enabled"`
}

type SubscriptionStatusResponse struct {
	SubscriptionId uuid.UUID  `json:"subscription_id"`
	PlanName       string     `json:"plan_name"`
	Status         string     `json:"status"`
	StartAt        *time.Time `json:"start_at"`
	EndAt          *time.Time `json:"end_at"`
	IsActive       bool       `json:"is_active"`
}

// MidtransNotification is the subset of the webhook payload we act on.
type MidtransNotification struct {
	OrderId           string `json:"order_id"`
	TransactionStatus string `json:"transaction_status"`
	FraudStatus       string `json:"fraud_status"`
	StatusCode        string `json:"status_code"`
	GrossAmount       string `json:"gross_amount"`
	SignatureKey      string `json:"signature_key"`
}
