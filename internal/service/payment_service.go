package service

import (
	"context"
	"crypto/sha512"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"

	"gammanotes-be/internal/config"
	"gammanotes-be/internal/dto"
	"gammanotes-be/internal/entity"
	"gammanotes-be/internal/pkg/logger"
	"gammanotes-be/internal/pkg/serverutils"
	"gammanotes-be/internal/repository/specification"
	"gammanotes-be/internal/repository/unitofwork"
	"gammanotes-be/pkg/events"
	pktNats "gammanotes-be/pkg/nats"
)

const paymentModule = "payment"

type IPaymentService interface {
	GetPlans(ctx context.Context) ([]*dto.PlanResponse, error)
	Checkout(ctx context.Context, userId uuid.UUID, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error)
	HandleNotification(ctx context.Context, req *dto.MidtransNotification) error
	GetSubscriptionStatus(ctx context.Context, userId uuid.UUID) (*dto.SubscriptionStatusResponse, error)
}

type paymentService struct {
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher *pktNats.Publisher
	log            logger.ILogger
	cfg            *config.MidtransConfig
}

func NewPaymentService(
	uowFactory unitofwork.RepositoryFactory,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
	cfg *config.MidtransConfig,
) IPaymentService {
	return &paymentService{
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
		log:            log,
		cfg:            cfg,
	}
}

func (s *paymentService) GetPlans(ctx context.Context) ([]*dto.PlanResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	plans, err := uow.SubscriptionRepository().FindAllPlans(ctx, specification.OrderBy{Field: "price"})
	if err != nil {
		return nil, err
	}

	res := make([]*dto.PlanResponse, 0, len(plans))
	for _, p := range plans {
		res = append(res, &dto.PlanResponse{
			Id:           p.Id,
			Name:         p.Name,
			Slug:         p.Slug,
			Description:  p.Description,
			Price:        p.Price,
			BillingCycle: p.BillingCycle,
			PageQuota:    p.PageQuota,
			AiEnabled:    p.AiEnabled,
		})
	}
	return res, nil
}

func (s *paymentService) Checkout(ctx context.Context, userId uuid.UUID, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	plan, err := uow.SubscriptionRepository().FindPlan(ctx, specification.BySlug{Slug: req.PlanSlug})
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, serverutils.NewNotFoundError("Plan not found")
	}

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil || user == nil {
		return nil, serverutils.NewNotFoundError("User not found")
	}

	sub := &entity.Subscription{
		Id:        uuid.New(),
		UserId:    userId,
		PlanId:    plan.Id,
		OrderId:   uuid.NewString(),
		Status:    entity.SubscriptionPending,
		CreatedAt: time.Now(),
	}
	if err := uow.SubscriptionRepository().Create(ctx, sub); err != nil {
		return nil, err
	}

	var sClient snap.Client
	env := midtrans.Sandbox
	if s.cfg.Environment == "production" {
		env = midtrans.Production
	}
	sClient.New(s.cfg.ServerKey, env)

	snapReq := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  sub.OrderId,
			GrossAmt: plan.Price,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: user.FullName,
			Email: user.Email,
		},
		Items: &[]midtrans.ItemDetails{
			{
				ID:    plan.Slug,
				Name:  plan.Name,
				Price: plan.Price,
				Qty:   1,
			},
		},
		EnabledPayments: snap.AllSnapPaymentType,
	}

	snapResp, midErr := sClient.CreateTransaction(snapReq)
	if midErr != nil {
		s.log.Error(paymentModule, "Midtrans transaction creation failed", map[string]interface{}{
			"order_id": sub.OrderId,
			"error":    midErr.GetMessage(),
		})
		return nil, serverutils.NewUpstreamError("Payment gateway error")
	}

	return &dto.CheckoutResponse{
		OrderId:     sub.OrderId,
		Token:       snapResp.Token,
		RedirectURL: snapResp.RedirectURL,
	}, nil
}

func (s *paymentService) HandleNotification(ctx context.Context, req *dto.MidtransNotification) error {
	if s.cfg.ServerKey == "" {
		return fmt.Errorf("payment gateway not configured")
	}

	// Midtrans signature = SHA512(order_id + status_code + gross_amount + server_key)
	signatureInput := req.OrderId + req.StatusCode + req.GrossAmount + s.cfg.ServerKey
	expectedSignature := fmt.Sprintf("%x", sha512.Sum512([]byte(signatureInput)))
	if req.SignatureKey != expectedSignature {
		s.log.Warn(paymentModule, "Webhook signature mismatch", map[string]interface{}{
			"order_id": req.OrderId,
		})
		return serverutils.NewUnauthorizedError("Invalid signature")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	sub, err := uow.SubscriptionRepository().FindOne(ctx, specification.ByOrderID{OrderID: req.OrderId})
	if err != nil {
		return err
	}
	if sub == nil {
		return serverutils.NewNotFoundError("Subscription not found")
	}

	var newStatus string
	switch req.TransactionStatus {
	case "capture", "settlement":
		newStatus = entity.SubscriptionActive
	case "deny", "cancel", "expire":
		newStatus = entity.SubscriptionCanceled
	case "pending":
		return nil
	default:
		return nil
	}

	if sub.Status == newStatus {
		// Midtrans retries notifications; repeated delivery is a no-op.
		return nil
	}

	sub.Status = newStatus
	if newStatus == entity.SubscriptionActive {
		now := time.Now()
		end := now.AddDate(0, 1, 0)
		sub.StartAt = &now
		sub.EndAt = &end
	}
	sub.UpdatedAt = time.Now()

	if err := uow.SubscriptionRepository().Update(ctx, sub); err != nil {
		return err
	}

	if newStatus == entity.SubscriptionActive && s.eventPublisher != nil {
		evt := events.New(events.TypePaymentSettled, map[string]interface{}{
			"order_id": sub.OrderId,
			"user_id":  sub.UserId.String(),
		})
		_ = s.eventPublisher.Publish(ctx, evt)
	}

	return nil
}

func (s *paymentService) GetSubscriptionStatus(ctx context.Context, userId uuid.UUID) (*dto.SubscriptionStatusResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	subs, err := uow.SubscriptionRepository().FindAll(ctx,
		specification.OwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: 1, Offset: 0},
	)
	if err != nil {
		return nil, err
	}
	if len(subs) == 0 {
		return nil, serverutils.NewNotFoundError("No subscription found")
	}
	sub := subs[0]

	plan, err := uow.SubscriptionRepository().FindPlan(ctx, specification.ByID{ID: sub.PlanId})
	if err != nil {
		return nil, err
	}
	planName := ""
	if plan != nil {
		planName = plan.Name
	}

	isActive := sub.Status == entity.SubscriptionActive &&
		(sub.EndAt == nil || sub.EndAt.After(time.Now()))

	return &dto.SubscriptionStatusResponse{
		SubscriptionId: sub.Id,
		PlanName:       planName,
		Status:         sub.Status,
		StartAt:        sub.StartAt,
		EndAt:          sub.EndAt,
		IsActive:       isActive,
	}, nil
}
