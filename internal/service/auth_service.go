package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/big"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"gammanotes-be/internal/dto"
	"gammanotes-be/internal/entity"
	"gammanotes-be/internal/pkg/mailer"
	"gammanotes-be/internal/pkg/serverutils"
	"gammanotes-be/internal/repository/specification"
	"gammanotes-be/internal/repository/unitofwork"
	"gammanotes-be/pkg/events"
	pktNats "gammanotes-be/pkg/nats"
)

type IAuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error)
	VerifyOtp(ctx context.Context, req *dto.VerifyOtpRequest) error
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	ForgotPassword(ctx context.Context, req *dto.ForgotPasswordRequest) error
	ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) error
}

type authService struct {
	uowFactory     unitofwork.RepositoryFactory
	emailService   mailer.IEmailService
	eventPublisher *pktNats.Publisher
}

func NewAuthService(uowFactory unitofwork.RepositoryFactory, emailService mailer.IEmailService, eventPublisher *pktNats.Publisher) IAuthService {
	return &authService{
		uowFactory:     uowFactory,
		emailService:   emailService,
		eventPublisher: eventPublisher,
	}
}

func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n), nil
}

func hashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, _ := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if existing != nil {
		return nil, serverutils.NewConflictError("Email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	hashStr := string(hash)

	otpCode, err := generateOTP()
	if err != nil {
		return nil, err
	}
	otpHash := hashToken(otpCode)
	otpExpiry := time.Now().Add(15 * time.Minute)

	user := &entity.User{
		Id:            uuid.New(),
		Email:         req.Email,
		FullName:      req.FullName,
		PasswordHash:  &hashStr,
		Role:          entity.RoleUser,
		Status:        entity.UserStatusPending,
		EmailVerified: false,
		OtpHash:       &otpHash,
		OtpExpiresAt:  &otpExpiry,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	if err := uow.UserRepository().Create(ctx, user); err != nil {
		return nil, err
	}

	go func() {
		if emailErr := s.emailService.SendOTP(user.Email, otpCode); emailErr != nil {
			fmt.Printf("Error sending registration email: %v\n", emailErr)
		}
	}()

	if s.eventPublisher != nil {
		evt := events.New(events.TypeUserRegistered, map[string]interface{}{
			"user_id": user.Id.String(),
			"email":   user.Email,
		})
		_ = s.eventPublisher.Publish(ctx, evt)
	}

	return &dto.RegisterResponse{Id: user.Id, Email: user.Email}, nil
}

func (s *authService) VerifyOtp(ctx context.Context, req *dto.VerifyOtpRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil || user == nil {
		return serverutils.NewNotFoundError("User not found")
	}

	if user.Status == entity.UserStatusActive {
		return nil
	}

	if user.OtpHash == nil || user.OtpExpiresAt == nil {
		return serverutils.NewBadRequestError("Invalid OTP code")
	}
	if time.Now().After(*user.OtpExpiresAt) {
		return serverutils.NewBadRequestError("OTP code expired")
	}
	if hashToken(req.Otp) != *user.OtpHash {
		return serverutils.NewBadRequestError("Invalid OTP code")
	}

	user.Status = entity.UserStatusActive
	user.EmailVerified = true
	user.OtpHash = nil
	user.OtpExpiresAt = nil
	user.UpdatedAt = time.Now()

	return uow.UserRepository().Update(ctx, user)
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil || user == nil {
		return nil, serverutils.NewUnauthorizedError("Invalid credentials")
	}

	if user.PasswordHash == nil {
		return nil, serverutils.NewUnauthorizedError("Account registered via OAuth")
	}

	if user.Status == entity.UserStatusPending || !user.EmailVerified {
		return nil, serverutils.NewUnauthorizedError("Email not verified. Check your inbox for the OTP code")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, serverutils.NewUnauthorizedError("Invalid credentials")
	}

	return issueToken(user)
}

func (s *authService) ForgotPassword(ctx context.Context, req *dto.ForgotPasswordRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return err
	}
	if user == nil {
		// Do not reveal whether the address is registered.
		return nil
	}

	rawToken := uuid.New().String()
	tokenHash := hashToken(rawToken)
	expiry := time.Now().Add(1 * time.Hour)

	user.ResetTokenHash = &tokenHash
	user.ResetExpiresAt = &expiry
	user.UpdatedAt = time.Now()

	if err := uow.UserRepository().Update(ctx, user); err != nil {
		return err
	}

	go func() {
		if emailErr := s.emailService.SendResetToken(user.Email, rawToken); emailErr != nil {
			fmt.Printf("Error sending reset email: %v\n", emailErr)
		}
	}()

	return nil
}

func (s *authService) ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	tokenHash := hashToken(req.Token)
	user, err := uow.UserRepository().FindOne(ctx, specification.FilterBy{Field: "reset_token_hash", Value: tokenHash})
	if err != nil {
		return err
	}
	if user == nil || user.ResetExpiresAt == nil || time.Now().After(*user.ResetExpiresAt) {
		return serverutils.NewBadRequestError("Invalid or expired reset token")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	hashStr := string(hash)

	user.PasswordHash = &hashStr
	user.ResetTokenHash = nil
	user.ResetExpiresAt = nil
	user.UpdatedAt = time.Now()

	return uow.UserRepository().Update(ctx, user)
}

func issueToken(user *entity.User) (*dto.TokenResponse, error) {
	expiry := time.Now().Add(24 * time.Hour)

	claims := jwt.MapClaims{
		"user_id": user.Id.String(),
		"role":    user.Role,
		"exp":     expiry.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "default_secret"
	}
	signedToken, err := token.SignedString([]byte(secret))
	if err != nil {
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken: signedToken,
		ExpiresAt:   expiry,
	}, nil
}
