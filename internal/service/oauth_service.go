package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"gammanotes-be/internal/config"
	"gammanotes-be/internal/dto"
	"gammanotes-be/internal/entity"
	"gammanotes-be/internal/pkg/serverutils"
	"gammanotes-be/internal/repository/specification"
	"gammanotes-be/internal/repository/unitofwork"
)

type IOAuthService interface {
	GetLoginURL(provider string) (string, error)
	HandleCallback(ctx context.Context, provider string, code string) (*dto.TokenResponse, error)
}

type oauthService struct {
	uowFactory unitofwork.RepositoryFactory
	googleConf *oauth2.Config
}

func NewOAuthService(uowFactory unitofwork.RepositoryFactory, cfg *config.OAuthConfig) IOAuthService {
	conf := &oauth2.Config{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		RedirectURL:  cfg.GoogleRedirectURL,
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}

	return &oauthService{
		uowFactory: uowFactory,
		googleConf: conf,
	}
}

func (s *oauthService) GetLoginURL(provider string) (string, error) {
	if provider != "google" {
		return "", serverutils.NewBadRequestError("Unsupported OAuth provider")
	}

	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	state := base64.URLEncoding.EncodeToString(b)

	return s.googleConf.AuthCodeURL(state), nil
}

func (s *oauthService) HandleCallback(ctx context.Context, provider string, code string) (*dto.TokenResponse, error) {
	if provider != "google" {
		return nil, serverutils.NewBadRequestError("Unsupported OAuth provider")
	}

	token, err := s.googleConf.Exchange(ctx, code)
	if err != nil {
		return nil, serverutils.NewUnauthorizedError("OAuth code exchange failed")
	}

	resp, err := http.Get("https://www.googleapis.com/oauth2/v2/userinfo?access_token=" + token.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("failed getting user info: %w", err)
	}
	defer resp.Body.Close()

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed reading user info: %w", err)
	}

	var googleUser struct {
		Id    string `json:"id"`
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := json.Unmarshal(content, &googleUser); err != nil {
		return nil, fmt.Errorf("failed parsing user info: %w", err)
	}
	if googleUser.Email == "" {
		return nil, serverutils.NewUpstreamError("Google returned no email address")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByGoogleID{GoogleID: googleUser.Id})
	if err != nil {
		return nil, err
	}

	if user == nil {
		// Link by email if the account already exists, otherwise create one.
		user, err = uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: googleUser.Email})
		if err != nil {
			return nil, err
		}
		if user != nil {
			user.GoogleId = &googleUser.Id
			user.EmailVerified = true
			user.Status = entity.UserStatusActive
			user.UpdatedAt = time.Now()
			if err := uow.UserRepository().Update(ctx, user); err != nil {
				return nil, err
			}
		} else {
			user = &entity.User{
				Id:            uuid.New(),
				Email:         googleUser.Email,
				FullName:      googleUser.Name,
				GoogleId:      &googleUser.Id,
				Role:          entity.RoleUser,
				Status:        entity.UserStatusActive,
				EmailVerified: true,
				CreatedAt:     time.Now(),
				UpdatedAt:     time.Now(),
			}
			if err := uow.UserRepository().Create(ctx, user); err != nil {
				return nil, err
			}
		}
	}

	return issueToken(user)
}
