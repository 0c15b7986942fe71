package integration

import (
	"context"
	"log"
	"os"
	"testing"

	"gammanotes-be/internal/entity"
	"gammanotes-be/internal/repository/specification"
	"gammanotes-be/internal/repository/unitofwork"
	"gammanotes-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormConnection(t *testing.T) {
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.UserRepository())
	assert.NotNil(t, uow.NotebookRepository())
	assert.NotNil(t, uow.PageRepository())
	assert.NotNil(t, uow.SubscriptionRepository())

	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)

	t.Run("Check User Repository", func(t *testing.T) {
		count, err := uow.UserRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("User count: %d", count)
	})

	t.Run("Transactional Notebook And Page Rollback", func(t *testing.T) {
		ctx := context.Background()
		uow := uowFactory.NewUnitOfWork(ctx)
		require.NoError(t, uow.Begin(ctx))

		user := &entity.User{
			Id:       uuid.New(),
			Email:    "test-integration-" + uuid.New().String() + "@example.com",
			FullName: "Integration Test User",
			Role:     entity.RoleUser,
			Status:   entity.UserStatusActive,
		}
		require.NoError(t, uow.UserRepository().Create(ctx, user))

		notebook := &entity.Notebook{
			Id:     uuid.New(),
			UserId: user.Id,
			Title:  "Integration Notebook",
		}
		require.NoError(t, uow.NotebookRepository().Create(ctx, notebook))

		page := &entity.Page{
			Id:         uuid.New(),
			NotebookId: notebook.Id,
			UserId:     user.Id,
			Title:      "Integration Page",
			Content:    "body",
			Version:    1,
		}
		require.NoError(t, uow.PageRepository().Create(ctx, page))

		// Visible inside the transaction.
		found, err := uow.PageRepository().FindOne(ctx, specification.ByID{ID: page.Id})
		require.NoError(t, err)
		require.NotNil(t, found)

		require.NoError(t, uow.Rollback())

		// Gone after rollback.
		check := uowFactory.NewUnitOfWork(ctx)
		found, err = check.PageRepository().FindOne(ctx, specification.ByID{ID: page.Id})
		require.NoError(t, err)
		assert.Nil(t, found)
	})
}
