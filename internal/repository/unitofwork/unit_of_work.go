package unitofwork

import (
	"context"

	"gammanotes-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	NotebookRepository() contract.NotebookRepository
	PageRepository() contract.PageRepository
	MessageRepository() contract.MessageRepository
	QuizStateRepository() contract.QuizStateRepository
	StudyCardSetRepository() contract.StudyCardSetRepository
	StudyGuideRepository() contract.StudyGuideRepository
	PageEmbeddingRepository() contract.PageEmbeddingRepository
	SubscriptionRepository() contract.SubscriptionRepository
}
