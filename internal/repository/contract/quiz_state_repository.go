package contract

import (
	"context"

	"github.com/google/uuid"

	"gammanotes-be/internal/entity"
	"gammanotes-be/internal/repository/specification"
)

type QuizStateRepository interface {
	Create(ctx context.Context, state *entity.QuizState) error
	// UpdateVersioned writes the state only if the stored version still matches
	// state.Version, then bumps it. Returns ErrVersionConflict otherwise.
	UpdateVersioned(ctx context.Context, state *entity.QuizState) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.QuizState, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.QuizState, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
