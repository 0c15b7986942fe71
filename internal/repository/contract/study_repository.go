package contract

import (
	"context"

	"github.com/google/uuid"

	"gammanotes-be/internal/entity"
	"gammanotes-be/internal/repository/specification"
)

type StudyCardSetRepository interface {
	Create(ctx context.Context, set *entity.StudyCardSet) error
	Update(ctx context.Context, set *entity.StudyCardSet) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.StudyCardSet, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.StudyCardSet, error)
}

type StudyGuideRepository interface {
	Create(ctx context.Context, guide *entity.StudyGuide) error
	Update(ctx context.Context, guide *entity.StudyGuide) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.StudyGuide, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.StudyGuide, error)
}
