package contract

import (
	"context"

	"github.com/google/uuid"

	"gammanotes-be/internal/entity"
	"gammanotes-be/internal/repository/specification"
)

type PageRepository interface {
	Create(ctx context.Context, page *entity.Page) error
	// UpdateVersioned writes the page only if the stored version still matches
	// page.Version, then bumps it. Returns ErrVersionConflict otherwise.
	UpdateVersioned(ctx context.Context, page *entity.Page) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Page, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Page, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	MaxPosition(ctx context.Context, notebookId uuid.UUID) (int, error)
}
