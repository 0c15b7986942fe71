package contract

import (
	"context"

	"github.com/google/uuid"

	"gammanotes-be/internal/entity"
)

type PageEmbeddingRepository interface {
	CreateBatch(ctx context.Context, embeddings []*entity.PageEmbedding) error
	DeleteAllByPageId(ctx context.Context, pageId uuid.UUID) error
	// SearchSimilar returns the top K chunks owned by the user ordered by
	// cosine distance to the query vector.
	SearchSimilar(ctx context.Context, userId uuid.UUID, query []float32, topK int) ([]*entity.PageMatch, error)
}
