package implementation

import (
	"context"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"

	"gammanotes-be/internal/entity"
	"gammanotes-be/internal/mapper"
	"gammanotes-be/internal/model"
	"gammanotes-be/internal/repository/contract"
)

type PageEmbeddingRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.PageEmbeddingMapper
}

func NewPageEmbeddingRepository(db *gorm.DB) contract.PageEmbeddingRepository {
	return &PageEmbeddingRepositoryImpl{
		db:     db,
		mapper: mapper.NewPageEmbeddingMapper(),
	}
}

func (r *PageEmbeddingRepositoryImpl) CreateBatch(ctx context.Context, embeddings []*entity.PageEmbedding) error {
	if len(embeddings) == 0 {
		return nil
	}
	models := r.mapper.ToModels(embeddings)
	if err := r.db.WithContext(ctx).Create(models).Error; err != nil {
		return err
	}
	for i, m := range models {
		*embeddings[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

func (r *PageEmbeddingRepositoryImpl) DeleteAllByPageId(ctx context.Context, pageId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("page_id = ?", pageId).Delete(&model.PageEmbedding{}).Error
}

func (r *PageEmbeddingRepositoryImpl) SearchSimilar(ctx context.Context, userId uuid.UUID, query []float32, topK int) ([]*entity.PageMatch, error) {
	if topK <= 0 {
		topK = 5
	}

	type result struct {
		PageId   uuid.UUID
		Document string
		Distance float64
	}
	var results []result

	queryVector := pgvector.NewVector(query)

	err := r.db.WithContext(ctx).
		Table("page_embeddings").
		Select("page_id, document, embedding <=> ? AS distance", queryVector).
		Joins("JOIN pages ON pages.id = page_embeddings.page_id").
		Where("page_embeddings.user_id = ?", userId).
		Where("pages.deleted_at IS NULL").
		Order("distance ASC").
		Limit(topK).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	matches := make([]*entity.PageMatch, len(results))
	for i, res := range results {
		matches[i] = &entity.PageMatch{
			PageId:   res.PageId,
			Document: res.Document,
			Distance: res.Distance,
		}
	}
	return matches, nil
}
