package mapper

import (
	"github.com/pgvector/pgvector-go"

	"gammanotes-be/internal/entity"
	"gammanotes-be/internal/model"
)

type PageEmbeddingMapper struct{}

func NewPageEmbeddingMapper() *PageEmbeddingMapper {
	return &PageEmbeddingMapper{}
}

func (m *PageEmbeddingMapper) ToEntity(e *model.PageEmbedding) *entity.PageEmbedding {
	if e == nil {
		return nil
	}
	return &entity.PageEmbedding{
		Id:         e.Id,
		PageId:     e.PageId,
		UserId:     e.UserId,
		ChunkIndex: e.ChunkIndex,
		Document:   e.Document,
		Embedding:  e.Embedding.Slice(),
		CreatedAt:  e.CreatedAt,
	}
}

func (m *PageEmbeddingMapper) ToModel(e *entity.PageEmbedding) *model.PageEmbedding {
	if e == nil {
		return nil
	}
	return &model.PageEmbedding{
		Id:         e.Id,
		PageId:     e.PageId,
		UserId:     e.UserId,
		ChunkIndex: e.ChunkIndex,
		Document:   e.Document,
		Embedding:  pgvector.NewVector(e.Embedding),
		CreatedAt:  e.CreatedAt,
	}
}

func (m *PageEmbeddingMapper) ToModels(embeddings []*entity.PageEmbedding) []*model.PageEmbedding {
	models := make([]*model.PageEmbedding, len(embeddings))
	for i, e := range embeddings {
		models[i] = m.ToModel(e)
	}
	return models
}
