package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

type PageEmbedding struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PageId     uuid.UUID `gorm:"type:uuid;not null;index"`
	UserId     uuid.UUID `gorm:"type:uuid;not null;index"`
	ChunkIndex int       `gorm:"not null;default:0"`
	Document   string    `gorm:"type:text;not null"`
	Embedding  pgvector.Vector `gorm:"type:vector(1536)"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

func (PageEmbedding) TableName() string {
	return "page_embeddings"
}
