package entity

import (
	"time"

	"github.com/google/uuid"
)

type PageEmbedding struct {
	Id         uuid.UUID
	PageId     uuid.UUID
	UserId     uuid.UUID
	ChunkIndex int
	Document   string
	Embedding  []float32
	CreatedAt  time.Time
}

// PageMatch is a semantic search hit with its cosine distance.
type PageMatch struct {
	PageId   uuid.UUID
	Document string
	Distance float64
}
