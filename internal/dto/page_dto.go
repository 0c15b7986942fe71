package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreatePageRequest struct {
	NotebookId uuid.UUID `json:"notebook_id" validate:"required"`
	Title      string    `json:"title" validate:"required,min=1,max=255"`
	Content    string    `json:"content"`
}

type CreatePageResponse struct {
	Id uuid.UUID `json:"id"`
}

type UpdatePageRequest struct {
	Id      uuid.UUID
	Title   string `json:"title" validate:"required,min=1,max=255"`
	Content string `json:"content"`
	IsOpen  *bool  `json:"is_open"`
	Version int    `json:"version" validate:"required,min=1"`
}

type PageResponse struct {
	Id         uuid.UUID `json:"id"`
	NotebookId uuid.UUID `json:"notebook_id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	Position   int       `json:"position"`
	IsOpen     bool      `json:"is_open"`
	Version    int       `json:"version"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type SearchPagesRequest struct {
	Query string `json:"query" validate:"required,min=2"`
	TopK  int    `json:"top_k" validate:"omitempty,min=1,max=50"`
}

type PageSearchHit struct {
	PageId   uuid.UUID `json:"page_id"`
	Snippet  string    `json:"snippet"`
	Distance float64   `json:"distance"`
}
