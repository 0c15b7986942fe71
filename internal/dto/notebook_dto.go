package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateNotebookRequest struct {
	Title string `json:"title" validate:"required,min=1,max=255"`
}

type CreateNotebookResponse struct {
	Id uuid.UUID `json:"id"`
}

type UpdateNotebookRequest struct {
	Id    uuid.UUID
	Title string `json:"title" validate:"required,min=1,max=255"`
}

type NotebookResponse struct {
	Id        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	PageCount int64     `json:"page_count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
