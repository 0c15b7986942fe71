package dto

import (
	"time"

	"github.com/google/uuid"

	"gammanotes-be/pkg/completion"
)

type GenerateStudyCardsRequest struct {
	SelectedPages []uuid.UUID `json:"selectedPages"`
	SetName       string      `json:"setName" validate:"required,min=1"`
	NumCards      int         `json:"numCards" validate:"omitempty,min=1,max=100"`
	UploadedDocs  []string    `json:"uploadedDocs"`
}

type StudyCardsResponse struct {
	Cards   []completion.Card `json:"cards"`
	Success bool              `json:"success"`
}

type GenerateStudyGuideRequest struct {
	SelectedPages []uuid.UUID `json:"selectedPages"`
	Name          string      `json:"name" validate:"required,min=1"`
	UploadedDocs  []string    `json:"uploadedDocs"`
}

type StudyGuideResponse struct {
	Id       uuid.UUID         `json:"id"`
	Name     string            `json:"name"`
	Sections []completion.Card `json:"sections"`
	Success  bool              `json:"success"`
}

type StudySetSummary struct {
	Id        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CardCount int       `json:"card_count"`
	CreatedAt time.Time `json:"created_at"`
}
