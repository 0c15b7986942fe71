package dto

import (
	"github.com/google/uuid"

	"gammanotes-be/pkg/completion"
)

// ChatRequest carries the multipart form fields; files are read from the
// multipart payload directly by the controller.
type ChatRequest struct {
	Message  string     `json:"message"`
	Language string     `json:"language"`
	PageId   *uuid.UUID `json:"page_id"`
}

type ChatResponse struct {
	Replies [][]completion.Section `json:"replies"`
}
