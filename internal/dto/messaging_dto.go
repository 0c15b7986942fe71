package dto

import "github.com/google/uuid"

// PublishEmbedPageMessage asks the consumer to (re)build embeddings for a page.
type PublishEmbedPageMessage struct {
	PageId uuid.UUID `json:"page_id"`
}
