package entity

import (
	"time"

	"github.com/google/uuid"

	"gammanotes-be/pkg/completion"
)

const (
	MessageTagUser      = "user"
	MessageTagAssistant = "assistant"
	MessageTagSystem    = "system"
)

type Message struct {
	Id        uuid.UUID
	PageId    uuid.UUID
	UserId    uuid.UUID
	Tag       string
	Text      string
	Sections  []completion.Section
	FileRefs  []string
	Position  int
	CreatedAt time.Time
}
