package entity

import (
	"time"

	"github.com/google/uuid"

	"gammanotes-be/pkg/completion"
)

type StudyCardSet struct {
	Id         uuid.UUID
	UserId     uuid.UUID
	NotebookId *uuid.UUID
	Name       string
	Cards      []completion.Card
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type StudyGuide struct {
	Id         uuid.UUID
	UserId     uuid.UUID
	NotebookId *uuid.UUID
	Name       string
	Sections   []completion.Card
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
