package entity

import (
	"time"

	"github.com/google/uuid"
)

type Page struct {
	Id         uuid.UUID
	NotebookId uuid.UUID
	UserId     uuid.UUID
	Title      string
	Content    string
	Position   int
	IsOpen     bool
	Version    int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
