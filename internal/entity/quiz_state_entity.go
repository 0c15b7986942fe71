package entity

import (
	"time"

	"github.com/google/uuid"

	"gammanotes-be/pkg/quizengine"
)

type QuizState struct {
	Id          uuid.UUID
	UserId      uuid.UUID
	NotebookId  *uuid.UUID
	Name        string
	Questions   []quizengine.Question
	Progress    quizengine.Progress
	SourcePages []uuid.UUID
	CompletedAt *time.Time
	Version     int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
