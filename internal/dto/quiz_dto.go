package dto

import (
	"time"

	"github.com/google/uuid"

	"gammanotes-be/pkg/quizengine"
)

// GenerateQuizRequest is parsed from the "message" form field, which carries
// a JSON string.
type GenerateQuizRequest struct {
	Name          string      `json:"name" validate:"required,min=1"`
	SelectedPages []uuid.UUID `json:"selectedPages"`
	UploadedDocs  []string    `json:"uploadedDocs"`
	NumQuestions  int         `json:"numQuestions" validate:"omitempty,min=1,max=50"`
}

type QuizPayload struct {
	Title     string                `json:"title"`
	Questions []quizengine.Question `json:"questions"`
}

// QuizDocumentResponse is the quiz document shape returned by POST /api/quiz.
type QuizDocumentResponse struct {
	Id              uuid.UUID   `json:"id"`
	UserId          uuid.UUID   `json:"userId"`
	Quiz            QuizPayload `json:"quiz"`
	SourceNotebooks []uuid.UUID `json:"sourceNotebooks"`
	UploadedDocs    []string    `json:"uploadedDocs"`
	CreatedAt       time.Time   `json:"createdAt"`
	Name            string      `json:"name"`
}

type SubmitAnswerRequest struct {
	QuestionIndex int    `json:"question_index" validate:"min=0"`
	Answer        string `json:"answer" validate:"required"`
}

type SubmitAnswerResponse struct {
	Correct bool   `json:"correct"`
	Score   int    `json:"score"`
	Status  string `json:"status"`
}

type QuizResultsResponse struct {
	QuizId           uuid.UUID  `json:"quiz_id"`
	Name             string     `json:"name"`
	Status           string     `json:"status"`
	Score            int        `json:"score"`
	TotalQuestions   int        `json:"total_questions"`
	IncorrectIndexes []int      `json:"incorrect_indexes"`
	CompletedAt      *time.Time `json:"completed_at"`
}
