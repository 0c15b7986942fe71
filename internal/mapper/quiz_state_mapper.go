package mapper

import (
	"encoding/json"

	"github.com/google/uuid"

	"gammanotes-be/internal/entity"
	"gammanotes-be/internal/model"
	"gammanotes-be/pkg/quizengine"
)

type QuizStateMapper struct{}

func NewQuizStateMapper() *QuizStateMapper {
	return &QuizStateMapper{}
}

func (m *QuizStateMapper) ToEntity(q *model.QuizState) *entity.QuizState {
	if q == nil {
		return nil
	}

	var questions []quizengine.Question
	if len(q.Questions) > 0 {
		_ = json.Unmarshal(q.Questions, &questions)
	}
	answers := map[int]string{}
	if len(q.Answers) > 0 {
		_ = json.Unmarshal(q.Answers, &answers)
	}
	evaluations := map[int]bool{}
	if len(q.Evaluations) > 0 {
		_ = json.Unmarshal(q.Evaluations, &evaluations)
	}
	var sourcePages []uuid.UUID
	if len(q.SourcePages) > 0 {
		_ = json.Unmarshal(q.SourcePages, &sourcePages)
	}

	return &entity.QuizState{
		Id:         q.Id,
		UserId:     q.UserId,
		NotebookId: q.NotebookId,
		Name:       q.Name,
		Questions:  questions,
		Progress: quizengine.Progress{
			Status:               q.Status,
			CurrentQuestionIndex: q.CurrentQuestionIndex,
			Answers:              answers,
			Evaluations:          evaluations,
			Score:                q.Score,
		},
		SourcePages: sourcePages,
		CompletedAt: q.CompletedAt,
		Version:     q.Version,
		CreatedAt:   q.CreatedAt,
		UpdatedAt:   q.UpdatedAt,
	}
}

func (m *QuizStateMapper) ToModel(q *entity.QuizState) *model.QuizState {
	if q == nil {
		return nil
	}

	questions, _ := json.Marshal(q.Questions)
	answers, _ := json.Marshal(q.Progress.Answers)
	evaluations, _ := json.Marshal(q.Progress.Evaluations)
	sourcePages, _ := json.Marshal(q.SourcePages)

	return &model.QuizState{
		Id:                   q.Id,
		UserId:               q.UserId,
		NotebookId:           q.NotebookId,
		Name:                 q.Name,
		Questions:            questions,
		Answers:              answers,
		Evaluations:          evaluations,
		Status:               q.Progress.Status,
		CurrentQuestionIndex: q.Progress.CurrentQuestionIndex,
		Score:                q.Progress.Score,
		SourcePages:          sourcePages,
		CompletedAt:          q.CompletedAt,
		Version:              q.Version,
		CreatedAt:            q.CreatedAt,
		UpdatedAt:            q.UpdatedAt,
	}
}

func (m *QuizStateMapper) ToEntities(states []*model.QuizState) []*entity.QuizState {
	entities := make([]*entity.QuizState, len(states))
	for i, q := range states {
		entities[i] = m.ToEntity(q)
	}
	return entities
}
