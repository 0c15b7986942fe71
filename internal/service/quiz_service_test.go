package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gammanotes-be/internal/dto"
	"gammanotes-be/internal/entity"
	"gammanotes-be/internal/pkg/serverutils"
	"gammanotes-be/internal/repository/contract"
	"gammanotes-be/internal/repository/specification"
	"gammanotes-be/internal/repository/unitofwork"
	"gammanotes-be/pkg/quizengine"
)

type fakeQuizRepo struct {
	state   *entity.QuizState
	updates int
}

func (r *fakeQuizRepo) Create(ctx context.Context, state *entity.QuizState) error { return nil }

func (r *fakeQuizRepo) UpdateVersioned(ctx context.Context, state *entity.QuizState) error {
	r.updates++
	r.state = state
	return nil
}

func (r *fakeQuizRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func (r *fakeQuizRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.QuizState, error) {
	return r.state, nil
}

func (r *fakeQuizRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.QuizState, error) {
	return nil, nil
}

func (r *fakeQuizRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return 0, nil
}

type fakeQuizUow struct {
	quizzes *fakeQuizRepo
}

func (u *fakeQuizUow) Begin(ctx context.Context) error { return nil }
func (u *fakeQuizUow) Commit() error                   { return nil }
func (u *fakeQuizUow) Rollback() error                 { return nil }

func (u *fakeQuizUow) UserRepository() contract.UserRepository                   { return nil }
func (u *fakeQuizUow) NotebookRepository() contract.NotebookRepository           { return nil }
func (u *fakeQuizUow) PageRepository() contract.PageRepository                   { return nil }
func (u *fakeQuizUow) MessageRepository() contract.MessageRepository             { return nil }
func (u *fakeQuizUow) QuizStateRepository() contract.QuizStateRepository         { return u.quizzes }
func (u *fakeQuizUow) StudyCardSetRepository() contract.StudyCardSetRepository   { return nil }
func (u *fakeQuizUow) StudyGuideRepository() contract.StudyGuideRepository       { return nil }
func (u *fakeQuizUow) PageEmbeddingRepository() contract.PageEmbeddingRepository { return nil }
func (u *fakeQuizUow) SubscriptionRepository() contract.SubscriptionRepository   { return nil }

type fakeQuizUowFactory struct {
	uow *fakeQuizUow
}

func (f *fakeQuizUowFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.uow
}

func oneQuestionQuiz(userId uuid.UUID, questionType string) *entity.QuizState {
	return &entity.QuizState{
		Id:     uuid.New(),
		UserId: userId,
		Name:   "Biology",
		Questions: []quizengine.Question{
			{
				Type:          questionType,
				Question:      "Is water wet?",
				Options:       []string{"true", "false"},
				CorrectAnswer: "true",
			},
		},
		Progress: *quizengine.NewProgress(),
		Version:  1,
	}
}

func newQuizServiceUnderTest(repo *fakeQuizRepo, completions *fakeCompletion) IQuizService {
	factory := &fakeQuizUowFactory{uow: &fakeQuizUow{quizzes: repo}}
	return NewQuizService(factory, completions, nil, nopLogger{}, 12000, 10)
}

func TestQuizService_ReanswerAfterAllQuestionsAnswered(t *testing.T) {
	userId := uuid.New()
	repo := &fakeQuizRepo{state: oneQuestionQuiz(userId, quizengine.TypeTrueFalse)}
	svc := newQuizServiceUnderTest(repo, &fakeCompletion{})

	first, err := svc.SubmitAnswer(context.Background(), userId, repo.state.Id, &dto.SubmitAnswerRequest{
		QuestionIndex: 0,
		Answer:        "false",
	})
	require.NoError(t, err)
	assert.False(t, first.Correct)
	assert.Equal(t, 0, first.Score)
	assert.Equal(t, quizengine.StatusInProgress, first.Status)

	// Every question is answered, but the attempt stays open: re-answering
	// overwrites and the score is recomputed.
	second, err := svc.SubmitAnswer(context.Background(), userId, repo.state.Id, &dto.SubmitAnswerRequest{
		QuestionIndex: 0,
		Answer:        "true",
	})
	require.NoError(t, err)
	assert.True(t, second.Correct)
	assert.Equal(t, 1, second.Score)
	assert.Equal(t, quizengine.StatusInProgress, second.Status)
}

func TestQuizService_CompleteIsExplicitAndTerminal(t *testing.T) {
	userId := uuid.New()
	repo := &fakeQuizRepo{state: oneQuestionQuiz(userId, quizengine.TypeTrueFalse)}
	svc := newQuizServiceUnderTest(repo, &fakeCompletion{})

	_, err := svc.SubmitAnswer(context.Background(), userId, repo.state.Id, &dto.SubmitAnswerRequest{
		QuestionIndex: 0,
		Answer:        "true",
	})
	require.NoError(t, err)
	assert.Equal(t, quizengine.StatusInProgress, repo.state.Progress.Status)

	results, err := svc.Complete(context.Background(), userId, repo.state.Id)
	require.NoError(t, err)
	assert.Equal(t, quizengine.StatusComplete, results.Status)

	_, err = svc.SubmitAnswer(context.Background(), userId, repo.state.Id, &dto.SubmitAnswerRequest{
		QuestionIndex: 0,
		Answer:        "false",
	})
	var appErr *serverutils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 409, appErr.Status)
}

func TestQuizService_JudgeFailureLeavesQuestionUnanswered(t *testing.T) {
	userId := uuid.New()
	repo := &fakeQuizRepo{state: oneQuestionQuiz(userId, quizengine.TypeShortAnswer)}
	// fakeCompletion.JudgeAnswer always errors.
	svc := newQuizServiceUnderTest(repo, &fakeCompletion{})

	_, err := svc.SubmitAnswer(context.Background(), userId, repo.state.Id, &dto.SubmitAnswerRequest{
		QuestionIndex: 0,
		Answer:        "because it is",
	})

	var appErr *serverutils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 502, appErr.Status)
	assert.Empty(t, repo.state.Progress.Answers)
	assert.Zero(t, repo.updates)
}
