package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"gammanotes-be/internal/dto"
	"gammanotes-be/internal/entity"
	"gammanotes-be/internal/pkg/logger"
	"gammanotes-be/internal/pkg/serverutils"
	"gammanotes-be/internal/repository/contract"
	"gammanotes-be/internal/repository/specification"
	"gammanotes-be/internal/repository/unitofwork"
	"gammanotes-be/pkg/completion"
	"gammanotes-be/pkg/events"
	pktNats "gammanotes-be/pkg/nats"
	"gammanotes-be/pkg/quizengine"
	"gammanotes-be/pkg/textsplit"
)

const quizModule = "quiz"

type IQuizService interface {
	Generate(ctx context.Context, userId uuid.UUID, req *dto.GenerateQuizRequest) (*dto.QuizDocumentResponse, error)
	Show(ctx context.Context, userId uuid.UUID, quizId uuid.UUID) (*dto.QuizDocumentResponse, error)
	SubmitAnswer(ctx context.Context, userId uuid.UUID, quizId uuid.UUID, req *dto.SubmitAnswerRequest) (*dto.SubmitAnswerResponse, error)
	Complete(ctx context.Context, userId uuid.UUID, quizId uuid.UUID) (*dto.QuizResultsResponse, error)
	Results(ctx context.Context, userId uuid.UUID, quizId uuid.UUID) (*dto.QuizResultsResponse, error)
}

type quizService struct {
	uowFactory      unitofwork.RepositoryFactory
	completions     completion.Provider
	eventPublisher  *pktNats.Publisher
	log             logger.ILogger
	paragraphMaxLen int
	defaultNumQ     int
}

func NewQuizService(
	uowFactory unitofwork.RepositoryFactory,
	completions completion.Provider,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
	paragraphMaxLen int,
	defaultNumQuestions int,
) IQuizService {
	return &quizService{
		uowFactory:      uowFactory,
		completions:     completions,
		eventPublisher:  eventPublisher,
		log:             log,
		paragraphMaxLen: paragraphMaxLen,
		defaultNumQ:     defaultNumQuestions,
	}
}

func (s *quizService) Generate(ctx context.Context, userId uuid.UUID, req *dto.GenerateQuizRequest) (*dto.QuizDocumentResponse, error) {
	numQuestions := req.NumQuestions
	if numQuestions <= 0 {
		numQuestions = s.defaultNumQ
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	material, sourceNotebooks, err := gatherMaterial(ctx, uow.PageRepository(), userId, req.SelectedPages, req.UploadedDocs)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(material) == "" {
		return nil, serverutils.NewBadRequestError("No study material: select at least one page or upload a document")
	}

	// Material is chunked on paragraph boundaries; questions accumulate
	// across chunks until the target count is reached.
	chunks := textsplit.SplitParagraphs(material, s.paragraphMaxLen)
	var title string
	var questions []quizengine.Question
	for _, chunk := range chunks {
		remaining := numQuestions - len(questions)
		if remaining <= 0 {
			break
		}
		quiz, err := s.completions.GenerateQuiz(ctx, chunk, remaining)
		if err != nil {
			s.log.Warn(quizModule, "Quiz generation chunk failed, skipping", map[string]interface{}{
				"error": err.Error(),
			})
			continue
		}
		if title == "" {
			title = quiz.Title
		}
		questions = append(questions, quiz.Questions...)
	}

	if len(questions) == 0 {
		return nil, serverutils.NewUpstreamError("Quiz generation produced no questions")
	}
	if len(questions) > numQuestions {
		questions = questions[:numQuestions]
	}
	if title == "" {
		title = req.Name
	}

	state := &entity.QuizState{
		Id:          uuid.New(),
		UserId:      userId,
		Name:        req.Name,
		Questions:   questions,
		Progress:    *quizengine.NewProgress(),
		SourcePages: req.SelectedPages,
		Version:     1,
		CreatedAt:   time.Now(),
	}
	if len(sourceNotebooks) == 1 {
		state.NotebookId = &sourceNotebooks[0]
	}

	if err := uow.QuizStateRepository().Create(ctx, state); err != nil {
		return nil, err
	}

	return quizToDocument(state, title, sourceNotebooks, req.UploadedDocs), nil
}

func (s *quizService) Show(ctx context.Context, userId uuid.UUID, quizId uuid.UUID) (*dto.QuizDocumentResponse, error) {
	state, err := s.loadOwned(ctx, userId, quizId)
	if err != nil {
		return nil, err
	}
	return quizToDocument(state, state.Name, notebookIds(state), nil), nil
}

func (s *quizService) SubmitAnswer(ctx context.Context, userId uuid.UUID, quizId uuid.UUID, req *dto.SubmitAnswerRequest) (*dto.SubmitAnswerResponse, error) {
	state, err := s.loadOwned(ctx, userId, quizId)
	if err != nil {
		return nil, err
	}

	if state.Progress.Status == quizengine.StatusComplete {
		return nil, serverutils.NewConflictError("Quiz is already complete")
	}
	if req.QuestionIndex < 0 || req.QuestionIndex >= len(state.Questions) {
		return nil, serverutils.NewBadRequestError("Question index out of range")
	}

	question := state.Questions[req.QuestionIndex]
	correct, err := quizengine.JudgeLocal(question, req.Answer)
	if errors.Is(err, quizengine.ErrNeedsJudge) {
		// Short answers go to the completion collaborator for grading. A
		// judging failure leaves the question unanswered.
		correct, err = s.completions.JudgeAnswer(ctx, question.Question, question.CorrectAnswer, req.Answer)
		if err != nil {
			s.log.Warn(quizModule, "Answer judging failed, leaving question unanswered", map[string]interface{}{
				"quiz_id":        quizId.String(),
				"question_index": req.QuestionIndex,
				"error":          err.Error(),
			})
			return nil, serverutils.NewUpstreamError("Answer judging failed")
		}
	} else if err != nil {
		return nil, err
	}

	if err := state.Progress.Submit(req.QuestionIndex, len(state.Questions), req.Answer, correct); err != nil {
		return nil, serverutils.NewBadRequestError(err.Error())
	}

	// Answering the last question does not complete the attempt; the quiz
	// stays in progress so answers can be revised until the explicit finish.
	if err := s.saveVersioned(ctx, state); err != nil {
		return nil, err
	}

	return &dto.SubmitAnswerResponse{
		Correct: correct,
		Score:   state.Progress.Score,
		Status:  state.Progress.Status,
	}, nil
}

func (s *quizService) Complete(ctx context.Context, userId uuid.UUID, quizId uuid.UUID) (*dto.QuizResultsResponse, error) {
	state, err := s.loadOwned(ctx, userId, quizId)
	if err != nil {
		return nil, err
	}

	if state.Progress.Status != quizengine.StatusComplete {
		s.markComplete(ctx, state)
		if err := s.saveVersioned(ctx, state); err != nil {
			return nil, err
		}
	}

	return quizToResults(state), nil
}

func (s *quizService) Results(ctx context.Context, userId uuid.UUID, quizId uuid.UUID) (*dto.QuizResultsResponse, error) {
	state, err := s.loadOwned(ctx, userId, quizId)
	if err != nil {
		return nil, err
	}
	return quizToResults(state), nil
}

func (s *quizService) loadOwned(ctx context.Context, userId uuid.UUID, quizId uuid.UUID) (*entity.QuizState, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	state, err := uow.QuizStateRepository().FindOne(ctx,
		specification.ByID{ID: quizId},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if state == nil {
		return nil, serverutils.NewNotFoundError("Quiz not found")
	}
	return state, nil
}

func (s *quizService) markComplete(ctx context.Context, state *entity.QuizState) {
	state.Progress.Complete()
	now := time.Now()
	state.CompletedAt = &now

	if s.eventPublisher != nil {
		evt := events.New(events.TypeQuizCompleted, map[string]interface{}{
			"quiz_id": state.Id.String(),
			"user_id": state.UserId.String(),
			"score":   state.Progress.Score,
		})
		_ = s.eventPublisher.Publish(ctx, evt)
	}
}

func (s *quizService) saveVersioned(ctx context.Context, state *entity.QuizState) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	err := uow.QuizStateRepository().UpdateVersioned(ctx, state)
	if errors.Is(err, contract.ErrVersionConflict) {
		return serverutils.NewConflictError("Quiz was updated concurrently, reload and retry")
	}
	return err
}

func quizToDocument(state *entity.QuizState, title string, sourceNotebooks []uuid.UUID, uploadedDocs []string) *dto.QuizDocumentResponse {
	if uploadedDocs == nil {
		uploadedDocs = []string{}
	}
	if sourceNotebooks == nil {
		sourceNotebooks = []uuid.UUID{}
	}
	return &dto.QuizDocumentResponse{
		Id:     state.Id,
		UserId: state.UserId,
		Quiz: dto.QuizPayload{
			Title:     title,
			Questions: state.Questions,
		},
		SourceNotebooks: sourceNotebooks,
		UploadedDocs:    uploadedDocs,
		CreatedAt:       state.CreatedAt,
		Name:            state.Name,
	}
}

func quizToResults(state *entity.QuizState) *dto.QuizResultsResponse {
	incorrect := state.Progress.IncorrectIndexes()
	if incorrect == nil {
		incorrect = []int{}
	}
	return &dto.QuizResultsResponse{
		QuizId:           state.Id,
		Name:             state.Name,
		Status:           state.Progress.Status,
		Score:            state.Progress.Score,
		TotalQuestions:   len(state.Questions),
		IncorrectIndexes: incorrect,
		CompletedAt:      state.CompletedAt,
	}
}

func notebookIds(state *entity.QuizState) []uuid.UUID {
	if state.NotebookId == nil {
		return nil
	}
	return []uuid.UUID{*state.NotebookId}
}

// gatherMaterial concatenates the content of the user's selected pages with
// any raw uploaded documents. Pages not owned by the user are skipped.
func gatherMaterial(ctx context.Context, pages contract.PageRepository, userId uuid.UUID, pageIds []uuid.UUID, uploadedDocs []string) (string, []uuid.UUID, error) {
	var parts []string
	var notebooks []uuid.UUID
	seen := make(map[uuid.UUID]bool)

	if len(pageIds) > 0 {
		owned, err := pages.FindAll(ctx,
			specification.ByIDs{IDs: pageIds},
			specification.OwnedBy{UserID: userId},
		)
		if err != nil {
			return "", nil, err
		}
		for _, page := range owned {
			parts = append(parts, page.Title+"\n\n"+page.Content)
			if !seen[page.NotebookId] {
				seen[page.NotebookId] = true
				notebooks = append(notebooks, page.NotebookId)
			}
		}
	}

	parts = append(parts, uploadedDocs...)

	return strings.Join(parts, "\n\n"), notebooks, nil
}
