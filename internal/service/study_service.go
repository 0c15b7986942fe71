package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"gammanotes-be/internal/dto"
	"gammanotes-be/internal/entity"
	"gammanotes-be/internal/pkg/logger"
	"gammanotes-be/internal/pkg/serverutils"
	"gammanotes-be/internal/repository/specification"
	"gammanotes-be/internal/repository/unitofwork"
	"gammanotes-be/pkg/completion"
	"gammanotes-be/pkg/textsplit"
)

const studyModule = "study"

const defaultNumCards = 20

type IStudyService interface {
	GenerateCards(ctx context.Context, userId uuid.UUID, req *dto.GenerateStudyCardsRequest) (*dto.StudyCardsResponse, error)
	GenerateGuide(ctx context.Context, userId uuid.UUID, req *dto.GenerateStudyGuideRequest) (*dto.StudyGuideResponse, error)
	ListCardSets(ctx context.Context, userId uuid.UUID) ([]*dto.StudySetSummary, error)
	ShowCardSet(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.StudyCardsResponse, error)
	ShowGuide(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.StudyGuideResponse, error)
}

type studyService struct {
	uowFactory      unitofwork.RepositoryFactory
	completions     completion.Provider
	log             logger.ILogger
	paragraphMaxLen int
}

func NewStudyService(
	uowFactory unitofwork.RepositoryFactory,
	completions completion.Provider,
	log logger.ILogger,
	paragraphMaxLen int,
) IStudyService {
	return &studyService{
		uowFactory:      uowFactory,
		completions:     completions,
		log:             log,
		paragraphMaxLen: paragraphMaxLen,
	}
}

func (s *studyService) GenerateCards(ctx context.Context, userId uuid.UUID, req *dto.GenerateStudyCardsRequest) (*dto.StudyCardsResponse, error) {
	numCards := req.NumCards
	if numCards <= 0 {
		numCards = defaultNumCards
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	material, sourceNotebooks, err := gatherMaterial(ctx, uow.PageRepository(), userId, req.SelectedPages, req.UploadedDocs)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(material) == "" {
		return nil, serverutils.NewBadRequestError("No study material: select at least one page or upload a document")
	}

	chunks := textsplit.SplitParagraphs(material, s.paragraphMaxLen)
	var cards []completion.Card
	for _, chunk := range chunks {
		remaining := numCards - len(cards)
		if remaining <= 0 {
			break
		}
		generated, err := s.completions.GenerateCards(ctx, chunk, remaining)
		if err != nil {
			s.log.Warn(studyModule, "Card generation chunk failed, skipping", map[string]interface{}{
				"error": err.Error(),
			})
			continue
		}
		cards = append(cards, generated...)
	}

	if len(cards) == 0 {
		return nil, serverutils.NewUpstreamError("Card generation produced no cards")
	}
	if len(cards) > numCards {
		cards = cards[:numCards]
	}

	set := &entity.StudyCardSet{
		Id:        uuid.New(),
		UserId:    userId,
		Name:      req.SetName,
		Cards:     cards,
		CreatedAt: time.Now(),
	}
	if len(sourceNotebooks) == 1 {
		set.NotebookId = &sourceNotebooks[0]
	}

	if err := uow.StudyCardSetRepository().Create(ctx, set); err != nil {
		return nil, err
	}

	return &dto.StudyCardsResponse{Cards: set.Cards, Success: true}, nil
}

func (s *studyService) GenerateGuide(ctx context.Context, userId uuid.UUID, req *dto.GenerateStudyGuideRequest) (*dto.StudyGuideResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	material, sourceNotebooks, err := gatherMaterial(ctx, uow.PageRepository(), userId, req.SelectedPages, req.UploadedDocs)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(material) == "" {
		return nil, serverutils.NewBadRequestError("No study material: select at least one page or upload a document")
	}

	chunks := textsplit.SplitParagraphs(material, s.paragraphMaxLen)
	var sections []completion.Card
	for _, chunk := range chunks {
		generated, err := s.completions.GenerateGuide(ctx, chunk)
		if err != nil {
			s.log.Warn(studyModule, "Guide generation chunk failed, skipping", map[string]interface{}{
				"error": err.Error(),
			})
			continue
		}
		sections = append(sections, generated...)
	}

	if len(sections) == 0 {
		return nil, serverutils.NewUpstreamError("Guide generation produced no sections")
	}

	guide := &entity.StudyGuide{
		Id:        uuid.New(),
		UserId:    userId,
		Name:      req.Name,
		Sections:  sections,
		CreatedAt: time.Now(),
	}
	if len(sourceNotebooks) == 1 {
		guide.NotebookId = &sourceNotebooks[0]
	}

	if err := uow.StudyGuideRepository().Create(ctx, guide); err != nil {
		return nil, err
	}

	return &dto.StudyGuideResponse{
		Id:       guide.Id,
		Name:     guide.Name,
		Sections: guide.Sections,
		Success:  true,
	}, nil
}

func (s *studyService) ListCardSets(ctx context.Context, userId uuid.UUID) ([]*dto.StudySetSummary, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	sets, err := uow.StudyCardSetRepository().FindAll(ctx,
		specification.OwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.StudySetSummary, 0, len(sets))
	for _, set := range sets {
		result = append(result, &dto.StudySetSummary{
			Id:        set.Id,
			Name:      set.Name,
			CardCount: len(set.Cards),
			CreatedAt: set.CreatedAt,
		})
	}
	return result, nil
}

func (s *studyService) ShowCardSet(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.StudyCardsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	set, err := uow.StudyCardSetRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if set == nil {
		return nil, serverutils.NewNotFoundError("Card set not found")
	}

	return &dto.StudyCardsResponse{Cards: set.Cards, Success: true}, nil
}

func (s *studyService) ShowGuide(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.StudyGuideResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	guide, err := uow.StudyGuideRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if guide == nil {
		return nil, serverutils.NewNotFoundError("Study guide not found")
	}

	return &dto.StudyGuideResponse{
		Id:       guide.Id,
		Name:     guide.Name,
		Sections: guide.Sections,
		Success:  true,
	}, nil
}
