package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"gammanotes-be/internal/dto"
	"gammanotes-be/internal/entity"
	"gammanotes-be/internal/pkg/serverutils"
	"gammanotes-be/internal/repository/specification"
	"gammanotes-be/internal/repository/unitofwork"
	"gammanotes-be/pkg/embedding"
	"gammanotes-be/pkg/events"
	pktNats "gammanotes-be/pkg/nats"
)

type IPageService interface {
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreatePageRequest) (*dto.CreatePageResponse, error)
	Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.PageResponse, error)
	ListByNotebook(ctx context.Context, userId uuid.UUID, notebookId uuid.UUID) ([]*dto.PageResponse, error)
	Update(ctx context.Context, userId uuid.UUID, req *dto.UpdatePageRequest) (*dto.PageResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
	Search(ctx context.Context, userId uuid.UUID, req *dto.SearchPagesRequest) ([]*dto.PageSearchHit, error)
}

type pageService struct {
	uowFactory        unitofwork.RepositoryFactory
	publisherService  IPublisherService
	embeddingProvider embedding.Provider
	eventPublisher    *pktNats.Publisher
}

func NewPageService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	embeddingProvider embedding.Provider,
	eventPublisher *pktNats.Publisher,
) IPageService {
	return &pageService{
		uowFactory:        uowFactory,
		publisherService:  publisherService,
		embeddingProvider: embeddingProvider,
		eventPublisher:    eventPublisher,
	}
}

func (c *pageService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreatePageRequest) (*dto.CreatePageResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	notebook, err := uow.NotebookRepository().FindOne(ctx,
		specification.ByID{ID: req.NotebookId},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if notebook == nil {
		return nil, serverutils.NewNotFoundError("Notebook not found")
	}

	maxPos, err := uow.PageRepository().MaxPosition(ctx, req.NotebookId)
	if err != nil {
		return nil, err
	}

	page := entity.Page{
		Id:         uuid.New(),
		NotebookId: req.NotebookId,
		UserId:     userId,
		Title:      req.Title,
		Content:    req.Content,
		Position:   maxPos + 1,
		Version:    1,
		CreatedAt:  time.Now(),
	}

	if err := uow.PageRepository().Create(ctx, &page); err != nil {
		return nil, err
	}

	c.requestEmbedding(ctx, page.Id)
	c.publishUpdated(ctx, &page)

	return &dto.CreatePageResponse{Id: page.Id}, nil
}

func (c *pageService) Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.PageResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	page, err := uow.PageRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if page == nil {
		return nil, serverutils.NewNotFoundError("Page not found")
	}

	return pageToResponse(page), nil
}

func (c *pageService) ListByNotebook(ctx context.Context, userId uuid.UUID, notebookId uuid.UUID) ([]*dto.PageResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	pages, err := uow.PageRepository().FindAll(ctx,
		specification.ByNotebookID{NotebookID: notebookId},
		specification.OwnedBy{UserID: userId},
		specification.OrderBy{Field: "position"},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.PageResponse, 0, len(pages))
	for _, page := range pages {
		result = append(result, pageToResponse(page))
	}
	return result, nil
}

func (c *pageService) Update(ctx context.Context, userId uuid.UUID, req *dto.UpdatePageRequest) (*dto.PageResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	page, err := uow.PageRepository().FindOne(ctx,
		specification.ByID{ID: req.Id},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if page == nil {
		return nil, serverutils.NewNotFoundError("Page not found")
	}

	contentChanged := page.Content != req.Content || page.Title != req.Title

	page.Title = req.Title
	page.Content = req.Content
	if req.IsOpen != nil {
		page.IsOpen = *req.IsOpen
	}
	// The caller's version is used for the CAS, not the one just read,
	// so an edit based on a stale read is rejected instead of clobbering.
	page.Version = req.Version

	if err := uow.PageRepository().UpdateVersioned(ctx, page); err != nil {
		return nil, err
	}

	if contentChanged {
		c.requestEmbedding(ctx, page.Id)
	}
	c.publishUpdated(ctx, page)

	return pageToResponse(page), nil
}

func (c *pageService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	page, err := uow.PageRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if page == nil {
		return serverutils.NewNotFoundError("Page not found")
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback() //nolint:errcheck

	if err := uow.MessageRepository().DeleteAllByPageId(ctx, id); err != nil {
		return err
	}
	if err := uow.PageEmbeddingRepository().DeleteAllByPageId(ctx, id); err != nil {
		return err
	}
	if err := uow.PageRepository().Delete(ctx, id); err != nil {
		return err
	}

	return uow.Commit()
}

func (c *pageService) Search(ctx context.Context, userId uuid.UUID, req *dto.SearchPagesRequest) ([]*dto.PageSearchHit, error) {
	vector, err := c.embeddingProvider.Generate(ctx, req.Query)
	if err != nil {
		return nil, serverutils.NewUpstreamError("Embedding provider unavailable")
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)
	matches, err := uow.PageEmbeddingRepository().SearchSimilar(ctx, userId, vector, req.TopK)
	if err != nil {
		return nil, err
	}

	hits := make([]*dto.PageSearchHit, 0, len(matches))
	for _, m := range matches {
		hits = append(hits, &dto.PageSearchHit{
			PageId:   m.PageId,
			Snippet:  m.Document,
			Distance: m.Distance,
		})
	}
	return hits, nil
}

func (c *pageService) requestEmbedding(ctx context.Context, pageId uuid.UUID) {
	payload, err := json.Marshal(dto.PublishEmbedPageMessage{PageId: pageId})
	if err != nil {
		return
	}
	// Embedding rebuilds ride the async pipeline; a publish failure only
	// delays freshness of semantic search.
	_ = c.publisherService.Publish(ctx, payload)
}

func (c *pageService) publishUpdated(ctx context.Context, page *entity.Page) {
	if c.eventPublisher == nil {
		return
	}
	evt := events.New(events.TypePageUpdated, map[string]interface{}{
		"page_id":     page.Id.String(),
		"notebook_id": page.NotebookId.String(),
		"user_id":     page.UserId.String(),
	})
	_ = c.eventPublisher.Publish(ctx, evt)
}

func pageToResponse(page *entity.Page) *dto.PageResponse {
	return &dto.PageResponse{
		Id:         page.Id,
		NotebookId: page.NotebookId,
		Title:      page.Title,
		Content:    page.Content,
		Position:   page.Position,
		IsOpen:     page.IsOpen,
		Version:    page.Version,
		CreatedAt:  page.CreatedAt,
		UpdatedAt:  page.UpdatedAt,
	}
}
