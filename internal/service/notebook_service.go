package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"gammanotes-be/internal/dto"
	"gammanotes-be/internal/entity"
	"gammanotes-be/internal/pkg/serverutils"
	"gammanotes-be/internal/repository/specification"
	"gammanotes-be/internal/repository/unitofwork"
	"gammanotes-be/pkg/events"
	pktNats "gammanotes-be/pkg/nats"
)

type INotebookService interface {
	GetAll(ctx context.Context, userId uuid.UUID) ([]*dto.NotebookResponse, error)
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateNotebookRequest) (*dto.CreateNotebookResponse, error)
	Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.NotebookResponse, error)
	Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateNotebookRequest) error
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
}

type notebookService struct {
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher *pktNats.Publisher
}

func NewNotebookService(uowFactory unitofwork.RepositoryFactory, eventPublisher *pktNats.Publisher) INotebookService {
	return &notebookService{
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
	}
}

func (c *notebookService) GetAll(ctx context.Context, userId uuid.UUID) ([]*dto.NotebookResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	notebooks, err := uow.NotebookRepository().FindAll(ctx,
		specification.OwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.NotebookResponse, 0, len(notebooks))
	for _, notebook := range notebooks {
		pageCount, err := uow.PageRepository().Count(ctx, specification.ByNotebookID{NotebookID: notebook.Id})
		if err != nil {
			return nil, err
		}
		result = append(result, &dto.NotebookResponse{
			Id:        notebook.Id,
			Title:     notebook.Title,
			PageCount: pageCount,
			CreatedAt: notebook.CreatedAt,
			UpdatedAt: notebook.UpdatedAt,
		})
	}

	return result, nil
}

func (c *notebookService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateNotebookRequest) (*dto.CreateNotebookResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	notebook := entity.Notebook{
		Id:        uuid.New(),
		UserId:    userId,
		Title:     req.Title,
		CreatedAt: time.Now(),
	}

	if err := uow.NotebookRepository().Create(ctx, &notebook); err != nil {
		return nil, err
	}

	c.publishUpdated(ctx, notebook.Id, userId)

	return &dto.CreateNotebookResponse{Id: notebook.Id}, nil
}

func (c *notebookService) Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.NotebookResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	notebook, err := uow.NotebookRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if notebook == nil {
		return nil, serverutils.NewNotFoundError("Notebook not found")
	}

	pageCount, err := uow.PageRepository().Count(ctx, specification.ByNotebookID{NotebookID: notebook.Id})
	if err != nil {
		return nil, err
	}

	return &dto.NotebookResponse{
		Id:        notebook.Id,
		Title:     notebook.Title,
		PageCount: pageCount,
		CreatedAt: notebook.CreatedAt,
		UpdatedAt: notebook.UpdatedAt,
	}, nil
}

func (c *notebookService) Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateNotebookRequest) error {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	notebook, err := uow.NotebookRepository().FindOne(ctx,
		specification.ByID{ID: req.Id},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if notebook == nil {
		return serverutils.NewNotFoundError("Notebook not found")
	}

	notebook.Title = req.Title
	if err := uow.NotebookRepository().Update(ctx, notebook); err != nil {
		return err
	}

	c.publishUpdated(ctx, notebook.Id, userId)
	return nil
}

func (c *notebookService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	notebook, err := uow.NotebookRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if notebook == nil {
		return serverutils.NewNotFoundError("Notebook not found")
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback() //nolint:errcheck

	pages, err := uow.PageRepository().FindAll(ctx, specification.ByNotebookID{NotebookID: id})
	if err != nil {
		return err
	}
	for _, page := range pages {
		if err := uow.MessageRepository().DeleteAllByPageId(ctx, page.Id); err != nil {
			return err
		}
		if err := uow.PageEmbeddingRepository().DeleteAllByPageId(ctx, page.Id); err != nil {
			return err
		}
		if err := uow.PageRepository().Delete(ctx, page.Id); err != nil {
			return err
		}
	}
	if err := uow.NotebookRepository().Delete(ctx, id); err != nil {
		return err
	}

	if err := uow.Commit(); err != nil {
		return err
	}

	c.publishUpdated(ctx, id, userId)
	return nil
}

func (c *notebookService) publishUpdated(ctx context.Context, notebookId, userId uuid.UUID) {
	if c.eventPublisher == nil {
		return
	}
	evt := events.New(events.TypeNotebookUpdated, map[string]interface{}{
		"notebook_id": notebookId.String(),
		"user_id":     userId.String(),
	})
	// Realtime fan-out is best effort; a dropped event never fails the request.
	_ = c.eventPublisher.Publish(ctx, evt)
}
