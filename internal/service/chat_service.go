package service

import (
	"context"
	"fmt"
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
	"gammanotes-be/pkg/extraction"
	"gammanotes-be/pkg/storage"
	"gammanotes-be/pkg/textsplit"
)

const chatModule = "chat"

type IChatService interface {
	Ingest(ctx context.Context, userId uuid.UUID, req *dto.ChatRequest, files []completion.File) (*dto.ChatResponse, error)
}

type chatService struct {
	uowFactory  unitofwork.RepositoryFactory
	completions completion.Provider
	extractor   extraction.Provider
	store       storage.ObjectStore
	log         logger.ILogger
	tokenBudget int
	signExpiry  time.Duration
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	completions completion.Provider,
	extractor extraction.Provider,
	store storage.ObjectStore,
	log logger.ILogger,
	tokenBudget int,
) IChatService {
	return &chatService{
		uowFactory:  uowFactory,
		completions: completions,
		extractor:   extractor,
		store:       store,
		log:         log,
		tokenBudget: tokenBudget,
		signExpiry:  15 * time.Minute,
	}
}

// Ingest is the chat pipeline: classify attachments, pull text out of PDFs,
// batch the combined text, and ask the completion collaborator for note
// sections batch by batch. A failed batch is logged and skipped; only a
// fully empty result degrades to a synthetic Error section.
func (s *chatService) Ingest(ctx context.Context, userId uuid.UUID, req *dto.ChatRequest, files []completion.File) (*dto.ChatResponse, error) {
	if strings.TrimSpace(req.Message) == "" && len(files) == 0 {
		return nil, serverutils.NewBadRequestError("Message or at least one file is required")
	}

	images, pdfs, err := classifyFiles(files)
	if err != nil {
		return nil, err
	}

	text := req.Message
	for _, pdf := range pdfs {
		extracted, err := s.extractPdf(ctx, userId, pdf)
		if err != nil {
			// A single unreadable attachment is dropped, mirroring the
			// batch skip policy below.
			s.log.Warn(chatModule, "PDF extraction failed, dropping attachment", map[string]interface{}{
				"file":  pdf.Name,
				"error": err.Error(),
			})
			continue
		}
		text = text + "\n\n" + extracted
	}

	// Durable markdown artifact of everything that went into the model.
	s.storeArtifact(ctx, userId, text)

	batches := textsplit.SplitByBudget(text, s.tokenBudget)
	if len(batches) == 0 && len(images) > 0 {
		// Image-only request still makes one completion call.
		batches = []string{""}
	}

	assistantMsg := s.beginAssistantMessage(ctx, userId, req.PageId)

	var sectionBatches [][]completion.Section
	for i, batch := range batches {
		// Images ride along with the first batch only.
		var batchImages []completion.File
		if i == 0 {
			batchImages = images
		}

		sections, err := s.completions.GenerateSections(ctx, batch, batchImages, req.Language)
		if err != nil {
			s.log.Warn(chatModule, "Completion batch failed, skipping", map[string]interface{}{
				"batch": i,
				"error": err.Error(),
			})
			continue
		}
		sectionBatches = append(sectionBatches, sections)

		// Persist partial output as batches land so a half-viewed reply
		// survives a client disconnect.
		s.updateAssistantMessage(ctx, assistantMsg, completion.MergeSections(sectionBatches))
	}

	merged := completion.MergeSections(sectionBatches)
	if len(merged) == 0 {
		merged = []completion.Section{
			completion.ErrorSection("The AI could not process this content. Please try again."),
		}
		s.updateAssistantMessage(ctx, assistantMsg, merged)
	}

	return &dto.ChatResponse{Replies: [][]completion.Section{merged}}, nil
}

// extractPdf uploads the buffer, hands a signed URL to the extraction
// provider, and deletes the temporary object afterwards.
func (s *chatService) extractPdf(ctx context.Context, userId uuid.UUID, pdf completion.File) (string, error) {
	key := fmt.Sprintf("uploads/%s/%s-%s", userId, uuid.NewString(), pdf.Name)

	if _, err := s.store.Put(ctx, key, pdf.Data, "application/pdf"); err != nil {
		return "", fmt.Errorf("upload failed: %w", err)
	}
	defer func() {
		if err := s.store.Delete(ctx, key); err != nil {
			s.log.Warn(chatModule, "Failed to delete temporary upload", map[string]interface{}{
				"key":   key,
				"error": err.Error(),
			})
		}
	}()

	signedURL, err := s.store.SignedURL(ctx, key, s.signExpiry)
	if err != nil {
		return "", fmt.Errorf("signing failed: %w", err)
	}

	return s.extractor.Submit(ctx, signedURL)
}

func (s *chatService) storeArtifact(ctx context.Context, userId uuid.UUID, text string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	key := fmt.Sprintf("artifacts/%s/%s.md", userId, uuid.NewString())
	if _, err := s.store.Put(ctx, key, []byte(text), "text/markdown"); err != nil {
		s.log.Warn(chatModule, "Failed to store markdown artifact", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	}
}

// beginAssistantMessage creates the placeholder row the batch loop updates.
// Returns nil when the chat is not bound to a page; persistence is then
// skipped entirely.
func (s *chatService) beginAssistantMessage(ctx context.Context, userId uuid.UUID, pageId *uuid.UUID) *entity.Message {
	if pageId == nil {
		return nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	page, err := uow.PageRepository().FindOne(ctx,
		specification.ByID{ID: *pageId},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil || page == nil {
		s.log.Warn(chatModule, "Chat page not found, reply will not be persisted", map[string]interface{}{
			"page_id": pageId.String(),
		})
		return nil
	}

	count, err := uow.MessageRepository().Count(ctx, specification.ByPageID{PageID: *pageId})
	if err != nil {
		count = 0
	}

	msg := &entity.Message{
		Id:        uuid.New(),
		PageId:    *pageId,
		UserId:    userId,
		Tag:       entity.MessageTagAssistant,
		Position:  int(count),
		CreatedAt: time.Now(),
	}
	if err := uow.MessageRepository().Create(ctx, msg); err != nil {
		s.log.Warn(chatModule, "Failed to create assistant message", map[string]interface{}{
			"error": err.Error(),
		})
		return nil
	}
	return msg
}

func (s *chatService) updateAssistantMessage(ctx context.Context, msg *entity.Message, sections []completion.Section) {
	if msg == nil {
		return
	}
	msg.Sections = sections
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.MessageRepository().Update(ctx, msg); err != nil {
		s.log.Warn(chatModule, "Failed to persist partial reply", map[string]interface{}{
			"message_id": msg.Id.String(),
			"error":      err.Error(),
		})
	}
}

// classifyFiles splits attachments into inline-able images and PDFs. Any
// other type is rejected so the caller knows the attachment was not used.
func classifyFiles(files []completion.File) (images, pdfs []completion.File, err error) {
	for _, f := range files {
		switch {
		case strings.HasPrefix(f.MIME, "image/"):
			images = append(images, f)
		case f.MIME == "application/pdf":
			pdfs = append(pdfs, f)
		default:
			return nil, nil, serverutils.NewBadRequestError("Unsupported attachment type: " + f.Name)
		}
	}
	return images, pdfs, nil
}
