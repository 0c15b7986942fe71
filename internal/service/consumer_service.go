package service

import (
	"context"
	"encoding/json"
	"log"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"

	"gammanotes-be/internal/dto"
	"gammanotes-be/internal/entity"
	"gammanotes-be/internal/repository/specification"
	"gammanotes-be/internal/repository/unitofwork"
	"gammanotes-be/pkg/embedding"
	"gammanotes-be/pkg/textsplit"
)

// embedChunkSize/-Overlap size the windows fed to the embedding model.
const (
	embedChunkSize    = 1000
	embedChunkOverlap = 100
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.Provider
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.Provider,
) IConsumerService {
	return &consumerService{
		pubSub:            pubSub,
		topicName:         topicName,
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishEmbedPageMessage
	err := json.Unmarshal(msg.Payload, &payload)
	if err != nil {
		log.Printf("[ERROR] Failed to unmarshal embed message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	log.Printf("[INFO] Processing page embedding for PageId: %s", payload.PageId)

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	page, err := uow.PageRepository().FindOne(ctx, specification.ByID{ID: payload.PageId})
	if err != nil {
		log.Printf("[ERROR] Failed to get page %s: %v", payload.PageId, err)
		msg.Nack()
		return
	}
	if page == nil {
		// Page deleted before the message was processed. Nothing to do.
		msg.Ack()
		return
	}

	// Stale embeddings are dropped before rebuilding so search never mixes
	// old and new chunks of the same page.
	if err := uow.PageEmbeddingRepository().DeleteAllByPageId(ctx, page.Id); err != nil {
		log.Printf("[ERROR] Failed to clear embeddings for page %s: %v", page.Id, err)
		msg.Nack()
		return
	}

	chunks := textsplit.SplitText(page.Title+"\n\n"+page.Content, embedChunkSize, embedChunkOverlap)
	embeddings := make([]*entity.PageEmbedding, 0, len(chunks))
	for i, chunk := range chunks {
		vector, err := cs.embeddingProvider.Generate(ctx, chunk)
		if err != nil {
			log.Printf("[ERROR] Embedding generation failed for page %s chunk %d: %v", page.Id, i, err)
			msg.Nack()
			return
		}
		embeddings = append(embeddings, &entity.PageEmbedding{
			Id:         uuid.New(),
			PageId:     page.Id,
			UserId:     page.UserId,
			ChunkIndex: i,
			Document:   chunk,
			Embedding:  vector,
		})
	}

	if err := uow.PageEmbeddingRepository().CreateBatch(ctx, embeddings); err != nil {
		log.Printf("[ERROR] Failed to store embeddings for page %s: %v", page.Id, err)
		msg.Nack()
		return
	}

	log.Printf("[INFO] Stored %d embedding chunks for page %s", len(embeddings), page.Id)
	msg.Ack()
}
