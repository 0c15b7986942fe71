package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"gammanotes-be/internal/pkg/logger"
	"gammanotes-be/internal/pkg/serverutils"
	"gammanotes-be/internal/repository/memory"
	"gammanotes-be/pkg/extraction"
	"gammanotes-be/pkg/storage"
)

const convertModule = "convert"

type IConvertService interface {
	// Convert handles one upload request. For chunked uploads, non-final
	// chunks are buffered and return empty text; the final chunk triggers
	// reassembly and extraction.
	Convert(ctx context.Context, userId uuid.UUID, data []byte, isChunk, isFinal bool, chunkId string, chunkSeq int) (string, bool, error)
}

type convertService struct {
	chunks        *memory.ChunkRepository
	extractor     extraction.Provider
	store         storage.ObjectStore
	log           logger.ILogger
	maxUploadSize int
	signExpiry    time.Duration
}

func NewConvertService(
	chunks *memory.ChunkRepository,
	extractor extraction.Provider,
	store storage.ObjectStore,
	log logger.ILogger,
	maxUploadSize int,
) IConvertService {
	return &convertService{
		chunks:        chunks,
		extractor:     extractor,
		store:         store,
		log:           log,
		maxUploadSize: maxUploadSize,
		signExpiry:    15 * time.Minute,
	}
}

func (s *convertService) Convert(ctx context.Context, userId uuid.UUID, data []byte, isChunk, isFinal bool, chunkId string, chunkSeq int) (string, bool, error) {
	// Size is enforced before any network call to the provider.
	if len(data) > s.maxUploadSize {
		return "", false, serverutils.NewPayloadTooLargeError("Uploaded file exceeds the size limit")
	}

	if !isChunk {
		text, err := s.extract(ctx, userId, data)
		if err != nil {
			return "", false, err
		}
		return text, true, nil
	}

	if chunkId == "" {
		return "", false, serverutils.NewBadRequestError("chunkId is required for chunked uploads")
	}

	s.chunks.Append(chunkId, chunkSeq, data)

	if !isFinal {
		return "", false, nil
	}

	combined, err := s.chunks.Assemble(chunkId)
	if err != nil {
		return "", false, serverutils.NewBadRequestError("Chunk group not found or expired")
	}
	// Reassembly state is released whether or not extraction succeeds; a
	// retry starts a fresh upload with a fresh id.
	s.chunks.Delete(chunkId)

	if len(combined) > s.maxUploadSize {
		return "", false, serverutils.NewPayloadTooLargeError("Assembled file exceeds the size limit")
	}

	text, err := s.extract(ctx, userId, combined)
	if err != nil {
		return "", false, err
	}
	return text, true, nil
}

// extract uploads the PDF, hands a signed URL to the extraction provider,
// and deletes the temporary object afterwards.
func (s *convertService) extract(ctx context.Context, userId uuid.UUID, data []byte) (string, error) {
	key := fmt.Sprintf("conversions/%s/%s.pdf", userId, uuid.NewString())

	if _, err := s.store.Put(ctx, key, data, "application/pdf"); err != nil {
		s.log.Error(convertModule, "Upload to object store failed", map[string]interface{}{
			"error": err.Error(),
		})
		return "", serverutils.NewUpstreamError("Failed to stage file for conversion")
	}
	defer func() {
		if err := s.store.Delete(ctx, key); err != nil {
			s.log.Warn(convertModule, "Failed to delete staged file", map[string]interface{}{
				"key":   key,
				"error": err.Error(),
			})
		}
	}()

	signedURL, err := s.store.SignedURL(ctx, key, s.signExpiry)
	if err != nil {
		s.log.Error(convertModule, "Signing staged file failed", map[string]interface{}{
			"error": err.Error(),
		})
		return "", serverutils.NewUpstreamError("Failed to stage file for conversion")
	}

	text, err := s.extractor.Submit(ctx, signedURL)
	if err != nil {
		s.log.Error(convertModule, "Extraction provider failed", map[string]interface{}{
			"error": err.Error(),
		})
		return "", serverutils.NewUpstreamError("PDF conversion failed")
	}
	if strings.TrimSpace(text) == "" {
		s.log.Warn(convertModule, "Extraction produced no text", map[string]interface{}{
			"key": key,
		})
		return "", serverutils.NewUpstreamError("Extraction produced no text")
	}
	return text, nil
}
