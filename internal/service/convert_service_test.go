package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gammanotes-be/internal/pkg/serverutils"
	"gammanotes-be/internal/repository/memory"
)

type fakeExtractor struct {
	calls int
	text  string
	urls  []string
}

func (f *fakeExtractor) Submit(ctx context.Context, fileURL string) (string, error) {
	f.calls++
	f.urls = append(f.urls, fileURL)
	return f.text, nil
}

type fakeStore struct {
	puts    int
	deletes int
	lastPut []byte
}

func (f *fakeStore) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	f.puts++
	f.lastPut = append([]byte(nil), data...)
	return "https://bucket.s3.amazonaws.com/" + key, nil
}

func (f *fakeStore) SignedURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	return "https://bucket.s3.amazonaws.com/" + key + "?signed", nil
}

func (f *fakeStore) Delete(ctx context.Context, key string) error {
	f.deletes++
	return nil
}

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

func TestConvertService_OversizeRejectedBeforeNetwork(t *testing.T) {
	extractor := &fakeExtractor{text: "irrelevant"}
	store := &fakeStore{}
	svc := NewConvertService(memory.NewChunkRepository(), extractor, store, nopLogger{}, 10)

	_, _, err := svc.Convert(context.Background(), uuid.New(), make([]byte, 11), false, false, "", 0)

	require.Error(t, err)
	var appErr *serverutils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 413, appErr.Status)

	// The size gate fires before any provider traffic.
	assert.Zero(t, store.puts)
	assert.Zero(t, extractor.calls)
}

func TestConvertService_SingleUpload(t *testing.T) {
	extractor := &fakeExtractor{text: "extracted text"}
	store := &fakeStore{}
	svc := NewConvertService(memory.NewChunkRepository(), extractor, store, nopLogger{}, 1024)

	text, success, err := svc.Convert(context.Background(), uuid.New(), []byte("%PDF-1.4"), false, false, "", 0)

	require.NoError(t, err)
	assert.True(t, success)
	assert.Equal(t, "extracted text", text)
	assert.Equal(t, 1, store.puts)
	assert.Equal(t, 1, store.deletes)
	assert.Equal(t, 1, extractor.calls)
}

func TestConvertService_EmptyExtractionRejected(t *testing.T) {
	extractor := &fakeExtractor{text: "   "}
	store := &fakeStore{}
	svc := NewConvertService(memory.NewChunkRepository(), extractor, store, nopLogger{}, 1024)

	_, success, err := svc.Convert(context.Background(), uuid.New(), []byte("%PDF-1.4"), false, false, "", 0)

	require.Error(t, err)
	assert.False(t, success)
	var appErr *serverutils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 502, appErr.Status)
	// The staged object is still cleaned up.
	assert.Equal(t, 1, store.deletes)
}

func TestConvertService_ChunkedUpload(t *testing.T) {
	extractor := &fakeExtractor{text: "combined text"}
	store := &fakeStore{}
	chunks := memory.NewChunkRepository()
	svc := NewConvertService(chunks, extractor, store, nopLogger{}, 1024)
	userId := uuid.New()

	// Two non-final chunks buffer without touching the network.
	_, success, err := svc.Convert(context.Background(), userId, []byte("AAA"), true, false, "group-1", 0)
	require.NoError(t, err)
	assert.False(t, success)

	_, _, err = svc.Convert(context.Background(), userId, []byte("BBB"), true, false, "group-1", 1)
	require.NoError(t, err)
	assert.Zero(t, extractor.calls)

	// Final chunk triggers reassembly and extraction.
	text, success, err := svc.Convert(context.Background(), userId, []byte("CCC"), true, true, "group-1", 2)
	require.NoError(t, err)
	assert.True(t, success)
	assert.Equal(t, "combined text", text)
	assert.Equal(t, []byte("AAABBBCCC"), store.lastPut)

	// Reassembly state is gone after the final chunk.
	assert.False(t, chunks.Has("group-1"))
}

func TestConvertService_AssembledOversizeRejected(t *testing.T) {
	extractor := &fakeExtractor{}
	store := &fakeStore{}
	svc := NewConvertService(memory.NewChunkRepository(), extractor, store, nopLogger{}, 5)

	_, _, err := svc.Convert(context.Background(), uuid.New(), []byte("AAA"), true, false, "group-2", 0)
	require.NoError(t, err)

	_, _, err = svc.Convert(context.Background(), uuid.New(), []byte("BBB"), true, true, "group-2", 1)

	var appErr *serverutils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 413, appErr.Status)
	assert.Zero(t, extractor.calls)
}

func TestConvertService_ChunkWithoutIdRejected(t *testing.T) {
	svc := NewConvertService(memory.NewChunkRepository(), &fakeExtractor{}, &fakeStore{}, nopLogger{}, 1024)

	_, _, err := svc.Convert(context.Background(), uuid.New(), []byte("AAA"), true, false, "", 0)

	var appErr *serverutils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Status)
}
