package openai

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cardsReply = `{"id":"x","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"{\"cards\":[{\"title\":\"front\",\"content\":\"back\"}]}"}}]}`

func newTestProvider(t *testing.T, handler http.HandlerFunc) (*Provider, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := openai.DefaultConfig("test-key")
	cfg.BaseURL = server.URL
	return &Provider{
		client: openai.NewClientWithConfig(cfg),
		model:  openai.GPT4oMini,
	}, server
}

func TestGenerateCards_RetriesOnRateLimit(t *testing.T) {
	var calls int32
	p, _ := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&calls, 1)
		if n < 3 {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"error":{"message":"rate limited","type":"rate_limit_exceeded"}}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(cardsReply))
	})

	cards, err := p.GenerateCards(context.Background(), "material", 1)

	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, "front", cards[0].Title)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestGenerateCards_NonRateLimitErrorIsTerminal(t *testing.T) {
	var calls int32
	p, _ := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":{"message":"boom","type":"server_error"}}`))
	})

	_, err := p.GenerateCards(context.Background(), "material", 1)

	require.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestGenerateCards_RetryRespectsContextCancel(t *testing.T) {
	p, _ := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"rate limited","type":"rate_limit_exceeded"}}`))
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.GenerateCards(ctx, "material", 1)
	require.Error(t, err)
}
