package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/google/uuid"

	"gammanotes-be/internal/dto"
	"gammanotes-be/internal/pkg/serverutils"
	"gammanotes-be/pkg/completion"
)

type fakeCompletion struct {
	sectionCalls int
	sections     []completion.Section
	sectionErr   error
}

func (f *fakeCompletion) GenerateSections(ctx context.Context, text string, images []completion.File, language string) ([]completion.Section, error) {
	f.sectionCalls++
	if f.sectionErr != nil {
		return nil, f.sectionErr
	}
	return f.sections, nil
}

func (f *fakeCompletion) GenerateQuiz(ctx context.Context, material string, numQuestions int) (*completion.Quiz, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeCompletion) GenerateCards(ctx context.Context, material string, numCards int) ([]completion.Card, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeCompletion) GenerateGuide(ctx context.Context, material string) ([]completion.Card, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeCompletion) JudgeAnswer(ctx context.Context, question, correctAnswer, givenAnswer string) (bool, error) {
	return false, errors.New("not implemented")
}

func TestChatService_SingleBatchMakesOneCompletionCall(t *testing.T) {
	completions := &fakeCompletion{
		sections: []completion.Section{
			{Title: "Intro", Sentences: []completion.Sentence{{Id: 1, Text: "Hello", Format: completion.FormatPlain}}},
		},
	}
	svc := NewChatService(nil, completions, &fakeExtractor{}, &fakeStore{}, nopLogger{}, 3000)

	resp, err := svc.Ingest(context.Background(), uuid.New(), &dto.ChatRequest{Message: "short note about photosynthesis"}, nil)

	require.NoError(t, err)
	assert.Equal(t, 1, completions.sectionCalls)
	require.Len(t, resp.Replies, 1)
	require.Len(t, resp.Replies[0], 1)
	assert.Equal(t, "Intro", resp.Replies[0][0].Title)
}

func TestChatService_LongTextIsBatched(t *testing.T) {
	completions := &fakeCompletion{
		sections: []completion.Section{
			{Title: "Part", Sentences: []completion.Sentence{{Id: 1, Text: "x"}}},
		},
	}
	svc := NewChatService(nil, completions, &fakeExtractor{}, &fakeStore{}, nopLogger{}, 10)

	// 10 tokens * 4 chars = 40 chars per batch; 100 chars means 3 batches.
	long := make([]byte, 100)
	for i := range long {
		long[i] = 'a'
	}

	resp, err := svc.Ingest(context.Background(), uuid.New(), &dto.ChatRequest{Message: string(long)}, nil)

	require.NoError(t, err)
	assert.Equal(t, 3, completions.sectionCalls)
	// Merged sentence ids are renumbered sequentially across batches.
	require.Len(t, resp.Replies, 1)
	require.Len(t, resp.Replies[0], 3)
	assert.Equal(t, 1, resp.Replies[0][0].Sentences[0].Id)
	assert.Equal(t, 2, resp.Replies[0][1].Sentences[0].Id)
	assert.Equal(t, 3, resp.Replies[0][2].Sentences[0].Id)
}

func TestChatService_AllBatchesFailedYieldsErrorSection(t *testing.T) {
	completions := &fakeCompletion{sectionErr: errors.New("upstream down")}
	svc := NewChatService(nil, completions, &fakeExtractor{}, &fakeStore{}, nopLogger{}, 3000)

	resp, err := svc.Ingest(context.Background(), uuid.New(), &dto.ChatRequest{Message: "anything"}, nil)

	require.NoError(t, err)
	require.Len(t, resp.Replies, 1)
	require.Len(t, resp.Replies[0], 1)
	assert.Equal(t, "Error", resp.Replies[0][0].Title)
}

func TestChatService_EmptyRequestRejected(t *testing.T) {
	svc := NewChatService(nil, &fakeCompletion{}, &fakeExtractor{}, &fakeStore{}, nopLogger{}, 3000)

	_, err := svc.Ingest(context.Background(), uuid.New(), &dto.ChatRequest{Message: "   "}, nil)

	assert.Error(t, err)
}

func TestChatService_UnsupportedAttachmentRejected(t *testing.T) {
	completions := &fakeCompletion{}
	svc := NewChatService(nil, completions, &fakeExtractor{}, &fakeStore{}, nopLogger{}, 3000)

	files := []completion.File{
		{Name: "notes.docx", MIME: "application/vnd.openxmlformats-officedocument.wordprocessingml.document", Data: []byte("zip")},
	}
	_, err := svc.Ingest(context.Background(), uuid.New(), &dto.ChatRequest{Message: "summarize"}, files)

	var appErr *serverutils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Status)
	assert.Contains(t, appErr.Message, "notes.docx")
	assert.Zero(t, completions.sectionCalls)
}

func TestChatService_PdfAttachmentGoesThroughExtraction(t *testing.T) {
	completions := &fakeCompletion{
		sections: []completion.Section{
			{Title: "Doc", Sentences: []completion.Sentence{{Id: 1, Text: "y"}}},
		},
	}
	extractor := &fakeExtractor{text: "pdf body"}
	store := &fakeStore{}
	svc := NewChatService(nil, completions, extractor, store, nopLogger{}, 3000)

	files := []completion.File{
		{Name: "doc.pdf", MIME: "application/pdf", Data: []byte("%PDF-1.4")},
	}
	resp, err := svc.Ingest(context.Background(), uuid.New(), &dto.ChatRequest{Message: "summarize"}, files)

	require.NoError(t, err)
	assert.Equal(t, 1, extractor.calls)
	// One temp upload for extraction plus the markdown artifact.
	assert.Equal(t, 2, store.puts)
	assert.Equal(t, 1, store.deletes)
	assert.NotEmpty(t, resp.Replies[0])
}
