package openai

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"gammanotes-be/pkg/completion"

	openai "github.com/sashabaranov/go-openai"
)

const (
	maxRateLimitAttempts = 3
	baseRetryDelay       = 1 * time.Second
)

type Provider struct {
	client *openai.Client
	model  string
}

func NewProvider(apiKey, model string) *Provider {
	if model == "" {
		model = openai.GPT4oMini
	}
	return &Provider{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

const sectionsPromptTemplate = `You are a note-taking assistant. Convert the provided material into structured study notes.
Respond with JSON only, shaped as:
{"sections":[{"title":"...","sentences":[{"id":1,"text":"...","format":"plain|bold|heading|bullet|numbered|formula|rich-text"}]}]}
Write the notes in %s.`

func (p *Provider) GenerateSections(ctx context.Context, text string, images []completion.File, language string) ([]completion.Section, error) {
	if language == "" {
		language = "English"
	}

	parts := []openai.ChatMessagePart{
		{Type: openai.ChatMessagePartTypeText, Text: text},
	}
	for _, img := range images {
		parts = append(parts, openai.ChatMessagePart{
			Type: openai.ChatMessagePartTypeImageURL,
			ImageURL: &openai.ChatMessageImageURL{
				URL: fmt.Sprintf("data:%s;base64,%s", img.MIME, base64.StdEncoding.EncodeToString(img.Data)),
			},
		})
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: fmt.Sprintf(sectionsPromptTemplate, language),
			},
			{
				Role:         openai.ChatMessageRoleUser,
				MultiContent: parts,
			},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("sections completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, completion.ErrEmptyReply
	}

	return completion.ParseSections(resp.Choices[0].Message.Content)
}

const quizPromptTemplate = `Generate a quiz of %d questions from the study material below.
Mix multiple_choice, true_false and short_answer questions.
Respond with JSON only, shaped as:
{"title":"...","questions":[{"type":"multiple_choice","question":"...","options":["..."],"correct_answer":"..."}]}

Material:
%s`

func (p *Provider) GenerateQuiz(ctx context.Context, material string, numQuestions int) (*completion.Quiz, error) {
	raw, err := p.generateJSON(ctx, fmt.Sprintf(quizPromptTemplate, numQuestions, material))
	if err != nil {
		return nil, err
	}

	var quiz completion.Quiz
	if err := json.Unmarshal([]byte(raw), &quiz); err != nil {
		return nil, fmt.Errorf("malformed quiz reply: %w", err)
	}
	if len(quiz.Questions) == 0 {
		return nil, completion.ErrEmptyReply
	}
	return &quiz, nil
}

const cardsPromptTemplate = `Generate %d flashcards from the study material below.
Respond with JSON only, shaped as:
{"cards":[{"title":"front of card","content":"back of card"}]}

Material:
%s`

// GenerateCards is the one call site with a rate-limit retry loop: up to 3
// attempts with exponential backoff, only on HTTP 429.
func (p *Provider) GenerateCards(ctx context.Context, material string, numCards int) ([]completion.Card, error) {
	return p.generateCardsWithRetry(ctx, fmt.Sprintf(cardsPromptTemplate, numCards, material))
}

const guidePromptTemplate = `Write a study guide from the material below as a list of topic entries.
Respond with JSON only, shaped as:
{"cards":[{"title":"topic","content":"explanation"}]}

Material:
%s`

func (p *Provider) GenerateGuide(ctx context.Context, material string) ([]completion.Card, error) {
	return p.generateCardsWithRetry(ctx, fmt.Sprintf(guidePromptTemplate, material))
}

func (p *Provider) generateCardsWithRetry(ctx context.Context, prompt string) ([]completion.Card, error) {
	var lastErr error
	for attempt := 0; attempt < maxRateLimitAttempts; attempt++ {
		if attempt > 0 {
			delay := baseRetryDelay << (attempt - 1)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		raw, err := p.generateJSON(ctx, prompt)
		if err != nil {
			lastErr = err
			if isRateLimited(err) {
				continue
			}
			return nil, err
		}

		var payload struct {
			Cards []completion.Card `json:"cards"`
		}
		if err := json.Unmarshal([]byte(raw), &payload); err != nil {
			return nil, fmt.Errorf("malformed cards reply: %w", err)
		}
		if len(payload.Cards) == 0 {
			return nil, completion.ErrEmptyReply
		}
		return payload.Cards, nil
	}
	return nil, fmt.Errorf("card generation rate limited after %d attempts: %w", maxRateLimitAttempts, lastErr)
}

const judgePromptTemplate = `Question: %s
Expected answer: %s
Student answer: %s

Is the student answer correct? Respond with JSON only: {"correct":true} or {"correct":false}`

func (p *Provider) JudgeAnswer(ctx context.Context, question, correctAnswer, givenAnswer string) (bool, error) {
	raw, err := p.generateJSON(ctx, fmt.Sprintf(judgePromptTemplate, question, correctAnswer, givenAnswer))
	if err != nil {
		return false, err
	}

	var verdict struct {
		Correct bool `json:"correct"`
	}
	if err := json.Unmarshal([]byte(raw), &verdict); err != nil {
		return false, fmt.Errorf("malformed judge reply: %w", err)
	}
	return verdict.Correct, nil
}

func (p *Provider) generateJSON(ctx context.Context, prompt string) (string, error) {
	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", completion.ErrEmptyReply
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func isRateLimited(err error) bool {
	var apiErr *openai.APIError
	return errors.As(err, &apiErr) && apiErr.HTTPStatusCode == http.StatusTooManyRequests
}
