package completion

import (
	"context"

	"gammanotes-be/pkg/quizengine"
)

// Sentence formats the generator is allowed to emit. The editor consumes
// these tags directly; there is no downstream format detection.
const (
	FormatPlain    = "plain"
	FormatBold     = "bold"
	FormatHeading  = "heading"
	FormatBullet   = "bullet"
	FormatNumbered = "numbered"
	FormatFormula  = "formula"
	FormatRichText = "rich-text"
)

// Sentence is one generated line of note content. Ids are sequential within
// the reply; the orchestrator renumbers them when merging batches.
type Sentence struct {
	Id     int    `json:"id"`
	Text   string `json:"text"`
	Format string `json:"format,omitempty"`
}

type Section struct {
	Title     string     `json:"title"`
	Sentences []Sentence `json:"sentences"`
}

// File is an uploaded attachment passed inline to the completion request.
type File struct {
	Name string
	MIME string
	Data []byte
}

type Quiz struct {
	Title     string                `json:"title"`
	Questions []quizengine.Question `json:"questions"`
}

// Card is a single flashcard or study-guide entry (title + content pair).
type Card struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Provider is the contract for the external completion collaborator.
type Provider interface {
	// GenerateSections turns raw text (and optional inline images) into
	// structured note sections in the requested output language.
	GenerateSections(ctx context.Context, text string, images []File, language string) ([]Section, error)

	// GenerateQuiz produces a titled question list from study material.
	GenerateQuiz(ctx context.Context, material string, numQuestions int) (*Quiz, error)

	// GenerateCards produces flashcards. This is the only call site that
	// retries on rate limiting (up to 3 attempts, exponential backoff).
	GenerateCards(ctx context.Context, material string, numCards int) ([]Card, error)

	// GenerateGuide produces study-guide entries; shares the retrying
	// generator with GenerateCards.
	GenerateGuide(ctx context.Context, material string) ([]Card, error)

	// JudgeAnswer asks the model whether a short answer is correct.
	JudgeAnswer(ctx context.Context, question, correctAnswer, givenAnswer string) (bool, error)
}
