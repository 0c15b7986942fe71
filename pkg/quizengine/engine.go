package quizengine

import (
	"errors"
	"strings"
)

// Question types produced by the generation pipeline.
const (
	TypeMultipleChoice = "multiple_choice"
	TypeTrueFalse      = "true_false"
	TypeShortAnswer    = "short_answer"
)

// Progress states. Complete is terminal: Submit rejects further answers.
const (
	StatusNotStarted = "not_started"
	StatusInProgress = "in_progress"
	StatusComplete   = "complete"
)

var (
	// ErrQuizComplete is returned when an answer arrives after completion.
	ErrQuizComplete = errors.New("quiz is already complete")

	// ErrNeedsJudge signals that local comparison cannot grade the answer
	// and the completion collaborator must judge it instead.
	ErrNeedsJudge = errors.New("answer requires external judging")

	ErrIndexOutOfRange = errors.New("question index out of range")
)

type Question struct {
	Type          string   `json:"type"`
	Question      string   `json:"question"`
	Options       []string `json:"options,omitempty"`
	CorrectAnswer string   `json:"correct_answer"`
}

// Progress is the mutable answering state of one quiz attempt. Answers and
// evaluations are keyed by question index; re-answering overwrites the prior
// entry and the score is recomputed, never incremented blindly.
type Progress struct {
	Status               string         `json:"status"`
	CurrentQuestionIndex int            `json:"current_question_index"`
	Answers              map[int]string `json:"answers"`
	Evaluations          map[int]bool   `json:"evaluations"`
	Score                int            `json:"score"`
}

func NewProgress() *Progress {
	return &Progress{
		Status:      StatusNotStarted,
		Answers:     make(map[int]string),
		Evaluations: make(map[int]bool),
	}
}

// JudgeLocal grades a multiple-choice or true/false answer by comparing it
// against the stored correct answer. The comparison accepts either the full
// option text or its letter (A, B, C, ...). Short answers cannot be judged
// locally and return ErrNeedsJudge.
func JudgeLocal(q Question, answer string) (bool, error) {
	switch q.Type {
	case TypeMultipleChoice:
		return matchesOption(q, answer), nil
	case TypeTrueFalse:
		return strings.EqualFold(strings.TrimSpace(answer), strings.TrimSpace(q.CorrectAnswer)), nil
	case TypeShortAnswer:
		return false, ErrNeedsJudge
	default:
		return false, ErrNeedsJudge
	}
}

func matchesOption(q Question, answer string) bool {
	answer = strings.TrimSpace(answer)
	correct := strings.TrimSpace(q.CorrectAnswer)

	if strings.EqualFold(answer, correct) {
		return true
	}

	// Letter form: "B" matches when the correct answer is the second option,
	// or when the stored key itself is a letter.
	if len(answer) == 1 {
		letter := strings.ToUpper(answer)
		if strings.EqualFold(letter, correct) {
			return true
		}
		idx := int(letter[0] - 'A')
		if idx >= 0 && idx < len(q.Options) {
			return strings.EqualFold(strings.TrimSpace(q.Options[idx]), correct)
		}
	}

	return false
}

// Submit records a graded answer for the question at index. The first answer
// moves the quiz from not-started to in-progress. Re-submitting a different
// answer for the same index overwrites the prior evaluation.
func (p *Progress) Submit(index, totalQuestions int, answer string, correct bool) error {
	if p.Status == StatusComplete {
		return ErrQuizComplete
	}
	if index < 0 || index >= totalQuestions {
		return ErrIndexOutOfRange
	}

	if p.Status == StatusNotStarted {
		p.Status = StatusInProgress
	}

	p.Answers[index] = answer
	p.Evaluations[index] = correct
	p.recomputeScore()

	if index+1 > p.CurrentQuestionIndex {
		p.CurrentQuestionIndex = index + 1
	}

	return nil
}

// Complete marks the attempt finished. Idempotent; there is no transition
// back to in-progress.
func (p *Progress) Complete() {
	p.Status = StatusComplete
}

// IncorrectIndexes returns the indexes answered incorrectly, for the results
// view.
func (p *Progress) IncorrectIndexes() []int {
	var out []int
	for idx, ok := range p.Evaluations {
		if !ok {
			out = append(out, idx)
		}
	}
	return out
}

func (p *Progress) recomputeScore() {
	score := 0
	for _, ok := range p.Evaluations {
		if ok {
			score++
		}
	}
	p.Score = score
}
