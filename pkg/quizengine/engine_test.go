package quizengine

import (
	"errors"
	"testing"
)

func mcQuestion() Question {
	return Question{
		Type:          TypeMultipleChoice,
		Question:      "Which planet is closest to the sun?",
		Options:       []string{"Venus", "Mercury", "Earth", "Mars"},
		CorrectAnswer: "Mercury",
	}
}

func TestJudgeLocal(t *testing.T) {
	tests := []struct {
		name    string
		q       Question
		answer  string
		want    bool
		wantErr error
	}{
		{"mc exact match", mcQuestion(), "Mercury", true, nil},
		{"mc case insensitive", mcQuestion(), "mercury", true, nil},
		{"mc letter match", mcQuestion(), "B", true, nil},
		{"mc wrong letter", mcQuestion(), "A", false, nil},
		{"mc wrong text", mcQuestion(), "Venus", false, nil},
		{"true false correct", Question{Type: TypeTrueFalse, CorrectAnswer: "True"}, "true", true, nil},
		{"true false wrong", Question{Type: TypeTrueFalse, CorrectAnswer: "True"}, "False", false, nil},
		{"short answer deferred", Question{Type: TypeShortAnswer, CorrectAnswer: "photosynthesis"}, "photosynthesis", false, ErrNeedsJudge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := JudgeLocal(tt.q, tt.answer)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("JudgeLocal(%q) = %v, want %v", tt.answer, got, tt.want)
			}
		})
	}
}

func TestProgressTransitions(t *testing.T) {
	p := NewProgress()
	if p.Status != StatusNotStarted {
		t.Fatalf("new progress status = %s", p.Status)
	}

	if err := p.Submit(0, 3, "Mercury", true); err != nil {
		t.Fatal(err)
	}
	if p.Status != StatusInProgress {
		t.Errorf("status after first answer = %s, want %s", p.Status, StatusInProgress)
	}
	if p.Score != 1 {
		t.Errorf("score = %d, want 1", p.Score)
	}
	if p.CurrentQuestionIndex != 1 {
		t.Errorf("current index = %d, want 1", p.CurrentQuestionIndex)
	}

	p.Complete()
	if p.Status != StatusComplete {
		t.Errorf("status after Complete = %s", p.Status)
	}

	if err := p.Submit(1, 3, "anything", true); !errors.Is(err, ErrQuizComplete) {
		t.Errorf("submit after complete = %v, want ErrQuizComplete", err)
	}
}

func TestProgressScoring(t *testing.T) {
	p := NewProgress()

	// Correct answer increments score and marks index correct.
	if err := p.Submit(0, 5, "Mercury", true); err != nil {
		t.Fatal(err)
	}
	if p.Score != 1 || !p.Evaluations[0] {
		t.Errorf("after correct: score=%d eval=%v", p.Score, p.Evaluations[0])
	}

	// Incorrect answer leaves score unchanged and records the index.
	if err := p.Submit(1, 5, "Venus", false); err != nil {
		t.Fatal(err)
	}
	if p.Score != 1 {
		t.Errorf("score after incorrect = %d, want 1", p.Score)
	}
	incorrect := p.IncorrectIndexes()
	if len(incorrect) != 1 || incorrect[0] != 1 {
		t.Errorf("incorrect indexes = %v, want [1]", incorrect)
	}

	// Re-answering overwrites, never double counts.
	if err := p.Submit(0, 5, "Venus", false); err != nil {
		t.Fatal(err)
	}
	if p.Score != 0 {
		t.Errorf("score after overwrite = %d, want 0", p.Score)
	}
	if err := p.Submit(0, 5, "Mercury", true); err != nil {
		t.Fatal(err)
	}
	if p.Score != 1 {
		t.Errorf("score after second overwrite = %d, want 1", p.Score)
	}
	if len(p.Answers) != 2 {
		t.Errorf("answers map has %d entries, want 2", len(p.Answers))
	}
}

func TestProgressIndexBounds(t *testing.T) {
	p := NewProgress()
	if err := p.Submit(5, 5, "x", false); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("out of range submit = %v", err)
	}
	if err := p.Submit(-1, 5, "x", false); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("negative index submit = %v", err)
	}
	if p.Status != StatusNotStarted {
		t.Errorf("rejected submit changed status to %s", p.Status)
	}
}
