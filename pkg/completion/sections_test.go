package completion

import (
	"errors"
	"testing"
)

func TestParseSections(t *testing.T) {
	t.Run("valid payload", func(t *testing.T) {
		raw := `{"sections":[{"title":"Cells","sentences":[{"id":1,"text":"Cells are the basic unit of life.","format":"plain"}]}]}`
		sections, err := ParseSections(raw)
		if err != nil {
			t.Fatal(err)
		}
		if len(sections) != 1 || sections[0].Title != "Cells" {
			t.Errorf("unexpected sections: %+v", sections)
		}
	})

	t.Run("code fenced payload", func(t *testing.T) {
		raw := "```json\n{\"sections\":[{\"title\":\"T\",\"sentences\":[]}]}\n```"
		sections, err := ParseSections(raw)
		if err != nil {
			t.Fatal(err)
		}
		if len(sections) != 1 {
			t.Errorf("got %d sections, want 1", len(sections))
		}
	})

	t.Run("malformed json", func(t *testing.T) {
		if _, err := ParseSections("not json at all"); err == nil {
			t.Error("expected error for malformed payload")
		}
	})

	t.Run("empty sections", func(t *testing.T) {
		_, err := ParseSections(`{"sections":[]}`)
		if !errors.Is(err, ErrEmptyReply) {
			t.Errorf("err = %v, want ErrEmptyReply", err)
		}
	})
}

func TestMergeSectionsRenumbers(t *testing.T) {
	batches := [][]Section{
		{
			{Title: "A", Sentences: []Sentence{{Id: 1, Text: "a1"}, {Id: 2, Text: "a2"}}},
		},
		{
			// Batch-local ids restart at 1; merge must not keep them.
			{Title: "B", Sentences: []Sentence{{Id: 1, Text: "b1"}}},
			{Title: "C", Sentences: []Sentence{{Id: 2, Text: "c1"}}},
		},
	}

	merged := MergeSections(batches)
	if len(merged) != 3 {
		t.Fatalf("got %d sections, want 3", len(merged))
	}

	wantIds := []int{1, 2, 3, 4}
	var gotIds []int
	for _, s := range merged {
		for _, sent := range s.Sentences {
			gotIds = append(gotIds, sent.Id)
		}
	}
	if len(gotIds) != len(wantIds) {
		t.Fatalf("got %d sentences, want %d", len(gotIds), len(wantIds))
	}
	for i := range wantIds {
		if gotIds[i] != wantIds[i] {
			t.Errorf("sentence %d id = %d, want %d", i, gotIds[i], wantIds[i])
		}
	}
}

func TestErrorSection(t *testing.T) {
	s := ErrorSection("generation failed")
	if s.Title != "Error" {
		t.Errorf("title = %q", s.Title)
	}
	if len(s.Sentences) != 1 || s.Sentences[0].Text != "generation failed" {
		t.Errorf("sentences = %+v", s.Sentences)
	}
}
