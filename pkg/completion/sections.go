package completion

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var ErrEmptyReply = errors.New("completion returned no sections")

type sectionsPayload struct {
	Sections []Section `json:"sections"`
}

// ParseSections decodes a model reply into sections. The model sometimes
// wraps JSON in a markdown code fence; strip it before decoding.
func ParseSections(raw string) ([]Section, error) {
	raw = stripCodeFence(raw)

	var payload sectionsPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, fmt.Errorf("malformed sections reply: %w", err)
	}
	if len(payload.Sections) == 0 {
		return nil, ErrEmptyReply
	}

	return payload.Sections, nil
}

// MergeSections concatenates per-batch results and renumbers sentence ids
// sequentially across the whole reply. Batch-local ids are not globally
// unique, so they are never carried over.
func MergeSections(batches [][]Section) []Section {
	var merged []Section
	next := 1
	for _, sections := range batches {
		for _, s := range sections {
			renumbered := Section{Title: s.Title, Sentences: make([]Sentence, len(s.Sentences))}
			for i, sent := range s.Sentences {
				sent.Id = next
				next++
				renumbered.Sentences[i] = sent
			}
			merged = append(merged, renumbered)
		}
	}
	return merged
}

// ErrorSection is the synthetic section surfaced to the user when the
// pipeline produced nothing usable.
func ErrorSection(message string) Section {
	return Section{
		Title: "Error",
		Sentences: []Sentence{
			{Id: 1, Text: message, Format: FormatPlain},
		},
	}
}

func stripCodeFence(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSuffix(raw, "```")
		raw = strings.TrimSpace(raw)
	}
	return raw
}
