package textsplit

import "strings"

// CharsPerToken is the heuristic ratio used to convert a token budget into
// a character budget before slicing.
const CharsPerToken = 4

// SplitByBudget splits text into ordered chunks of approximately
// tokenBudget*CharsPerToken runes each. Chunks are cut at fixed offsets with
// no overlap, so concatenating them in order reproduces the input exactly.
// Empty input yields no chunks.
func SplitByBudget(text string, tokenBudget int) []string {
	if text == "" || tokenBudget <= 0 {
		return nil
	}

	chunkSize := tokenBudget * CharsPerToken
	runes := []rune(text)
	totalLen := len(runes)

	var chunks []string
	for i := 0; i < totalLen; i += chunkSize {
		end := i + chunkSize
		if end > totalLen {
			end = totalLen
		}
		chunks = append(chunks, string(runes[i:end]))
	}

	return chunks
}

// SplitParagraphs splits text on blank-line boundaries and greedily packs
// consecutive paragraphs into chunks until maxLen is exceeded. A chunk only
// exceeds maxLen when a single paragraph itself does.
func SplitParagraphs(text string, maxLen int) []string {
	if strings.TrimSpace(text) == "" || maxLen <= 0 {
		return nil
	}

	paragraphs := strings.Split(text, "\n\n")

	var chunks []string
	var current strings.Builder
	for _, p := range paragraphs {
		if strings.TrimSpace(p) == "" {
			continue
		}

		if current.Len() > 0 && current.Len()+len(p)+2 > maxLen {
			chunks = append(chunks, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteString("\n\n")
		}
		current.WriteString(p)
	}

	if current.Len() > 0 {
		chunks = append(chunks, current.String())
	}

	return chunks
}

// SplitText splits a long string into chunks of approximately 'chunkSize'
// characters with an 'overlap' to preserve context at boundaries. Used by the
// embedding pipeline, where overlap is desirable; the ingestion path uses
// SplitByBudget instead.
func SplitText(text string, chunkSize int, overlap int) []string {
	if len(text) <= chunkSize {
		return []string{text}
	}

	var chunks []string
	runes := []rune(text)
	totalLen := len(runes)

	step := chunkSize - overlap
	if step <= 0 {
		step = chunkSize // fallback if overlap >= chunkSize
	}

	for i := 0; i < totalLen; i += step {
		end := i + chunkSize
		if end > totalLen {
			end = totalLen
		}

		chunks = append(chunks, string(runes[i:end]))

		if end == totalLen {
			break
		}
	}

	return chunks
}
