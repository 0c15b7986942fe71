package textsplit

import (
	"strings"
	"testing"
)

func TestSplitByBudgetRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		budget int
	}{
		{"empty", "", 100},
		{"shorter than one chunk", "hello world", 100},
		{"exact multiple", strings.Repeat("a", 800), 100},
		{"uneven tail", strings.Repeat("b", 1001), 50},
		{"multibyte runes", strings.Repeat("héllo wörld ", 300), 25},
		{"budget of one", "abcdefgh", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks := SplitByBudget(tt.text, tt.budget)

			if tt.text == "" {
				if len(chunks) != 0 {
					t.Fatalf("empty input produced %d chunks", len(chunks))
				}
				return
			}

			joined := strings.Join(chunks, "")
			if joined != tt.text {
				t.Errorf("concatenated chunks do not reproduce input (got %d chars, want %d)", len(joined), len(tt.text))
			}

			limit := tt.budget * CharsPerToken
			for i, c := range chunks {
				if n := len([]rune(c)); n > limit {
					t.Errorf("chunk %d has %d runes, exceeds limit %d", i, n, limit)
				}
			}
		})
	}
}

func TestSplitByBudgetNoOverlap(t *testing.T) {
	text := "0123456789abcdefghij"
	chunks := SplitByBudget(text, 1) // 4-char chunks

	want := []string{"0123", "4567", "89ab", "cdef", "ghij"}
	if len(chunks) != len(want) {
		t.Fatalf("got %d chunks, want %d", len(chunks), len(want))
	}
	for i := range want {
		if chunks[i] != want[i] {
			t.Errorf("chunk %d = %q, want %q", i, chunks[i], want[i])
		}
	}
}

func TestSplitParagraphs(t *testing.T) {
	t.Run("respects max length", func(t *testing.T) {
		text := strings.Repeat("short paragraph here.\n\n", 50)
		chunks := SplitParagraphs(text, 200)

		if len(chunks) < 2 {
			t.Fatalf("expected multiple chunks, got %d", len(chunks))
		}
		for i, c := range chunks {
			if len(c) > 200 {
				t.Errorf("chunk %d has length %d, exceeds 200", i, len(c))
			}
		}
	})

	t.Run("oversize single paragraph kept whole", func(t *testing.T) {
		big := strings.Repeat("x", 500)
		chunks := SplitParagraphs("small one\n\n"+big+"\n\nanother small", 100)

		found := false
		for _, c := range chunks {
			if c == big {
				found = true
			}
		}
		if !found {
			t.Error("oversize paragraph was split instead of kept as its own chunk")
		}
	})

	t.Run("blank input", func(t *testing.T) {
		if got := SplitParagraphs("  \n\n \n", 100); got != nil {
			t.Errorf("blank input produced %d chunks", len(got))
		}
	})
}

func TestSplitTextOverlap(t *testing.T) {
	text := strings.Repeat("z", 3000)
	chunks := SplitText(text, 1500, 200)

	if len(chunks) < 2 {
		t.Fatalf("expected overlapping chunks, got %d", len(chunks))
	}
	for i, c := range chunks {
		if len([]rune(c)) > 1500 {
			t.Errorf("chunk %d exceeds chunk size", i)
		}
	}
}
