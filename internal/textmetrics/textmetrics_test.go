package textmetrics

import (
	"math"
	"strings"
	"testing"

	"github.com/pdiddy/review-engine/pkg/types"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestAnalyzeCounts(t *testing.T) {
	cfg := types.DefaultMetricsConfig()

	tests := []struct {
		name          string
		text          string
		wantWords     int
		wantSentences int
		wantAvg       float64
	}{
		{
			name:          "two plain sentences",
			text:          "One two three. Four five six.",
			wantWords:     6,
			wantSentences: 2,
			wantAvg:       3,
		},
		{
			name:          "no terminal punctuation is one sentence",
			text:          "just some words with no ending",
			wantWords:     6,
			wantSentences: 1,
			wantAvg:       6,
		},
		{
			name:          "empty fragments trimmed",
			text:          "First!! Second?",
			wantWords:     2,
			wantSentences: 2,
			wantAvg:       1,
		},
		{
			name:          "mixed terminators",
			text:          "Really? Yes! Fine.",
			wantWords:     3,
			wantSentences: 3,
			wantAvg:       1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := Analyze(tt.text, cfg)
			if m.WordCount != tt.wantWords {
				t.Errorf("WordCount = %d, want %d", m.WordCount, tt.wantWords)
			}
			if m.SentenceCount != tt.wantSentences {
				t.Errorf("SentenceCount = %d, want %d", m.SentenceCount, tt.wantSentences)
			}
			if !almostEqual(m.AvgSentenceLength, tt.wantAvg) {
				t.Errorf("AvgSentenceLength = %v, want %v", m.AvgSentenceLength, tt.wantAvg)
			}
		})
	}
}

func TestAnalyzeEmptyText(t *testing.T) {
	m, candidates := Analyze("", types.DefaultMetricsConfig())

	if m.WordCount != 0 || m.SentenceCount != 0 {
		t.Errorf("empty text: got %+v, want zero counts", m)
	}
	if len(candidates) != 0 {
		t.Errorf("empty text: got candidates %v", candidates)
	}
}

func TestSentenceInvariant(t *testing.T) {
	texts := []string{"word", "two words", "...", "ends mid sentence", "x. y"}
	cfg := types.DefaultMetricsConfig()

	for _, text := range texts {
		m, _ := Analyze(text, cfg)
		if m.WordCount > 0 && m.SentenceCount < 1 {
			t.Errorf("Analyze(%q): WordCount %d but SentenceCount %d", text, m.WordCount, m.SentenceCount)
		}
	}
}

func TestComplexWordRatio(t *testing.T) {
	cfg := types.DefaultMetricsConfig()

	// "characterizations" has 17 letters; punctuation and digits do not
	// count toward alphabetic length.
	m, _ := Analyze("characterizations are rare here.", cfg)
	if !almostEqual(m.ComplexWordRatio, 0.25) {
		t.Errorf("ComplexWordRatio = %v, want 0.25", m.ComplexWordRatio)
	}

	m, _ = Analyze("short words only here.", cfg)
	if !almostEqual(m.ComplexWordRatio, 0) {
		t.Errorf("ComplexWordRatio = %v, want 0", m.ComplexWordRatio)
	}
}

func TestReadabilityScale(t *testing.T) {
	cfg := types.DefaultMetricsConfig()

	tests := []struct {
		name   string
		avg    float64
		ratio  float64
		want   float64
	}{
		{"short clear prose keeps baseline", 12, 0, 100},
		{"pivot is inclusive", 18, 0, 100},
		{"length penalty", 28, 0, 80},
		{"complex penalty", 10, 0.2, 80},
		{"combined penalties", 28, 0.2, 60},
		{"floored at zero", 80, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := readability(tt.avg, tt.ratio, cfg); !almostEqual(got, tt.want) {
				t.Errorf("readability(%v, %v) = %v, want %v", tt.avg, tt.ratio, got, tt.want)
			}
		})
	}
}

func TestClarityCandidates(t *testing.T) {
	cfg := types.DefaultMetricsConfig()

	t.Run("long sentences", func(t *testing.T) {
		// 26 words, one sentence: average length exceeds the limit of 25.
		text := strings.Repeat("word ", 26) + "."
		_, candidates := Analyze(text, cfg)
		if len(candidates) != 1 || candidates[0].Code != CandidateLongSentences {
			t.Errorf("candidates = %v, want one long-sentence candidate", candidates)
		}
	})

	t.Run("complex vocabulary", func(t *testing.T) {
		// 1 of 4 words is complex: ratio 0.25 exceeds the 0.15 limit.
		text := "incomprehensibility in a box."
		_, candidates := Analyze(text, cfg)
		if len(candidates) != 1 || candidates[0].Code != CandidateComplexWords {
			t.Errorf("candidates = %v, want one complex-words candidate", candidates)
		}
	})

	t.Run("clean text has none", func(t *testing.T) {
		_, candidates := Analyze("Short text. Clear words. Easy read.", cfg)
		if len(candidates) != 0 {
			t.Errorf("candidates = %v, want none", candidates)
		}
	})

	t.Run("boundary values do not trigger", func(t *testing.T) {
		// Exactly 25 words in one sentence: the limit is strict.
		text := strings.Repeat("word ", 25)
		text = strings.TrimSpace(text) + "."
		_, candidates := Analyze(text, cfg)
		if len(candidates) != 0 {
			t.Errorf("candidates = %v, want none at the boundary", candidates)
		}
	})
}
