// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package textmetrics computes sentence and word statistics plus a
// coarse readability score for paper text.
package textmetrics

import (
	"strings"
	"unicode"

	"github.com/pdiddy/review-engine/pkg/types"
)

// Candidate is a clarity issue candidate. Candidates feed the issue
// synthesizer; they are not reported independently.
type Candidate struct {
	// Code identifies the candidate kind.
	Code CandidateCode

	// Description states the problem for the synthesized issue.
	Description string
}

// CandidateCode enumerates the clarity candidate kinds.
type CandidateCode string

const (
	// CandidateLongSentences flags an average sentence length above the
	// configured limit.
	CandidateLongSentences CandidateCode = "long_sentences"

	// CandidateComplexWords flags a complex-word ratio above the
	// configured limit.
	CandidateComplexWords CandidateCode = "complex_words"
)

// Analyze splits text into sentence units on terminal punctuation and
// words on whitespace, then computes the quality metrics and any
// clarity issue candidates. Empty text yields zero metrics and no
// candidates; non-empty text always counts at least one sentence, even
// without terminal punctuation.
func Analyze(text string, cfg types.MetricsConfig) (types.QualityMetrics, []Candidate) {
	var m types.QualityMetrics

	words := strings.Fields(text)
	m.WordCount = len(words)
	if m.WordCount == 0 {
		return m, nil
	}

	m.SentenceCount = countSentences(text)

	complexWords := 0
	for _, w := range words {
		if alphaLen(w) > cfg.ComplexWordLength {
			complexWords++
		}
	}

	m.AvgSentenceLength = float64(m.WordCount) / float64(m.SentenceCount)
	m.ComplexWordRatio = float64(complexWords) / float64(m.WordCount)
	m.ReadabilityScore = readability(m.AvgSentenceLength, m.ComplexWordRatio, cfg)

	var candidates []Candidate
	if m.AvgSentenceLength > cfg.LongSentenceLimit {
		candidates = append(candidates, Candidate{
			Code:        CandidateLongSentences,
			Description: "Sentences are too long on average, which obscures the argument",
		})
	}
	if m.ComplexWordRatio > cfg.ComplexRatioLimit {
		candidates = append(candidates, Candidate{
			Code:        CandidateComplexWords,
			Description: "Vocabulary is excessively complex for the target audience",
		})
	}

	return m, candidates
}

// countSentences counts non-empty sentence units split on terminal
// punctuation (. ! ?). Text with words but no terminal punctuation is
// one sentence.
func countSentences(text string) int {
	count := 0
	inFragment := false
	for _, r := range text {
		switch {
		case r == '.' || r == '!' || r == '?':
			if inFragment {
				count++
			}
			inFragment = false
		case !unicode.IsSpace(r):
			inFragment = true
		}
	}
	if inFragment {
		count++
	}
	if count == 0 {
		count = 1
	}
	return count
}

// alphaLen counts the letters in a token, ignoring digits and
// punctuation, so "state-of-the-art." measures its alphabetic content.
func alphaLen(token string) int {
	n := 0
	for _, r := range token {
		if unicode.IsLetter(r) {
			n++
		}
	}
	return n
}

// readability applies the fixed linear scale: start at the baseline
// (100), subtract SentencePenalty (2) for each word of average sentence
// length beyond SentencePivot (18), subtract ComplexPenalty (100) times
// the complex-word ratio, then clamp to [0, baseline]. The constants
// approximate a Flesch-Kincaid-style grade coarsely and are documented
// defaults in MetricsConfig, not externally mandated values.
func readability(avgSentenceLength, complexRatio float64, cfg types.MetricsConfig) float64 {
	score := cfg.Baseline
	if excess := avgSentenceLength - cfg.SentencePivot; excess > 0 {
		score -= cfg.SentencePenalty * excess
	}
	score -= cfg.ComplexPenalty * complexRatio

	if score < 0 {
		return 0
	}
	if score > cfg.Baseline {
		return cfg.Baseline
	}
	return score
}
