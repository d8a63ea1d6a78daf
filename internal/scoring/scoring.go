// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scoring converts segmentation, citation, and quality outputs
// into the four 0-10 sub-scores and their aggregate. Every formula is a
// heuristic with configurable constants; the defaults are documented in
// types.ScoringConfig and pinned by the test suite.
package scoring

import (
	"math"
	"strings"

	"github.com/pdiddy/review-engine/pkg/types"
)

// Score computes the assessment for one paper. All sub-scores are
// clamped to [0,10] and the average is their arithmetic mean rounded to
// one decimal. The overall quality bucket is a step function of the
// rounded average: below FairThreshold POOR, then FAIR, GOOD, and
// EXCELLENT at or above ExcellentThreshold.
func Score(sections types.SectionMap, citations types.CitationInventory, metrics types.QualityMetrics, cfg types.ScoringConfig) types.Assessment {
	a := types.Assessment{
		NoveltyScore:      noveltyScore(sections, cfg),
		MethodologyScore:  methodologyScore(sections, metrics, cfg),
		CitationScore:     citationScore(citations.TotalCount, cfg),
		CompletenessScore: completenessScore(sections),
	}

	sum := a.NoveltyScore + a.MethodologyScore + a.CitationScore + a.CompletenessScore
	a.AverageScore = math.Round(float64(sum)/4*10) / 10
	a.OverallQuality = qualityLevel(a.AverageScore, cfg)
	return a
}

// citationScore is round(base + count/divisor) capped at 10. Zero
// citations still score the base (3 by default) because some citation
// styles may simply be undetected; growth saturates near 35 citations.
func citationScore(count int, cfg types.ScoringConfig) int {
	score := int(math.Round(cfg.CitationBase + float64(count)/cfg.CitationDivisor))
	return clamp(score)
}

// completenessScore is round(10 * nonEmpty/6): all six sections score
// 10, each missing section costs about 1.67 points before rounding.
func completenessScore(sections types.SectionMap) int {
	ratio := float64(sections.NonEmptyCount()) / float64(len(types.SectionKinds))
	return clamp(int(math.Round(10 * ratio)))
}

// methodologyScore approximates methodological quality by presence and
// prose clarity: base (5) when the methodology section is non-empty,
// zero otherwise, plus up to MethodologyReadabilityBonus (3) scaled
// linearly by the readability score. There is no semantic understanding
// behind this; it is a structural proxy.
func methodologyScore(sections types.SectionMap, metrics types.QualityMetrics, cfg types.ScoringConfig) int {
	score := 0.0
	if sections[types.SectionMethodology] != "" {
		score = float64(cfg.MethodologyBase)
	}
	score += cfg.MethodologyReadabilityBonus * metrics.ReadabilityScore / 100

	return clamp(int(math.Round(score)))
}

// noveltyScore is a coarse stand-in for contribution assessment: base
// (5), plus a bonus when the introduction carries a comparative-claim
// keyword, plus a bonus when a results section exists.
func noveltyScore(sections types.SectionMap, cfg types.ScoringConfig) int {
	score := cfg.NoveltyBase

	intro := strings.ToLower(sections[types.SectionIntroduction])
	for _, kw := range cfg.NoveltyKeywords {
		if strings.Contains(intro, kw) {
			score += cfg.NoveltyKeywordBonus
			break
		}
	}

	if sections[types.SectionResults] != "" {
		score += cfg.NoveltyResultsBonus
	}

	return clamp(score)
}

// qualityLevel buckets the rounded average score.
func qualityLevel(avg float64, cfg types.ScoringConfig) types.QualityLevel {
	switch {
	case avg < cfg.FairThreshold:
		return types.QualityPoor
	case avg < cfg.GoodThreshold:
		return types.QualityFair
	case avg < cfg.ExcellentThreshold:
		return types.QualityGood
	default:
		return types.QualityExcellent
	}
}

// clamp bounds a sub-score to [0,10]. The clamping makes a score
// outside the range impossible by construction; if one is ever observed
// downstream it indicates a defect, not a data problem.
func clamp(score int) int {
	if score < 0 {
		return 0
	}
	if score > 10 {
		return 10
	}
	return score
}
