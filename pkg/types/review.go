// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the data structures shared across pipeline stages.
package types

import "time"

// SectionKind identifies one of the six canonical paper sections.
type SectionKind string

const (
	SectionAbstract     SectionKind = "abstract"
	SectionIntroduction SectionKind = "introduction"
	SectionMethodology  SectionKind = "methodology"
	SectionResults      SectionKind = "results"
	SectionConclusion   SectionKind = "conclusion"
	SectionReferences   SectionKind = "references"
)

// SectionKinds lists the canonical sections in document order.
var SectionKinds = []SectionKind{
	SectionAbstract,
	SectionIntroduction,
	SectionMethodology,
	SectionResults,
	SectionConclusion,
	SectionReferences,
}

// SectionMap maps every canonical section kind to its extracted text.
// All six keys are always present; an unmatched section holds the empty
// string. Consumers index directly and never test for key existence.
type SectionMap map[SectionKind]string

// NewSectionMap returns a SectionMap with all six keys set to "".
func NewSectionMap() SectionMap {
	m := make(SectionMap, len(SectionKinds))
	for _, k := range SectionKinds {
		m[k] = ""
	}
	return m
}

// NonEmptyCount returns the number of sections with extracted text.
func (m SectionMap) NonEmptyCount() int {
	n := 0
	for _, k := range SectionKinds {
		if m[k] != "" {
			n++
		}
	}
	return n
}

// CitationStyle identifies one citation pattern family.
type CitationStyle string

const (
	StyleBracketNumeric CitationStyle = "bracket_numeric"
	StyleParenthetical  CitationStyle = "parenthetical"
	StyleInlineAuthor   CitationStyle = "inline_author_year"
)

// CitationStyles lists the pattern families in scan order.
var CitationStyles = []CitationStyle{
	StyleBracketNumeric,
	StyleParenthetical,
	StyleInlineAuthor,
}

// CitationInventory is the output of the citation extractor.
type CitationInventory struct {
	// TotalCount is the size of the deduplicated union of canonical
	// citation keys across all styles. A citation that matches two
	// pattern families is counted once, so TotalCount is at most the
	// sum of the per-style list lengths.
	TotalCount int `json:"total_count" yaml:"total_count"`

	// ByStyle maps each style to its raw matches in document order.
	// Raw lists may contain verbatim duplicates.
	ByStyle map[CitationStyle][]string `json:"by_style" yaml:"by_style"`
}

// QualityMetrics holds sentence and word statistics for a text.
type QualityMetrics struct {
	// WordCount is the number of whitespace-separated tokens.
	WordCount int `json:"word_count" yaml:"word_count"`

	// SentenceCount is the number of non-empty sentence units. It is
	// at least 1 whenever WordCount is positive.
	SentenceCount int `json:"sentence_count" yaml:"sentence_count"`

	// AvgSentenceLength is WordCount / SentenceCount.
	AvgSentenceLength float64 `json:"avg_sentence_length" yaml:"avg_sentence_length"`

	// ComplexWordRatio is the fraction of words whose alphabetic length
	// exceeds the configured complex-word threshold. Range [0,1].
	ComplexWordRatio float64 `json:"complex_word_ratio" yaml:"complex_word_ratio"`

	// ReadabilityScore is the coarse linear readability estimate in
	// [0,100]. Higher is more readable.
	ReadabilityScore float64 `json:"readability_score" yaml:"readability_score"`
}

// QualityLevel is the coarse overall quality bucket of an assessment.
type QualityLevel string

const (
	QualityPoor      QualityLevel = "POOR"
	QualityFair      QualityLevel = "FAIR"
	QualityGood      QualityLevel = "GOOD"
	QualityExcellent QualityLevel = "EXCELLENT"
)

// Assessment holds the four sub-scores and their aggregate.
type Assessment struct {
	// NoveltyScore estimates contribution novelty, 0-10.
	NoveltyScore int `json:"novelty_score" yaml:"novelty_score"`

	// MethodologyScore estimates methodological soundness, 0-10.
	MethodologyScore int `json:"methodology_score" yaml:"methodology_score"`

	// CitationScore reflects citation coverage, 0-10.
	CitationScore int `json:"citation_score" yaml:"citation_score"`

	// CompletenessScore reflects section completeness, 0-10.
	CompletenessScore int `json:"completeness_score" yaml:"completeness_score"`

	// AverageScore is the arithmetic mean of the four sub-scores,
	// rounded to one decimal.
	AverageScore float64 `json:"average_score" yaml:"average_score"`

	// OverallQuality is the threshold bucket of AverageScore.
	OverallQuality QualityLevel `json:"overall_quality" yaml:"overall_quality"`
}

// Severity classifies how serious an issue is. CRITICAL > MAJOR > MINOR.
type Severity string

const (
	SeverityCritical Severity = "CRITICAL"
	SeverityMajor    Severity = "MAJOR"
	SeverityMinor    Severity = "MINOR"
)

// Rank returns the sort weight of a severity; lower sorts first.
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 0
	case SeverityMajor:
		return 1
	case SeverityMinor:
		return 2
	}
	return 3
}

// IssueCategory classifies what aspect of the paper an issue concerns.
type IssueCategory string

const (
	CategoryStructure   IssueCategory = "STRUCTURE"
	CategoryClarity     IssueCategory = "CLARITY"
	CategoryMethodology IssueCategory = "METHODOLOGY"
	CategoryReferences  IssueCategory = "REFERENCES"
)

// Issue is one identified problem with the paper.
type Issue struct {
	// Severity is CRITICAL, MAJOR, or MINOR.
	Severity Severity `json:"severity" yaml:"severity"`

	// Category is the aspect of the paper the issue concerns.
	Category IssueCategory `json:"category" yaml:"category"`

	// Description states the problem.
	Description string `json:"issue" yaml:"issue"`

	// Recommendation is one actionable sentence addressing the problem.
	Recommendation string `json:"recommendation" yaml:"recommendation"`
}

// Recommendation is the final disposition of a review.
type Recommendation string

const (
	RecommendAccept         Recommendation = "ACCEPT"
	RecommendMinorRevisions Recommendation = "ACCEPT_WITH_MINOR_REVISIONS"
	RecommendMajorRevision  Recommendation = "MAJOR_REVISION_REQUIRED"
	RecommendReject         Recommendation = "REJECT"
)

// Critique holds the synthesized issues and their recommendations.
type Critique struct {
	// Issues is sorted severity-descending; ties keep emission order.
	Issues []Issue `json:"issues" yaml:"issues"`

	// Recommendations holds one actionable sentence per issue, in the
	// same order as Issues.
	Recommendations []string `json:"recommendations" yaml:"recommendations"`

	// Summary is a one-line count breakdown of the issues.
	Summary string `json:"summary" yaml:"summary"`
}

// Document is the text form of a paper as produced by an extractor.
// It is immutable once constructed.
type Document struct {
	// ID identifies the paper: a sample id, or the source file path.
	ID string `json:"id" yaml:"id"`

	// RawText is the full extracted text.
	RawText string `json:"raw_text" yaml:"raw_text"`

	// PageCount is the number of source pages, zero when unknown.
	PageCount int `json:"page_count" yaml:"page_count"`

	// Metadata holds extractor-provided document metadata.
	Metadata DocumentMetadata `json:"metadata" yaml:"metadata"`
}

// DocumentMetadata carries best-effort metadata from the extractor.
type DocumentMetadata struct {
	Title        string `json:"title" yaml:"title"`
	Author       string `json:"author" yaml:"author"`
	CreationDate string `json:"creation_date" yaml:"creation_date"`
}

// ToolCall is an immutable audit record of one tool invocation during a
// pipeline run. Entries are appended to a run-scoped log and never
// mutated afterward. Duration is audit metadata only and never feeds
// scoring, so identical inputs still produce identical reports.
type ToolCall struct {
	// Tool is the tool name, e.g. "extract_sections".
	Tool string `json:"tool" yaml:"tool"`

	// Input summarizes the tool input parameters.
	Input map[string]any `json:"input" yaml:"input"`

	// Output is a one-line description of the tool result.
	Output string `json:"output" yaml:"output"`

	// Duration is the wall-clock time of the invocation.
	Duration time.Duration `json:"duration" yaml:"duration"`

	// Success reports whether the tool completed without error.
	Success bool `json:"success" yaml:"success"`

	// Error holds the failure message when Success is false.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Review is the terminal artifact of one pipeline run. It aggregates
// every stage output plus the run's tool-call log, and is never mutated
// after the orchestrator returns it.
type Review struct {
	// PaperID identifies the reviewed document.
	PaperID string `json:"paper_id" yaml:"paper_id"`

	// Document is the ingested document, empty-valued on input failure.
	Document Document `json:"document" yaml:"document"`

	// Sections is the content-stage section map.
	Sections SectionMap `json:"sections" yaml:"sections"`

	// Summary is the extractive summary from the content stage.
	Summary string `json:"summary" yaml:"summary"`

	// Citations is the assessment-stage citation inventory.
	Citations CitationInventory `json:"citations" yaml:"citations"`

	// Metrics holds the text quality metrics.
	Metrics QualityMetrics `json:"metrics" yaml:"metrics"`

	// Assessment holds the four sub-scores and aggregate.
	Assessment Assessment `json:"assessment" yaml:"assessment"`

	// Critique holds the synthesized issues.
	Critique Critique `json:"critique" yaml:"critique"`

	// Recommendation is the final disposition.
	Recommendation Recommendation `json:"recommendation" yaml:"recommendation"`

	// Notes carries non-fatal run notes, e.g. an input failure that was
	// recovered with empty content.
	Notes []string `json:"notes,omitempty" yaml:"notes,omitempty"`

	// ToolCalls is the run's append-only audit log in invocation order.
	ToolCalls []ToolCall `json:"tool_calls" yaml:"tool_calls"`
}
