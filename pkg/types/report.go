// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Report is the external JSON shape of a completed review. Other
// components depend on this shape bit-for-bit: key order follows field
// order below, scores are numbers (never strings), and no timestamp
// appears anywhere, so identical input text always serializes to
// identical bytes.
type Report struct {
	PaperID           string           `json:"paper_id"`
	ReviewStatus      string           `json:"review_status"`
	ReaderExtraction  ReaderExtraction `json:"reader_extraction"`
	QualityAssessment Assessment       `json:"quality_assessment"`
	Critique          CritiqueReport   `json:"critique"`

	// OverallRecommendation is the final disposition.
	OverallRecommendation Recommendation `json:"overall_recommendation"`

	// NextSteps lists actionable follow-ups in priority order.
	NextSteps []string `json:"next_steps"`

	// Notes carries non-fatal run notes such as a recovered input
	// failure. Omitted when empty so clean runs stay byte-stable.
	Notes []string `json:"notes,omitempty"`
}

// ReaderExtraction summarizes the content stage for the report.
type ReaderExtraction struct {
	// Summary is the extractive summary of the paper.
	Summary string `json:"summary"`

	// TextLength is the length of the raw text in bytes.
	TextLength int `json:"text_length"`

	// SectionsIdentified is the number of non-empty sections.
	SectionsIdentified int `json:"sections_identified"`

	// KeyInsights are short statements about the extraction outcome.
	KeyInsights []string `json:"key_insights"`
}

// CritiqueReport is the critique portion of the report.
type CritiqueReport struct {
	IssueCount      int      `json:"issue_count"`
	Issues          []Issue  `json:"issues"`
	Recommendations []string `json:"recommendations"`
	Summary         string   `json:"summary"`
}
