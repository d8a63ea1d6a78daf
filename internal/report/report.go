// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report compiles a finished review into its external JSON
// shape and persists it. The shape is a bit-exact contract: key order
// is fixed, scores are numbers, and nothing timestamp-dependent is
// included, so identical input text yields identical bytes.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pdiddy/review-engine/pkg/types"
)

// StatusComplete is the review status of every compiled report. The
// pipeline guarantees termination with a report once stage 1 begins, so
// there is no partial status.
const StatusComplete = "COMPLETE"

// Compile builds the external report from a finished review.
func Compile(rev *types.Review) types.Report {
	return types.Report{
		PaperID:      rev.PaperID,
		ReviewStatus: StatusComplete,
		ReaderExtraction: types.ReaderExtraction{
			Summary:            rev.Summary,
			TextLength:         len(rev.Document.RawText),
			SectionsIdentified: rev.Sections.NonEmptyCount(),
			KeyInsights:        keyInsights(rev),
		},
		QualityAssessment:     rev.Assessment,
		Critique:              compileCritique(rev.Critique),
		OverallRecommendation: rev.Recommendation,
		NextSteps:             nextSteps(rev),
		Notes:                 rev.Notes,
	}
}

func compileCritique(c types.Critique) types.CritiqueReport {
	issues := c.Issues
	if issues == nil {
		issues = []types.Issue{}
	}
	recs := c.Recommendations
	if recs == nil {
		recs = []string{}
	}
	return types.CritiqueReport{
		IssueCount:      len(issues),
		Issues:          issues,
		Recommendations: recs,
		Summary:         c.Summary,
	}
}

// keyInsights lists short deterministic statements about the content
// stage outcome.
func keyInsights(rev *types.Review) []string {
	insights := []string{
		fmt.Sprintf("Identified %d of %d canonical sections", rev.Sections.NonEmptyCount(), len(types.SectionKinds)),
		fmt.Sprintf("Detected %d distinct citations", rev.Citations.TotalCount),
	}
	if rev.Document.PageCount > 0 {
		insights = append(insights, fmt.Sprintf("Document spans %d pages", rev.Document.PageCount))
	}
	return insights
}

// nextSteps derives the actionable follow-up list from the critique, in
// priority order.
func nextSteps(rev *types.Review) []string {
	var critical, major int
	for _, issue := range rev.Critique.Issues {
		switch issue.Severity {
		case types.SeverityCritical:
			critical++
		case types.SeverityMajor:
			major++
		}
	}

	var steps []string
	if critical > 0 {
		steps = append(steps, fmt.Sprintf("Address %d critical issue(s) before resubmission", critical))
	}
	if major > 0 {
		steps = append(steps, fmt.Sprintf("Resolve %d major issue(s) to improve paper quality", major))
	}
	if q := rev.Assessment.OverallQuality; q == types.QualityGood || q == types.QualityExcellent {
		steps = append(steps, "Polish presentation: figures, tables, and proofreading")
	}
	if len(steps) == 0 {
		steps = append(steps, "Paper is ready for submission")
	}
	return steps
}

// Encode serializes a report as indented JSON with a trailing newline.
func Encode(rpt types.Report) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(rpt); err != nil {
		return nil, fmt.Errorf("encoding report: %w", err)
	}
	return buf.Bytes(), nil
}

// SaveResult describes a persisted report artifact.
type SaveResult struct {
	// Filepath is the absolute or results-relative path written.
	Filepath string `json:"filepath" yaml:"filepath"`

	// SizeBytes is the size of the written artifact.
	SizeBytes int64 `json:"size_bytes" yaml:"size_bytes"`
}

// Sink writes report artifacts into a results directory.
type Sink struct {
	// Dir is the results directory, created on first save.
	Dir string
}

// Save writes the report JSON to Dir/filename and reports the path and
// size written.
func (s Sink) Save(filename string, rpt types.Report) (SaveResult, error) {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return SaveResult{}, fmt.Errorf("creating results directory: %w", err)
	}

	data, err := Encode(rpt)
	if err != nil {
		return SaveResult{}, err
	}

	path := filepath.Join(s.Dir, filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return SaveResult{}, fmt.Errorf("writing %s: %w", path, err)
	}

	return SaveResult{Filepath: path, SizeBytes: int64(len(data))}, nil
}

// Filename returns the canonical artifact name for a paper id, with
// path separators flattened so ids derived from file paths stay inside
// the results directory.
func Filename(paperID string) string {
	base := filepath.Base(paperID)
	if ext := filepath.Ext(base); ext != "" {
		base = base[:len(base)-len(ext)]
	}
	if base == "" || base == "." || base == string(filepath.Separator) {
		base = "paper"
	}
	return base + "_review.json"
}
