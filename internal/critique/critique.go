// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package critique synthesizes severity-classified issues from stage
// outputs and derives the final recommendation.
package critique

import (
	"fmt"
	"sort"

	"github.com/pdiddy/review-engine/internal/textmetrics"
	"github.com/pdiddy/review-engine/pkg/types"
)

// referencesScoreCeiling is the citation sub-score at or below which an
// under-citation issue is raised. A score of 4 corresponds to roughly
// seven detected citations under the default formula.
const referencesScoreCeiling = 4

// completenessFloor is the completeness sub-score below which a
// missing-sections issue is raised when nothing critical was.
const completenessFloor = 7

// majorRevisionThreshold is the average score below which outstanding
// major issues force a major revision instead of minor revisions.
const majorRevisionThreshold = 6.0

// Synthesize evaluates the issue rules in fixed order and returns the
// critique. Rule order determines the default sort, since issues are
// ordered severity-descending with ties broken by emission order:
//
//  1. missing methodology or results         -> CRITICAL STRUCTURE
//  2. citation score at or below the ceiling -> MAJOR REFERENCES
//  3. each clarity candidate                 -> MAJOR CLARITY
//  4. low completeness, nothing critical     -> MINOR STRUCTURE
//
// The recommendations list carries one actionable sentence per issue in
// matching order.
func Synthesize(sections types.SectionMap, assessment types.Assessment, citations types.CitationInventory, candidates []textmetrics.Candidate) types.Critique {
	var issues []types.Issue

	if sections[types.SectionMethodology] == "" {
		issues = append(issues, types.Issue{
			Severity:       types.SeverityCritical,
			Category:       types.CategoryStructure,
			Description:    "Methodology section is missing or could not be identified",
			Recommendation: "Add a methodology section describing how the work was carried out",
		})
	}
	if sections[types.SectionResults] == "" {
		issues = append(issues, types.Issue{
			Severity:       types.SeverityCritical,
			Category:       types.CategoryStructure,
			Description:    "Results section is missing or could not be identified",
			Recommendation: "Add a results section reporting the experimental findings",
		})
	}

	if assessment.CitationScore <= referencesScoreCeiling {
		issues = append(issues, types.Issue{
			Severity:       types.SeverityMajor,
			Category:       types.CategoryReferences,
			Description:    fmt.Sprintf("Insufficient citations (%d detected)", citations.TotalCount),
			Recommendation: "Add references situating the work in the existing literature",
		})
	}

	for _, c := range candidates {
		issues = append(issues, types.Issue{
			Severity:       types.SeverityMajor,
			Category:       types.CategoryClarity,
			Description:    c.Description,
			Recommendation: clarityRecommendation(c.Code),
		})
	}

	hasCritical := len(issues) > 0 && issues[0].Severity == types.SeverityCritical
	if assessment.CompletenessScore < completenessFloor && !hasCritical {
		issues = append(issues, types.Issue{
			Severity:       types.SeverityMinor,
			Category:       types.CategoryStructure,
			Description:    "Several expected sections are missing",
			Recommendation: "Consider adding the missing canonical sections",
		})
	}

	sort.SliceStable(issues, func(i, j int) bool {
		return issues[i].Severity.Rank() < issues[j].Severity.Rank()
	})

	recommendations := make([]string, 0, len(issues))
	for _, issue := range issues {
		recommendations = append(recommendations, issue.Recommendation)
	}

	return types.Critique{
		Issues:          issues,
		Recommendations: recommendations,
		Summary:         summarize(issues),
	}
}

// clarityRecommendation maps a clarity candidate to its actionable
// sentence.
func clarityRecommendation(code textmetrics.CandidateCode) string {
	switch code {
	case textmetrics.CandidateLongSentences:
		return "Break long sentences into shorter, clearer ones"
	case textmetrics.CandidateComplexWords:
		return "Replace overly complex vocabulary with plainer wording"
	}
	return "Revise the flagged passages for clarity"
}

// Recommend derives the final disposition from the critique and the
// assessment. Any critical issue rejects outright; outstanding major
// issues require a major revision below the average-score threshold and
// minor revisions above it; minor or no issues accept.
func Recommend(c types.Critique, assessment types.Assessment) types.Recommendation {
	var critical, major int
	for _, issue := range c.Issues {
		switch issue.Severity {
		case types.SeverityCritical:
			critical++
		case types.SeverityMajor:
			major++
		}
	}

	switch {
	case critical > 0:
		return types.RecommendReject
	case major > 0:
		if assessment.AverageScore < majorRevisionThreshold {
			return types.RecommendMajorRevision
		}
		return types.RecommendMinorRevisions
	default:
		return types.RecommendAccept
	}
}

// summarize builds the one-line issue count breakdown.
func summarize(issues []types.Issue) string {
	if len(issues) == 0 {
		return "No significant issues identified."
	}

	counts := map[types.Severity]int{}
	for _, issue := range issues {
		counts[issue.Severity]++
	}

	out := fmt.Sprintf("Identified %d issue(s):", len(issues))
	sep := " "
	for _, sev := range []types.Severity{types.SeverityCritical, types.SeverityMajor, types.SeverityMinor} {
		if counts[sev] == 0 {
			continue
		}
		out += fmt.Sprintf("%s%d %s", sep, counts[sev], sev)
		sep = ", "
	}
	return out + "."
}
