// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package eval runs scripted review cases against the pipeline and
// checks the outcomes, for regression-testing the heuristic constants.
package eval

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/review-engine/internal/pipeline"
	"github.com/pdiddy/review-engine/pkg/types"
)

// Case is one scripted review with expectations on the outcome.
type Case struct {
	// ID is a short case identifier, e.g. "tc-001".
	ID string `yaml:"id" json:"id"`

	// Name describes the case.
	Name string `yaml:"name" json:"name"`

	// Paper is the review target: a sample id or file path.
	Paper string `yaml:"paper" json:"paper"`

	// Expect holds the checked outcome properties.
	Expect Expectation `yaml:"expect" json:"expect"`
}

// Expectation lists optional outcome checks; zero-valued fields are
// skipped, pointer fields check only when set.
type Expectation struct {
	// Recommendation checks the final disposition when non-empty.
	Recommendation types.Recommendation `yaml:"recommendation,omitempty" json:"recommendation,omitempty"`

	// OverallQuality checks the quality bucket when non-empty.
	OverallQuality types.QualityLevel `yaml:"overall_quality,omitempty" json:"overall_quality,omitempty"`

	// MinAverage and MaxAverage bound the average score inclusively.
	MinAverage *float64 `yaml:"min_average,omitempty" json:"min_average,omitempty"`
	MaxAverage *float64 `yaml:"max_average,omitempty" json:"max_average,omitempty"`

	// MaxIssues bounds the issue count inclusively.
	MaxIssues *int `yaml:"max_issues,omitempty" json:"max_issues,omitempty"`

	// MinCitations bounds the detected citation count inclusively.
	MinCitations *int `yaml:"min_citations,omitempty" json:"min_citations,omitempty"`
}

// casesFile is the YAML document shape of a case file.
type casesFile struct {
	Cases []Case `yaml:"cases"`
}

// LoadCases reads review cases from a YAML file.
func LoadCases(path string) ([]Case, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading cases %s: %w", path, err)
	}
	var f casesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing cases %s: %w", path, err)
	}
	if len(f.Cases) == 0 {
		return nil, fmt.Errorf("no cases in %s", path)
	}
	return f.Cases, nil
}

// Result is the outcome of one case.
type Result struct {
	ID      string        `json:"id"`
	Name    string        `json:"name"`
	Passed  bool          `json:"passed"`
	Latency time.Duration `json:"latency"`

	// Failures lists each unmet expectation.
	Failures []string `json:"failures,omitempty"`
}

// Summary aggregates a harness run.
type Summary struct {
	Passed  int      `json:"passed"`
	Failed  int      `json:"failed"`
	Results []Result `json:"results"`
}

// Total returns the number of cases run.
func (s Summary) Total() int { return s.Passed + s.Failed }

// HasFailures reports whether any case failed.
func (s Summary) HasFailures() bool { return s.Failed > 0 }

// Run executes every case against the reviewer and writes per-case
// progress to w. A pipeline error fails the case rather than aborting
// the harness.
func Run(ctx context.Context, rv *pipeline.Reviewer, cases []Case, w io.Writer) Summary {
	var summary Summary

	for _, c := range cases {
		start := time.Now()
		rev, err := rv.Review(ctx, c.Paper)
		latency := time.Since(start)

		var failures []string
		if err != nil {
			failures = []string{fmt.Sprintf("pipeline error: %v", err)}
		} else {
			failures = check(c.Expect, rev)
		}

		result := Result{
			ID:       c.ID,
			Name:     c.Name,
			Passed:   len(failures) == 0,
			Latency:  latency,
			Failures: failures,
		}
		summary.Results = append(summary.Results, result)

		if result.Passed {
			summary.Passed++
			fmt.Fprintf(w, "passed  [%s] %s (%v)\n", c.ID, c.Name, latency.Round(time.Microsecond))
		} else {
			summary.Failed++
			fmt.Fprintf(w, "FAILED  [%s] %s\n", c.ID, c.Name)
			for _, f := range failures {
				fmt.Fprintf(w, "        %s\n", f)
			}
		}
	}

	fmt.Fprintf(w, "%d/%d cases passed\n", summary.Passed, summary.Total())
	return summary
}

// check compares one review against the case expectations.
func check(e Expectation, rev *types.Review) []string {
	var failures []string

	if e.Recommendation != "" && rev.Recommendation != e.Recommendation {
		failures = append(failures, fmt.Sprintf("recommendation = %s, want %s", rev.Recommendation, e.Recommendation))
	}
	if e.OverallQuality != "" && rev.Assessment.OverallQuality != e.OverallQuality {
		failures = append(failures, fmt.Sprintf("overall quality = %s, want %s", rev.Assessment.OverallQuality, e.OverallQuality))
	}
	if e.MinAverage != nil && rev.Assessment.AverageScore < *e.MinAverage {
		failures = append(failures, fmt.Sprintf("average %.1f below minimum %.1f", rev.Assessment.AverageScore, *e.MinAverage))
	}
	if e.MaxAverage != nil && rev.Assessment.AverageScore > *e.MaxAverage {
		failures = append(failures, fmt.Sprintf("average %.1f above maximum %.1f", rev.Assessment.AverageScore, *e.MaxAverage))
	}
	if e.MaxIssues != nil && len(rev.Critique.Issues) > *e.MaxIssues {
		failures = append(failures, fmt.Sprintf("%d issue(s), allowed at most %d", len(rev.Critique.Issues), *e.MaxIssues))
	}
	if e.MinCitations != nil && rev.Citations.TotalCount < *e.MinCitations {
		failures = append(failures, fmt.Sprintf("%d citation(s), want at least %d", rev.Citations.TotalCount, *e.MinCitations))
	}

	return failures
}
