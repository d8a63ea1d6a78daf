package eval

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pdiddy/review-engine/internal/pipeline"
	"github.com/pdiddy/review-engine/pkg/types"
)

const strongSample = `Abstract
We propose a fast canonical widget calibrator. It is simple.

Introduction
We propose a novel scheme. Prior tools are slow.

Methodology
We derive the estimator step by step. Each step is exact.

Results
It works on all runs [1] [2] [3] [4] [5] [6] [7] [8] [9] [10]
and more [11] [12] [13] [14] [15] [16] [17] [18] [19] [20]
and more [21] [22] [23] [24] [25] [26] [27] [28] [29] [30]
and more [31] [32] [33] [34] [35] across every benchmark.

Conclusion
Calibration works. Future work extends it.

References
Numbered list of sources.`

const weakSample = `Plain prose with no structure whatsoever. There is nothing else here.`

func writeSamples(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range map[string]string{
		"strong_paper.txt": strongSample,
		"weak_paper.txt":   weakSample,
	} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func newReviewer(t *testing.T, samplesDir string) *pipeline.Reviewer {
	t.Helper()
	cfg := types.DefaultPipelineConfig()
	cfg.SamplesDir = samplesDir
	rv, err := pipeline.New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	return rv
}

func intPtr(n int) *int           { return &n }
func floatPtr(f float64) *float64 { return &f }

func TestRunClassifiesCases(t *testing.T) {
	rv := newReviewer(t, writeSamples(t))

	cases := []Case{
		{
			ID:    "tc-001",
			Name:  "strong paper accepted",
			Paper: "strong_paper",
			Expect: Expectation{
				Recommendation: types.RecommendAccept,
				MaxIssues:      intPtr(0),
				MinCitations:   intPtr(35),
			},
		},
		{
			ID:    "tc-002",
			Name:  "weak paper rejected",
			Paper: "weak_paper",
			Expect: Expectation{
				Recommendation: types.RecommendReject,
				MaxAverage:     floatPtr(4),
			},
		},
		{
			ID:    "tc-003",
			Name:  "deliberately wrong expectation",
			Paper: "weak_paper",
			Expect: Expectation{
				Recommendation: types.RecommendAccept,
			},
		},
	}

	var out strings.Builder
	summary := Run(context.Background(), rv, cases, &out)

	if summary.Passed != 2 || summary.Failed != 1 {
		t.Fatalf("summary = %d passed / %d failed, want 2/1\n%s", summary.Passed, summary.Failed, out.String())
	}
	if !summary.HasFailures() {
		t.Error("HasFailures() = false, want true")
	}
	if summary.Results[2].Passed || len(summary.Results[2].Failures) == 0 {
		t.Errorf("tc-003 = %+v, want failure details", summary.Results[2])
	}
	if !strings.Contains(out.String(), "2/3 cases passed") {
		t.Errorf("output = %q", out.String())
	}
}

func TestRunUnknownPaperFailsCase(t *testing.T) {
	rv := newReviewer(t, t.TempDir())

	// An unknown sample is absorbed by the pipeline: the review is
	// produced from empty content and the expectations decide the case.
	cases := []Case{{
		ID:     "tc-404",
		Name:   "missing paper",
		Paper:  "ghost",
		Expect: Expectation{Recommendation: types.RecommendAccept},
	}}

	summary := Run(context.Background(), rv, cases, io.Discard)
	if summary.Failed != 1 {
		t.Fatalf("summary = %+v, want one failed case", summary)
	}
}

func TestLoadCases(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cases.yaml")
	content := `cases:
  - id: tc-001
    name: strong paper accepted
    paper: strong_paper
    expect:
      recommendation: ACCEPT
      max_issues: 0
  - id: tc-002
    name: weak paper rejected
    paper: weak_paper
    expect:
      recommendation: REJECT
      max_average: 4.0
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cases, err := LoadCases(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(cases) != 2 {
		t.Fatalf("got %d cases, want 2", len(cases))
	}
	if cases[0].Expect.Recommendation != types.RecommendAccept {
		t.Errorf("case 0 recommendation = %q", cases[0].Expect.Recommendation)
	}
	if cases[0].Expect.MaxIssues == nil || *cases[0].Expect.MaxIssues != 0 {
		t.Errorf("case 0 max_issues = %v, want 0", cases[0].Expect.MaxIssues)
	}
	if cases[1].Expect.MaxAverage == nil || *cases[1].Expect.MaxAverage != 4.0 {
		t.Errorf("case 1 max_average = %v, want 4.0", cases[1].Expect.MaxAverage)
	}
}

func TestLoadCasesErrors(t *testing.T) {
	if _, err := LoadCases(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadCases succeeded for missing file")
	}

	empty := filepath.Join(t.TempDir(), "empty.yaml")
	if err := os.WriteFile(empty, []byte("cases: []\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadCases(empty); err == nil {
		t.Error("LoadCases succeeded for empty case list")
	}
}
