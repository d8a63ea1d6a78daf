package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pdiddy/review-engine/internal/report"
	"github.com/pdiddy/review-engine/pkg/types"
)

// stubSource returns a fixed document or a fixed error.
type stubSource struct {
	text string
	err  error
}

func (s stubSource) Fetch(target string) (types.Document, error) {
	if s.err != nil {
		return types.Document{}, s.err
	}
	return types.Document{ID: target, RawText: s.text}, nil
}

// strongPaper has all six sections, 35 distinct citations, and short
// clear sentences.
func strongPaper() string {
	var b strings.Builder
	b.WriteString("Abstract\nWe propose a fast widget calibrator. It is simple. It works well.\n\n")
	b.WriteString("Introduction\nWe propose a novel closed-form scheme. Prior tools are slow.\n\n")
	b.WriteString("Methodology\nWe derive the estimator in closed form. Each step is exact.\n\n")
	b.WriteString("Results\nThe method is faster on all runs. Errors stay small.\n")
	for i := 1; i <= 35; i++ {
		fmt.Fprintf(&b, "Run %d confirms the claim [%d]. ", i, i)
	}
	b.WriteString("\n\nConclusion\nClosed-form calibration works. Future work extends it.\n\n")
	b.WriteString("References\nNumbered list of sources.\n")
	return b.String()
}

const weakPaper = "This paper is plain prose. It has no headings at all. It cites no sources either."

func newTestReviewer(t *testing.T, opts ...Option) *Reviewer {
	t.Helper()
	rv, err := New(types.DefaultPipelineConfig(), opts...)
	if err != nil {
		t.Fatal(err)
	}
	return rv
}

func TestReviewStrongPaperAccepted(t *testing.T) {
	rv := newTestReviewer(t, WithSource(stubSource{text: strongPaper()}))

	rev, err := rv.Review(context.Background(), "strong-paper")
	if err != nil {
		t.Fatal(err)
	}

	if rev.Assessment.CompletenessScore != 10 {
		t.Errorf("CompletenessScore = %d, want 10", rev.Assessment.CompletenessScore)
	}
	if rev.Assessment.CitationScore != 10 {
		t.Errorf("CitationScore = %d, want 10 (35 distinct citations)", rev.Assessment.CitationScore)
	}
	if len(rev.Critique.Issues) != 0 {
		t.Errorf("Issues = %+v, want none", rev.Critique.Issues)
	}
	if rev.Recommendation != types.RecommendAccept {
		t.Errorf("Recommendation = %v, want ACCEPT", rev.Recommendation)
	}
	if rev.Summary == "" {
		t.Error("Summary is empty")
	}
}

func TestReviewWeakPaperRejected(t *testing.T) {
	rv := newTestReviewer(t, WithSource(stubSource{text: weakPaper}))

	rev, err := rv.Review(context.Background(), "weak-paper")
	if err != nil {
		t.Fatal(err)
	}

	// No heading matched, so the whole text lands in the abstract.
	if rev.Sections[types.SectionAbstract] != weakPaper {
		t.Errorf("abstract = %q, want fallback full text", rev.Sections[types.SectionAbstract])
	}
	if rev.Assessment.CitationScore != 3 {
		t.Errorf("CitationScore = %d, want baseline 3", rev.Assessment.CitationScore)
	}

	critical := 0
	for _, issue := range rev.Critique.Issues {
		if issue.Severity == types.SeverityCritical {
			critical++
		}
	}
	if critical == 0 {
		t.Errorf("Issues = %+v, want at least one CRITICAL", rev.Critique.Issues)
	}
	if rev.Recommendation != types.RecommendReject {
		t.Errorf("Recommendation = %v, want REJECT", rev.Recommendation)
	}
}

func TestReviewSourceFailureProducesReview(t *testing.T) {
	rv := newTestReviewer(t, WithSource(stubSource{err: errors.New("paper not found: ghost")}))

	rev, err := rv.Review(context.Background(), "ghost")
	if err != nil {
		t.Fatalf("Review returned error %v, want recovered run", err)
	}

	if rev.Document.RawText != "" {
		t.Errorf("RawText = %q, want empty substitution", rev.Document.RawText)
	}
	if len(rev.Notes) == 0 || !strings.Contains(rev.Notes[0], "input error") {
		t.Errorf("Notes = %v, want input error note", rev.Notes)
	}
	if rev.Recommendation != types.RecommendReject {
		t.Errorf("Recommendation = %v, want REJECT for empty content", rev.Recommendation)
	}

	rpt := report.Compile(rev)
	if rpt.ReaderExtraction.TextLength != 0 {
		t.Errorf("TextLength = %d, want 0", rpt.ReaderExtraction.TextLength)
	}
	if rpt.ReviewStatus != report.StatusComplete {
		t.Errorf("ReviewStatus = %q", rpt.ReviewStatus)
	}

	// The failed load is still in the audit log.
	if len(rev.ToolCalls) == 0 || rev.ToolCalls[0].Tool != "load_document" || rev.ToolCalls[0].Success {
		t.Errorf("ToolCalls[0] = %+v, want failed load_document", rev.ToolCalls)
	}
}

func TestReviewBlankTarget(t *testing.T) {
	rv := newTestReviewer(t, WithSource(stubSource{text: "x"}))

	_, err := rv.Review(context.Background(), "  ")
	if !errors.Is(err, ErrInput) {
		t.Fatalf("err = %v, want ErrInput", err)
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := types.DefaultPipelineConfig()
	cfg.Scoring.CitationDivisor = 0

	if _, err := New(cfg); err == nil {
		t.Fatal("New accepted an invalid configuration")
	}
}

func TestToolCallOrderDeterministic(t *testing.T) {
	rv := newTestReviewer(t, WithSource(stubSource{text: strongPaper()}))

	rev, err := rv.Review(context.Background(), "p")
	if err != nil {
		t.Fatal(err)
	}

	want := []string{
		"load_document",
		"extract_sections",
		"extract_citations",
		"analyze_text_quality",
		"score_assessment",
		"synthesize_critique",
	}
	if len(rev.ToolCalls) != len(want) {
		t.Fatalf("got %d tool calls, want %d: %+v", len(rev.ToolCalls), len(want), rev.ToolCalls)
	}
	for i, name := range want {
		if rev.ToolCalls[i].Tool != name {
			t.Errorf("ToolCalls[%d] = %q, want %q", i, rev.ToolCalls[i].Tool, name)
		}
		if !rev.ToolCalls[i].Success {
			t.Errorf("ToolCalls[%d] (%s) not successful", i, name)
		}
	}
}

func TestReportIdempotent(t *testing.T) {
	rv := newTestReviewer(t, WithSource(stubSource{text: strongPaper()}))

	first, err := rv.Report(context.Background(), "p")
	if err != nil {
		t.Fatal(err)
	}
	second, err := rv.Report(context.Background(), "p")
	if err != nil {
		t.Fatal(err)
	}

	a, err := report.Encode(first)
	if err != nil {
		t.Fatal(err)
	}
	b, err := report.Encode(second)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a, b) {
		t.Errorf("report JSON differs between identical runs:\n%s\n---\n%s", a, b)
	}
}

func TestReviewSavesThroughSink(t *testing.T) {
	dir := t.TempDir()
	rv := newTestReviewer(t,
		WithSource(stubSource{text: strongPaper()}),
		WithSaver(report.Sink{Dir: dir}),
	)

	rev, err := rv.Review(context.Background(), "saved-paper")
	if err != nil {
		t.Fatal(err)
	}

	last := rev.ToolCalls[len(rev.ToolCalls)-1]
	if last.Tool != "save_review" || !last.Success {
		t.Fatalf("last tool call = %+v, want successful save_review", last)
	}

	path := filepath.Join(dir, "saved-paper_review.json")
	if _, err := os.Stat(path); err != nil {
		t.Errorf("saved artifact missing: %v", err)
	}
}

func TestReviewContextCancelled(t *testing.T) {
	rv := newTestReviewer(t, WithSource(stubSource{text: strongPaper()}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := rv.Review(ctx, "p"); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestRunsAreIndependent(t *testing.T) {
	rv := newTestReviewer(t, WithSource(stubSource{text: strongPaper()}))

	const n = 8
	results := make(chan *types.Review, n)
	for i := 0; i < n; i++ {
		go func(i int) {
			rev, err := rv.Review(context.Background(), fmt.Sprintf("paper-%d", i))
			if err != nil {
				t.Error(err)
				results <- nil
				return
			}
			results <- rev
		}(i)
	}

	for i := 0; i < n; i++ {
		rev := <-results
		if rev == nil {
			continue
		}
		if len(rev.ToolCalls) != 6 {
			t.Errorf("run %s: %d tool calls, want 6", rev.PaperID, len(rev.ToolCalls))
		}
	}
}
