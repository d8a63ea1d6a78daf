// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline orchestrates the three review stages: content
// extraction, quality assessment, and critique. Each run owns its
// accumulating state; independent runs share only configuration and may
// execute concurrently without coordination.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/review-engine/internal/cite"
	"github.com/pdiddy/review-engine/internal/critique"
	"github.com/pdiddy/review-engine/internal/ingest"
	"github.com/pdiddy/review-engine/internal/report"
	"github.com/pdiddy/review-engine/internal/scoring"
	"github.com/pdiddy/review-engine/internal/segment"
	"github.com/pdiddy/review-engine/internal/textmetrics"
	"github.com/pdiddy/review-engine/pkg/types"
)

// ErrInput marks input that is rejected before stage 1 runs: a blank
// review target. Everything else — missing files, unknown sample ids,
// malformed PDFs — is absorbed mid-run and surfaced as a note in the
// final review.
var ErrInput = errors.New("unreadable input")

// Source fetches a Document for a review target. ingest.Resolver is
// the production implementation; tests substitute mocks.
type Source interface {
	Fetch(target string) (types.Document, error)
}

// Saver persists a compiled report. report.Sink is the production
// implementation.
type Saver interface {
	Save(filename string, rpt types.Report) (report.SaveResult, error)
}

// Reviewer runs the review pipeline. It is stateless between runs and
// safe for concurrent use: every run accumulates into its own Review
// and tool-call log.
type Reviewer struct {
	cfg      types.PipelineConfig
	source   Source
	saver    Saver
	progress io.Writer
}

// Option configures a Reviewer.
type Option func(*Reviewer)

// WithSource overrides the document source.
func WithSource(s Source) Option {
	return func(r *Reviewer) { r.source = s }
}

// WithSaver enables report persistence after each run. The save is
// recorded as a tool call like any other; its failure does not fail
// the run.
func WithSaver(s Saver) Option {
	return func(r *Reviewer) { r.saver = s }
}

// WithProgress directs human-readable stage progress to w.
func WithProgress(w io.Writer) Option {
	return func(r *Reviewer) { r.progress = w }
}

// New validates the configuration and builds a Reviewer. A validation
// failure is a configuration defect and is returned as a fatal error;
// data-quality problems never surface here.
func New(cfg types.PipelineConfig, opts ...Option) (*Reviewer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	r := &Reviewer{
		cfg:      cfg,
		source:   ingest.NewResolver(cfg.SamplesDir),
		progress: io.Discard,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// run accumulates the state of one pipeline execution. The tool-call
// log is append-only; entries are never mutated after creation.
type run struct {
	review types.Review

	// clarityCandidates carries the quality engine's issue candidates
	// from the assessment stage into the critique stage.
	clarityCandidates []textmetrics.Candidate
}

// record executes one tool invocation, timing it and appending an audit
// entry regardless of outcome. It returns the tool error, which callers
// absorb with a default value rather than aborting the run.
func (r *run) record(tool string, input map[string]any, fn func() (string, error)) error {
	start := time.Now()
	output, err := fn()

	call := types.ToolCall{
		Tool:     tool,
		Input:    input,
		Output:   output,
		Duration: time.Since(start),
		Success:  err == nil,
	}
	if err != nil {
		call.Error = err.Error()
	}
	r.review.ToolCalls = append(r.review.ToolCalls, call)
	return err
}

// note appends a non-fatal run note surfaced in the final review.
func (r *run) note(format string, args ...any) {
	r.review.Notes = append(r.review.Notes, fmt.Sprintf(format, args...))
}

// Review executes one complete three-stage run for target and returns
// the finished review. Once stage 1 begins the pipeline always
// terminates with a review: tool failures are recorded, substituted
// with empty values, and noted, never fatal. The only errors returned
// are ErrInput for a blank target and the context's error on
// cancellation.
func (rv *Reviewer) Review(ctx context.Context, target string) (*types.Review, error) {
	if strings.TrimSpace(target) == "" {
		return nil, fmt.Errorf("%w: blank review target", ErrInput)
	}

	r := &run{review: types.Review{PaperID: target}}

	// Stage 1: content.
	fmt.Fprintf(rv.progress, "[1/3] reader: extracting content for %s\n", target)
	rv.contentStage(r, target)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 2: assessment.
	fmt.Fprintf(rv.progress, "[2/3] reviewer: assessing quality\n")
	if err := rv.assessmentStage(ctx, r); err != nil {
		return nil, err
	}

	// Stage 3: critique.
	fmt.Fprintf(rv.progress, "[3/3] critic: synthesizing issues\n")
	rv.critiqueStage(r)

	if rv.saver != nil {
		rv.save(r)
	}

	return &r.review, nil
}

// Report runs Review and compiles the external report shape.
func (rv *Reviewer) Report(ctx context.Context, target string) (types.Report, error) {
	rev, err := rv.Review(ctx, target)
	if err != nil {
		return types.Report{}, err
	}
	return report.Compile(rev), nil
}

// contentStage obtains the document and segments it. A fetch failure is
// recorded and replaced by an empty document so the run continues.
func (rv *Reviewer) contentStage(r *run, target string) {
	err := r.record("load_document", map[string]any{"target": target}, func() (string, error) {
		doc, err := rv.source.Fetch(target)
		if err != nil {
			return "", err
		}
		r.review.Document = doc
		return fmt.Sprintf("loaded %d bytes from %s", len(doc.RawText), doc.ID), nil
	})
	if err != nil {
		r.review.Document = types.Document{ID: target}
		r.note("input error: %v", err)
	}

	r.record("extract_sections", map[string]any{"text_length": len(r.review.Document.RawText)}, func() (string, error) {
		r.review.Sections = segment.Segment(r.review.Document.RawText)
		return fmt.Sprintf("identified %d of %d sections", r.review.Sections.NonEmptyCount(), len(types.SectionKinds)), nil
	})

	r.review.Summary = segment.Summary(r.review.Sections, r.review.Document.RawText, rv.cfg.SummarySentences)
}

// assessmentStage runs citation extraction and quality metrics over the
// full text — concurrently, since neither reads the other's output —
// then scores the paper. Tool calls are appended in fixed order after
// the join so the audit log stays deterministic.
func (rv *Reviewer) assessmentStage(ctx context.Context, r *run) error {
	text := r.review.Document.RawText

	var (
		citeDur    time.Duration
		metricsDur time.Duration
		candidates []textmetrics.Candidate
	)

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		start := time.Now()
		r.review.Citations = cite.Extract(text)
		citeDur = time.Since(start)
		return nil
	})
	g.Go(func() error {
		start := time.Now()
		r.review.Metrics, candidates = textmetrics.Analyze(text, rv.cfg.Metrics)
		metricsDur = time.Since(start)
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	r.review.ToolCalls = append(r.review.ToolCalls,
		types.ToolCall{
			Tool:     "extract_citations",
			Input:    map[string]any{"text_length": len(text)},
			Output:   fmt.Sprintf("found %d distinct citations", r.review.Citations.TotalCount),
			Duration: citeDur,
			Success:  true,
		},
		types.ToolCall{
			Tool:     "analyze_text_quality",
			Input:    map[string]any{"text_length": len(text)},
			Output:   fmt.Sprintf("readability %.1f, %d clarity issue(s)", r.review.Metrics.ReadabilityScore, len(candidates)),
			Duration: metricsDur,
			Success:  true,
		},
	)
	r.clarityCandidates = candidates

	r.record("score_assessment", map[string]any{"citations": r.review.Citations.TotalCount}, func() (string, error) {
		r.review.Assessment = scoring.Score(r.review.Sections, r.review.Citations, r.review.Metrics, rv.cfg.Scoring)
		return fmt.Sprintf("average %.1f (%s)", r.review.Assessment.AverageScore, r.review.Assessment.OverallQuality), nil
	})

	return nil
}

// critiqueStage synthesizes issues and derives the recommendation.
func (rv *Reviewer) critiqueStage(r *run) {
	r.record("synthesize_critique", map[string]any{"issues_in": len(r.clarityCandidates)}, func() (string, error) {
		r.review.Critique = critique.Synthesize(r.review.Sections, r.review.Assessment, r.review.Citations, r.clarityCandidates)
		r.review.Recommendation = critique.Recommend(r.review.Critique, r.review.Assessment)
		return fmt.Sprintf("%d issue(s), recommendation %s", len(r.review.Critique.Issues), r.review.Recommendation), nil
	})
}

// save persists the compiled report through the sink, recording the
// attempt as a tool call. Failures are noted, never fatal.
func (rv *Reviewer) save(r *run) {
	filename := report.Filename(r.review.PaperID)
	err := r.record("save_review", map[string]any{"filename": filename}, func() (string, error) {
		res, err := rv.saver.Save(filename, report.Compile(&r.review))
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("saved %s (%d bytes)", res.Filepath, res.SizeBytes), nil
	})
	if err != nil {
		r.note("save error: %v", err)
	}
}
