// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package mcptools exposes the review pipeline over the Model Context
// Protocol, so agent runtimes can submit papers and browse archived
// reviews as tool calls.
package mcptools

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/pdiddy/review-engine/internal/pipeline"
	"github.com/pdiddy/review-engine/internal/store"
)

// version is set by the linker at build time.
var version = "dev"

// ReviewService holds the pipeline and archive used by MCP tool
// handlers. The archive is optional; without it get_review and
// list_reviews report that no archive is configured.
type ReviewService struct {
	reviewer *pipeline.Reviewer
	archive  *store.Store
}

// NewReviewService creates a ReviewService. archive may be nil.
func NewReviewService(reviewer *pipeline.Reviewer, archive *store.Store) *ReviewService {
	return &ReviewService{reviewer: reviewer, archive: archive}
}

// SubmitPaper runs the full review pipeline for a paper and, when an
// archive is configured, stores the finished report.
func (s *ReviewService) SubmitPaper(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SubmitPaperInput,
) (*mcp.CallToolResult, SubmitPaperOutput, error) {
	if strings.TrimSpace(input.Target) == "" {
		return nil, SubmitPaperOutput{}, fmt.Errorf("target is required")
	}

	rpt, err := s.reviewer.Report(ctx, input.Target)
	if err != nil {
		return nil, SubmitPaperOutput{}, err
	}

	if s.archive != nil {
		if err := s.archive.Put(ctx, rpt); err != nil {
			return nil, SubmitPaperOutput{}, fmt.Errorf("archiving review: %w", err)
		}
	}

	return nil, SubmitPaperOutput{Report: rpt}, nil
}

// GetReview fetches a previously archived review by paper id.
func (s *ReviewService) GetReview(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetReviewInput,
) (*mcp.CallToolResult, GetReviewOutput, error) {
	if s.archive == nil {
		return nil, GetReviewOutput{}, errors.New("no review archive is configured")
	}
	if input.PaperID == "" {
		return nil, GetReviewOutput{}, fmt.Errorf("paperId is required")
	}

	rpt, err := s.archive.Get(ctx, input.PaperID)
	if err != nil {
		return nil, GetReviewOutput{}, err
	}
	return nil, GetReviewOutput{Report: rpt}, nil
}

// ListReviews returns archive entries, most recent first.
func (s *ReviewService) ListReviews(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListReviewsInput,
) (*mcp.CallToolResult, ListReviewsOutput, error) {
	if s.archive == nil {
		return nil, ListReviewsOutput{}, errors.New("no review archive is configured")
	}

	entries, err := s.archive.List(ctx, input.Limit)
	if err != nil {
		return nil, ListReviewsOutput{}, err
	}
	if entries == nil {
		entries = []store.Entry{}
	}
	return nil, ListReviewsOutput{Reviews: entries, Total: len(entries)}, nil
}

// NewReviewMCPServer creates an MCP server with the review tools
// registered.
func NewReviewMCPServer(svc *ReviewService) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "review-engine",
		Version: version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "submit_paper",
		Description: "Run the full review pipeline on a paper. Accepts a sample id, a text file path, or a PDF path, and returns the compiled review report.",
	}, svc.SubmitPaper)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_review",
		Description: "Fetch a previously archived review report by paper id.",
	}, svc.GetReview)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_reviews",
		Description: "List archived reviews, most recent first, with recommendation and score summaries.",
	}, svc.ListReviews)

	return server
}

// RunMCPServer starts an HTTP server exposing the review MCP tools.
func RunMCPServer(ctx context.Context, svc *ReviewService, addr string) error {
	server := NewReviewMCPServer(svc)

	handler := mcp.NewStreamableHTTPHandler(
		func(_ *http.Request) *mcp.Server { return server },
		nil,
	)

	httpServer := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	// Shutdown gracefully when context is cancelled.
	go func() {
		<-ctx.Done()
		httpServer.Shutdown(context.Background())
	}()

	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
