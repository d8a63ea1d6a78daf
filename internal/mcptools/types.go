// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package mcptools

import (
	"github.com/pdiddy/review-engine/internal/store"
	"github.com/pdiddy/review-engine/pkg/types"
)

// --- MCP Tool Input Types ---
// These structs define the JSON schema for each MCP tool's input.
// The MCP Go SDK auto-generates JSON schemas from struct tags.

// SubmitPaperInput is the input for the submit_paper MCP tool.
type SubmitPaperInput struct {
	Target string `json:"target" jsonschema:"paper identifier: a sample id, a text file path, or a PDF path"`
}

// SubmitPaperOutput is the result of the submit_paper MCP tool.
type SubmitPaperOutput struct {
	Report types.Report `json:"report"`
}

// GetReviewInput is the input for the get_review MCP tool.
type GetReviewInput struct {
	PaperID string `json:"paperId" jsonschema:"the paper id of a previously archived review"`
}

// GetReviewOutput is the result of the get_review MCP tool.
type GetReviewOutput struct {
	Report types.Report `json:"report"`
}

// ListReviewsInput is the input for the list_reviews MCP tool.
type ListReviewsInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"maximum number of entries to return (default: store limit)"`
}

// ListReviewsOutput is the result of the list_reviews MCP tool.
type ListReviewsOutput struct {
	Reviews []store.Entry `json:"reviews"`
	Total   int           `json:"total"`
}
