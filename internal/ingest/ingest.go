// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ingest turns review targets (PDF paths, text files, sample
// ids) into Documents. It has no algorithmic content; failures are
// reported as errors for the orchestrator to absorb.
package ingest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/review-engine/pkg/types"
)

// Resolver fetches a Document for a review target. A target naming an
// existing .pdf file goes through PDF extraction, other existing files
// are read as plain text, and anything else is treated as a sample id.
type Resolver struct {
	// Samples loads built-in sample papers by id.
	Samples SampleLoader
}

// NewResolver returns a Resolver using samplesDir for sample papers.
func NewResolver(samplesDir string) Resolver {
	return Resolver{Samples: SampleLoader{Dir: samplesDir}}
}

// Fetch resolves target into a Document. The returned error marks an
// input or extraction failure; callers recover by substituting an empty
// document, so Fetch never needs to distinguish the two.
func (r Resolver) Fetch(target string) (types.Document, error) {
	if strings.TrimSpace(target) == "" {
		return types.Document{}, fmt.Errorf("empty review target")
	}

	if info, err := os.Stat(target); err == nil && !info.IsDir() {
		if strings.EqualFold(filepath.Ext(target), ".pdf") {
			return ExtractPDF(target)
		}
		return readTextFile(target)
	}

	content, err := r.Samples.Load(target)
	if err != nil {
		return types.Document{}, err
	}
	return types.Document{ID: target, RawText: content}, nil
}

// readTextFile reads a plain-text or Markdown paper from disk.
func readTextFile(path string) (types.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.Document{}, fmt.Errorf("reading %s: %w", path, err)
	}
	return types.Document{ID: path, RawText: string(data)}, nil
}

// SampleLoader loads built-in sample papers stored as <id>.txt files
// under a samples directory.
type SampleLoader struct {
	// Dir is the samples directory.
	Dir string
}

// Load returns the content of sample paper id. An unknown id is an
// input failure, reported as an error.
func (l SampleLoader) Load(id string) (string, error) {
	path := filepath.Join(l.Dir, id+".txt")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("paper not found: %s", id)
		}
		return "", fmt.Errorf("loading sample %s: %w", id, err)
	}
	return string(data), nil
}
