package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/review-engine/pkg/types"
)

func testReport(paperID string) types.Report {
	return types.Report{
		PaperID:      paperID,
		ReviewStatus: "COMPLETE",
		ReaderExtraction: types.ReaderExtraction{
			Summary:            "A short summary.",
			TextLength:         420,
			SectionsIdentified: 5,
			KeyInsights:        []string{"Identified 5 of 6 canonical sections"},
		},
		QualityAssessment: types.Assessment{
			NoveltyScore:      7,
			MethodologyScore:  8,
			CitationScore:     6,
			CompletenessScore: 8,
			AverageScore:      7.3,
			OverallQuality:    types.QualityGood,
		},
		Critique: types.CritiqueReport{
			IssueCount:      1,
			Issues:          []types.Issue{{Severity: types.SeverityMinor, Category: types.CategoryStructure, Description: "x", Recommendation: "y"}},
			Recommendations: []string{"y"},
			Summary:         "Identified 1 issue(s): 1 MINOR.",
		},
		OverallRecommendation: types.RecommendAccept,
		NextSteps:             []string{"Polish presentation: figures, tables, and proofreading"},
	}
}

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(types.StoreConfig{DataDir: t.TempDir()})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPutGetRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	want := testReport("paper-1")
	require.NoError(t, s.Put(ctx, want))

	got, err := s.Get(ctx, "paper-1")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestPutReplacesExisting(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	first := testReport("paper-1")
	require.NoError(t, s.Put(ctx, first))

	second := testReport("paper-1")
	second.OverallRecommendation = types.RecommendReject
	require.NoError(t, s.Put(ctx, second))

	got, err := s.Get(ctx, "paper-1")
	require.NoError(t, err)
	assert.Equal(t, types.RecommendReject, got.OverallRecommendation)

	entries, err := s.List(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestGetUnknownPaper(t *testing.T) {
	s := openTestStore(t)

	_, err := s.Get(context.Background(), "ghost")
	assert.ErrorContains(t, err, "no archived review")
}

func TestListLimitsAndSummarizes(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, s.Put(ctx, testReport(id)))
	}

	entries, err := s.List(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	entries, err = s.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	for _, e := range entries {
		assert.Equal(t, types.RecommendAccept, e.Recommendation)
		assert.Equal(t, 7.3, e.AverageScore)
		assert.Equal(t, 1, e.IssueCount)
		assert.NotEmpty(t, e.CreatedAt)
	}
}
