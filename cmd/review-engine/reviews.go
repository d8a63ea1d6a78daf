// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/review-engine/internal/report"
	"github.com/pdiddy/review-engine/internal/store"
	"github.com/pdiddy/review-engine/pkg/types"
)

var reviewsCmd = &cobra.Command{
	Use:   "reviews",
	Short: "Browse the review archive",
	Long: `Reviews lists and shows reports stored in the archive database by
"review --archive" and the MCP server.`,
}

var reviewsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List archived reviews, most recent first",
	RunE:  runReviewsList,
}

var reviewsShowCmd = &cobra.Command{
	Use:   "show [paper-id]",
	Short: "Print one archived review report as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runReviewsShow,
}

func init() {
	reviewsCmd.PersistentFlags().String("results-dir", "", "directory holding the archive database (default: results)")
	reviewsListCmd.Flags().Int("limit", 0, "maximum number of entries (default: store limit)")

	reviewsCmd.AddCommand(reviewsListCmd)
	reviewsCmd.AddCommand(reviewsShowCmd)
	rootCmd.AddCommand(reviewsCmd)
}

func openArchive(cmd *cobra.Command) (*store.Store, error) {
	dataDir, _ := cmd.Flags().GetString("results-dir")
	if dataDir == "" {
		dataDir = viper.GetString("results_dir")
	}
	if dataDir == "" {
		dataDir = types.DefaultPipelineConfig().ResultsDir
	}
	return store.Open(types.StoreConfig{DataDir: dataDir})
}

func runReviewsList(cmd *cobra.Command, args []string) error {
	s, err := openArchive(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	entries, err := s.List(cmd.Context(), limit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No archived reviews.")
		return nil
	}

	fmt.Printf("%-30s  %-28s  %-10s  %-6s  %-6s  %s\n",
		"Paper", "Recommendation", "Quality", "Score", "Issues", "Created")
	for _, e := range entries {
		fmt.Printf("%-30s  %-28s  %-10s  %-6.1f  %-6d  %s\n",
			e.PaperID, e.Recommendation, e.OverallQuality, e.AverageScore, e.IssueCount, e.CreatedAt)
	}
	return nil
}

func runReviewsShow(cmd *cobra.Command, args []string) error {
	s, err := openArchive(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	rpt, err := s.Get(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	data, err := report.Encode(rpt)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}
