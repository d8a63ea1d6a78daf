// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/review-engine/internal/pipeline"
	"github.com/pdiddy/review-engine/internal/report"
	"github.com/pdiddy/review-engine/internal/store"
	"github.com/pdiddy/review-engine/pkg/types"
)

var reviewCmd = &cobra.Command{
	Use:   "review [target]",
	Short: "Run the review pipeline on a paper",
	Long: `Review runs the full three-stage pipeline on one paper and prints the
compiled report. The target is a sample id from the samples directory,
a plain text file path, or a PDF path.

With --save the report JSON is also written to the results directory;
with --archive it is stored in the review archive database.`,
	Args: cobra.ExactArgs(1),
	RunE: runReview,
}

func init() {
	reviewCmd.Flags().String("samples-dir", "", "directory holding sample papers (default: samples)")
	reviewCmd.Flags().String("results-dir", "", "directory for saved report JSON (default: results)")
	reviewCmd.Flags().Bool("json", false, "print the full report as JSON")
	reviewCmd.Flags().Bool("save", false, "write the report JSON into the results directory")
	reviewCmd.Flags().Bool("archive", false, "store the report in the review archive database")
	reviewCmd.Flags().Bool("verbose", false, "print stage progress and the tool-call log to stderr")

	rootCmd.AddCommand(reviewCmd)
}

// pipelineConfig resolves the pipeline configuration in precedence
// order: command flags, then viper (config file and REVIEW_ENGINE_*
// environment), then the documented defaults.
func pipelineConfig(cmd *cobra.Command) types.PipelineConfig {
	cfg := types.DefaultPipelineConfig()
	if dir := viper.GetString("samples_dir"); dir != "" {
		cfg.SamplesDir = dir
	}
	if dir := viper.GetString("results_dir"); dir != "" {
		cfg.ResultsDir = dir
	}
	if n := viper.GetInt("summary_sentences"); n > 0 {
		cfg.SummarySentences = n
	}
	if dir, _ := cmd.Flags().GetString("samples-dir"); dir != "" {
		cfg.SamplesDir = dir
	}
	if dir, _ := cmd.Flags().GetString("results-dir"); dir != "" {
		cfg.ResultsDir = dir
	}
	return cfg
}

func runReview(cmd *cobra.Command, args []string) error {
	target := args[0]
	cfg := pipelineConfig(cmd)

	var opts []pipeline.Option
	verbose, _ := cmd.Flags().GetBool("verbose")
	if verbose {
		opts = append(opts, pipeline.WithProgress(os.Stderr))
	}
	if save, _ := cmd.Flags().GetBool("save"); save {
		opts = append(opts, pipeline.WithSaver(report.Sink{Dir: cfg.ResultsDir}))
	}

	reviewer, err := pipeline.New(cfg, opts...)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	rev, err := reviewer.Review(ctx, target)
	if err != nil {
		return err
	}
	rpt := report.Compile(rev)

	if archive, _ := cmd.Flags().GetBool("archive"); archive {
		s, err := store.Open(types.StoreConfig{DataDir: cfg.ResultsDir})
		if err != nil {
			return err
		}
		defer s.Close()
		if err := s.Put(ctx, rpt); err != nil {
			return err
		}
	}

	if verbose {
		printToolCalls(rev.ToolCalls)
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		data, err := report.Encode(rpt)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(data)
		return err
	}

	printReport(rpt)
	return nil
}

func printToolCalls(calls []types.ToolCall) {
	fmt.Fprintln(os.Stderr, "Tool calls:")
	for i, call := range calls {
		status := "ok"
		if !call.Success {
			status = "failed: " + call.Error
		}
		fmt.Fprintf(os.Stderr, "  %d. %-22s %-8s %s\n", i+1, call.Tool, call.Duration, status)
	}
}

func printReport(rpt types.Report) {
	fmt.Printf("Paper:          %s\n", rpt.PaperID)
	fmt.Printf("Status:         %s\n", rpt.ReviewStatus)
	fmt.Printf("Sections:       %d of %d\n", rpt.ReaderExtraction.SectionsIdentified, len(types.SectionKinds))
	fmt.Printf("Text length:    %d\n", rpt.ReaderExtraction.TextLength)
	fmt.Println()

	a := rpt.QualityAssessment
	fmt.Printf("Novelty:        %d/10\n", a.NoveltyScore)
	fmt.Printf("Methodology:    %d/10\n", a.MethodologyScore)
	fmt.Printf("Citations:      %d/10\n", a.CitationScore)
	fmt.Printf("Completeness:   %d/10\n", a.CompletenessScore)
	fmt.Printf("Average:        %.1f  (%s)\n", a.AverageScore, a.OverallQuality)
	fmt.Println()

	if rpt.Critique.IssueCount == 0 {
		fmt.Println("No issues found.")
	} else {
		fmt.Printf("Issues (%d):\n", rpt.Critique.IssueCount)
		for _, issue := range rpt.Critique.Issues {
			fmt.Printf("  [%s] %s: %s\n", issue.Severity, issue.Category, issue.Description)
			fmt.Printf("      -> %s\n", issue.Recommendation)
		}
	}
	fmt.Println()

	fmt.Printf("Recommendation: %s\n", rpt.OverallRecommendation)
	fmt.Println("Next steps:")
	for _, step := range rpt.NextSteps {
		fmt.Printf("  - %s\n", step)
	}
	if len(rpt.Notes) > 0 {
		fmt.Printf("Notes:\n  %s\n", strings.Join(rpt.Notes, "\n  "))
	}
}
