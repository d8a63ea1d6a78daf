// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/review-engine/internal/eval"
	"github.com/pdiddy/review-engine/internal/pipeline"
)

var evalCmd = &cobra.Command{
	Use:   "eval",
	Short: "Run the evaluation harness against a case file",
	Long: `Eval reviews every paper listed in a YAML case file and checks the
outcome against per-case expectations: recommendation, quality bucket,
score bounds, issue counts, and citation counts.

Exits non-zero when any case fails.`,
	RunE: runEval,
}

func init() {
	evalCmd.Flags().String("cases", "eval/cases.yaml", "path to the YAML case file")
	evalCmd.Flags().String("samples-dir", "", "directory holding sample papers (default: samples)")
	evalCmd.Flags().String("results-dir", "", "directory for saved report JSON (default: results)")

	rootCmd.AddCommand(evalCmd)
}

func runEval(cmd *cobra.Command, args []string) error {
	casesPath, _ := cmd.Flags().GetString("cases")
	cases, err := eval.LoadCases(casesPath)
	if err != nil {
		return err
	}

	reviewer, err := pipeline.New(pipelineConfig(cmd))
	if err != nil {
		return err
	}

	summary := eval.Run(cmd.Context(), reviewer, cases, os.Stdout)
	if summary.HasFailures() {
		return fmt.Errorf("%d of %d cases failed", summary.Failed, summary.Total())
	}
	return nil
}
