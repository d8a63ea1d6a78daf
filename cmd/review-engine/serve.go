// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/review-engine/internal/mcptools"
	"github.com/pdiddy/review-engine/internal/pipeline"
	"github.com/pdiddy/review-engine/internal/store"
	"github.com/pdiddy/review-engine/pkg/types"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the review pipeline as MCP tools over HTTP",
	Long: `Serve exposes the pipeline as an MCP server with three tools:
submit_paper runs a full review, get_review fetches an archived review,
and list_reviews lists the archive. Finished reviews are archived
automatically.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default :8425)")
	serveCmd.Flags().String("samples-dir", "", "directory holding sample papers (default: samples)")
	serveCmd.Flags().String("results-dir", "", "directory for the archive database (default: results)")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := pipelineConfig(cmd)

	addr, _ := cmd.Flags().GetString("addr")
	if addr == "" {
		addr = viper.GetString("addr")
	}
	if addr == "" {
		addr = types.DefaultServerConfig().Addr
	}

	reviewer, err := pipeline.New(cfg)
	if err != nil {
		return err
	}

	archive, err := store.Open(types.StoreConfig{DataDir: cfg.ResultsDir})
	if err != nil {
		return err
	}
	defer archive.Close()

	svc := mcptools.NewReviewService(reviewer, archive)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(os.Stderr, "review-engine MCP server listening on %s\n", addr)
	return mcptools.RunMCPServer(ctx, svc, addr)
}
