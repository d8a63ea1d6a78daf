// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/review-engine/pkg/types"
)

// newConfigTestCmd returns a throwaway command carrying the directory
// flags pipelineConfig reads, so tests never mutate the real commands.
func newConfigTestCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("samples-dir", "", "")
	cmd.Flags().String("results-dir", "", "")
	return cmd
}

func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
}

func TestPipelineConfigDefaults(t *testing.T) {
	resetViper(t)

	cfg := pipelineConfig(newConfigTestCmd())
	want := types.DefaultPipelineConfig()
	if cfg.SamplesDir != want.SamplesDir || cfg.ResultsDir != want.ResultsDir {
		t.Errorf("config = %+v, want defaults %+v", cfg, want)
	}
}

func TestPipelineConfigFromConfigFile(t *testing.T) {
	resetViper(t)

	path := filepath.Join(t.TempDir(), "review-engine.yaml")
	content := "samples_dir: /custom/samples\nresults_dir: /custom/results\nsummary_sentences: 5\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	viper.SetConfigFile(path)
	if err := viper.ReadInConfig(); err != nil {
		t.Fatal(err)
	}

	cfg := pipelineConfig(newConfigTestCmd())
	if cfg.SamplesDir != "/custom/samples" {
		t.Errorf("SamplesDir = %q, want /custom/samples", cfg.SamplesDir)
	}
	if cfg.ResultsDir != "/custom/results" {
		t.Errorf("ResultsDir = %q, want /custom/results", cfg.ResultsDir)
	}
	if cfg.SummarySentences != 5 {
		t.Errorf("SummarySentences = %d, want 5", cfg.SummarySentences)
	}
}

func TestPipelineConfigEnvOverride(t *testing.T) {
	resetViper(t)

	t.Setenv("REVIEW_ENGINE_SAMPLES_DIR", "/env/samples")
	viper.SetEnvPrefix("REVIEW_ENGINE")
	viper.AutomaticEnv()

	cfg := pipelineConfig(newConfigTestCmd())
	if cfg.SamplesDir != "/env/samples" {
		t.Errorf("SamplesDir = %q, want /env/samples", cfg.SamplesDir)
	}
}

func TestPipelineConfigFlagWins(t *testing.T) {
	resetViper(t)

	viper.Set("samples_dir", "/config/samples")
	viper.Set("results_dir", "/config/results")

	cmd := newConfigTestCmd()
	if err := cmd.Flags().Set("samples-dir", "/flag/samples"); err != nil {
		t.Fatal(err)
	}

	cfg := pipelineConfig(cmd)
	if cfg.SamplesDir != "/flag/samples" {
		t.Errorf("SamplesDir = %q, want flag value /flag/samples", cfg.SamplesDir)
	}
	if cfg.ResultsDir != "/config/results" {
		t.Errorf("ResultsDir = %q, want config value /config/results", cfg.ResultsDir)
	}
}
