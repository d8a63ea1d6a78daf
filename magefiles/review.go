//go:build mage

package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// Test runs the full test suite.
func Test() error {
	cmd := exec.Command("go", "test", "./...")
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// Demo builds the CLI and reviews every sample paper in samples/.
func Demo() error {
	if err := Build(); err != nil {
		return err
	}

	entries, err := os.ReadDir("samples")
	if err != nil {
		return fmt.Errorf("reading samples: %w", err)
	}

	ran := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if ext != ".txt" && ext != ".pdf" {
			continue
		}
		id := entry.Name()[:len(entry.Name())-len(ext)]
		fmt.Printf("=== %s ===\n", id)
		cmd := exec.Command(filepath.Join(binDir, binName), "review", id, "--save")
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		if err := cmd.Run(); err != nil {
			return fmt.Errorf("reviewing %s: %w", id, err)
		}
		ran++
	}
	if ran == 0 {
		fmt.Println("No sample papers found in samples/.")
	}
	return nil
}
