package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
)

func TestRunSolveFailsWithoutAPIKey(t *testing.T) {
	os.Unsetenv("ARIADNE_API_KEY")
	os.Unsetenv("API_KEY")

	ws := t.TempDir()
	workspace = ws
	defer func() { workspace = "" }()

	problemFile := filepath.Join(ws, "problem.json")
	if err := os.WriteFile(problemFile, []byte(`{"name":"p1","question":"q1"}`), 0o644); err != nil {
		t.Fatalf("write problem file: %v", err)
	}
	problemPath = problemFile
	defer func() { problemPath = "" }()

	err := runSolve(&cobra.Command{}, []string{})
	if err == nil {
		t.Fatalf("expected an error when no API key is configured")
	}
}

func TestRunSolveFailsOnMissingProblemFile(t *testing.T) {
	os.Setenv("ARIADNE_API_KEY", "test-key")
	defer os.Unsetenv("ARIADNE_API_KEY")

	ws := t.TempDir()
	workspace = ws
	defer func() { workspace = "" }()

	problemPath = filepath.Join(ws, "does-not-exist.json")
	defer func() { problemPath = "" }()

	err := runSolve(&cobra.Command{}, []string{})
	if err == nil {
		t.Fatalf("expected an error for a nonexistent problem file")
	}
}

func TestDatasetCommandFlagDefaults(t *testing.T) {
	if datasetCmd.Flags().Lookup("dataset-path").DefValue != "apps/apps_selected150.jsonl" {
		t.Fatalf("unexpected default dataset-path")
	}
	if datasetCmd.Flags().Lookup("num").DefValue != "10" {
		t.Fatalf("unexpected default num")
	}
}

func TestSolveCommandRequiresProblemFlag(t *testing.T) {
	flag := solveCmd.Flags().Lookup("problem")
	if flag == nil {
		t.Fatalf("expected --problem flag to be registered")
	}
	if ann := flag.Annotations[cobra.BashCompOneRequiredFlag]; len(ann) == 0 || ann[0] != "true" {
		t.Fatalf("expected --problem flag to be marked required")
	}
}
