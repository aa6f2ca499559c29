// Package result serializes per-problem search outcomes and renders the
// fixed-width aggregate report for a dataset run.
package result

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// RunDetail records one MCTS run's usage and timing, matching the
// run_details entries dataset_runner.py attaches to each result.
type RunDetail struct {
	PromptTokens     int     `json:"prompt_tokens"`
	CompletionTokens int     `json:"completion_tokens"`
	TakenTime        float64 `json:"taken_time"`
	APICalls         int     `json:"api_calls"`
	LLMTimeSeconds   float64 `json:"llm_time_s"`
}

// Result is one problem's outcome, matching dataset_runner.py's per-item
// dict shape exactly (field order is not semantically meaningful in JSONL,
// but mirrored for readability).
type Result struct {
	Name       string      `json:"name"`
	ProblemID  int         `json:"problem_id"`
	IsSolved   bool        `json:"is_solved"`
	RunDetails []RunDetail `json:"run_details"`
	BestCode   string      `json:"best_code"`
}

// WriteJSONL writes one JSON object per line to path, creating parent
// directories as needed.
func WriteJSONL(path string, results []Result) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("result: mkdir %s: %w", filepath.Dir(path), err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("result: create %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	defer w.Flush()
	for _, r := range results {
		data, err := json.Marshal(r)
		if err != nil {
			return fmt.Errorf("result: marshal %q: %w", r.Name, err)
		}
		if _, err := w.Write(data); err != nil {
			return fmt.Errorf("result: write %s: %w", path, err)
		}
		if err := w.WriteByte('\n'); err != nil {
			return fmt.Errorf("result: write %s: %w", path, err)
		}
	}
	return nil
}

// WriteSummary renders the fixed-width accuracy/token/timing report from
// results to path (30-char label column, 10-char right-aligned values).
func WriteSummary(results []Result, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("result: mkdir %s: %w", filepath.Dir(path), err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("result: create %s: %w", path, err)
	}
	defer f.Close()

	total := len(results)
	solved := 0
	var totalPromptTokens, totalCompletionTokens, totalAPICalls int
	var totalTakenTime float64
	var apiCallsPerItem []int

	for _, r := range results {
		if r.IsSolved {
			solved++
		}
		var promptTokens, completionTokens, apiCalls int
		var takenTime float64
		for _, d := range r.RunDetails {
			promptTokens += d.PromptTokens
			completionTokens += d.CompletionTokens
			takenTime += d.TakenTime
			apiCalls += d.APICalls
		}
		totalPromptTokens += promptTokens
		totalCompletionTokens += completionTokens
		totalTakenTime += takenTime
		totalAPICalls += apiCalls
		apiCallsPerItem = append(apiCallsPerItem, apiCalls)
	}
	unsolved := total - solved

	var accuracy, avgPromptTokens, avgCompletionTokens, avgTakenTime, avgAPICalls float64
	if total > 0 {
		accuracy = float64(solved) / float64(total)
		avgPromptTokens = float64(totalPromptTokens) / float64(total)
		avgCompletionTokens = float64(totalCompletionTokens) / float64(total)
		avgTakenTime = totalTakenTime / float64(total)
		avgAPICalls = float64(totalAPICalls) / float64(total)
	}

	maxAPICalls, minAPICalls := 0, 0
	for i, c := range apiCallsPerItem {
		if i == 0 || c > maxAPICalls {
			maxAPICalls = c
		}
		if i == 0 || c < minAPICalls {
			minAPICalls = c
		}
	}

	w := bufio.NewWriter(f)
	defer w.Flush()

	writeRow := func(label string, value string) {
		fmt.Fprintf(w, "%-30s %10s\n", label, value)
	}

	writeRow("Accuracy:", fmt.Sprintf("%.1f", accuracy*100))
	writeRow("Solved:", fmt.Sprintf("%d", solved))
	writeRow("Unsolved:", fmt.Sprintf("%d", unsolved))
	fmt.Fprint(w, "\n\n")
	writeRow("Total Prompt Tokens:", fmt.Sprintf("%d", totalPromptTokens))
	writeRow("Average Prompt Tokens:", fmt.Sprintf("%.0f", avgPromptTokens))
	fmt.Fprint(w, "\n")
	writeRow("Total Completion Tokens:", fmt.Sprintf("%d", totalCompletionTokens))
	writeRow("Average Completion Tokens:", fmt.Sprintf("%.0f", avgCompletionTokens))
	fmt.Fprint(w, "\n")
	writeRow("Total Taken Time:", fmt.Sprintf("%.2fs", totalTakenTime))
	writeRow("Average Taken Time:", fmt.Sprintf("%.2fs", avgTakenTime))
	fmt.Fprint(w, "\n")
	writeRow("Total Api Calls:", fmt.Sprintf("%.2f", float64(totalAPICalls)))
	writeRow("Max Api Calls:", fmt.Sprintf("%d", maxAPICalls))
	writeRow("Min Api Calls:", fmt.Sprintf("%d", minAPICalls))
	writeRow("Average Api Calls:", fmt.Sprintf("%.2g", avgAPICalls))

	return nil
}
