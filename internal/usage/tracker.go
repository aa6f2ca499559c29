// Package usage implements a process-wide, append-only accumulator of LLM
// token/call/time usage, persisted to .ariadne/usage.json. Counters only
// grow during a run; the dataset driver calls Reset between problems so
// per-problem totals stay independent.
package usage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Counts is a single accumulator of tokens and calls.
type Counts struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
	Calls        int `json:"calls"`
}

func (c *Counts) add(input, output int) {
	c.InputTokens += input
	c.OutputTokens += output
	c.Calls++
}

// Snapshot is a point-in-time, independent copy of accumulated usage for
// one problem run.
type Snapshot struct {
	RunID       string            `json:"run_id"`
	Total       Counts            `json:"total"`
	ByAgent     map[string]Counts `json:"by_agent"`
	ElapsedSecs float64           `json:"elapsed_seconds"`
}

// Tracker accumulates usage across one problem's MCTS run. Reset clears it
// for the next problem so per-problem totals in the dataset driver are
// independent.
type Tracker struct {
	mu       sync.Mutex
	runID    string
	total    Counts
	byAgent  map[string]Counts
	started  time.Time
	filePath string
}

// NewTracker creates a Tracker that persists to workspaceRoot/.ariadne/usage.json.
func NewTracker(workspaceRoot string) (*Tracker, error) {
	dir := filepath.Join(workspaceRoot, ".ariadne")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("usage: create workspace dir: %w", err)
	}
	t := &Tracker{
		runID:    uuid.NewString(),
		byAgent:  make(map[string]Counts),
		started:  time.Now(),
		filePath: filepath.Join(dir, "usage.json"),
	}
	return t, nil
}

// Track records one LLM call's token usage under the given agent name.
func (t *Tracker) Track(agentName string, inputTokens, outputTokens int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.total.add(inputTokens, outputTokens)
	entry := t.byAgent[agentName]
	entry.add(inputTokens, outputTokens)
	t.byAgent[agentName] = entry
}

// Snapshot returns an independent copy of the current totals.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	byAgent := make(map[string]Counts, len(t.byAgent))
	for k, v := range t.byAgent {
		byAgent[k] = v
	}
	return Snapshot{
		RunID:       t.runID,
		Total:       t.total,
		ByAgent:     byAgent,
		ElapsedSecs: time.Since(t.started).Seconds(),
	}
}

// Reset clears all accumulated usage and starts a fresh run id/clock,
// called by the dataset driver between problems so totals never bleed
// across problems.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.runID = uuid.NewString()
	t.total = Counts{}
	t.byAgent = make(map[string]Counts)
	t.started = time.Now()
}

// Save persists the current snapshot to disk.
func (t *Tracker) Save() error {
	snap := t.Snapshot()
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(t.filePath, data, 0644)
}
