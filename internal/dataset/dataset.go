// Package dataset loads APPS-style problem records from a JSONL file into
// ready-to-search Blackboards: problem model populated, seed tests tagged
// by origin, strategy board defaulted, patch board empty.
package dataset

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/minnanWei/ARIADNE/internal/board"
	"github.com/minnanWei/ARIADNE/internal/problem"
	"github.com/minnanWei/ARIADNE/internal/schema"
)

// record is one line of the dataset file: an APPSRecord plus example/test
// IO pairs tagged by origin.
type record struct {
	problem.APPSRecord
	Examples []ioPair `json:"examples"`
	Tests    []ioPair `json:"tests"`
}

type ioPair struct {
	Input  string `json:"input"`
	Output string `json:"output"`
}

// LoadProblems reads path as newline-delimited JSON, returning one
// Blackboard per record with TestsBoard seeded from examples/tests,
// StrategyBoard defaulted, and PatchBoard empty. limit <= 0 means no limit.
func LoadProblems(path string, seed int64, limit int) ([]*board.Blackboard, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: open %s: %w", path, err)
	}
	defer f.Close()

	var boards []*board.Blackboard
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if limit > 0 && len(boards) >= limit {
			break
		}

		var rec record
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			return nil, fmt.Errorf("dataset: %s line %d: %w", path, lineNo, err)
		}
		boards = append(boards, buildBlackboard(rec, seed))
	}
	if err := scanner.Err(); err != nil && err != io.EOF {
		return nil, fmt.Errorf("dataset: read %s: %w", path, err)
	}
	return boards, nil
}

// LoadProblemFile reads path as a single JSON object (the same record shape
// as one line of a LoadProblems dataset) and returns its Blackboard. Used by
// the ad hoc single-problem CLI path.
func LoadProblemFile(path string, seed int64) (*board.Blackboard, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: open %s: %w", path, err)
	}
	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("dataset: parse %s: %w", path, err)
	}
	return buildBlackboard(rec, seed), nil
}

func buildBlackboard(rec record, seed int64) *board.Blackboard {
	model := problem.FromAPPSProblem(rec.APPSRecord)

	var seedTests []schema.TestCase
	for _, p := range rec.Examples {
		seedTests = append(seedTests, toTestCase(p, schema.OriginAPPSExample))
	}
	for _, p := range rec.Tests {
		seedTests = append(seedTests, toTestCase(p, schema.OriginAPPSTest))
	}

	tests := board.NewTestsBoard(seedTests, seed)
	strategy := board.NewStrategyBoard(seed)
	patch := board.NewPatchBoard()
	return board.NewBlackboard(model, tests, strategy, patch)
}

func toTestCase(p ioPair, origin schema.TestOrigin) schema.TestCase {
	output := p.Output
	return schema.TestCase{Input: p.Input, Expected: &output, Origin: origin}
}
