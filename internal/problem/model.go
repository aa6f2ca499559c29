// Package problem holds the immutable facts about a single
// competitive-programming problem and their construction from APPS-style
// dataset records.
package problem

import "strings"

// Model is immutable after construction; callers that want a variant build
// a new Model rather than mutating one in place.
type Model struct {
	Objective         string
	RawStatement      string
	IOSpec            map[string]any
	Constraints       map[string]any
	Invariants        []string
	EdgeCaseChecklist []string
	Tags              []string
}

// APPSRecord is the permissive shape of one dataset record, as ingested by
// internal/dataset. Field names mirror the APPS problem JSON.
type APPSRecord struct {
	Name              string         `json:"name"`
	Question          string         `json:"question"`
	StarterCode       string         `json:"starter_code"`
	InputDescription  string         `json:"input_description"`
	OutputDescription string         `json:"output_description"`
	Constraints       map[string]any `json:"constraints"`
	Tags              []string       `json:"tags"`
}

// FromAPPSProblem builds a Model from one dataset record.
func FromAPPSProblem(rec APPSRecord) Model {
	name := rec.Name
	if name == "" {
		name = "unknown"
	}
	constraints := rec.Constraints
	if constraints == nil {
		constraints = map[string]any{}
	}
	ioSpec := map[string]any{
		"starter_code":       rec.StarterCode,
		"input_description":  rec.InputDescription,
		"output_description": rec.OutputDescription,
	}
	return Model{
		Objective:         "Solve " + name,
		RawStatement:      rec.Question,
		IOSpec:            ioSpec,
		Constraints:       constraints,
		Invariants:        nil,
		EdgeCaseChecklist: nil,
		Tags:              rec.Tags,
	}
}

// Summarize returns a one-line summary: objective plus the first non-empty
// line of the raw statement.
func (m Model) Summarize() string {
	firstLine := m.Objective
	for _, line := range strings.Split(strings.TrimSpace(m.RawStatement), "\n") {
		if strings.TrimSpace(line) != "" {
			firstLine = line
			break
		}
	}
	return m.Objective + ": " + firstLine
}

// StarterCode extracts the starter_code field from IOSpec, if present.
func (m Model) StarterCode() string {
	if v, ok := m.IOSpec["starter_code"]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
