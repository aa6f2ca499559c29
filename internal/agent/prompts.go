// Package agent implements the five specialist agents (strategy, codegen,
// testgen, repair, scoring) that propose Actions during MCTS expansion.
package agent

const codegenPromptTemplate = `You are an expert competitive programmer.

TASK
Write a correct and efficient Python 3 solution for the problem below.

PROBLEM STATEMENT
%s

INPUT/OUTPUT SPEC
%v

CONSTRAINTS
%v

REQUIRED INVARIANTS / CORRECTNESS CONDITIONS
%s

EDGE CASE CHECKLIST
%s

KNOWN FAILING / TRICKY CASES (from blackboard)
%s

RULES
- Output MUST be ONLY valid Python code (no markdown, no explanation).
- The solution MUST read from stdin and write to stdout.
- Be robust to extra spaces/newlines.
- Ensure time complexity fits constraints.
- Prefer simple, standard-library-only code.
- Add minimal comments only where needed for correctness.

Return ONLY the final Python code.
`

const repairPromptTemplate = `You are a senior engineer fixing a competitive programming solution.

PROBLEM (for reference)
%s

CURRENT CODE
%s

FAILURE DIAGNOSTICS
- status: %s
- error_type: %s
- failing_tests:
%s

PATCH PROPOSALS (apply the best subset, respect constraints)
%s

RULES
- Return ONLY valid Python code (no markdown, no explanation).
- Preserve working parts; change minimal lines necessary.
- Ensure the fix addresses the failing tests.
- Do NOT introduce new I/O format changes.
- Keep complexity within constraints.
- If multiple patches conflict, choose the safer one.

Return ONLY the repaired Python code.
`

const testgenPromptTemplate = `You are a test designer for competitive programming problems.

PROBLEM STATEMENT
%s

INPUT/OUTPUT SPEC
%v

CONSTRAINTS
%v

EDGE CASE CHECKLIST
%s

KNOWN FAILING / TRICKY CASES (from blackboard)
%s

Return ONLY valid JSON: {"tests":[{"input":...,"expected_output":...,"origin":...,"weight":...}]}.
`

const strategyPromptTemplate = `You are a competitive programming strategist.

PROBLEM SUMMARY
%s

CONSTRAINTS
%s

RECENT FAILURE STATUSES
%v

FAILURE PATTERNS
%v

KNOWN FAILING / TRICKY CASES
%s

Return ONLY valid JSON: {"strategies":[{"id":...,"name":...,"applicability_conditions":[...],
"complexity_upper_bound":...,"risk_flags":[...],"minimal_evidence_set":[...],"notes":...,
"bid":{"p":...,"c":...,"r":...}}],"recommended_active_id":...}.
`
