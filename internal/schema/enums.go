// Package schema holds the value types shared across the search engine:
// test cases, diagnostics, failure records, patches, and strategy hypotheses.
package schema

// DiagnosticStatus classifies the outcome of running a candidate program
// against a single test.
type DiagnosticStatus string

const (
	StatusPass    DiagnosticStatus = "PASS"
	StatusWA      DiagnosticStatus = "WA"
	StatusRE      DiagnosticStatus = "RE"
	StatusTLE     DiagnosticStatus = "TLE"
	StatusUnknown DiagnosticStatus = "UNKNOWN"
)

// ParseDiagnosticStatus parses a status string, falling back to Unknown.
func ParseDiagnosticStatus(s string) DiagnosticStatus {
	switch DiagnosticStatus(s) {
	case StatusPass, StatusWA, StatusRE, StatusTLE, StatusUnknown:
		return DiagnosticStatus(s)
	default:
		return StatusUnknown
	}
}

// TestOrigin records where a TestCase came from.
type TestOrigin string

const (
	OriginAPPSExample      TestOrigin = "APPS_EXAMPLE"
	OriginAPPSTest         TestOrigin = "APPS_TEST"
	OriginCounterexample   TestOrigin = "COUNTEREXAMPLE"
	OriginMinimized        TestOrigin = "MINIMIZED"
	OriginGeneratedExtreme TestOrigin = "GENERATED_EXTREME"
	OriginGeneratedRandom  TestOrigin = "GENERATED_RANDOM"

	// Legacy aliases accepted on ingress, normalized by ParseTestOrigin.
	originGeneratedEnum    TestOrigin = "GENERATED_ENUM"
	originMinimizationHint TestOrigin = "MINIMIZATION_HINT"
)

// ParseTestOrigin parses an origin string from LLM/JSON ingress. Unknown or
// malformed values fall back to GENERATED_RANDOM; the two legacy aliases are
// preserved by mapping onto their modern equivalents.
func ParseTestOrigin(s string) TestOrigin {
	switch TestOrigin(s) {
	case OriginAPPSExample, OriginAPPSTest, OriginCounterexample, OriginMinimized,
		OriginGeneratedExtreme, OriginGeneratedRandom:
		return TestOrigin(s)
	case originGeneratedEnum:
		return OriginGeneratedRandom
	case originMinimizationHint:
		return OriginMinimized
	default:
		return OriginGeneratedRandom
	}
}

// PatchLevel classifies the blast radius of a proposed patch.
type PatchLevel string

const (
	PatchL1Local      PatchLevel = "L1_LOCAL"
	PatchL2Structural PatchLevel = "L2_STRUCTURAL"
	PatchL3System     PatchLevel = "L3_SYSTEM"
)

// ParsePatchLevel parses a level string, falling back to L1_LOCAL.
func ParsePatchLevel(s string) PatchLevel {
	switch PatchLevel(s) {
	case PatchL1Local, PatchL2Structural, PatchL3System:
		return PatchLevel(s)
	default:
		return PatchL1Local
	}
}
