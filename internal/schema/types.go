package schema

// TestCase is a single input/expected-output pair tracked on the blackboard.
// Equality on Input (modulo trailing whitespace) defines identity within a
// TestsBoard bucket; callers should compare via TrimmedInput.
type TestCase struct {
	Input    string
	Expected *string
	Origin   TestOrigin
	Weight   float64
}

// TrimmedInput returns Input with trailing whitespace removed, the identity
// key used for dedup within a TestsBoard bucket.
func (t TestCase) TrimmedInput() string {
	return trimTrailingSpace(t.Input)
}

// ExpectedOrEmpty returns the expected output, or "" if none is recorded.
func (t TestCase) ExpectedOrEmpty() string {
	if t.Expected == nil {
		return ""
	}
	return *t.Expected
}

func trimTrailingSpace(s string) string {
	end := len(s)
	for end > 0 {
		c := s[end-1]
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' {
			end--
			continue
		}
		break
	}
	return s[:end]
}

// TestCaseResult pairs a TestCase with the actual/expected output observed
// while evaluating it.
type TestCaseResult struct {
	TestCase       TestCase
	ActualOutput   *string
	ExpectedOutput *string
}

// Diagnostic is a structured failure (or pass) record produced by the
// evaluation pipeline and fed to the ScoringAgent.
type Diagnostic struct {
	Stage          string // "quickscreen" or "deepeval"
	Status         DiagnosticStatus
	Test           *TestCase
	FailingTests   []TestCaseResult
	Message        string
	ActualOutput   *string
	ExpectedOutput *string
	RuntimeSeconds float64
	Notes          map[string]any
}

// OffendingTest returns the test a diagnostic is about, preferring the first
// failing test result over the single Test field.
func (d Diagnostic) OffendingTest() *TestCase {
	if len(d.FailingTests) > 0 {
		return &d.FailingTests[0].TestCase
	}
	return d.Test
}

// FailureRecord is an append-only log entry derived from a Diagnostic.
// Timestamp is the sequence length before append (a monotonic integer),
// not wall-clock time.
type FailureRecord struct {
	Status    DiagnosticStatus
	Test      *TestCase
	Stage     string
	Message   string
	Timestamp int64
}

// Patch is a proposed code-repair intent with dependencies and conflicts.
type Patch struct {
	ID            string
	Level         PatchLevel
	Description   string
	Preconditions []string
	Dependencies  []string
	Conflicts     []string
	SuccessProb   float64
	Cost          float64
	Risk          float64
	Tags          []string
}

// StrategyHypothesis names an algorithmic approach a CodeGenAgent can target.
type StrategyHypothesis struct {
	ID                      string
	Name                    string
	ApplicabilityConditions []string
	ComplexityUpperBound    string
	RiskFlags               []string
	MinimalEvidenceSet      []string
	Notes                   string
}

// Bid is the (plausibility, cost, risk) triple backing a strategy's prior.
type Bid struct {
	P, C, R float64
}

// DefaultBid is the bid assigned to a hypothesis the first time it is
// upserted with no explicit bid.
var DefaultBid = Bid{P: 0.5, C: 0.5, R: 0.5}
