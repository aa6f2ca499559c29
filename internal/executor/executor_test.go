package executor

import (
	"context"
	"os/exec"
	"strings"
	"testing"
	"time"
)

func hasPython3() bool {
	_, err := exec.LookPath("python3")
	return err == nil
}

func TestPythonRunnerEchoesStdin(t *testing.T) {
	if !hasPython3() {
		t.Skip("python3 not available in this environment")
	}
	r := NewPythonRunner()
	code := "import sys\nprint(sys.stdin.read().strip())\n"
	result, err := r.Run(context.Background(), code, "hello\n", 2*time.Second)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if strings.TrimSpace(result.Stdout) != "hello" {
		t.Fatalf("expected echoed stdin, got %q", result.Stdout)
	}
	if result.TimedOut {
		t.Fatalf("did not expect timeout")
	}
}

func TestPythonRunnerReportsTimeout(t *testing.T) {
	if !hasPython3() {
		t.Skip("python3 not available in this environment")
	}
	r := NewPythonRunner()
	code := "import time\ntime.sleep(5)\n"
	result, err := r.Run(context.Background(), code, "", 50*time.Millisecond)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !result.TimedOut {
		t.Fatalf("expected TimedOut=true for a long-sleeping program")
	}
}

func TestPythonRunnerNonZeroExit(t *testing.T) {
	if !hasPython3() {
		t.Skip("python3 not available in this environment")
	}
	r := NewPythonRunner()
	code := "import sys\nsys.exit(3)\n"
	result, err := r.Run(context.Background(), code, "", 2*time.Second)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.ExitCode != 3 {
		t.Fatalf("expected exit code 3, got %d", result.ExitCode)
	}
}
