package vale

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/asciidoc-dita/adfix/internal/rule"
)

// Executor runs the vale binary as a subprocess.
type Executor struct {
	// Binary is the vale executable. Default: "vale" on PATH.
	Binary string

	// ConfigPath is passed as --config when set.
	ConfigPath string

	// Timeout is the max execution time.
	// Default: 2 minutes
	Timeout time.Duration

	// WorkDir is the working directory.
	WorkDir string

	// Env is additional environment variables.
	Env map[string]string
}

// NewExecutor creates an executor with defaults.
func NewExecutor() *Executor {
	return &Executor{
		Binary:  "vale",
		Timeout: 2 * time.Minute,
		Env:     make(map[string]string),
	}
}

// Run lints the given paths with --output=JSON and parses the result into
// violations. vale exits non-zero when it finds violations, so a non-zero
// exit with parseable JSON on stdout is a normal outcome, not an error.
func (e *Executor) Run(ctx context.Context, paths []string) ([]rule.Violation, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	if e.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.Timeout)
		defer cancel()
	}

	args := []string{"--output=JSON"}
	if e.ConfigPath != "" {
		args = append(args, "--config", e.ConfigPath)
	}
	args = append(args, paths...)

	cmd := exec.CommandContext(ctx, e.Binary, args...)
	if e.WorkDir != "" {
		cmd.Dir = e.WorkDir
	}
	if len(e.Env) > 0 {
		cmd.Env = append(os.Environ(), e.envSlice()...)
	}

	stdout, err := cmd.Output()
	if err != nil {
		// vale signals findings via a non-zero exit; only a failure to run
		// (or an empty stdout) is an actual error.
		if _, ok := err.(*exec.ExitError); !ok || len(stdout) == 0 {
			return nil, fmt.Errorf("failed to execute %s: %w", e.Binary, err)
		}
	}

	return ParseReport(stdout)
}

func (e *Executor) envSlice() []string {
	result := make([]string, 0, len(e.Env))
	for k, v := range e.Env {
		result = append(result, fmt.Sprintf("%s=%s", k, v))
	}
	return result
}
