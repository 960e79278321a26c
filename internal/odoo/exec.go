package odoo

import (
	"context"
	"os"
	"os/exec"
	"strings"

	"go.uber.org/zap"
)

// Runner invokes external system tools. Every lifecycle step that shells
// out goes through this interface so tests can substitute a fake and
// simulate failure at any step. Calls have no enforced timeout; callers
// pass a context and commands are expected to terminate.
type Runner interface {
	// Run executes the command streaming stdout/stderr to the terminal.
	Run(ctx context.Context, name string, args ...string) error
	// Output executes the command and returns its combined output.
	Output(ctx context.Context, name string, args ...string) (string, error)
}

type systemRunner struct {
	log *zap.Logger
}

// NewRunner returns a Runner backed by os/exec.
func NewRunner(log *zap.Logger) Runner {
	return &systemRunner{log: log}
}

func (r *systemRunner) Run(ctx context.Context, name string, args ...string) error {
	r.log.Debug("exec", zap.String("cmd", name+" "+strings.Join(args, " ")))
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return &ExternalToolError{Tool: name, Args: args, Err: err}
	}
	return nil
}

func (r *systemRunner) Output(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return string(out), &ExternalToolError{Tool: name, Args: args, Err: err}
	}
	return string(out), nil
}
