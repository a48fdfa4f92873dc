package sysinfo

import (
	"context"
	"fmt"
	"os/exec"
	"time"
)

// Runner executes a named external tool and returns its captured stdout.
// A tool that is missing, exits non-zero or times out yields an error.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecRunner runs tools as child processes bounded by Timeout.
type ExecRunner struct {
	Timeout time.Duration
}

// Run starts name with args and waits for it to finish or time out.
func (r ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultCommandTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, name, args...).Output()
	if ctx.Err() == context.DeadlineExceeded {
		return nil, fmt.Errorf("%s: timed out after %s", name, timeout)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return out, nil
}
