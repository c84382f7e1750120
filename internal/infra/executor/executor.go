// Package executor provides command execution functionality.
package executor

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"

	"github.com/runoshun/buildmenu/internal/domain"
)

// Client implements domain.CommandRunner interface.
type Client struct {
	stdin io.Reader
}

// NewClient creates a new command executor client.
// Child processes inherit the current process's stdin.
func NewClient() *Client {
	return &Client{stdin: os.Stdin}
}

// NewClientWithStdin creates a client that feeds stdin to child processes.
func NewClientWithStdin(stdin io.Reader) *Client {
	return &Client{stdin: stdin}
}

// Ensure Client implements domain.CommandRunner interface.
var _ domain.CommandRunner = (*Client)(nil)

// Run executes the step in its working directory and waits for it to exit.
// A non-zero exit status is returned in the result with a nil error.
// The error is set only when the process could not be started or waited on;
// the result then carries exit code -1.
func (c *Client) Run(ctx context.Context, step domain.CommandStep, stdout, stderr io.Writer) (domain.ExecutionResult, error) {
	// #nosec G204 - step.Program and step.Args come from the user's own menu configuration
	execCmd := exec.CommandContext(ctx, step.Program, step.Args...)
	if step.Dir != "" {
		execCmd.Dir = step.Dir
	}
	execCmd.Stdin = c.stdin
	execCmd.Stdout = stdout
	execCmd.Stderr = stderr

	err := execCmd.Run()
	if err == nil {
		return domain.ExecutionResult{ExitCode: 0}, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() >= 0 {
		return domain.ExecutionResult{ExitCode: exitErr.ExitCode()}, nil
	}
	return domain.ExecutionResult{ExitCode: -1}, err
}
