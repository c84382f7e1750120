package domain

import (
	"slices"
	"strconv"
	"strings"
)

// CommandStep represents one external command invocation within a menu option.
// Program and Args are handed to the OS as-is; no shell is involved.
type CommandStep struct {
	Program string
	Dir     string
	Message string // Printed before the step runs (optional)
	Args    []string
}

// NewCommandStep creates a CommandStep. The args slice is copied.
func NewCommandStep(program string, args []string, dir string) CommandStep {
	return CommandStep{
		Program: program,
		Args:    slices.Clone(args),
		Dir:     dir,
	}
}

// WithMessage returns a copy of the step with the given message.
func (s CommandStep) WithMessage(msg string) CommandStep {
	c := s.clone()
	c.Message = msg
	return c
}

func (s CommandStep) clone() CommandStep {
	s.Args = slices.Clone(s.Args)
	return s
}

// String renders the step as a human-readable command line.
// Arguments containing whitespace or quotes are quoted.
func (s CommandStep) String() string {
	parts := make([]string, 0, len(s.Args)+1)
	parts = append(parts, quoteArg(s.Program))
	for _, a := range s.Args {
		parts = append(parts, quoteArg(a))
	}
	return strings.Join(parts, " ")
}

func quoteArg(s string) string {
	if s == "" {
		return `""`
	}
	if strings.ContainsAny(s, " \t\n\"'") {
		return strconv.Quote(s)
	}
	return s
}

// ExecutionResult holds the outcome of a single CommandStep.
type ExecutionResult struct {
	ExitCode int
}

// Success reports whether the step exited with status 0.
func (r ExecutionResult) Success() bool {
	return r.ExitCode == 0
}
