package domain

import (
	"errors"
	"fmt"
)

// Domain errors.
var (
	ErrConfigurationMissing = errors.New("configuration missing")
	ErrUnknownSelection     = errors.New("unknown selection")
	ErrStepFailed           = errors.New("step failed")
	ErrSelectionCancelled   = errors.New("selection cancelled")
	ErrConfigExists         = errors.New("config file already exists")
	ErrConfigNil            = errors.New("config is nil")
	ErrUnknownPreset        = errors.New("unknown menu preset")
	ErrEmptyMenuKey         = errors.New("menu option key cannot be empty")
	ErrDuplicateMenuKey     = errors.New("duplicate menu option key")
	ErrInvalidDefaultKey    = errors.New("default key does not match any menu option")
	ErrNoToolProgram        = errors.New("no build tool program configured")
)

// StepFailedError reports a CommandStep that did not succeed.
// Cause is set when the process could not be started at all.
type StepFailedError struct {
	Cause  error
	Step   CommandStep
	Result ExecutionResult
}

func (e *StepFailedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", ErrStepFailed, e.Step, e.Cause)
	}
	return fmt.Sprintf("%s (exit code %d): %s", ErrStepFailed, e.Result.ExitCode, e.Step)
}

// Unwrap allows errors.Is(err, ErrStepFailed).
func (e *StepFailedError) Unwrap() []error {
	if e.Cause != nil {
		return []error{ErrStepFailed, e.Cause}
	}
	return []error{ErrStepFailed}
}
