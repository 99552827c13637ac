package cli

import (
	"errors"
	"fmt"

	"github.com/superstrong/yaml-io/pkg/config"
	importErrors "github.com/superstrong/yaml-io/pkg/imports/errors"
)

// Process exit codes.
const (
	ExitOK      = 0
	ExitFailure = 1
	// ExitConfig reports an invalid flag or configuration file.
	ExitConfig = 2
	// ExitDocument reports a document that could not be resolved.
	ExitDocument = 3
)

// ConfigError represents an error in configuration.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error in %s: %s", e.Field, e.Message)
}

// CommandError represents an error from a command execution.
type CommandError struct {
	Command string
	Err     error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("command %s failed: %v", e.Command, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError.
func NewConfigError(field, message string) *ConfigError {
	return &ConfigError{
		Field:   field,
		Message: message,
	}
}

// NewCommandError creates a new CommandError.
func NewCommandError(command string, err error) *CommandError {
	return &CommandError{
		Command: command,
		Err:     err,
	}
}

// ExitCode maps err to the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	var cfgErr *ConfigError
	var validationErr config.ValidationError
	if errors.As(err, &cfgErr) || errors.As(err, &validationErr) {
		return ExitConfig
	}

	if importErrors.Kind(err) != importErrors.KindOther {
		return ExitDocument
	}
	return ExitFailure
}
