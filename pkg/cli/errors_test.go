package cli

import (
	"errors"
	"fmt"
	"testing"

	"github.com/superstrong/yaml-io/pkg/config"
	importErrors "github.com/superstrong/yaml-io/pkg/imports/errors"
)

func TestConfigError(t *testing.T) {
	err := &ConfigError{
		Field:   "assembly.layout",
		Message: "missing required field",
	}

	expected := "config error in assembly.layout: missing required field"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
}

func TestNewConfigError(t *testing.T) {
	err := NewConfigError("field", "message")
	if err.Field != "field" {
		t.Errorf("Field = %q, want %q", err.Field, "field")
	}
	if err.Message != "message" {
		t.Errorf("Message = %q, want %q", err.Message, "message")
	}
}

func TestCommandError(t *testing.T) {
	underlyingErr := errors.New("underlying error")
	err := &CommandError{
		Command: "resolve",
		Err:     underlyingErr,
	}

	expected := "command resolve failed: underlying error"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
}

func TestCommandErrorUnwrap(t *testing.T) {
	underlyingErr := errors.New("underlying error")
	err := NewCommandError("resolve", underlyingErr)

	if err.Unwrap() != underlyingErr {
		t.Errorf("Unwrap() = %v, want %v", err.Unwrap(), underlyingErr)
	}
	if !errors.Is(err, underlyingErr) {
		t.Error("errors.Is() should work with CommandError.Unwrap()")
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitOK},
		{"plain", errors.New("boom"), ExitFailure},
		{"config error", NewConfigError("format", "bad"), ExitConfig},
		{
			name: "validation error",
			err:  fmt.Errorf("load: %w", config.ValidationError{Errors: []config.FieldError{{Field: "a", Message: "bad"}}}),
			want: ExitConfig,
		},
		{
			name: "cyclic import",
			err:  NewCommandError("resolve", &importErrors.CyclicImportError{Cycle: []string{"/a", "/b", "/a"}}),
			want: ExitDocument,
		},
		{
			name: "missing import",
			err:  &importErrors.ImportNotFoundError{FilePath: "/x.yaml", ImportPath: "x.yaml"},
			want: ExitDocument,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}
