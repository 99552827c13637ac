package errors

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"strings"
	"testing"
)

func TestDirectiveSyntaxError(t *testing.T) {
	err := &DirectiveSyntaxError{
		FilePath: "/docs/base.yaml",
		Line:     3,
		Text:     "#!import shared.yaml",
		Message:  "expected '#!import <path> as <alias>'",
	}

	errMsg := err.Error()
	for _, want := range []string{"/docs/base.yaml", "line 3", "#!import shared.yaml", "as <alias>"} {
		if !strings.Contains(errMsg, want) {
			t.Errorf("Error() = %q, want to contain %q", errMsg, want)
		}
	}
}

func TestImportNotFoundError(t *testing.T) {
	cause := fs.ErrNotExist

	err := &ImportNotFoundError{
		FilePath:   "/docs/missing.yaml",
		ImportPath: "missing.yaml",
		Importer:   "/docs/main.yaml",
		Line:       1,
		Cause:      cause,
	}

	errMsg := err.Error()
	if !strings.Contains(errMsg, "/docs/missing.yaml") {
		t.Errorf("Error() = %q, want to contain unresolved path", errMsg)
	}
	if !strings.Contains(errMsg, "/docs/main.yaml") {
		t.Errorf("Error() = %q, want to contain importer", errMsg)
	}

	if !stderrors.Is(err, fs.ErrNotExist) {
		t.Error("errors.Is(err, fs.ErrNotExist) = false, want true")
	}

	root := &ImportNotFoundError{FilePath: "/docs/root.yaml"}
	if strings.Contains(root.Error(), "import") {
		t.Errorf("Error() = %q, root document error should not mention an import", root.Error())
	}
}

func TestCyclicImportError(t *testing.T) {
	err := &CyclicImportError{Cycle: []string{"/a.yaml", "/b.yaml", "/a.yaml"}}

	want := "cyclic import detected: /a.yaml -> /b.yaml -> /a.yaml"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestUnknownExportError(t *testing.T) {
	err := &UnknownExportError{
		FilePath: "/docs/router.yaml",
		Line:     2,
		Name:     "a.missing",
		Message:  "anchor not exported by import \"a\"",
	}

	errMsg := err.Error()
	if !strings.Contains(errMsg, "a.missing") || !strings.Contains(errMsg, "/docs/router.yaml") {
		t.Errorf("Error() = %q, want to contain name and path", errMsg)
	}
}

func TestUnresolvedAliasError(t *testing.T) {
	err := &UnresolvedAliasError{
		FilePath:  "/docs/main.yaml",
		Line:      7,
		Reference: "base.v1",
		Message:   "not exported",
	}

	if !strings.Contains(err.Error(), "*base.v1") {
		t.Errorf("Error() = %q, want to contain the alias", err.Error())
	}
}

func TestAmbiguousExportError(t *testing.T) {
	err := &AmbiguousExportError{
		FilePath:    "/docs/router.yaml",
		Line:        4,
		Name:        "anchor1",
		Existing:    "/docs/a.yaml#anchor1",
		Conflicting: "/docs/b.yaml#anchor1",
	}

	errMsg := err.Error()
	for _, want := range []string{"anchor1", "/docs/a.yaml#anchor1", "/docs/b.yaml#anchor1"} {
		if !strings.Contains(errMsg, want) {
			t.Errorf("Error() = %q, want to contain %q", errMsg, want)
		}
	}
}

func TestImportRejectedError(t *testing.T) {
	cause := stderrors.New("too large")
	err := &ImportRejectedError{
		FilePath: "/docs/big.yaml",
		Importer: "/docs/main.yaml",
		Line:     1,
		Message:  "file size exceeds limit",
		Cause:    cause,
	}

	if !stderrors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
	if !strings.Contains(err.Error(), "rejected") {
		t.Errorf("Error() = %q, want to contain 'rejected'", err.Error())
	}
}

func TestKind(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "syntax", err: &DirectiveSyntaxError{}, want: KindDirectiveSyntax},
		{name: "not found", err: &ImportNotFoundError{}, want: KindImportNotFound},
		{name: "cycle", err: &CyclicImportError{}, want: KindCyclicImport},
		{name: "unknown export", err: &UnknownExportError{}, want: KindUnknownExport},
		{name: "unresolved alias", err: &UnresolvedAliasError{}, want: KindUnresolvedAlias},
		{name: "ambiguous export", err: &AmbiguousExportError{}, want: KindAmbiguousExport},
		{name: "rejected", err: &ImportRejectedError{}, want: KindImportRejected},
		{name: "wrapped", err: fmt.Errorf("load failed: %w", &CyclicImportError{}), want: KindCyclicImport},
		{name: "other", err: stderrors.New("boom"), want: KindOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Kind(tt.err); got != tt.want {
				t.Errorf("Kind() = %q, want %q", got, tt.want)
			}
		})
	}
}
