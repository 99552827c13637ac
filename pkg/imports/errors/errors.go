package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// Kind labels returned by Kind.
const (
	KindDirectiveSyntax = "directive_syntax"
	KindImportNotFound  = "import_not_found"
	KindCyclicImport    = "cyclic_import"
	KindUnknownExport   = "unknown_export"
	KindUnresolvedAlias = "unresolved_alias"
	KindAmbiguousExport = "ambiguous_export"
	KindImportRejected  = "import_rejected"
	KindOther           = "other"
)

// DirectiveSyntaxError represents a malformed directive line.
// It is also used for anchor definitions the underlying YAML engine cannot
// express (for example a period inside an anchor name) and for files that
// contain more than one YAML document.
type DirectiveSyntaxError struct {
	// FilePath is the document containing the offending line
	FilePath string

	// Line is the 1-indexed line number in the original document
	Line int

	// Text is the offending line as written
	Text string

	// Message describes what is wrong with the line
	Message string
}

// Error implements the error interface.
func (e *DirectiveSyntaxError) Error() string {
	if e.Text != "" {
		return fmt.Sprintf("directive syntax error in %q at line %d: %s: %q", e.FilePath, e.Line, e.Message, e.Text)
	}
	return fmt.Sprintf("directive syntax error in %q at line %d: %s", e.FilePath, e.Line, e.Message)
}

// ImportNotFoundError represents an import target that does not exist or
// cannot be read.
type ImportNotFoundError struct {
	// FilePath is the resolved (absolute) path that could not be read
	FilePath string

	// ImportPath is the path as written in the #!import directive
	ImportPath string

	// Importer is the document declaring the import (empty for the root document)
	Importer string

	// Line is the line of the #!import directive in the importer
	Line int

	// Cause is the underlying file system error
	Cause error
}

// Error implements the error interface.
func (e *ImportNotFoundError) Error() string {
	var msg string
	if e.Importer == "" {
		msg = fmt.Sprintf("document %q not found", e.FilePath)
	} else {
		msg = fmt.Sprintf("import %q in %q at line %d: document %q not found", e.ImportPath, e.Importer, e.Line, e.FilePath)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

// Unwrap implements the errors.Unwrap interface for error chain support.
func (e *ImportNotFoundError) Unwrap() error {
	return e.Cause
}

// CyclicImportError represents a cycle in the import graph.
type CyclicImportError struct {
	// Cycle is the ordered sequence of canonical paths forming the cycle.
	// The first and last entries are the same document.
	Cycle []string
}

// Error implements the error interface.
func (e *CyclicImportError) Error() string {
	return fmt.Sprintf("cyclic import detected: %s", strings.Join(e.Cycle, " -> "))
}

// UnknownExportError represents an #!export entry that does not resolve to
// a local anchor or to an anchor exported by an imported document.
type UnknownExportError struct {
	// FilePath is the document declaring the export
	FilePath string

	// Line is the line of the #!export directive
	Line int

	// Name is the export entry as written (alias.anchor or anchor)
	Name string

	// Message describes why the entry could not be resolved
	Message string
}

// Error implements the error interface.
func (e *UnknownExportError) Error() string {
	return fmt.Sprintf("unknown export %q in %q at line %d: %s", e.Name, e.FilePath, e.Line, e.Message)
}

// UnresolvedAliasError represents an alias reference with no matching anchor
// in the referencing document or in the export chain of its imports.
type UnresolvedAliasError struct {
	// FilePath is the document containing the alias
	FilePath string

	// Line is the line of the alias in the original document
	Line int

	// Reference is the alias name as written, without the leading '*'
	Reference string

	// Message describes why the alias could not be resolved
	Message string
}

// Error implements the error interface.
func (e *UnresolvedAliasError) Error() string {
	return fmt.Sprintf("unresolved alias *%s in %q at line %d: %s", e.Reference, e.FilePath, e.Line, e.Message)
}

// AmbiguousExportError represents two distinct anchors competing for the
// same exported name in one document's namespace.
type AmbiguousExportError struct {
	// FilePath is the document whose namespace has the collision
	FilePath string

	// Line is the line of the #!export directive that introduced the conflict
	Line int

	// Name is the exported (unqualified) name
	Name string

	// Existing describes the anchor already exported under Name
	Existing string

	// Conflicting describes the anchor that could not be added
	Conflicting string
}

// Error implements the error interface.
func (e *AmbiguousExportError) Error() string {
	return fmt.Sprintf("ambiguous export %q in %q at line %d: already exported from %s, cannot also export %s",
		e.Name, e.FilePath, e.Line, e.Existing, e.Conflicting)
}

// ImportRejectedError represents a document that exists but violates a
// resolver limit: file size, encoding, import depth or the confinement root.
type ImportRejectedError struct {
	// FilePath is the rejected document
	FilePath string

	// Importer is the document declaring the import (empty for the root document)
	Importer string

	// Line is the line of the #!import directive in the importer
	Line int

	// Message describes the violated limit
	Message string

	// Cause is the underlying error
	Cause error
}

// Error implements the error interface.
func (e *ImportRejectedError) Error() string {
	var msg string
	if e.Importer == "" {
		msg = fmt.Sprintf("document %q rejected: %s", e.FilePath, e.Message)
	} else {
		msg = fmt.Sprintf("import of %q in %q at line %d rejected: %s", e.FilePath, e.Importer, e.Line, e.Message)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

// Unwrap implements the errors.Unwrap interface for error chain support.
func (e *ImportRejectedError) Unwrap() error {
	return e.Cause
}

// Kind returns a short stable label for err. Errors outside the taxonomy
// are reported as KindOther; nil returns the empty string.
func Kind(err error) string {
	if err == nil {
		return ""
	}

	var (
		syntaxErr    *DirectiveSyntaxError
		notFoundErr  *ImportNotFoundError
		cycleErr     *CyclicImportError
		exportErr    *UnknownExportError
		aliasErr     *UnresolvedAliasError
		ambiguousErr *AmbiguousExportError
		rejectedErr  *ImportRejectedError
	)

	switch {
	case stderrors.As(err, &syntaxErr):
		return KindDirectiveSyntax
	case stderrors.As(err, &notFoundErr):
		return KindImportNotFound
	case stderrors.As(err, &cycleErr):
		return KindCyclicImport
	case stderrors.As(err, &exportErr):
		return KindUnknownExport
	case stderrors.As(err, &aliasErr):
		return KindUnresolvedAlias
	case stderrors.As(err, &ambiguousErr):
		return KindAmbiguousExport
	case stderrors.As(err, &rejectedErr):
		return KindImportRejected
	default:
		return KindOther
	}
}
