/*
Package errors defines the error taxonomy for cross-file anchor resolution.

Every failure during a load is fatal: the resolver never returns a partially
assembled document, because a document with silently dropped anchors is still
valid YAML and would load with the wrong values.

Error Types:

  - DirectiveSyntaxError: malformed #!import / #!export line or anchor syntax
  - ImportNotFoundError: an imported document does not exist or cannot be read
  - CyclicImportError: the import graph contains a cycle
  - UnknownExportError: an #!export entry names nothing the document can see
  - UnresolvedAliasError: an alias (*name or *alias.name) has no matching anchor
  - AmbiguousExportError: two different anchors are exported under one name
  - ImportRejectedError: a document violates a resolver limit (size, depth, root)

All types are returned as pointers and can be matched with errors.As:

	var cycle *errors.CyclicImportError
	if stderrors.As(err, &cycle) {
		fmt.Println(strings.Join(cycle.Cycle, " -> "))
	}

Kind classifies any error into a short stable label used for metrics and
command-line reporting.
*/
package errors
