// Package directive scans YAML documents for import/export directives,
// anchor definitions and alias references.
//
// # Directive Syntax
//
// Directives are comment lines recognized strictly by their prefix at
// column 0:
//
//	#!import shared/versions.yaml as v
//	#!export v.stable, v.beta
//
// The alias of an import must be an identifier ([A-Za-z_][A-Za-z0-9_]*) and
// unique within the document. Export entries are qualified names
// (alias.anchor) or names of anchors defined in the same document. A
// directive may end in a comment; as elsewhere in YAML the '#' must follow
// whitespace:
//
//	#!import shared/versions.yaml as v # pinned release train
//
// # Anchors and Aliases
//
// A small YAML-aware lexer finds anchors (&name) and aliases (*name,
// *alias.name) at node-start positions. Comments, quoted scalars and block
// scalars are skipped, so directive-like or alias-like text inside string
// values is never touched.
//
// # Output
//
// Scan returns a Document whose Body is the input with directive lines
// removed. Anchor and Reference offsets point into Body so that later stages
// can rewrite names in place; line numbers refer to the original input.
package directive
