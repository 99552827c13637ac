// Package assembler turns a resolved import graph into one YAML text that a
// standard YAML parser loads with ordinary anchor and alias semantics.
//
// Every document is emitted once, dependencies first and the root last, so
// each anchor is defined before any alias that refers to it. Anchors get a
// physical name that is unique across the whole text: the anchor's own name
// when it is still free, otherwise the name with a numeric suffix. Qualified
// aliases (*alias.anchor) are rewritten to the physical name of the anchor
// they resolve to through the import namespaces.
//
// The wrapped layout keeps imported documents out of the loaded value:
//
//	imports:
//	  - # /abs/path/shared.yaml
//	    value: &value 42
//	document:
//	  use: *value
//
// The concatenated layout joins the bodies as they are, for documents whose
// top-level mappings are meant to merge.
package assembler
