// Package provenance reports where the documents of a resolved import graph
// come from in version control.
//
// Inspect discovers the Git repository enclosing the root document, reads the
// HEAD commit and classifies every document of the graph against the
// worktree status, so that a load can be traced back to a commit and flagged
// when it includes uncommitted edits.
package provenance
