/*
Package resolver walks the import graph of a YAML document and computes the
namespace each document exposes to its importers.

# Resolution

Resolve starts at one document, reads it through a Source, scans it for
directives and recursively resolves every import depth-first. Relative
import paths are resolved against the directory of the importing document.
Each canonical path (absolute, symlinks evaluated) is read and scanned at
most once per call; a second import of the same document reuses the node
from the per-call Cache.

An import of a document that is still being resolved is a cycle and fails
with a CyclicImportError listing the paths from the first occurrence to the
repeated one.

# Namespaces

A document's namespace is built after all of its imports are resolved:

  - every anchor defined in the document is exported under its own name
  - every "#!export alias.anchor" entry re-exports an anchor from the
    namespace of the import declared under alias

Anything not re-exported stays private to the importing document, which
lets import chains be layered without leaking every transitive anchor.

# Limits

The resolver rejects documents that are too large, not valid UTF-8, deeper
than the configured import depth or outside the configured root directory.
*/
package resolver
