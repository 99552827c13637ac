package resolver

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/dominikbraun/graph"

	"github.com/superstrong/yaml-io/pkg/imports/directive"
	importErrors "github.com/superstrong/yaml-io/pkg/imports/errors"
)

// DefaultMaxImportDepth is the default limit on import chain length.
const DefaultMaxImportDepth = 32

// Resolver resolves import graphs. A Resolver holds only configuration and
// may be shared; every Resolve call owns its own Cache.
type Resolver struct {
	source         Source
	logger         *slog.Logger
	observer       Observer
	maxImportDepth int
	rootDir        string
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithSource sets the document source. The default is a FileSource.
func WithSource(source Source) Option {
	return func(r *Resolver) {
		r.source = source
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// WithObserver registers an observer for resolution events.
func WithObserver(observer Observer) Option {
	return func(r *Resolver) {
		r.observer = observer
	}
}

// WithMaxImportDepth limits the length of import chains. Values <= 0 keep
// the default.
func WithMaxImportDepth(depth int) Option {
	return func(r *Resolver) {
		if depth > 0 {
			r.maxImportDepth = depth
		}
	}
}

// WithRootDir confines every document of a resolution to dir.
func WithRootDir(dir string) Option {
	return func(r *Resolver) {
		r.rootDir = dir
	}
}

// New creates a resolver.
func New(opts ...Option) *Resolver {
	r := &Resolver{
		source:         FileSource{},
		logger:         slog.Default(),
		observer:       nopObserver{},
		maxImportDepth: DefaultMaxImportDepth,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve reads the document at path and every document it imports,
// directly or transitively, and returns the resolved graph.
//
// The context is used for log correlation only.
func (r *Resolver) Resolve(ctx context.Context, path string) (*Graph, error) {
	root := ""
	if r.rootDir != "" {
		normalized, err := normalizePath(r.rootDir)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve root directory %q: %w", r.rootDir, err)
		}
		root = normalized
	}

	w := &walk{
		Resolver:   r,
		ctx:        ctx,
		root:       root,
		cache:      NewCache(),
		inProgress: make(map[string]int),
		deps:       newDependencyGraph(),
	}

	rootNode, err := w.resolve(path, nil, directive.Import{Path: path}, 0)
	if err != nil {
		return nil, err
	}

	return &Graph{
		Root:      rootNode,
		Order:     w.order,
		Nodes:     w.cache.nodes,
		Reads:     w.reads,
		CacheHits: w.cache.Hits(),
		deps:      w.deps,
	}, nil
}

// walk is the state of one Resolve call.
type walk struct {
	*Resolver

	ctx  context.Context
	root string

	cache *Cache

	// stack is the chain of documents currently being resolved;
	// inProgress maps each of them to its stack index
	stack      []string
	inProgress map[string]int

	order []*Node
	reads int
	deps  graph.Graph[string, string]
}

func (w *walk) resolve(path string, importer *Node, imp directive.Import, depth int) (*Node, error) {
	canonical, err := normalizePath(path)
	if err != nil {
		return nil, w.notFound(path, importer, imp, err)
	}

	if node, ok := w.cache.Get(canonical); ok {
		w.observer.CacheHit(canonical)
		w.logger.DebugContext(w.ctx, "document served from cache", "path", canonical)
		return node, nil
	}

	if idx, ok := w.inProgress[canonical]; ok {
		cycle := make([]string, 0, len(w.stack)-idx+1)
		cycle = append(cycle, w.stack[idx:]...)
		cycle = append(cycle, canonical)
		return nil, &importErrors.CyclicImportError{Cycle: cycle}
	}

	if depth > w.maxImportDepth {
		return nil, w.rejected(canonical, importer, imp,
			fmt.Sprintf("import depth %d exceeds maximum %d", depth, w.maxImportDepth), nil)
	}

	if w.root != "" && !within(w.root, canonical) {
		return nil, w.rejected(canonical, importer, imp,
			fmt.Sprintf("document outside of root directory %q (directory traversal prevented)", w.root), nil)
	}

	raw, err := w.source.ReadDocument(canonical)
	if err != nil {
		if errors.Is(err, ErrFileTooLarge) || errors.Is(err, ErrInvalidEncoding) || errors.Is(err, ErrNotRegularFile) {
			return nil, w.rejected(canonical, importer, imp, err.Error(), err)
		}
		return nil, w.notFound(canonical, importer, imp, err)
	}
	w.reads++
	w.observer.DocumentRead(canonical, len(raw))

	doc, err := directive.Scan(canonical, raw)
	if err != nil {
		return nil, err
	}

	node := &Node{
		Path:     canonical,
		Raw:      raw,
		Document: doc,
		Depth:    depth,
	}
	if err := addDocument(w.deps, canonical); err != nil {
		return nil, err
	}

	w.inProgress[canonical] = len(w.stack)
	w.stack = append(w.stack, canonical)

	for _, childImport := range doc.Imports {
		child, err := w.resolve(importPath(canonical, childImport.Path), node, childImport, depth+1)
		if err != nil {
			return nil, err
		}
		node.Imports = append(node.Imports, Edge{
			Alias: childImport.Alias,
			Line:  childImport.Line,
			Node:  child,
		})
		if err := addImport(w.deps, canonical, child.Path, childImport.Alias); err != nil {
			return nil, err
		}
	}

	ns, err := BuildNamespace(node)
	if err != nil {
		return nil, err
	}
	node.Namespace = ns

	w.stack = w.stack[:len(w.stack)-1]
	delete(w.inProgress, canonical)

	w.cache.Put(node)
	w.order = append(w.order, node)
	w.observer.NodeResolved(node)

	w.logger.DebugContext(w.ctx, "document resolved",
		"path", canonical,
		"depth", depth,
		"imports", len(node.Imports),
		"anchors", len(doc.Anchors),
		"exports", ns.Len(),
	)

	return node, nil
}

func (w *walk) notFound(path string, importer *Node, imp directive.Import, cause error) error {
	err := &importErrors.ImportNotFoundError{
		FilePath:   path,
		ImportPath: imp.Path,
		Line:       imp.Line,
		Cause:      cause,
	}
	if importer != nil {
		err.Importer = importer.Path
	}
	return err
}

func (w *walk) rejected(path string, importer *Node, imp directive.Import, message string, cause error) error {
	err := &importErrors.ImportRejectedError{
		FilePath: path,
		Line:     imp.Line,
		Message:  message,
		Cause:    cause,
	}
	if importer != nil {
		err.Importer = importer.Path
	}
	return err
}

// importPath resolves an import target against the importing document's
// directory. Absolute targets are used as-is.
func importPath(importer, target string) string {
	if filepath.IsAbs(target) {
		return filepath.Clean(target)
	}
	return filepath.Join(filepath.Dir(importer), target)
}

// normalizePath returns the absolute path with symlinks evaluated. A path
// that does not exist is returned in absolute form so that the read reports
// the missing file.
func normalizePath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	realPath, err := filepath.EvalSymlinks(absPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return absPath, nil
		}
		return "", err
	}
	return realPath, nil
}

func within(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(os.PathSeparator))
}
