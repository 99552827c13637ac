package provenance

import "time"

// FileState classifies a document against the worktree.
type FileState string

const (
	// StateClean means the document matches HEAD.
	StateClean FileState = "clean"

	// StateModified means the document has uncommitted changes.
	StateModified FileState = "modified"

	// StateAdded means the document is staged but not committed.
	StateAdded FileState = "added"

	// StateUntracked means Git does not know the document.
	StateUntracked FileState = "untracked"

	// StateIgnored means the document is excluded by a .gitignore rule.
	StateIgnored FileState = "ignored"

	// StateExternal means the document lives outside the repository.
	StateExternal FileState = "external"
)

// CommitInfo describes the HEAD commit.
type CommitInfo struct {
	SHA       string    `json:"sha" yaml:"sha"`
	Author    string    `json:"author" yaml:"author"`
	Email     string    `json:"email" yaml:"email"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
	Message   string    `json:"message" yaml:"message"`
	Branch    string    `json:"branch,omitempty" yaml:"branch,omitempty"`
}

// Document is the provenance of one document of the graph.
type Document struct {
	// Path is the canonical path used by the resolver
	Path string `json:"path" yaml:"path"`

	// RepoPath is the slash separated path inside the repository, empty
	// for external documents
	RepoPath string `json:"repo_path,omitempty" yaml:"repo_path,omitempty"`

	State FileState `json:"state" yaml:"state"`
}

// Report is the provenance of a resolved graph.
type Report struct {
	// Repository is the worktree root
	Repository string `json:"repository" yaml:"repository"`

	// Commit is nil for a repository without commits
	Commit *CommitInfo `json:"commit,omitempty" yaml:"commit,omitempty"`

	// Documents follow the graph's resolution order
	Documents []Document `json:"documents" yaml:"documents"`

	// Dirty is set when any document inside the repository differs from HEAD
	Dirty bool `json:"dirty" yaml:"dirty"`
}
