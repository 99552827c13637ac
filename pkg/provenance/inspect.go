package provenance

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/superstrong/yaml-io/pkg/imports/resolver"
)

// ErrNotRepository is returned when the root document is not inside a Git
// worktree.
var ErrNotRepository = errors.New("document is not inside a git repository")

// Inspect reports the provenance of every document of g. The repository is
// discovered from the root document's directory upwards.
func Inspect(g *resolver.Graph) (*Report, error) {
	if g == nil || g.Root == nil {
		return nil, fmt.Errorf("provenance: graph has no root document")
	}
	return InspectPaths(g.Root.Path, g.Paths())
}

// InspectPaths is Inspect for an explicit list of documents. The repository
// is discovered from the directory of root.
func InspectPaths(root string, paths []string) (*Report, error) {
	repo, err := gogit.PlainOpenWithOptions(filepath.Dir(root), &gogit.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		if errors.Is(err, gogit.ErrRepositoryNotExists) {
			return nil, ErrNotRepository
		}
		return nil, fmt.Errorf("failed to open repository: %w", err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("failed to get worktree: %w", err)
	}

	top, err := filepath.EvalSymlinks(worktree.Filesystem.Root())
	if err != nil {
		return nil, fmt.Errorf("failed to resolve worktree root: %w", err)
	}

	commit, err := headCommit(repo)
	if err != nil {
		return nil, err
	}

	status, err := worktree.Status()
	if err != nil {
		return nil, fmt.Errorf("failed to get worktree status: %w", err)
	}

	report := &Report{
		Repository: top,
		Commit:     commit,
		Documents:  make([]Document, 0, len(paths)),
	}

	for _, path := range paths {
		doc := Document{Path: path, State: StateExternal}

		rel, err := filepath.Rel(top, path)
		if err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			doc.RepoPath = filepath.ToSlash(rel)
			doc.State = classify(repo, status, doc.RepoPath)
			if doc.State != StateClean {
				report.Dirty = true
			}
		}

		report.Documents = append(report.Documents, doc)
	}

	return report, nil
}

// headCommit returns the HEAD commit, or nil when the repository has none.
func headCommit(repo *gogit.Repository) (*CommitInfo, error) {
	ref, err := repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get HEAD: %w", err)
	}

	commit, err := repo.CommitObject(ref.Hash())
	if err != nil {
		return nil, fmt.Errorf("failed to get commit: %w", err)
	}

	info := &CommitInfo{
		SHA:       commit.Hash.String(),
		Author:    commit.Author.Name,
		Email:     commit.Author.Email,
		Timestamp: commit.Author.When,
		Message:   strings.TrimSpace(commit.Message),
	}
	if ref.Name().IsBranch() {
		info.Branch = ref.Name().Short()
	}
	return info, nil
}

// classify maps the worktree status of repoPath to a FileState. Status only
// lists changed files, so a missing entry is either clean or ignored.
func classify(repo *gogit.Repository, status gogit.Status, repoPath string) FileState {
	fs, ok := status[repoPath]
	if !ok {
		if tracked(repo, repoPath) {
			return StateClean
		}
		return StateIgnored
	}

	switch {
	case fs.Worktree == gogit.Untracked:
		return StateUntracked
	case fs.Staging == gogit.Added:
		return StateAdded
	case fs.Worktree == gogit.Unmodified && fs.Staging == gogit.Unmodified:
		return StateClean
	default:
		return StateModified
	}
}

func tracked(repo *gogit.Repository, repoPath string) bool {
	idx, err := repo.Storer.Index()
	if err != nil {
		return false
	}
	_, err = idx.Entry(repoPath)
	return err == nil
}
