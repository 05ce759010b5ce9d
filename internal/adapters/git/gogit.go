// Package git provides adapters for interacting with local Git repositories.
// This package implements the domain.BranchReader interface using go-git/v5.
package git

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/ndcoders/commitcraft/internal/domain"
)

// Logger defines the logging interface for the git adapter.
// This interface enables dependency injection and testability.
type Logger interface {
	Debug(ctx context.Context, msg string, fields map[string]interface{})
	Warn(ctx context.Context, msg string, fields map[string]interface{})
}

// GoGitRepository implements domain.BranchReader using go-git/v5.
// It reads the checked-out branch name from a local repository.
type GoGitRepository struct {
	repo   *git.Repository
	path   string
	logger Logger
}

// NewGoGitRepository creates a new GoGitRepository for the given path.
// The .git directory is detected upward from the path, so the adapter
// works when the hook is invoked from a subdirectory of the worktree.
// Returns domain.ErrRepositoryNotFound if no repository is found.
func NewGoGitRepository(path string, log Logger) (*GoGitRepository, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrRepositoryNotFound, path)
	}

	return &GoGitRepository{
		repo:   repo,
		path:   path,
		logger: log,
	}, nil
}

// CurrentBranch returns the short name of the checked-out branch.
// A detached HEAD logs a warning and returns an empty branch name so the
// caller's no-match path applies; it is not an error.
func (r *GoGitRepository) CurrentBranch(ctx context.Context) (string, error) {
	head, err := r.repo.Head()
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		// Unborn branch: HEAD points at a branch with no commits yet,
		// which is exactly the state during the first commit's hook run.
		return r.unbornBranch(ctx)
	}
	if err != nil {
		return "", fmt.Errorf("failed to get HEAD: %w", err)
	}

	if !head.Name().IsBranch() {
		r.logger.Warn(ctx, "HEAD is detached; branch name will be empty", map[string]interface{}{
			"head_sha": head.Hash().String(),
			"path":     r.path,
		})
		return "", nil
	}

	branch := head.Name().Short()
	r.logger.Debug(ctx, "resolved current branch", map[string]interface{}{
		"branch": branch,
		"path":   r.path,
	})

	return branch, nil
}

// unbornBranch reads the branch name from the unresolved symbolic HEAD
// reference, which exists even before the first commit.
func (r *GoGitRepository) unbornBranch(ctx context.Context) (string, error) {
	ref, err := r.repo.Storer.Reference(plumbing.HEAD)
	if err != nil {
		return "", fmt.Errorf("failed to read HEAD reference: %w", err)
	}

	if ref.Type() != plumbing.SymbolicReference || !ref.Target().IsBranch() {
		r.logger.Warn(ctx, "HEAD is detached; branch name will be empty", map[string]interface{}{
			"path": r.path,
		})
		return "", nil
	}

	branch := ref.Target().Short()
	r.logger.Debug(ctx, "resolved unborn branch from symbolic HEAD", map[string]interface{}{
		"branch": branch,
		"path":   r.path,
	})

	return branch, nil
}

// Close releases any resources held by the repository.
// For go-git, this is a no-op as the repository doesn't hold persistent resources.
func (r *GoGitRepository) Close() error {
	return nil
}
