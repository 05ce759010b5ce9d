// Package domain defines the core business entities and interfaces for commitcraft.
// This package contains no external dependencies and represents the innermost layer
// of the CLEAN architecture.
package domain

import (
	"context"
	"errors"
)

// Domain errors for git operations and message rewriting.
var (
	// ErrRepositoryNotFound indicates the specified path is not a valid Git repository.
	ErrRepositoryNotFound = errors.New("git repository not found at specified path")

	// ErrInvalidPattern indicates the ticket-extraction regex failed to compile.
	ErrInvalidPattern = errors.New("ticket pattern is not a valid regular expression")

	// ErrMessageRead indicates the commit-message file is missing or unreadable.
	ErrMessageRead = errors.New("cannot read commit message file")

	// ErrMessageWrite indicates the commit-message file could not be written back.
	ErrMessageWrite = errors.New("cannot write commit message file")
)

// BranchReader provides the current branch name from a local repository.
// The repository path is the ONLY external input - everything else is
// derived from Git.
type BranchReader interface {
	// CurrentBranch returns the short name of the checked-out branch.
	// Returns an empty string (not an error) when HEAD is detached.
	CurrentBranch(ctx context.Context) (string, error)

	// Close releases any resources held by the repository.
	Close() error
}

// MessageStore reads and overwrites commit-message files in place.
type MessageStore interface {
	// Read returns the full contents of the message file.
	// Returns ErrMessageRead if the file is missing or unreadable.
	Read(path string) (string, error)

	// Write overwrites the message file with the given contents.
	// Returns ErrMessageWrite on failure.
	Write(path string, contents string) error
}

// StatusWriter reports the rewrite outcome to an output destination.
type StatusWriter interface {
	// WriteResult writes a one-line status for a rewritten message.
	// No-op outcomes produce no output.
	WriteResult(out *RewriteOutput) error
}

// Rewriter applies ticket information from the branch name to a commit message.
type Rewriter interface {
	// Rewrite runs the skip/extract/render/write pipeline once.
	Rewrite(ctx context.Context, input RewriteInput) (*RewriteOutput, error)
}
