// Package git provides adapters for interacting with local Git repositories.
package git

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndcoders/commitcraft/internal/domain"
)

// testLogger is a minimal logger for testing that doesn't output anything.
type testLogger struct{}

func (l *testLogger) Debug(_ context.Context, _ string, _ map[string]interface{}) {}
func (l *testLogger) Warn(_ context.Context, _ string, _ map[string]interface{})  {}

// setupTestRepo creates a temporary git repository on the given branch.
func setupTestRepo(t *testing.T, branch string) string {
	t.Helper()
	requireGit(t)

	tmpDir := t.TempDir()

	runGit(t, tmpDir, "init", "--initial-branch", branch)
	runGit(t, tmpDir, "config", "user.email", "test@example.com")
	runGit(t, tmpDir, "config", "user.name", "Test User")

	testFile := filepath.Join(tmpDir, "test.txt")
	require.NoError(t, os.WriteFile(testFile, []byte("initial content"), 0o644))
	runGit(t, tmpDir, "add", ".")
	runGit(t, tmpDir, "commit", "-m", "Initial commit")

	return tmpDir
}

// requireGit skips the test when the git binary is unavailable.
func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git binary not available")
	}
}

// runGit executes a git command in the given directory.
func runGit(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("git %v failed: %v\nOutput: %s", args, err, output)
	}
}

func TestNewGoGitRepository_Success(t *testing.T) {
	repoPath := setupTestRepo(t, "main")

	repo, err := NewGoGitRepository(repoPath, &testLogger{})

	require.NoError(t, err)
	require.NotNil(t, repo)
	assert.Equal(t, repoPath, repo.path)
	require.NoError(t, repo.Close())
}

func TestNewGoGitRepository_NotARepository(t *testing.T) {
	repo, err := NewGoGitRepository(t.TempDir(), &testLogger{})

	require.Error(t, err)
	assert.Nil(t, repo)
	assert.ErrorIs(t, err, domain.ErrRepositoryNotFound)
}

func TestNewGoGitRepository_DetectsDotGitUpward(t *testing.T) {
	repoPath := setupTestRepo(t, "main")
	subDir := filepath.Join(repoPath, "nested", "dir")
	require.NoError(t, os.MkdirAll(subDir, 0o755))

	repo, err := NewGoGitRepository(subDir, &testLogger{})

	require.NoError(t, err)
	require.NotNil(t, repo)
}

func TestCurrentBranch(t *testing.T) {
	repoPath := setupTestRepo(t, "NDC-123_fix-auth-bug")

	repo, err := NewGoGitRepository(repoPath, &testLogger{})
	require.NoError(t, err)
	defer repo.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	branch, err := repo.CurrentBranch(ctx)

	require.NoError(t, err)
	assert.Equal(t, "NDC-123_fix-auth-bug", branch)
}

func TestCurrentBranch_DetachedHead(t *testing.T) {
	repoPath := setupTestRepo(t, "main")
	runGit(t, repoPath, "checkout", "--detach")

	repo, err := NewGoGitRepository(repoPath, &testLogger{})
	require.NoError(t, err)
	defer repo.Close()

	branch, err := repo.CurrentBranch(context.Background())

	require.NoError(t, err)
	assert.Empty(t, branch, "detached HEAD must yield an empty branch name")
}

func TestCurrentBranch_UnbornBranch(t *testing.T) {
	requireGit(t)
	tmpDir := t.TempDir()
	runGit(t, tmpDir, "init", "--initial-branch", "NDC-7-first-commit")

	repo, err := NewGoGitRepository(tmpDir, &testLogger{})
	require.NoError(t, err)
	defer repo.Close()

	branch, err := repo.CurrentBranch(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "NDC-7-first-commit", branch)
}
