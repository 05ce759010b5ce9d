// Package cmd provides the CLI commands for commitcraft.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ndcoders/commitcraft/internal/domain"
)

// Logger defines the logging interface used by the command.
type Logger interface {
	Info(ctx context.Context, msg string, fields map[string]interface{})
	Debug(ctx context.Context, msg string, fields map[string]interface{})
	Warn(ctx context.Context, msg string, fields map[string]interface{})
	Error(ctx context.Context, msg string, err error, fields map[string]interface{})
}

// Dependencies holds all injectable dependencies for the command.
// This enables testing by allowing mock implementations to be injected.
type Dependencies struct {
	// LoggerFactory creates a logger instance.
	LoggerFactory func() Logger

	// ConfigLoader loads application configuration.
	ConfigLoader func() (*AppConfig, error)

	// BranchReaderFactory creates a BranchReader for the given repository path.
	BranchReaderFactory func(path string, log Logger) (domain.BranchReader, error)

	// MessageStoreFactory creates a MessageStore.
	MessageStoreFactory func() domain.MessageStore

	// RewriterFactory creates a Rewriter with the given dependencies.
	RewriterFactory func(
		branches domain.BranchReader,
		messages domain.MessageStore,
		log Logger,
	) domain.Rewriter

	// StatusWriterFactory creates a StatusWriter.
	StatusWriterFactory func() domain.StatusWriter

	// Stderr is the writer for warnings/errors.
	Stderr io.Writer
}

// AppConfig holds application configuration loaded by ConfigLoader.
// These are the environment-supplied defaults; command-line flags
// override them when set.
type AppConfig struct {
	// Pattern is the default ticket-extraction pattern.
	Pattern string

	// SubjectFormat is the default subject template.
	SubjectFormat string

	// BodyFormat is the default body template (empty means none).
	BodyFormat string

	// LogLevel is the log level setting.
	LogLevel string
}

// Command-line flags.
var (
	regexFlag  string
	formatFlag string
	bodyFlag   string
	repoPath   string
	verbose    bool
)

// defaultDeps holds the production dependencies.
// This is set by the production wiring in main or via SetDefaultDependencies.
var defaultDeps *Dependencies

// SetDefaultDependencies sets the default dependencies for production use.
// This should be called from main() before Execute().
func SetDefaultDependencies(deps *Dependencies) {
	defaultDeps = deps
}

// NewRootCmd creates the root command for commitcraft.
func NewRootCmd() *cobra.Command {
	return NewRootCmdWithDeps(defaultDeps)
}

// NewRootCmdWithDeps creates the root command with explicit dependencies.
// This is the primary constructor that enables testing via dependency injection.
func NewRootCmdWithDeps(deps *Dependencies) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "commitcraft <commit-msg-file>",
		Short: "Add ticket info to commit messages based on branch name",
		Long: `commitcraft is a prepare-commit-msg hook that rewrites the commit
message with ticket information extracted from the current branch name.

The ticket pattern is applied to the branch name; the first match becomes
{ticket}, all matches joined with ", " become {tickets}, and the original
subject line is available as {commit_msg}. Merge, fixup!, squash! and
amend! commits are left untouched, as are messages that already carry a
matching ticket.

Examples:
  # Prepend the first ticket from the branch name (default behavior)
  commitcraft .git/COMMIT_EDITMSG

  # Custom pattern with a named group and a tracker link in the body
  commitcraft .git/COMMIT_EDITMSG \
    --regex '(?P<ticket>NDC-[0-9]+|PIL-[0-9]+)' \
    --body 'Ticket: [{ticket}](https://ndcoders.atlassian.net/browse/{ticket})'

  # List every ticket in the subject
  commitcraft .git/COMMIT_EDITMSG --format '[{tickets}] {commit_msg}'`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRewrite(cmd, args, deps)
		},
	}

	rootCmd.Flags().StringVar(&regexFlag, "regex", "",
		"Regex pattern to extract ticket from branch name (default "+domain.DefaultTicketPattern+")")
	rootCmd.Flags().StringVar(&formatFlag, "format", "",
		"Subject template; placeholders {ticket}, {tickets}, {commit_msg} (default \""+domain.DefaultSubjectFormat+"\")")
	rootCmd.Flags().StringVar(&bodyFlag, "body", "",
		"Body template appended to the message; same placeholders as --format")
	rootCmd.Flags().StringVar(&repoPath, "repo", ".",
		"Path to the git repository the hook runs in")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable verbose/debug logging")

	rootCmd.AddCommand(newInstallCmd())
	rootCmd.AddCommand(newUninstallCmd())

	return rootCmd
}

// runRewrite executes the message rewrite with injected dependencies.
func runRewrite(cmd *cobra.Command, args []string, deps *Dependencies) error {
	if deps == nil {
		return errors.New("dependencies not configured")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	messagePath := args[0]

	stderr := deps.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	// Set log level based on verbose flag (best-effort)
	if verbose {
		if err := os.Setenv("COMMITCRAFT_LOGGING__LEVEL", "debug"); err != nil {
			writeWarningf(stderr, "warning: could not set log level: %v\n", err)
		}
	}

	log := deps.LoggerFactory()

	log.Debug(ctx, "starting commitcraft", map[string]interface{}{
		"message_path": messagePath,
		"repo":         repoPath,
		"verbose":      verbose,
	})

	cfg, err := deps.ConfigLoader()
	if err != nil {
		log.Error(ctx, "failed to load configuration", err, nil)
		return fmt.Errorf("configuration error: %w", err)
	}

	input := domain.RewriteInput{
		MessagePath:   messagePath,
		Pattern:       effective(cmd, "regex", regexFlag, cfg.Pattern),
		SubjectFormat: effective(cmd, "format", formatFlag, cfg.SubjectFormat),
		BodyFormat:    effective(cmd, "body", bodyFlag, cfg.BodyFormat),
	}

	branches, err := deps.BranchReaderFactory(repoPath, log)
	if err != nil {
		log.Error(ctx, "failed to open git repository", err, map[string]interface{}{
			"path": repoPath,
		})
		if errors.Is(err, domain.ErrRepositoryNotFound) {
			return fmt.Errorf("not a git repository: %s", repoPath)
		}
		return err
	}
	defer func() {
		if closeErr := branches.Close(); closeErr != nil {
			log.Warn(ctx, "failed to close git repository", map[string]interface{}{
				"error": closeErr.Error(),
			})
		}
	}()

	rewriter := deps.RewriterFactory(branches, deps.MessageStoreFactory(), log)
	result, err := rewriter.Rewrite(ctx, input)
	if err != nil {
		log.Error(ctx, "failed to rewrite commit message", err, nil)
		switch {
		case errors.Is(err, domain.ErrInvalidPattern):
			return fmt.Errorf("configuration error: %w", err)
		case errors.Is(err, domain.ErrMessageRead), errors.Is(err, domain.ErrMessageWrite):
			return fmt.Errorf("i/o error: %w", err)
		}
		return err
	}

	writer := deps.StatusWriterFactory()
	if err := writer.WriteResult(result); err != nil {
		log.Error(ctx, "failed to write status", err, nil)
		return fmt.Errorf("output error: %w", err)
	}

	if result.Modified {
		log.Info(ctx, "commit message rewrite complete", map[string]interface{}{
			"branch":  result.Branch,
			"ticket":  result.Ticket,
			"subject": result.Subject,
		})
	} else {
		log.Debug(ctx, "commit message left unchanged", map[string]interface{}{
			"reason": result.SkipReason,
			"branch": result.Branch,
		})
	}

	return nil
}

// effective resolves one setting: the flag value when the flag was set
// on the command line, the configured (env-supplied) value otherwise.
func effective(cmd *cobra.Command, name, flagValue, cfgValue string) string {
	if cmd.Flags().Changed(name) {
		return flagValue
	}
	return cfgValue
}

// Execute runs the root command.
func Execute() {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// writeWarningf writes a warning message to the given writer.
// This is a best-effort operation; errors are intentionally ignored
// because there is no recovery action if stderr writes fail.
func writeWarningf(w io.Writer, format string, args ...any) {
	_, err := fmt.Fprintf(w, format, args...)
	if err != nil {
		// Intentionally ignored: no recovery action for failed stderr writes
		return
	}
}
