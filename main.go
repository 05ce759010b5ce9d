// Package main is the entry point for the commitcraft CLI application.
// commitcraft is a prepare-commit-msg hook that rewrites the commit
// message with ticket information extracted from the current branch name.
package main

import (
	"os"

	"github.com/ndcoders/commitcraft/cmd"
	"github.com/ndcoders/commitcraft/internal/adapters/git"
	logadapter "github.com/ndcoders/commitcraft/internal/adapters/logger"
	"github.com/ndcoders/commitcraft/internal/adapters/message"
	"github.com/ndcoders/commitcraft/internal/adapters/output"
	"github.com/ndcoders/commitcraft/internal/domain"
	"github.com/ndcoders/commitcraft/internal/infrastructure/config"
	"github.com/ndcoders/commitcraft/internal/usecases"
)

func main() {
	// Wire up production dependencies
	deps := &cmd.Dependencies{
		// The logger is built lazily so the --verbose env override set by
		// the command is picked up.
		LoggerFactory: func() cmd.Logger {
			zapLog := logadapter.NewZapLogger(
				os.Getenv("COMMITCRAFT_LOGGING__LEVEL"),
				os.Getenv("COMMITCRAFT_LOGGING__FORMAT"),
			)
			return logadapter.NewZapAdapter(zapLog)
		},

		ConfigLoader: func() (*cmd.AppConfig, error) {
			cfg, err := config.Load()
			if err != nil {
				return nil, err
			}
			return &cmd.AppConfig{
				Pattern:       cfg.Regex,
				SubjectFormat: cfg.Format,
				BodyFormat:    cfg.Body,
				LogLevel:      cfg.Logging.Level,
			}, nil
		},

		BranchReaderFactory: func(path string, log cmd.Logger) (domain.BranchReader, error) {
			return git.NewGoGitRepository(path, log)
		},

		MessageStoreFactory: func() domain.MessageStore {
			return message.NewFileStore()
		},

		RewriterFactory: func(
			branches domain.BranchReader,
			messages domain.MessageStore,
			log cmd.Logger,
		) domain.Rewriter {
			return usecases.NewMessageRewriter(branches, messages, log)
		},

		StatusWriterFactory: func() domain.StatusWriter {
			return output.NewWriter()
		},

		Stderr: os.Stderr,
	}

	cmd.SetDefaultDependencies(deps)
	cmd.Execute()
}
