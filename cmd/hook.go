package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

// Marker lines delimiting the commitcraft-managed section of the hook
// script. Content outside the markers belongs to other tools and is
// preserved on install and uninstall.
const (
	hookMarkerStart = "# >>> commitcraft prepare-commit-msg hook >>>"
	hookMarkerEnd   = "# <<< commitcraft prepare-commit-msg hook <<<"
)

// Flags for the install subcommand. Kept separate from the root flags so
// installing with options does not disturb a rewrite invocation.
var (
	installRegex  string
	installFormat string
	installBody   string
)

func newInstallCmd() *cobra.Command {
	installCmd := &cobra.Command{
		Use:   "install",
		Short: "Install commitcraft as a git prepare-commit-msg hook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			hookPath, err := getHookPath()
			if err != nil {
				return err
			}

			section := generateHookSection(installRegex, installFormat, installBody)

			existing, err := os.ReadFile(hookPath)
			if err != nil && !os.IsNotExist(err) {
				return fmt.Errorf("reading hook file: %w", err)
			}

			var content string
			if os.IsNotExist(err) || len(existing) == 0 {
				// No existing hook - create new file
				content = "#!/bin/sh\n" + section
			} else {
				content = replaceHookSection(string(existing), section)
			}

			if err := os.MkdirAll(filepath.Dir(hookPath), 0o755); err != nil {
				return fmt.Errorf("creating hooks directory: %w", err)
			}

			if err := os.WriteFile(hookPath, []byte(content), 0o755); err != nil {
				return fmt.Errorf("writing hook file: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Installed commitcraft prepare-commit-msg hook at %s\n", hookPath)
			return nil
		},
	}

	installCmd.Flags().StringVar(&installRegex, "regex", "",
		"Regex pattern baked into the installed hook line")
	installCmd.Flags().StringVar(&installFormat, "format", "",
		"Subject template baked into the installed hook line")
	installCmd.Flags().StringVar(&installBody, "body", "",
		"Body template baked into the installed hook line")

	return installCmd
}

func newUninstallCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "uninstall",
		Short: "Remove the commitcraft prepare-commit-msg hook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			hookPath, err := getHookPath()
			if err != nil {
				return err
			}

			existing, err := os.ReadFile(hookPath)
			if err != nil {
				if os.IsNotExist(err) {
					fmt.Fprintln(cmd.OutOrStdout(), "No prepare-commit-msg hook found.")
					return nil
				}
				return fmt.Errorf("reading hook file: %w", err)
			}

			content := removeHookSection(string(existing))

			// If only a shebang (and whitespace) remains, delete the file entirely
			trimmed := strings.TrimSpace(content)
			if trimmed == "" || trimmed == "#!/bin/sh" || trimmed == "#!/bin/bash" {
				if err := os.Remove(hookPath); err != nil {
					return fmt.Errorf("removing hook file: %w", err)
				}
			} else if err := os.WriteFile(hookPath, []byte(content), 0o755); err != nil {
				return fmt.Errorf("writing hook file: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Removed commitcraft prepare-commit-msg hook.")
			return nil
		},
	}
}

// getHookPath resolves the prepare-commit-msg hook path via git so that
// core.hooksPath and worktree layouts are honored.
func getHookPath() (string, error) {
	out, err := exec.Command("git", "rev-parse", "--git-path", "hooks").Output()
	if err != nil {
		return "", fmt.Errorf("not a git repository (or git not installed): %w", err)
	}
	hooksDir := strings.TrimSpace(string(out))
	return filepath.Join(hooksDir, "prepare-commit-msg"), nil
}

// generateHookSection renders the marker-delimited hook lines. Only
// options that were set are baked into the commitcraft invocation.
func generateHookSection(regex, format, body string) string {
	var b strings.Builder
	b.WriteString(hookMarkerStart + "\n")
	b.WriteString(`commitcraft "$1"`)
	if regex != "" {
		b.WriteString(" --regex " + shellQuote(regex))
	}
	if format != "" {
		b.WriteString(" --format " + shellQuote(format))
	}
	if body != "" {
		b.WriteString(" --body " + shellQuote(body))
	}
	b.WriteString("\n")
	b.WriteString(hookMarkerEnd + "\n")
	return b.String()
}

// replaceHookSection swaps the commitcraft section of an existing hook
// script for the given one, appending it when no section is present.
func replaceHookSection(content, section string) string {
	stripped := removeHookSection(content)
	if !strings.HasSuffix(stripped, "\n") {
		stripped += "\n"
	}
	return stripped + section
}

// removeHookSection strips the marker-delimited commitcraft section,
// leaving all other content untouched.
func removeHookSection(content string) string {
	lines := strings.Split(content, "\n")
	var kept []string
	inSection := false
	for _, line := range lines {
		switch {
		case strings.TrimSpace(line) == hookMarkerStart:
			inSection = true
		case strings.TrimSpace(line) == hookMarkerEnd:
			inSection = false
		case !inSection:
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}

// shellQuote wraps a value in single quotes for safe use in the hook script.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
