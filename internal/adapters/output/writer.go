// Package output provides adapters for writing application output.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ndcoders/commitcraft/internal/domain"
)

// Writer reports the rewrite outcome to the configured output destination.
// By default, it writes to stderr: a prepare-commit-msg hook must keep
// stdout clean for git, and skipped commits stay silent.
type Writer struct {
	out io.Writer
}

// NewWriter creates a new Writer that writes to stderr.
func NewWriter() *Writer {
	return &Writer{out: os.Stderr}
}

// NewWriterWithOutput creates a new Writer with a custom output destination.
// This is useful for testing.
func NewWriterWithOutput(out io.Writer) *Writer {
	return &Writer{out: out}
}

// WriteResult writes a one-line status when the message was rewritten.
// No-op outcomes produce no output.
func (w *Writer) WriteResult(out *domain.RewriteOutput) error {
	if out == nil || !out.Modified {
		return nil
	}
	_, err := fmt.Fprintf(w.out, "commitcraft: added %s to commit message\n", strings.Join(out.Tickets, ", "))
	return err
}
