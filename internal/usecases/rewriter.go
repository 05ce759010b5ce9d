// Package usecases contains the application business logic.
// This package orchestrates domain entities and interfaces to fulfill use cases.
package usecases

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/ndcoders/commitcraft/internal/domain"
)

// Logger defines the logging interface required by the rewriter.
// This abstracts the logger dependency to avoid coupling to a specific implementation.
type Logger interface {
	Info(ctx context.Context, msg string, fields map[string]interface{})
	Debug(ctx context.Context, msg string, fields map[string]interface{})
	Warn(ctx context.Context, msg string, fields map[string]interface{})
	Error(ctx context.Context, msg string, err error, fields map[string]interface{})
}

// skipPrefixes are subject prefixes that must never be rewritten.
// Fixup/squash/amend subjects must match their target commit verbatim,
// and merge subjects are generated by git itself.
var skipPrefixes = []string{"fixup!", "squash!", "amend!", "Merge "}

// MessageRewriter rewrites commit messages with ticket information
// extracted from the current branch name. It implements domain.Rewriter.
type MessageRewriter struct {
	branches domain.BranchReader
	messages domain.MessageStore
	logger   Logger
}

// NewMessageRewriter creates a new MessageRewriter with the given dependencies.
func NewMessageRewriter(
	branches domain.BranchReader,
	messages domain.MessageStore,
	log Logger,
) *MessageRewriter {
	return &MessageRewriter{
		branches: branches,
		messages: messages,
		logger:   log,
	}
}

// Rewrite runs the skip/extract/render/write pipeline once.
//
// The message file is left untouched when the subject belongs to a
// merge/fixup/squash/amend commit, when the branch name yields no ticket,
// or when a ticket already appears anywhere in the message. Otherwise the
// subject template is applied, the optional body block is appended, and
// the file is overwritten in place.
func (r *MessageRewriter) Rewrite(ctx context.Context, input domain.RewriteInput) (*domain.RewriteOutput, error) {
	pattern := input.Pattern
	if pattern == "" {
		pattern = domain.DefaultTicketPattern
	}
	subjectFormat := input.SubjectFormat
	if subjectFormat == "" {
		subjectFormat = domain.DefaultSubjectFormat
	}

	// Compile before any file I/O so a bad pattern never touches the message.
	re, err := compilePattern(pattern)
	if err != nil {
		return nil, err
	}

	raw, err := r.messages.Read(input.MessagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read commit message: %w", err)
	}

	if raw == "" {
		r.logger.Debug(ctx, "commit message file is empty", map[string]interface{}{
			"path": input.MessagePath,
		})
		return &domain.RewriteOutput{SkipReason: domain.SkipEmptyMessage}, nil
	}

	hadFinalNewline := strings.HasSuffix(raw, "\n")
	lines := strings.Split(strings.TrimSuffix(raw, "\n"), "\n")
	subject := strings.TrimSpace(lines[0])

	for _, prefix := range skipPrefixes {
		if strings.HasPrefix(subject, prefix) {
			r.logger.Debug(ctx, "skipping special commit", map[string]interface{}{
				"subject": subject,
				"prefix":  prefix,
			})
			return &domain.RewriteOutput{SkipReason: domain.SkipSpecialCommit}, nil
		}
	}

	branch, err := r.branches.CurrentBranch(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read branch name: %w", err)
	}

	tickets := extractTickets(re, branch)
	if tickets == nil {
		r.logger.Debug(ctx, "no ticket in branch name", map[string]interface{}{
			"branch":  branch,
			"pattern": pattern,
		})
		return &domain.RewriteOutput{SkipReason: domain.SkipNoTicket, Branch: branch}, nil
	}

	// Covers amends and re-runs: the previous invocation already tagged
	// the subject (or the body link block) with a matching ticket.
	if re.MatchString(raw) {
		r.logger.Debug(ctx, "ticket already present in message", map[string]interface{}{
			"branch": branch,
			"ticket": tickets.Ticket,
		})
		return &domain.RewriteOutput{
			SkipReason: domain.SkipAlreadyTagged,
			Branch:     branch,
			Ticket:     tickets.Ticket,
			Tickets:    tickets.Tickets,
		}, nil
	}

	lines[0] = renderTemplate(subjectFormat, tickets, subject)

	if input.BodyFormat != "" {
		body := renderTemplate(input.BodyFormat, tickets, subject)
		if !strings.Contains(raw, strings.TrimSpace(body)) {
			lines = appendBody(lines, body)
		}
	}

	contents := strings.Join(lines, "\n")
	if hadFinalNewline || !strings.HasSuffix(contents, "\n") {
		contents += "\n"
	}

	if err := r.messages.Write(input.MessagePath, contents); err != nil {
		return nil, fmt.Errorf("failed to write commit message: %w", err)
	}

	r.logger.Info(ctx, "commit message rewritten", map[string]interface{}{
		"branch":  branch,
		"ticket":  tickets.Ticket,
		"tickets": tickets.Join(),
		"subject": lines[0],
	})

	return &domain.RewriteOutput{
		Modified: true,
		Branch:   branch,
		Ticket:   tickets.Ticket,
		Tickets:  tickets.Tickets,
		Subject:  lines[0],
	}, nil
}

// compilePattern compiles the ticket pattern case-insensitively, so a
// branch named ndc-123-fix still matches the default [A-Z]+-\d+ pattern.
func compilePattern(pattern string) (*regexp.Regexp, error) {
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", domain.ErrInvalidPattern, pattern, err)
	}
	return re, nil
}

// extractTickets applies the pattern to the branch name and collects all
// non-overlapping matches in order of appearance, without deduplication.
// When the pattern defines a named group "ticket", the group value is
// used per match instead of the whole match. Tickets are upper-cased to
// normalize matches from lower-cased branch names.
// Returns nil when the branch yields no usable ticket.
func extractTickets(re *regexp.Regexp, branch string) *domain.TicketInfo {
	groupIdx := re.SubexpIndex("ticket")

	var tickets []string
	for _, match := range re.FindAllStringSubmatch(branch, -1) {
		value := match[0]
		if groupIdx > 0 && groupIdx < len(match) {
			value = match[groupIdx]
		}
		value = strings.ToUpper(strings.TrimSpace(value))
		if value == "" {
			continue
		}
		tickets = append(tickets, value)
	}

	if len(tickets) == 0 {
		return nil
	}
	return &domain.TicketInfo{Ticket: tickets[0], Tickets: tickets}
}

// renderTemplate substitutes the ticket placeholders into a template.
// Tokens that are not known placeholders are kept as literal text.
func renderTemplate(template string, tickets *domain.TicketInfo, commitMsg string) string {
	return strings.NewReplacer(
		domain.PlaceholderTicket, tickets.Ticket,
		domain.PlaceholderTickets, tickets.Join(),
		domain.PlaceholderCommitMsg, commitMsg,
	).Replace(template)
}

// appendBody appends the rendered body block after the existing body,
// separated from it by exactly one blank line.
func appendBody(lines []string, body string) []string {
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return append(lines, "", body)
}
