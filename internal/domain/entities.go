// Package domain defines the core business entities and interfaces for commitcraft.
package domain

import "strings"

// Default values for the rewrite configuration.
const (
	// DefaultTicketPattern matches JIRA-style ticket identifiers such as NDC-123.
	DefaultTicketPattern = `[A-Z]+-\d+`

	// DefaultSubjectFormat prepends the first ticket to the original subject.
	DefaultSubjectFormat = "{ticket} {commit_msg}"
)

// Template placeholders available in subject and body formats.
const (
	PlaceholderTicket    = "{ticket}"
	PlaceholderTickets   = "{tickets}"
	PlaceholderCommitMsg = "{commit_msg}"
)

// TicketInfo holds the tickets extracted from a branch name.
type TicketInfo struct {
	// Ticket is the first extracted identifier, used for {ticket}.
	Ticket string

	// Tickets is every extracted identifier in order of appearance,
	// without deduplication, used for {tickets}.
	Tickets []string
}

// Join returns the tickets as a comma-separated list.
func (t TicketInfo) Join() string {
	return strings.Join(t.Tickets, ", ")
}

// RewriteInput contains the parameters for one rewrite invocation.
// The branch name is not part of the input; it is read from the
// repository by the BranchReader.
type RewriteInput struct {
	// MessagePath is the path to the commit-message file provided by git.
	MessagePath string

	// Pattern is the ticket-extraction regular expression. It is applied
	// case-insensitively and may contain a named group called "ticket".
	Pattern string

	// SubjectFormat is the template for the rewritten subject line.
	SubjectFormat string

	// BodyFormat is the template for the appended body block.
	// Empty means no body block is added.
	BodyFormat string
}

// Skip reasons reported in RewriteOutput when the message is left unchanged.
const (
	SkipEmptyMessage  = "empty message"
	SkipSpecialCommit = "merge/fixup/squash/amend commit"
	SkipNoTicket      = "no ticket in branch name"
	SkipAlreadyTagged = "ticket already present in message"
)

// RewriteOutput describes the result of a rewrite invocation.
type RewriteOutput struct {
	// Modified reports whether the message file was rewritten.
	Modified bool

	// SkipReason explains why the message was left unchanged.
	// Empty when Modified is true.
	SkipReason string

	// Branch is the branch name the tickets were extracted from
	// (empty on skip paths that never reached the repository).
	Branch string

	// Ticket is the first extracted ticket.
	Ticket string

	// Tickets is every extracted ticket in order of appearance.
	Tickets []string

	// Subject is the rewritten subject line (empty unless Modified).
	Subject string
}
