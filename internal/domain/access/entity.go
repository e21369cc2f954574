package access

import "sort"

// Context is the per-request visibility set derived for a requester. It is a
// pure function of (requester email, directory snapshot, admin allowlist) and
// holds no cross-request state.
type Context struct {
	RequesterEmail    string
	IsHRAdmin         bool
	IsManager         bool
	DirectReportCount int
	TotalReportCount  int

	allowedEmails map[string]struct{}
}

// NewContext builds a Context over the given allowed-email set. The requester
// email is always part of the set.
func NewContext(requesterEmail string, allowed []string) Context {
	set := make(map[string]struct{}, len(allowed)+1)
	for _, email := range allowed {
		set[email] = struct{}{}
	}
	set[requesterEmail] = struct{}{}
	return Context{
		RequesterEmail: requesterEmail,
		allowedEmails:  set,
	}
}

// Allows reports whether the requester may view data for the given email.
// The email must already be normalized.
func (c Context) Allows(email string) bool {
	_, ok := c.allowedEmails[email]
	return ok
}

// AllowedEmails returns the visibility set sorted for deterministic output.
func (c Context) AllowedEmails() []string {
	emails := make([]string, 0, len(c.allowedEmails))
	for email := range c.allowedEmails {
		emails = append(emails, email)
	}
	sort.Strings(emails)
	return emails
}

// AllowedCount returns the size of the visibility set, requester included.
func (c Context) AllowedCount() int {
	return len(c.allowedEmails)
}
