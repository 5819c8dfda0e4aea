// Package models defines the core data structures for stored accounts.
package models

import "strings"

// AccountType tells how an account authenticates.
type AccountType string

const (
	// Directory accounts authenticate against an external directory and never
	// carry a password. The wire marker is kept as "LDAP" for compatibility
	// with previously persisted data.
	Directory AccountType = "LDAP"
	// Local accounts keep their password in this store.
	Local AccountType = "LOCAL"
)

// Valid reports whether t is one of the known account types.
func (t AccountType) Valid() bool {
	return t == Directory || t == Local
}

// Label is a free-text tag attached to an account.
type Label struct {
	// Text is the label content as entered by the user.
	Text string `json:"text"`
}

// Account is a single stored login credential entry.
type Account struct {
	// ID is the unique identifier of the account, stable for its lifetime.
	ID string `json:"id"`
	// Labels are ordered user tags, possibly empty.
	Labels []Label `json:"labels"`
	// Type is Directory or Local.
	Type AccountType `json:"type" validate:"oneof=LDAP LOCAL"`
	// Login is the user identifier.
	Login string `json:"login" validate:"notblank,max=100"`
	// Password is the secret of a Local account; nil for Directory accounts.
	Password *string `json:"password"`
}

// Clone returns a deep copy of a, so callers cannot mutate shared labels or
// password storage.
func (a Account) Clone() Account {
	out := a
	if a.Labels != nil {
		out.Labels = make([]Label, len(a.Labels))
		copy(out.Labels, a.Labels)
	}
	if a.Password != nil {
		p := *a.Password
		out.Password = &p
	}
	return out
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string {
	return &s
}

// labelSeparator joins label texts in single-line user input.
const labelSeparator = ";"

// ParseLabels splits a ";"-separated list into labels, trimming each item and
// skipping empty ones. It never returns nil.
func ParseLabels(s string) []Label {
	labels := []Label{}
	for _, part := range strings.Split(s, labelSeparator) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		labels = append(labels, Label{Text: part})
	}
	return labels
}

// FormatLabels is the inverse of ParseLabels.
func FormatLabels(labels []Label) string {
	parts := make([]string, 0, len(labels))
	for _, l := range labels {
		parts = append(parts, l.Text)
	}
	return strings.Join(parts, labelSeparator)
}
