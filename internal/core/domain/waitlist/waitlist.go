// Package waitlist describes the waitlist record and the store it lives in.
//
// Records are append-only: once the store has accepted an email it is never
// updated or deleted by this service, and uniqueness of the email is the
// store's job, not the caller's.
package waitlist

import (
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
)

// TableName is the name of the table (or PostgREST resource) records are
// appended to. It is agreed with the schema in migrations/.
const TableName = "waitlist"

type ID int64

type Email string

// NewEmail trims surrounding whitespace. The address is otherwise stored as
// submitted.
func NewEmail(raw string) Email {
	return Email(strings.TrimSpace(raw))
}

var hasAtSign = validation.NewStringRule(
	func(s string) bool { return strings.Contains(s, "@") },
	"must contain '@'",
)

// Validate is the only syntactic check performed on an address: it must be
// non-empty and contain '@'.
func (e Email) Validate() error {
	err := validation.Validate(string(e), validation.Required, hasAtSign)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidEmail, err)
	}
	return nil
}

type Record struct {
	ID        ID
	Email     Email
	CreatedAt time.Time
}
