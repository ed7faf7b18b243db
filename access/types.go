/*
types.go - Admission log record and outcome taxonomy

PURPOSE:
  Defines the persisted shape of a verification attempt. Every call to
  the verification endpoint produces exactly one Record, including the
  denied ones, so that abuse patterns stay visible in the daily report.

OUTCOME STRINGS:
  The Outcome values are literal wire/storage strings, kept in
  Portuguese because the admin front end and the stored history both
  match on them. Do not rename without migrating stored rows.

SEE ALSO:
  - service.go: Where records are created
  - report.go: Where outcomes are aggregated
*/
package access

import (
	"strings"
	"time"
)

// Outcome is the persisted result of a single verification attempt.
type Outcome string

const (
	// OutcomeGranted marks a successful admission.
	OutcomeGranted Outcome = "concedido"

	// OutcomeDeniedUnknown marks an attempt with an identifier that is
	// not on the roster.
	OutcomeDeniedUnknown Outcome = "negado"

	// OutcomeDeniedDuplicate marks an attempt by an employee who was
	// already granted admission earlier the same civil day.
	OutcomeDeniedDuplicate Outcome = "negado (acesso duplicado)"
)

// Denied reports whether the outcome is any denial variant.
func (o Outcome) Denied() bool {
	return strings.HasPrefix(string(o), "negado")
}

// Record is one append-only admission log entry. The employee name is a
// denormalized copy taken at decision time: the roster may change
// independently of historical records.
type Record struct {
	ID         string    `json:"id"`
	EmployeeID string    `json:"matricula"`
	Name       string    `json:"nome"`
	Outcome    Outcome   `json:"status"`
	Timestamp  time.Time `json:"dataHora"`
}
