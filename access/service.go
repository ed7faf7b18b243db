/*
service.go - Admission decision service

PURPOSE:
  Decides grant/deny for an incoming identifier and writes the outcome
  to the admission log. Orchestrates the roster lookup and the
  once-per-day duplicate check.

DECISION FLOW:
  1. Empty identifier       -> ErrInvalidID, nothing logged
  2. Unknown identifier     -> DeniedUnknown record, name "Desconhecido"
  3. Already granted today  -> DeniedDuplicate record
  4. Otherwise              -> Granted record

LOGGING POLICY:
  Every decision branch writes exactly one record before returning.
  Log writes are best-effort: a store failure is logged operationally
  but never blocks the response — the decision was already made.

KNOWN RACE:
  The once-per-day rule is a read-then-write check without a storage
  uniqueness constraint. Two near-simultaneous attempts for the same
  identifier can both be granted. Accepted, documented behavior.

SEE ALSO:
  - daywindow.go: Civil day boundaries for the duplicate check
  - store/sqlite: RecordStore implementation
*/
package access

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/refeitorio/controle-acesso/roster"
)

// ErrInvalidID is returned when the submitted identifier is empty or
// whitespace-only.
var ErrInvalidID = errors.New("matrícula inválida")

// UnknownName is the denormalized name stored for attempts whose
// identifier is not on the roster.
const UnknownName = "Desconhecido"

// RecordStore is the slice of the admission log the decision service
// needs: append one record, and answer the granted-today check.
type RecordStore interface {
	Append(ctx context.Context, rec Record) error
	HasGrantedBetween(ctx context.Context, employeeID string, from, to time.Time) (bool, error)
}

// Decision is the outcome of one verification attempt.
type Decision struct {
	Granted bool
	Outcome Outcome
	Message string
	Name    string
}

// Service decides admissions against an immutable roster and an
// append-only admission log.
type Service struct {
	roster *roster.Roster
	store  RecordStore

	// Now is the clock used for record timestamps and the day window.
	// Overridable in tests; defaults to time.Now.
	Now func() time.Time
}

// NewService creates a decision service.
func NewService(r *roster.Roster, store RecordStore) *Service {
	return &Service{
		roster: r,
		store:  store,
		Now:    time.Now,
	}
}

// Verify decides grant/deny for the given identifier and appends the
// outcome to the admission log. Returns ErrInvalidID for an empty
// identifier; every other path returns a Decision and nil.
func (s *Service) Verify(ctx context.Context, employeeID string) (Decision, error) {
	id := strings.TrimSpace(employeeID)
	if id == "" {
		return Decision{}, ErrInvalidID
	}

	now := s.Now()

	emp, found := s.roster.Find(id)
	if !found {
		s.record(ctx, id, UnknownName, OutcomeDeniedUnknown, now)
		return Decision{
			Granted: false,
			Outcome: OutcomeDeniedUnknown,
			Message: "Acesso negado. Matrícula não encontrada.",
		}, nil
	}

	if s.grantedToday(ctx, id, now) {
		s.record(ctx, id, emp.Name, OutcomeDeniedDuplicate, now)
		return Decision{
			Granted: false,
			Outcome: OutcomeDeniedDuplicate,
			Message: fmt.Sprintf("%s, você já verificou seu acesso hoje.", emp.Name),
			Name:    emp.Name,
		}, nil
	}

	s.record(ctx, id, emp.Name, OutcomeGranted, now)
	return Decision{
		Granted: true,
		Outcome: OutcomeGranted,
		Message: "Acesso concedido. Bom apetite!",
		Name:    emp.Name,
	}, nil
}

// grantedToday reports whether a Granted record already exists for this
// identifier within today's day window. A store failure degrades to
// false: the attempt is treated as the day's first rather than refused.
func (s *Service) grantedToday(ctx context.Context, id string, now time.Time) bool {
	start, end, err := DayWindow(todayAt(now))
	if err != nil {
		log.Printf("[Acesso] Erro ao calcular janela do dia: %v", err)
		return false
	}

	granted, err := s.store.HasGrantedBetween(ctx, id, start, end)
	if err != nil {
		log.Printf("[Acesso] Erro ao consultar acessos do dia: %v", err)
		return false
	}
	return granted
}

// record appends the decision to the admission log. Failures are logged
// and swallowed: the decision was already computed and a dead log write
// must not turn into a denied lunch.
func (s *Service) record(ctx context.Context, id, name string, outcome Outcome, at time.Time) {
	rec := Record{
		ID:         uuid.NewString(),
		EmployeeID: id,
		Name:       name,
		Outcome:    outcome,
		Timestamp:  at,
	}
	if err := s.store.Append(ctx, rec); err != nil {
		log.Printf("[Acesso] Erro ao registrar acesso de %s: %v", id, err)
	}
}
