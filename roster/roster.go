/*
Package roster loads and serves the employee roster.

PURPOSE:
  Reads the registration file once at process start and answers exact
  identifier lookups for the rest of the process lifetime. The roster
  is immutable after loading: no reload, no mutation, no locking.

FILE FORMAT:
  Plain text, one employee per line, fields separated by ';'. The first
  line is a header and is discarded:

    matricula;nome
    1001;Ana Souza
    1002;Bruno Lima

  Identifiers and names are trimmed. Lines without a separator are
  skipped.

SEE ALSO:
  - access/service.go: The only consumer of lookups
*/
package roster

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Employee is one roster entry. Identifiers are opaque trimmed strings;
// uniqueness is not enforced, the first match wins on lookup.
type Employee struct {
	ID   string
	Name string
}

// Roster is an immutable in-memory employee list.
type Roster struct {
	employees []Employee
}

// New builds a roster from an already-assembled employee list.
func New(employees []Employee) *Roster {
	return &Roster{employees: employees}
}

// Load reads the roster file. The header line is discarded.
func Load(path string) (*Roster, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open roster file: %w", err)
	}
	defer f.Close()

	var employees []Employee
	scanner := bufio.NewScanner(f)
	first := true
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if first {
			first = false // header
			continue
		}
		if line == "" {
			continue
		}

		id, name, ok := strings.Cut(line, ";")
		if !ok {
			continue
		}
		employees = append(employees, Employee{
			ID:   strings.TrimSpace(id),
			Name: strings.TrimSpace(name),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read roster file: %w", err)
	}

	return &Roster{employees: employees}, nil
}

// Find returns the first employee whose identifier matches exactly.
// The caller is expected to trim the identifier first.
func (r *Roster) Find(id string) (Employee, bool) {
	for _, e := range r.employees {
		if e.ID == id {
			return e, true
		}
	}
	return Employee{}, false
}

// Len returns the number of loaded entries.
func (r *Roster) Len() int {
	return len(r.employees)
}
