/*
report.go - Daily report aggregation and plain-text rendering

PURPOSE:
  Reduces a day's admission records into aggregate counts plus the
  deduplicated list of denied identifiers, and renders the fixed
  plain-text block served by the report download endpoint.

NOTE:
  The rendered header shows the generation date, not the date of the
  records being summarized. Historical behavior, kept as-is.
*/
package access

import (
	"fmt"
	"strings"
	"time"
)

// Summary holds the aggregate view of a set of admission records.
type Summary struct {
	Total     int
	Granted   int
	DeniedIDs []string
}

// Summarize reduces records into totals. DeniedIDs is deduplicated in
// first-seen order and covers every denial variant.
func Summarize(records []Record) Summary {
	sum := Summary{Total: len(records)}

	seen := make(map[string]struct{})
	for _, rec := range records {
		switch {
		case rec.Outcome == OutcomeGranted:
			sum.Granted++
		case rec.Outcome.Denied():
			if _, dup := seen[rec.EmployeeID]; dup {
				continue
			}
			seen[rec.EmployeeID] = struct{}{}
			sum.DeniedIDs = append(sum.DeniedIDs, rec.EmployeeID)
		}
	}
	return sum
}

// RenderReport renders the daily plain-text report for the given
// records, dated with the current instant.
func RenderReport(records []Record) string {
	return RenderReportAt(records, time.Now())
}

// RenderReportAt is RenderReport with an explicit generation instant.
func RenderReportAt(records []Record, at time.Time) string {
	sum := Summarize(records)
	date := at.In(Timezone).Format("02/01/2006")

	return fmt.Sprintf(`
Relatório Diário - %s
----------------------------------
Total de Solicitações: %d
Acessos Concedidos: %d
Matrículas Negadas: %s
----------------------------------
`, date, sum.Total, sum.Granted, strings.Join(sum.DeniedIDs, ", "))
}
