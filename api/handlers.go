/*
handlers.go - HTTP API handlers for the canteen access-control service

PURPOSE:
  Exposes the admission decision service, the admin report and the
  daily reset via REST. Handles HTTP request/response, JSON
  serialization, and delegates to domain logic.

ENDPOINTS:
  Public:
    POST /api/verificar-acesso     Verify an identifier, log the outcome
    GET  /api/cardapio-do-dia      Menu of the day

  Admin (shared-secret protected):
    GET  /api/admin/relatorio          Day-window records as JSON
    GET  /api/admin/baixar-relatorio   Plain-text report download
    POST /api/admin/zerar              Manual admission-log reset

REQUEST FLOW:
  1. Parse HTTP request
  2. Validate input / credential
  3. Call domain logic (access.Service, report rendering)
  4. Serialize response

ERROR HANDLING:
  - 400: Empty identifier
  - 401: Unknown identifier, or bad admin credential
  - 403: Duplicate admission for the day
  - 500: Store failure on reset
  A failed report query degrades to an empty record list rather than an
  error page; the degradation is logged.

SECURITY NOTE:
  Admin authentication is a shared secret carried in the query string
  or JSON body, matching the deployed front end. The reset secret is
  distinct from the report-viewing secret.

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
  - scheduler.go: The automatic counterpart of the manual reset
*/
package api

import (
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/refeitorio/controle-acesso/access"
	"github.com/refeitorio/controle-acesso/menu"
	"github.com/refeitorio/controle-acesso/store/sqlite"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store  *sqlite.Store
	Access *access.Service
	Menu   *menu.Menu

	// AdminSecret protects the report endpoints; ResetSecret protects
	// the manual reset. They are distinct credentials.
	AdminSecret string
	ResetSecret string

	// ReportsDir is where downloaded report files are written. Created
	// on first use.
	ReportsDir string
}

// NewHandler creates a new handler with the given dependencies.
func NewHandler(store *sqlite.Store, svc *access.Service, m *menu.Menu) *Handler {
	return &Handler{
		Store:      store,
		Access:     svc,
		Menu:       m,
		ReportsDir: "relatorios",
	}
}

// =============================================================================
// PUBLIC HANDLERS
// =============================================================================

// VerifyAccess decides grant/deny for a submitted identifier.
func (h *Handler) VerifyAccess(w http.ResponseWriter, r *http.Request) {
	var req VerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		observeVerification("matricula_invalida")
		writeJSON(w, http.StatusBadRequest, VerifyResponse{Mensagem: "Matrícula inválida."})
		return
	}

	// Verify fails only on an empty identifier; store trouble is
	// absorbed by the best-effort logging policy.
	decision, err := h.Access.Verify(r.Context(), req.Matricula)
	if err != nil {
		observeVerification("matricula_invalida")
		writeJSON(w, http.StatusBadRequest, VerifyResponse{Mensagem: "Matrícula inválida."})
		return
	}

	switch decision.Outcome {
	case access.OutcomeGranted:
		observeVerification("concedido")
		writeJSON(w, http.StatusOK, VerifyResponse{
			Mensagem: decision.Message,
			Nome:     decision.Name,
			Status:   "aprovado",
		})
	case access.OutcomeDeniedDuplicate:
		observeVerification("duplicado")
		writeJSON(w, http.StatusForbidden, VerifyResponse{Mensagem: decision.Message})
	default:
		observeVerification("nao_encontrado")
		writeJSON(w, http.StatusUnauthorized, VerifyResponse{Mensagem: decision.Message})
	}
}

// MenuOfTheDay returns today's dish, using the fixed civil timezone to
// pick the weekday.
func (h *Handler) MenuOfTheDay(w http.ResponseWriter, r *http.Request) {
	today := time.Now().In(access.Timezone)
	item, ok := h.Menu.ForDay(today.Weekday())
	if !ok {
		writeJSON(w, http.StatusOK, MenuDTO{
			Dia:   menu.DayName(today.Weekday()),
			Prato: "Cardápio não disponível",
		})
		return
	}

	writeJSON(w, http.StatusOK, MenuDTO{
		Dia:   menu.DayName(today.Weekday()),
		Prato: item.Dish,
		Preco: item.Price.StringFixed(2),
	})
}

// =============================================================================
// ADMIN HANDLERS
// =============================================================================

// AdminReport returns the day's records as JSON, optionally narrowed by
// a case-insensitive substring search on matricula or nome.
func (h *Handler) AdminReport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	records := h.queryRecords(r, q.Get("data"), q.Get("busca"), q.Get("criterio"))

	dtos := make([]RecordDTO, len(records))
	for i, rec := range records {
		dtos[i] = recordDTO(rec)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// DownloadReport renders the plain-text daily report, writes it under
// the reports directory and serves it as a file download.
func (h *Handler) DownloadReport(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("data")
	if date == "" {
		date = access.Today()
	}

	// The date becomes part of the filename; reject anything that is
	// not a plain calendar date before it touches the filesystem.
	if _, _, err := access.DayWindow(date); err != nil {
		writeText(w, http.StatusBadRequest, "Data inválida. Use o formato AAAA-MM-DD.")
		return
	}

	records := h.queryRecords(r, date, "", "")
	report := access.RenderReport(records)

	filename := fmt.Sprintf("relatorio-diario-%s.txt", date)
	path := filepath.Join(h.ReportsDir, filename)

	if err := os.MkdirAll(h.ReportsDir, 0o755); err != nil {
		log.Printf("[API] Erro ao criar pasta de relatórios: %v", err)
		writeText(w, http.StatusNotFound, "Relatório não encontrado. Verifique os logs do servidor.")
		return
	}
	if err := os.WriteFile(path, []byte(report), 0o644); err != nil {
		log.Printf("[API] Erro ao gravar relatório: %v", err)
		writeText(w, http.StatusNotFound, "Relatório não encontrado. Verifique os logs do servidor.")
		return
	}

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	http.ServeFile(w, r, path)
}

// ResetLog performs the manual bulk delete of the admission log. It is
// gated by the reset secret, which is distinct from the general admin
// secret.
func (h *Handler) ResetLog(w http.ResponseWriter, r *http.Request) {
	var req ResetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeText(w, http.StatusUnauthorized, "Acesso negado. Senha incorreta.")
		return
	}

	if !secretMatches(req.Senha, h.ResetSecret) {
		writeText(w, http.StatusUnauthorized, "Acesso negado. Senha incorreta.")
		return
	}

	removed, err := h.Store.DeleteAll(r.Context())
	if err != nil {
		log.Printf("[API] Erro ao zerar o relatório: %v", err)
		writeText(w, http.StatusInternalServerError, fmt.Sprintf("Erro ao zerar o relatório: %v", err))
		return
	}

	observeReset("manual")
	log.Printf("[API] Relatório diário zerado por acesso manual. %d registros removidos.", removed)
	writeText(w, http.StatusOK, "Relatório diário zerado com sucesso!")
}

// adminOnly guards the report endpoints with the general admin secret,
// accepted via query string or JSON body.
func (h *Handler) adminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		senha := r.URL.Query().Get("senha")
		if senha == "" && r.Body != nil {
			var body struct {
				Senha string `json:"senha"`
			}
			if err := json.NewDecoder(r.Body).Decode(&body); err == nil {
				senha = body.Senha
			}
		}

		if !secretMatches(senha, h.AdminSecret) {
			writeText(w, http.StatusUnauthorized, "Acesso não autorizado. Senha de administrador necessária.")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// secretMatches compares a submitted credential against a configured
// secret in constant time. An unset secret disables the endpoint
// instead of matching the empty string.
func secretMatches(got, want string) bool {
	if want == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}

// queryRecords gathers the records for one civil day, applying the
// optional search filter. Failures degrade to an empty result set; the
// admin page shows an empty table instead of an error.
func (h *Handler) queryRecords(r *http.Request, date, term, field string) []access.Record {
	if date == "" {
		date = access.Today()
	}

	start, end, err := access.DayWindow(date)
	if err != nil {
		log.Printf("[API] Data inválida no filtro do relatório: %v", err)
		return nil
	}

	records, err := h.Store.QueryWindow(r.Context(), start, end, field, term)
	if err != nil {
		log.Printf("[API] Erro ao buscar registros: %v", err)
		return nil
	}
	return records
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeText(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	w.Write([]byte(message))
}
