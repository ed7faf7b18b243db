/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. Field names are
  the Portuguese wire names the front end already speaks; these types
  decouple the internal record model from that contract.

NAMING CONVENTION:
  - *Request: Request body types from clients
  - *DTO:     Response types returned to clients

VALIDATION:
  Validation is done in handlers, not in DTOs. DTOs are pure data
  carriers.

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

import (
	"github.com/refeitorio/controle-acesso/access"
)

// VerifyRequest is the body of the public verification endpoint.
type VerifyRequest struct {
	Matricula string `json:"matricula"`
}

// VerifyResponse is the verification result returned to the kiosk.
// Nome and Status are only present on success.
type VerifyResponse struct {
	Mensagem string `json:"mensagem"`
	Nome     string `json:"nome,omitempty"`
	Status   string `json:"status,omitempty"`
}

// ResetRequest is the body of the manual reset endpoint.
type ResetRequest struct {
	Senha string `json:"senha"`
}

// RecordDTO represents one admission log entry in admin responses.
type RecordDTO struct {
	ID        string `json:"id"`
	Matricula string `json:"matricula"`
	Nome      string `json:"nome"`
	Status    string `json:"status"`
	DataHora  string `json:"dataHora"`
}

// MenuDTO is the menu-of-the-day payload.
type MenuDTO struct {
	Dia   string `json:"dia"`
	Prato string `json:"prato"`
	Preco string `json:"preco"`
}

func recordDTO(rec access.Record) RecordDTO {
	return RecordDTO{
		ID:        rec.ID,
		Matricula: rec.EmployeeID,
		Nome:      rec.Name,
		Status:    string(rec.Outcome),
		DataHora:  rec.Timestamp.UTC().Format("2006-01-02T15:04:05.000Z"),
	}
}
