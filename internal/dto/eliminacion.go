package dto

import "github.com/rrhh-digital/legajo-api/internal/models"

// SolicitarEliminacionRequest raises a deletion request for a sub-entity.
type SolicitarEliminacionRequest struct {
	Motivo *string `json:"motivo,omitempty"`
}

// ReviewEliminacionRequest captures reviewer decision and optional note.
type ReviewEliminacionRequest struct {
	Estado models.EliminacionEstado `json:"estado"`
	Nota   string                   `json:"nota"`
}

// EliminacionQuery mirrors supported listing filters.
type EliminacionQuery struct {
	Estado string
	Tipo   string
}
