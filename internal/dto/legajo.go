package dto

import "github.com/rrhh-digital/legajo-api/internal/models"

// SetEstadoRequest manually overrides the aggregate legajo status.
type SetEstadoRequest struct {
	Codigo      models.LegajoCodigo `json:"codigo" validate:"required"`
	Observacion string              `json:"observacion"`
}
