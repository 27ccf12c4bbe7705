package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rrhh-digital/legajo-api/internal/models"
	"github.com/rrhh-digital/legajo-api/internal/service"
	appErrors "github.com/rrhh-digital/legajo-api/pkg/errors"
	"github.com/rrhh-digital/legajo-api/pkg/response"
)

type legajoEstadoService interface {
	GetEstado(ctx context.Context, personaID string) (*models.LegajoEstadoView, error)
	Recalcular(ctx context.Context, personaID string) (*models.LegajoEstadoView, error)
	SetEstado(ctx context.Context, personaID string, codigo models.LegajoCodigo, observacion string) (*models.LegajoEstadoView, error)
}

type fichaExportService interface {
	Ficha(ctx context.Context, personaID string, format service.ExportFormat) (*service.FichaExport, error)
}

// LegajoHandler exposes aggregate dossier-state endpoints.
type LegajoHandler struct {
	legajos legajoEstadoService
	export  fichaExportService
}

// NewLegajoHandler constructs LegajoHandler.
func NewLegajoHandler(legajos legajoEstadoService, export fichaExportService) *LegajoHandler {
	return &LegajoHandler{legajos: legajos, export: export}
}

// GetEstado godoc
// @Summary Get the aggregate legajo state of a persona
// @Tags Legajo
// @Produce json
// @Param id path string true "Persona ID"
// @Success 200 {object} response.Envelope
// @Router /legajo/{id}/estado [get]
func (h *LegajoHandler) GetEstado(c *gin.Context) {
	estado, err := h.legajos.GetEstado(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, estado, nil)
}

// Recalcular godoc
// @Summary Recompute the aggregate legajo state
// @Tags Legajo
// @Produce json
// @Param id path string true "Persona ID"
// @Success 200 {object} response.Envelope
// @Router /legajo/{id}/recalcular [post]
func (h *LegajoHandler) Recalcular(c *gin.Context) {
	estado, err := h.legajos.Recalcular(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, estado, nil)
}

// SetEstado godoc
// @Summary Manually override the aggregate legajo state
// @Tags Legajo
// @Accept json
// @Produce json
// @Param id path string true "Persona ID"
// @Param payload body object true "Codigo and optional observacion"
// @Success 200 {object} response.Envelope
// @Router /legajo/{id}/estado [post]
func (h *LegajoHandler) SetEstado(c *gin.Context) {
	var payload struct {
		Codigo      string `json:"codigo" binding:"required"`
		Observacion string `json:"observacion"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	estado, err := h.legajos.SetEstado(c.Request.Context(), c.Param("id"), models.LegajoCodigo(payload.Codigo), payload.Observacion)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, estado, nil)
}

// Export godoc
// @Summary Export the ficha de legajo
// @Description Renders the legajo summary as PDF (default) or CSV
// @Tags Legajo
// @Produce application/pdf
// @Produce text/csv
// @Param id path string true "Persona ID"
// @Param format query string false "pdf or csv" default(pdf)
// @Success 200 {file} binary
// @Router /legajo/{id}/export [get]
func (h *LegajoHandler) Export(c *gin.Context) {
	format := service.FormatPDF
	if c.Query("format") == string(service.FormatCSV) {
		format = service.FormatCSV
	}
	ficha, err := h.export.Ficha(c.Request.Context(), c.Param("id"), format)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename="+ficha.Filename)
	c.Data(http.StatusOK, ficha.ContentType, ficha.Content)
}
