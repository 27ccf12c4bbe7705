package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rrhh-digital/legajo-api/internal/dto"
	"github.com/rrhh-digital/legajo-api/internal/models"
	"github.com/rrhh-digital/legajo-api/internal/service"
	appErrors "github.com/rrhh-digital/legajo-api/pkg/errors"
	"github.com/rrhh-digital/legajo-api/pkg/response"
)

// DocumentoHandler exposes persona-document endpoints.
type DocumentoHandler struct {
	documentos    *service.DocumentoService
	eliminaciones *service.EliminacionService
}

// NewDocumentoHandler constructs DocumentoHandler.
func NewDocumentoHandler(documentos *service.DocumentoService, eliminaciones *service.EliminacionService) *DocumentoHandler {
	return &DocumentoHandler{documentos: documentos, eliminaciones: eliminaciones}
}

// List godoc
// @Summary List documents of a persona
// @Tags Documentos
// @Produce json
// @Param id path string true "Persona ID"
// @Param tipo query string false "Filter by tipo_doc"
// @Param estado query string false "Filter by verification state"
// @Success 200 {object} response.Envelope
// @Router /personas/{id}/documentos [get]
func (h *DocumentoHandler) List(c *gin.Context) {
	filter := models.DocumentoFilter{
		PersonaID: c.Param("id"),
		TipoDoc:   c.Query("tipo"),
		Estado:    c.Query("estado"),
	}
	if vigente := c.Query("vigente"); vigente != "" {
		v := vigente == "true"
		filter.Vigente = &v
	}
	documentos, err := h.documentos.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, documentos, nil)
}

// Create godoc
// @Summary Register a document for a persona
// @Tags Documentos
// @Accept json
// @Produce json
// @Param id path string true "Persona ID"
// @Param payload body dto.CreateDocumentoRequest true "Documento payload"
// @Success 201 {object} response.Envelope
// @Router /personas/{id}/documentos [post]
func (h *DocumentoHandler) Create(c *gin.Context) {
	var req dto.CreateDocumentoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	documento, err := h.documentos.Create(c.Request.Context(), c.Param("id"), req, claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, documento)
}

// ChangeEstado godoc
// @Summary Change the verification state of a document
// @Description RECHAZADO and OBSERVADO require an observacion
// @Tags Documentos
// @Accept json
// @Produce json
// @Param docId path string true "Documento ID"
// @Param payload body dto.ChangeEstadoRequest true "Estado payload"
// @Success 200 {object} response.Envelope
// @Router /documentos/{docId}/estado [patch]
func (h *DocumentoHandler) ChangeEstado(c *gin.Context) {
	var req dto.ChangeEstadoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	documento, err := h.documentos.ChangeEstado(c.Request.Context(), c.Param("docId"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, documento, nil)
}

// Delete godoc
// @Summary Delete a document directly
// @Description Restricted to roles with direct-delete permission
// @Tags Documentos
// @Produce json
// @Param id path string true "Persona ID"
// @Param docId path string true "Documento ID"
// @Success 204 "No Content"
// @Router /personas/{id}/documentos/{docId} [delete]
func (h *DocumentoHandler) Delete(c *gin.Context) {
	if err := h.documentos.Delete(c.Request.Context(), c.Param("id"), c.Param("docId"), claimsFromContext(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// SolicitarEliminacion godoc
// @Summary Raise a deletion request for a document
// @Tags Documentos
// @Accept json
// @Produce json
// @Param docId path string true "Documento ID"
// @Param payload body dto.SolicitarEliminacionRequest false "Motivo"
// @Success 201 {object} response.Envelope
// @Router /documentos/{docId}/solicitar-eliminacion [post]
func (h *DocumentoHandler) SolicitarEliminacion(c *gin.Context) {
	var req dto.SolicitarEliminacionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
			return
		}
	}
	solicitud, err := h.eliminaciones.Solicitar(c.Request.Context(), models.EliminacionDocumento, c.Param("docId"), req, claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, solicitud)
}
