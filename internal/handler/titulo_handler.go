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

// TituloHandler exposes titulo endpoints.
type TituloHandler struct {
	titulos       *service.TituloService
	eliminaciones *service.EliminacionService
}

// NewTituloHandler constructs TituloHandler.
func NewTituloHandler(titulos *service.TituloService, eliminaciones *service.EliminacionService) *TituloHandler {
	return &TituloHandler{titulos: titulos, eliminaciones: eliminaciones}
}

// List godoc
// @Summary List titulos of a persona
// @Tags Titulos
// @Produce json
// @Param id path string true "Persona ID"
// @Param estado query string false "Filter by verification state"
// @Success 200 {object} response.Envelope
// @Router /personas/{id}/titulos [get]
func (h *TituloHandler) List(c *gin.Context) {
	filter := models.TituloFilter{PersonaID: c.Param("id"), Estado: c.Query("estado")}
	titulos, err := h.titulos.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, titulos, nil)
}

// Create godoc
// @Summary Register a titulo for a persona
// @Tags Titulos
// @Accept json
// @Produce json
// @Param id path string true "Persona ID"
// @Param payload body dto.CreateTituloRequest true "Titulo payload"
// @Success 201 {object} response.Envelope
// @Router /personas/{id}/titulos [post]
func (h *TituloHandler) Create(c *gin.Context) {
	var req dto.CreateTituloRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	req.PersonaID = c.Param("id")
	titulo, err := h.titulos.Create(c.Request.Context(), req, claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, titulo)
}

// ChangeEstado godoc
// @Summary Change the verification state of a titulo
// @Description RECHAZADO and OBSERVADO require an observacion
// @Tags Titulos
// @Accept json
// @Produce json
// @Param tituloId path string true "Titulo ID"
// @Param payload body dto.ChangeEstadoRequest true "Estado payload"
// @Success 200 {object} response.Envelope
// @Router /titulos/{tituloId}/estado [patch]
func (h *TituloHandler) ChangeEstado(c *gin.Context) {
	var req dto.ChangeEstadoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	titulo, err := h.titulos.ChangeEstado(c.Request.Context(), c.Param("tituloId"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, titulo, nil)
}

// Delete godoc
// @Summary Delete a titulo directly
// @Tags Titulos
// @Produce json
// @Param id path string true "Persona ID"
// @Param tituloId path string true "Titulo ID"
// @Success 204 "No Content"
// @Router /personas/{id}/titulos/{tituloId} [delete]
func (h *TituloHandler) Delete(c *gin.Context) {
	if err := h.titulos.Delete(c.Request.Context(), c.Param("id"), c.Param("tituloId"), claimsFromContext(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// SolicitarEliminacion godoc
// @Summary Raise a deletion request for a titulo
// @Tags Titulos
// @Accept json
// @Produce json
// @Param tituloId path string true "Titulo ID"
// @Param payload body dto.SolicitarEliminacionRequest false "Motivo"
// @Success 201 {object} response.Envelope
// @Router /titulos/{tituloId}/solicitar-eliminacion [post]
func (h *TituloHandler) SolicitarEliminacion(c *gin.Context) {
	var req dto.SolicitarEliminacionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
			return
		}
	}
	solicitud, err := h.eliminaciones.Solicitar(c.Request.Context(), models.EliminacionTitulo, c.Param("tituloId"), req, claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, solicitud)
}
