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

// DomicilioHandler exposes address and geography endpoints.
type DomicilioHandler struct {
	domicilios    *service.DomicilioService
	eliminaciones *service.EliminacionService
}

// NewDomicilioHandler constructs DomicilioHandler.
func NewDomicilioHandler(domicilios *service.DomicilioService, eliminaciones *service.EliminacionService) *DomicilioHandler {
	return &DomicilioHandler{domicilios: domicilios, eliminaciones: eliminaciones}
}

// ListDepartamentos godoc
// @Summary List departamentos
// @Tags Geografia
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /dom-otros/departamentos [get]
func (h *DomicilioHandler) ListDepartamentos(c *gin.Context) {
	departamentos, err := h.domicilios.ListDepartamentos(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, departamentos, nil)
}

// ListLocalidades godoc
// @Summary List localidades of a departamento
// @Tags Geografia
// @Produce json
// @Param depto query string true "Departamento ID"
// @Success 200 {object} response.Envelope
// @Router /dom-otros/localidades [get]
func (h *DomicilioHandler) ListLocalidades(c *gin.Context) {
	depto := c.Query("depto")
	if depto == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "depto query parameter is required"))
		return
	}
	localidades, err := h.domicilios.ListLocalidades(c.Request.Context(), depto)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, localidades, nil)
}

// CreateBarrio godoc
// @Summary Create a barrio under a localidad
// @Tags Geografia
// @Accept json
// @Produce json
// @Param id path string true "Localidad ID"
// @Param payload body dto.CreateBarrioRequest true "Barrio payload"
// @Success 201 {object} response.Envelope
// @Router /dom-otros/localidades/{id}/barrios [post]
func (h *DomicilioHandler) CreateBarrio(c *gin.Context) {
	var req dto.CreateBarrioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	barrio, err := h.domicilios.CreateBarrio(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, barrio)
}

// List godoc
// @Summary List addresses of a persona
// @Tags Domicilios
// @Produce json
// @Param id path string true "Persona ID"
// @Success 200 {object} response.Envelope
// @Router /personas/{id}/domicilios [get]
func (h *DomicilioHandler) List(c *gin.Context) {
	domicilios, err := h.domicilios.List(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, domicilios, nil)
}

// Create godoc
// @Summary Register an address for a persona
// @Tags Domicilios
// @Accept json
// @Produce json
// @Param id path string true "Persona ID"
// @Param payload body dto.CreateDomicilioRequest true "Domicilio payload"
// @Success 201 {object} response.Envelope
// @Router /personas/{id}/domicilios [post]
func (h *DomicilioHandler) Create(c *gin.Context) {
	var req dto.CreateDomicilioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	domicilio, err := h.domicilios.Create(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, domicilio)
}

// Delete godoc
// @Summary Delete an address directly
// @Tags Domicilios
// @Produce json
// @Param id path string true "Persona ID"
// @Param domId path string true "Domicilio ID"
// @Success 204 "No Content"
// @Router /personas/{id}/domicilios/{domId} [delete]
func (h *DomicilioHandler) Delete(c *gin.Context) {
	if err := h.domicilios.Delete(c.Request.Context(), c.Param("id"), c.Param("domId"), claimsFromContext(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// SolicitarEliminacion godoc
// @Summary Raise a deletion request for an address
// @Tags Domicilios
// @Accept json
// @Produce json
// @Param domId path string true "Domicilio ID"
// @Param payload body dto.SolicitarEliminacionRequest false "Motivo"
// @Success 201 {object} response.Envelope
// @Router /domicilios/{domId}/solicitar-eliminacion [post]
func (h *DomicilioHandler) SolicitarEliminacion(c *gin.Context) {
	var req dto.SolicitarEliminacionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
			return
		}
	}
	solicitud, err := h.eliminaciones.Solicitar(c.Request.Context(), models.EliminacionDomicilio, c.Param("domId"), req, claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, solicitud)
}
