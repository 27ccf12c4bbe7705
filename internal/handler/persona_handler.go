package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rrhh-digital/legajo-api/internal/models"
	"github.com/rrhh-digital/legajo-api/internal/service"
	appErrors "github.com/rrhh-digital/legajo-api/pkg/errors"
	"github.com/rrhh-digital/legajo-api/pkg/response"
)

// PersonaHandler exposes persona endpoints.
type PersonaHandler struct {
	personas *service.PersonaService
}

// NewPersonaHandler constructs PersonaHandler.
func NewPersonaHandler(personas *service.PersonaService) *PersonaHandler {
	return &PersonaHandler{personas: personas}
}

// List godoc
// @Summary List personas
// @Tags Personas
// @Produce json
// @Param search query string false "Search by nombre or apellido"
// @Param activo query bool false "Filter by active state"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /personas [get]
func (h *PersonaHandler) List(c *gin.Context) {
	var filter models.PersonaFilter
	filter.Search = strings.TrimSpace(c.Query("search"))
	if activo := c.Query("activo"); activo != "" {
		if activo == "true" {
			v := true
			filter.Activo = &v
		} else if activo == "false" {
			v := false
			filter.Activo = &v
		}
	}
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if size, err := strconv.Atoi(c.DefaultQuery("limit", "20")); err == nil {
		filter.PageSize = size
	}
	filter.SortBy = c.Query("sort")
	filter.SortOrder = c.Query("order")

	personas, pagination, err := h.personas.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, personas, pagination)
}

// Get godoc
// @Summary Get persona detail
// @Tags Personas
// @Produce json
// @Param id path string true "Persona ID"
// @Success 200 {object} response.Envelope
// @Router /personas/{id} [get]
func (h *PersonaHandler) Get(c *gin.Context) {
	persona, err := h.personas.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, persona, nil)
}

// Create godoc
// @Summary Create persona
// @Tags Personas
// @Accept json
// @Produce json
// @Param payload body service.CreatePersonaRequest true "Persona payload"
// @Success 201 {object} response.Envelope
// @Router /personas [post]
func (h *PersonaHandler) Create(c *gin.Context) {
	var req service.CreatePersonaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	persona, err := h.personas.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, persona)
}

// Update godoc
// @Summary Update persona
// @Description Partial update; only supplied fields change
// @Tags Personas
// @Accept json
// @Produce json
// @Param id path string true "Persona ID"
// @Param payload body service.UpdatePersonaRequest true "Persona payload"
// @Success 200 {object} response.Envelope
// @Router /personas/{id} [patch]
func (h *PersonaHandler) Update(c *gin.Context) {
	var req service.UpdatePersonaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	persona, err := h.personas.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, persona, nil)
}

// Deactivate godoc
// @Summary Deactivate persona
// @Description Marks the persona inactive; persona rows are never hard-deleted
// @Tags Personas
// @Produce json
// @Param id path string true "Persona ID"
// @Success 204 "No Content"
// @Router /personas/{id} [delete]
func (h *PersonaHandler) Deactivate(c *gin.Context) {
	if err := h.personas.Deactivate(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
