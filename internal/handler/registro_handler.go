package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rrhh-digital/legajo-api/internal/dto"
	"github.com/rrhh-digital/legajo-api/internal/service"
	appErrors "github.com/rrhh-digital/legajo-api/pkg/errors"
	"github.com/rrhh-digital/legajo-api/pkg/response"
)

// RegistroHandler exposes the registration wizard submission endpoint.
type RegistroHandler struct {
	registro *service.RegistroService
}

// NewRegistroHandler constructs RegistroHandler.
func NewRegistroHandler(registro *service.RegistroService) *RegistroHandler {
	return &RegistroHandler{registro: registro}
}

// Finalizar godoc
// @Summary Finalize the registration wizard for a persona
// @Description Creates barrio (optional), domicilio and titulo (optional) in
// @Description sequence. Completed steps are not rolled back on failure.
// @Tags Registro
// @Accept json
// @Produce json
// @Param id path string true "Persona ID"
// @Param payload body dto.RegistroRequest true "Registro payload"
// @Success 201 {object} response.Envelope
// @Router /personas/{id}/registro [post]
func (h *RegistroHandler) Finalizar(c *gin.Context) {
	var req dto.RegistroRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	result, err := h.registro.Finalizar(c.Request.Context(), c.Param("id"), req, claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}
