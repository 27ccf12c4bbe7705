package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rrhh-digital/legajo-api/internal/dto"
	"github.com/rrhh-digital/legajo-api/internal/models"
	appErrors "github.com/rrhh-digital/legajo-api/pkg/errors"
	"github.com/rrhh-digital/legajo-api/pkg/response"
)

type eliminacionReviewService interface {
	List(ctx context.Context, query dto.EliminacionQuery, actor *models.JWTClaims) ([]models.EliminacionSolicitud, error)
	Review(ctx context.Context, id string, req dto.ReviewEliminacionRequest, actor *models.JWTClaims) (*models.EliminacionSolicitud, error)
}

// EliminacionHandler exposes the deletion-request workflow endpoints.
type EliminacionHandler struct {
	eliminaciones eliminacionReviewService
}

// NewEliminacionHandler constructs EliminacionHandler.
func NewEliminacionHandler(eliminaciones eliminacionReviewService) *EliminacionHandler {
	return &EliminacionHandler{eliminaciones: eliminaciones}
}

// List godoc
// @Summary List deletion requests
// @Description EMPLEADO callers only see their own requests
// @Tags Eliminaciones
// @Produce json
// @Param estado query string false "Filter by estado"
// @Param tipo query string false "Filter by target tipo"
// @Success 200 {object} response.Envelope
// @Router /eliminaciones [get]
func (h *EliminacionHandler) List(c *gin.Context) {
	query := dto.EliminacionQuery{Estado: c.Query("estado"), Tipo: c.Query("tipo")}
	solicitudes, err := h.eliminaciones.List(c.Request.Context(), query, claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, solicitudes, nil)
}

// Review godoc
// @Summary Review a pending deletion request
// @Description Approval applies the deletion; a settled request cannot be reviewed again
// @Tags Eliminaciones
// @Accept json
// @Produce json
// @Param id path string true "Solicitud ID"
// @Param payload body dto.ReviewEliminacionRequest true "Review decision"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /eliminaciones/{id}/revision [post]
func (h *EliminacionHandler) Review(c *gin.Context) {
	var req dto.ReviewEliminacionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	solicitud, err := h.eliminaciones.Review(c.Request.Context(), c.Param("id"), req, claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, solicitud, nil)
}
