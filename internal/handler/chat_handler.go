package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/rrhh-digital/legajo-api/internal/dto"
	"github.com/rrhh-digital/legajo-api/internal/service"
	appErrors "github.com/rrhh-digital/legajo-api/pkg/errors"
	"github.com/rrhh-digital/legajo-api/pkg/response"
)

// ChatHandler exposes the HR assistant endpoints.
type ChatHandler struct {
	chat *service.ChatService
}

// NewChatHandler constructs ChatHandler.
func NewChatHandler(chat *service.ChatService) *ChatHandler {
	return &ChatHandler{chat: chat}
}

// Consultar godoc
// @Summary Ask the HR assistant a question
// @Description Optionally grounded in one persona's legajo via persona_id
// @Tags Chat
// @Accept json
// @Produce json
// @Param payload body dto.ConsultaRequest true "Consulta payload"
// @Success 200 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /chat/consultas [post]
func (h *ChatHandler) Consultar(c *gin.Context) {
	var req dto.ConsultaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	res, err := h.chat.Consultar(c.Request.Context(), req, claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, res, nil)
}

// Historial godoc
// @Summary List the caller's recent consultas
// @Tags Chat
// @Produce json
// @Param limit query int false "Max entries" default(20)
// @Success 200 {object} response.Envelope
// @Router /chat/consultas [get]
func (h *ChatHandler) Historial(c *gin.Context) {
	limit := 20
	if v, err := strconv.Atoi(c.DefaultQuery("limit", "20")); err == nil {
		limit = v
	}
	consultas, err := h.chat.Historial(c.Request.Context(), claimsFromContext(c), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, consultas, nil)
}
