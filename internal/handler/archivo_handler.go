package handler

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/rrhh-digital/legajo-api/internal/service"
	appErrors "github.com/rrhh-digital/legajo-api/pkg/errors"
	"github.com/rrhh-digital/legajo-api/pkg/response"
)

// ArchivoHandler exposes file upload and signed download endpoints.
type ArchivoHandler struct {
	archivos *service.ArchivoService
}

// NewArchivoHandler constructs ArchivoHandler.
func NewArchivoHandler(archivos *service.ArchivoService) *ArchivoHandler {
	return &ArchivoHandler{archivos: archivos}
}

// Upload godoc
// @Summary Upload a file for a persona
// @Tags Archivos
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Persona ID"
// @Param file formData file true "File"
// @Success 201 {object} response.Envelope
// @Router /archivos/persona/{id} [post]
func (h *ArchivoHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "file field is required"))
		return
	}
	f, err := fileHeader.Open()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read upload"))
		return
	}
	defer f.Close()

	mimeType := fileHeader.Header.Get("Content-Type")
	archivo, err := h.archivos.Upload(c.Request.Context(), c.Param("id"), fileHeader.Filename, mimeType, fileHeader.Size, f, claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, archivo)
}

// ListByPersona godoc
// @Summary List uploads of a persona
// @Tags Archivos
// @Produce json
// @Param id path string true "Persona ID"
// @Success 200 {object} response.Envelope
// @Router /archivos/persona/{id} [get]
func (h *ArchivoHandler) ListByPersona(c *gin.Context) {
	archivos, err := h.archivos.ListByPersona(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, archivos, nil)
}

// SignURL godoc
// @Summary Issue a time-limited download token
// @Tags Archivos
// @Produce json
// @Param archivoId path string true "Archivo ID"
// @Success 200 {object} response.Envelope
// @Router /archivos/{archivoId}/signed-url [get]
func (h *ArchivoHandler) SignURL(c *gin.Context) {
	signed, err := h.archivos.SignURL(c.Request.Context(), c.Param("archivoId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, signed, nil)
}

// Download godoc
// @Summary Download a file via signed token
// @Tags Archivos
// @Produce application/octet-stream
// @Param archivoId path string true "Archivo ID"
// @Param token query string true "Signed download token"
// @Success 200 {file} binary
// @Router /archivos/{archivoId}/download [get]
func (h *ArchivoHandler) Download(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "token query parameter is required"))
		return
	}
	archivo, f, err := h.archivos.OpenByToken(c.Request.Context(), c.Param("archivoId"), token)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer f.Close()

	c.Header("Content-Disposition", "attachment; filename="+archivo.NombreOriginal)
	c.Header("Content-Length", strconv.FormatInt(archivo.TamanioBytes, 10))
	c.Status(http.StatusOK)
	c.Header("Content-Type", archivo.MimeType)
	if _, err := io.Copy(c.Writer, f); err != nil {
		// headers already sent; nothing sensible to return
		_ = c.Error(err)
	}
}
