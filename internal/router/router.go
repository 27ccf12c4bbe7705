package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/rrhh-digital/legajo-api/internal/handler"
	"github.com/rrhh-digital/legajo-api/internal/middleware"
	"github.com/rrhh-digital/legajo-api/internal/models"
	"github.com/rrhh-digital/legajo-api/internal/service"
)

// Deps collects everything route registration needs.
type Deps struct {
	Auth          *handler.AuthHandler
	Personas      *handler.PersonaHandler
	Documentos    *handler.DocumentoHandler
	Domicilios    *handler.DomicilioHandler
	Titulos       *handler.TituloHandler
	Legajo        *handler.LegajoHandler
	Registro      *handler.RegistroHandler
	Archivos      *handler.ArchivoHandler
	Eliminaciones *handler.EliminacionHandler
	Chat          *handler.ChatHandler

	AuthService *service.AuthService
	Metrics     *service.MetricsService

	EnableDocs bool
}

// Register wires all API routes onto the engine.
func Register(r *gin.Engine, d Deps) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	if d.Metrics != nil {
		r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))
	}
	if d.EnableDocs {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group("/api/v1")

	api.POST("/auth/login", d.Auth.Login)
	api.POST("/auth/refresh", d.Auth.Refresh)

	protected := api.Group("")
	protected.Use(middleware.JWT(d.AuthService))

	protected.POST("/auth/logout", d.Auth.Logout)
	protected.GET("/auth/me", d.Auth.Me)

	staff := middleware.RequireRoles(models.RoleAdmin, models.RoleRRHH)
	staffOrSelf := middleware.RBAC(string(models.RoleAdmin), string(models.RoleRRHH), middleware.SelfToken)

	// personas
	protected.GET("/personas", staff, d.Personas.List)
	protected.POST("/personas", staff, d.Personas.Create)
	protected.GET("/personas/:id", staffOrSelf, d.Personas.Get)
	protected.PATCH("/personas/:id", staffOrSelf, d.Personas.Update)
	protected.DELETE("/personas/:id", staff, d.Personas.Deactivate)

	// documentos
	protected.GET("/personas/:id/documentos", staffOrSelf, d.Documentos.List)
	protected.POST("/personas/:id/documentos", staffOrSelf, d.Documentos.Create)
	protected.DELETE("/personas/:id/documentos/:docId", staff, d.Documentos.Delete)
	protected.PATCH("/documentos/:docId/estado", staff, d.Documentos.ChangeEstado)
	protected.POST("/documentos/:docId/solicitar-eliminacion", d.Documentos.SolicitarEliminacion)

	// domicilios and geography
	protected.GET("/dom-otros/departamentos", d.Domicilios.ListDepartamentos)
	protected.GET("/dom-otros/localidades", d.Domicilios.ListLocalidades)
	protected.POST("/dom-otros/localidades/:id/barrios", d.Domicilios.CreateBarrio)
	protected.GET("/personas/:id/domicilios", staffOrSelf, d.Domicilios.List)
	protected.POST("/personas/:id/domicilios", staffOrSelf, d.Domicilios.Create)
	protected.DELETE("/personas/:id/domicilios/:domId", staff, d.Domicilios.Delete)
	protected.POST("/domicilios/:domId/solicitar-eliminacion", d.Domicilios.SolicitarEliminacion)

	// titulos
	protected.GET("/personas/:id/titulos", staffOrSelf, d.Titulos.List)
	protected.POST("/personas/:id/titulos", staffOrSelf, d.Titulos.Create)
	protected.DELETE("/personas/:id/titulos/:tituloId", staff, d.Titulos.Delete)
	protected.PATCH("/titulos/:tituloId/estado", staff, d.Titulos.ChangeEstado)
	protected.POST("/titulos/:tituloId/solicitar-eliminacion", d.Titulos.SolicitarEliminacion)

	// registro wizard
	protected.POST("/personas/:id/registro", staffOrSelf, d.Registro.Finalizar)

	// legajo aggregate state
	protected.GET("/legajo/:id/estado", staffOrSelf, d.Legajo.GetEstado)
	protected.POST("/legajo/:id/recalcular", staff, d.Legajo.Recalcular)
	protected.POST("/legajo/:id/estado", staff, d.Legajo.SetEstado)
	protected.GET("/legajo/:id/export", staffOrSelf, d.Legajo.Export)

	// archivos
	protected.POST("/archivos/persona/:id", staffOrSelf, d.Archivos.Upload)
	protected.GET("/archivos/persona/:id", staffOrSelf, d.Archivos.ListByPersona)
	protected.GET("/archivos/:archivoId/signed-url", d.Archivos.SignURL)

	// eliminaciones
	protected.GET("/eliminaciones", d.Eliminaciones.List)
	protected.POST("/eliminaciones/:id/revision", staff, d.Eliminaciones.Review)

	// chat
	protected.POST("/chat/consultas", d.Chat.Consultar)
	protected.GET("/chat/consultas", d.Chat.Historial)

	// download uses the signed token instead of a JWT so links can be
	// handed to browsers directly
	api.GET("/archivos/:archivoId/download", d.Archivos.Download)
}
