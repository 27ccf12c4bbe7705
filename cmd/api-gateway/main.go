package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	_ "github.com/rrhh-digital/legajo-api/api/swagger"
	"github.com/rrhh-digital/legajo-api/internal/handler"
	"github.com/rrhh-digital/legajo-api/internal/middleware"
	"github.com/rrhh-digital/legajo-api/internal/providers/llm"
	"github.com/rrhh-digital/legajo-api/internal/repository"
	"github.com/rrhh-digital/legajo-api/internal/router"
	"github.com/rrhh-digital/legajo-api/internal/service"
	"github.com/rrhh-digital/legajo-api/pkg/cache"
	"github.com/rrhh-digital/legajo-api/pkg/config"
	"github.com/rrhh-digital/legajo-api/pkg/database"
	"github.com/rrhh-digital/legajo-api/pkg/jobs"
	"github.com/rrhh-digital/legajo-api/pkg/logger"
	corsmiddleware "github.com/rrhh-digital/legajo-api/pkg/middleware/cors"
	reqidmiddleware "github.com/rrhh-digital/legajo-api/pkg/middleware/requestid"
	"github.com/rrhh-digital/legajo-api/pkg/storage"
)

// @title Legajo API
// @version 1.0.0
// @description Digital personnel dossier administration for RRHH
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, caching disabled", "error", err)
		redisClient = nil
	}

	store, err := storage.NewLocalStorage(cfg.Archivos.StorageDir)
	if err != nil {
		logr.Sugar().Fatalw("failed to init file storage", "error", err)
	}
	signer := storage.NewSignedURLSigner(cfg.Archivos.SignedURLSecret, cfg.Archivos.SignedURLTTL)

	metrics := service.NewMetricsService()

	// repositories
	userRepo := repository.NewUserRepository(db)
	personaRepo := repository.NewPersonaRepository(db)
	documentoRepo := repository.NewDocumentoRepository(db)
	domicilioRepo := repository.NewDomicilioRepository(db)
	tituloRepo := repository.NewTituloRepository(db)
	archivoRepo := repository.NewArchivoRepository(db)
	legajoRepo := repository.NewLegajoRepository(db)
	eliminacionRepo := repository.NewEliminacionRepository(db)
	chatRepo := repository.NewChatRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)

	// services
	authService := service.NewAuthService(userRepo, nil, logr, service.AuthConfig{
		AccessTokenSecret:  cfg.JWT.Secret,
		AccessTokenExpiry:  cfg.JWT.Expiration,
		RefreshTokenExpiry: cfg.JWT.RefreshExpiration,
		Issuer:             "legajo-api",
	})

	legajoService := service.NewLegajoService(legajoRepo, personaRepo, documentoRepo, domicilioRepo, tituloRepo, cacheRepo, cfg.Legajo, nil, logr)

	queue := jobs.NewQueue("legajo-recalc", service.RecalcHandler(legajoService, metrics), jobs.QueueConfig{
		Workers:    cfg.Legajo.RecalcWorkers,
		BufferSize: cfg.Legajo.RecalcBuffer,
		MaxRetries: cfg.Legajo.RecalcMaxRetries,
		RetryDelay: cfg.Legajo.RecalcRetryDelay,
		Logger:     logr,
	})
	queue.Start(ctx)
	defer queue.Stop()

	dispatcher := service.NewRecalcDispatcher(queue, logr)

	personaService := service.NewPersonaService(personaRepo, dispatcher, nil, logr)
	documentoService := service.NewDocumentoService(documentoRepo, archivoRepo, dispatcher, nil, logr)
	domicilioService := service.NewDomicilioService(domicilioRepo, dispatcher, nil, logr)
	tituloService := service.NewTituloService(tituloRepo, archivoRepo, dispatcher, nil, logr)
	archivoService := service.NewArchivoService(archivoRepo, store, signer, cfg.Archivos, logr)
	exportService := service.NewExportService(personaRepo, legajoService, documentoRepo, domicilioRepo, tituloRepo, logr)
	registroService := service.NewRegistroService(personaRepo, domicilioService, tituloService, dispatcher, nil, logr)
	eliminacionService := service.NewEliminacionService(eliminacionRepo, documentoRepo, domicilioRepo, tituloRepo, dispatcher, nil, logr)

	var chatProvider llm.Provider
	if cfg.Chat.Enabled {
		provider, err := llm.NewVertexGemini(ctx, cfg.Chat.ProjectID, cfg.Chat.Location, cfg.Chat.Model)
		if err != nil {
			logr.Sugar().Warnw("chat provider unavailable, chat disabled", "error", err)
		} else {
			chatProvider = provider
			defer provider.Close() //nolint:errcheck
		}
	}
	chatService := service.NewChatService(chatRepo, chatProvider, personaRepo, legajoService, documentoRepo, nil, logr)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	router.Register(r, router.Deps{
		Auth:          handler.NewAuthHandler(authService),
		Personas:      handler.NewPersonaHandler(personaService),
		Documentos:    handler.NewDocumentoHandler(documentoService, eliminacionService),
		Domicilios:    handler.NewDomicilioHandler(domicilioService, eliminacionService),
		Titulos:       handler.NewTituloHandler(tituloService, eliminacionService),
		Legajo:        handler.NewLegajoHandler(legajoService, exportService),
		Registro:      handler.NewRegistroHandler(registroService),
		Archivos:      handler.NewArchivoHandler(archivoService),
		Eliminaciones: handler.NewEliminacionHandler(eliminacionService),
		Chat:          handler.NewChatHandler(chatService),
		AuthService:   authService,
		Metrics:       metrics,
		EnableDocs:    cfg.Env != config.EnvProduction,
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: r,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Sugar().Infow("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("graceful shutdown failed", "error", err)
	}

	if err := cacheRepo.Close(); err != nil {
		logr.Sugar().Warnw("failed to close redis client", "error", err)
	}
}
