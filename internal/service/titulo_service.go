package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/rrhh-digital/legajo-api/internal/dto"
	"github.com/rrhh-digital/legajo-api/internal/models"
	appErrors "github.com/rrhh-digital/legajo-api/pkg/errors"
)

type tituloRepository interface {
	List(ctx context.Context, filter models.TituloFilter) ([]models.Titulo, error)
	FindByID(ctx context.Context, id string) (*models.Titulo, error)
	Create(ctx context.Context, titulo *models.Titulo) error
	UpdateEstado(ctx context.Context, id string, estado models.EstadoVerificacion, observacion string) error
	Delete(ctx context.Context, id string) error
}

// TituloService handles qualification title use-cases.
type TituloService struct {
	repo      tituloRepository
	archivos  archivoLookup
	notifier  legajoNotifier
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTituloService constructs the titulo service.
func NewTituloService(repo tituloRepository, archivos archivoLookup, notifier legajoNotifier, validate *validator.Validate, logger *zap.Logger) *TituloService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TituloService{repo: repo, archivos: archivos, notifier: notifier, validator: validate, logger: logger}
}

// List returns titulos matching the filter.
func (s *TituloService) List(ctx context.Context, filter models.TituloFilter) ([]models.Titulo, error) {
	titulos, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list titulos")
	}
	return titulos, nil
}

// Get returns one titulo.
func (s *TituloService) Get(ctx context.Context, id string) (*models.Titulo, error) {
	titulo, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "titulo not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load titulo")
	}
	return titulo, nil
}

// Create registers a qualification title for a persona.
func (s *TituloService) Create(ctx context.Context, req dto.CreateTituloRequest, actor *models.JWTClaims) (*models.Titulo, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid titulo payload")
	}
	tipo := models.TipoTitulo(req.IDTipoTitulo)
	if !tipo.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown id_tipo_titulo")
	}

	var fechaEmision *time.Time
	if req.FechaEmision != "" {
		parsed, err := time.Parse("2006-01-02", req.FechaEmision)
		if err != nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, "fecha_emision must be YYYY-MM-DD")
		}
		fechaEmision = &parsed
	}

	if req.IDArchivo != nil && s.archivos != nil {
		if _, err := s.archivos.FindByID(ctx, *req.IDArchivo); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, appErrors.Clone(appErrors.ErrValidation, "referenced archivo does not exist")
			}
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to verify archivo")
		}
	}

	estado := models.VerificacionPendiente
	observacion := ""
	if req.Estado != "" && actor != nil && actor.Role.CanReviewVerification() {
		candidate := models.EstadoVerificacion(req.Estado)
		if !candidate.Valid() {
			return nil, appErrors.Clone(appErrors.ErrValidation, "unknown estado_verificacion")
		}
		if candidate.RequiresObservacion() && strings.TrimSpace(req.Observacion) == "" {
			return nil, appErrors.Clone(appErrors.ErrObservacionRequerida, "")
		}
		estado = candidate
		observacion = strings.TrimSpace(req.Observacion)
	}

	titulo := &models.Titulo{
		PersonaID:     req.PersonaID,
		IDTipoTitulo:  tipo,
		NombreTitulo:  req.NombreTitulo,
		Institucion:   req.Institucion,
		FechaEmision:  fechaEmision,
		MatriculaProf: req.MatriculaProf,
		IDArchivo:     req.IDArchivo,
		Estado:        estado,
		Observacion:   observacion,
	}
	if err := s.repo.Create(ctx, titulo); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create titulo")
	}
	s.notify(titulo.PersonaID)
	return titulo, nil
}

// ChangeEstado transitions a titulo's verification state with the same
// observacion rules as documents.
func (s *TituloService) ChangeEstado(ctx context.Context, id string, req dto.ChangeEstadoRequest) (*models.Titulo, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid estado payload")
	}
	estado := models.EstadoVerificacion(req.Estado)
	if !estado.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown estado_verificacion")
	}
	observacion := strings.TrimSpace(req.Observacion)
	if estado.RequiresObservacion() && observacion == "" {
		return nil, appErrors.Clone(appErrors.ErrObservacionRequerida, "")
	}

	titulo, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateEstado(ctx, id, estado, observacion); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "titulo not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update estado")
	}

	titulo.Estado = estado
	titulo.Observacion = observacion
	s.notify(titulo.PersonaID)
	return titulo, nil
}

// Delete removes a titulo. Direct-delete permission is required.
func (s *TituloService) Delete(ctx context.Context, personaID, id string, actor *models.JWTClaims) error {
	if actor == nil || !actor.Role.CanDeleteDirect() {
		return appErrors.Clone(appErrors.ErrForbidden, "deletion requires a solicitud de eliminacion")
	}

	titulo, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if titulo.PersonaID != personaID {
		return appErrors.Clone(appErrors.ErrNotFound, "titulo not found for persona")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "titulo not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete titulo")
	}
	s.notify(personaID)
	return nil
}

func (s *TituloService) notify(personaID string) {
	if s.notifier != nil {
		s.notifier.PersonaMutated(personaID)
	}
}
