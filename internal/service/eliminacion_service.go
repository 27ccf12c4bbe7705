package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/rrhh-digital/legajo-api/internal/dto"
	"github.com/rrhh-digital/legajo-api/internal/models"
	appErrors "github.com/rrhh-digital/legajo-api/pkg/errors"
)

const maxMotivoLength = 300

type eliminacionRepository interface {
	Create(ctx context.Context, solicitud *models.EliminacionSolicitud) error
	FindByID(ctx context.Context, id string) (*models.EliminacionSolicitud, error)
	FindPendingByObjetivo(ctx context.Context, tipo models.EliminacionTipo, objetivoID string) (*models.EliminacionSolicitud, error)
	List(ctx context.Context, filter models.EliminacionFilter) ([]models.EliminacionSolicitud, error)
	Review(ctx context.Context, id string, estado models.EliminacionEstado, revisadoPor string, nota *string) error
}

// eliminacionTarget resolves and deletes one kind of target record.
type eliminacionTarget struct {
	find   func(ctx context.Context, id string) (personaID string, err error)
	delete func(ctx context.Context, id string) error
}

type eliminacionDocumentoRepo interface {
	FindByID(ctx context.Context, id string) (*models.PersonaDocumento, error)
	Delete(ctx context.Context, id string) error
}

type eliminacionDomicilioRepo interface {
	FindByID(ctx context.Context, id string) (*models.Domicilio, error)
	Delete(ctx context.Context, id string) error
}

type eliminacionTituloRepo interface {
	FindByID(ctx context.Context, id string) (*models.Titulo, error)
	Delete(ctx context.Context, id string) error
}

// EliminacionService manages the deletion-request workflow.
type EliminacionService struct {
	repo      eliminacionRepository
	targets   map[models.EliminacionTipo]eliminacionTarget
	notifier  legajoNotifier
	validator *validator.Validate
	logger    *zap.Logger
}

// NewEliminacionService constructs the eliminacion service with an applier
// per supported target kind.
func NewEliminacionService(repo eliminacionRepository, documentos eliminacionDocumentoRepo, domicilios eliminacionDomicilioRepo, titulos eliminacionTituloRepo, notifier legajoNotifier, validate *validator.Validate, logger *zap.Logger) *EliminacionService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	targets := map[models.EliminacionTipo]eliminacionTarget{
		models.EliminacionDocumento: {
			find: func(ctx context.Context, id string) (string, error) {
				documento, err := documentos.FindByID(ctx, id)
				if err != nil {
					return "", err
				}
				return documento.PersonaID, nil
			},
			delete: documentos.Delete,
		},
		models.EliminacionDomicilio: {
			find: func(ctx context.Context, id string) (string, error) {
				domicilio, err := domicilios.FindByID(ctx, id)
				if err != nil {
					return "", err
				}
				return domicilio.PersonaID, nil
			},
			delete: domicilios.Delete,
		},
		models.EliminacionTitulo: {
			find: func(ctx context.Context, id string) (string, error) {
				titulo, err := titulos.FindByID(ctx, id)
				if err != nil {
					return "", err
				}
				return titulo.PersonaID, nil
			},
			delete: titulos.Delete,
		},
	}

	return &EliminacionService{
		repo:      repo,
		targets:   targets,
		notifier:  notifier,
		validator: validate,
		logger:    logger,
	}
}

// Solicitar raises a deletion request for the target record. The record
// itself is untouched until a reviewer approves.
func (s *EliminacionService) Solicitar(ctx context.Context, tipo models.EliminacionTipo, objetivoID string, req dto.SolicitarEliminacionRequest, actor *models.JWTClaims) (*models.EliminacionSolicitud, error) {
	target, ok := s.targets[tipo]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported eliminacion tipo")
	}
	if req.Motivo != nil && len(strings.TrimSpace(*req.Motivo)) > maxMotivoLength {
		return nil, appErrors.Clone(appErrors.ErrValidation, "motivo must be 300 characters or less")
	}
	if actor == nil {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "")
	}

	personaID, err := target.find(ctx, objetivoID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "target record not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load target record")
	}

	// non-staff actors can only raise solicitudes against their own legajo
	if !actor.Role.CanReviewVerification() && actor.PersonaID != personaID {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "solicitud target belongs to another persona")
	}

	if existing, err := s.repo.FindPendingByObjetivo(ctx, tipo, objetivoID); err == nil && existing != nil {
		return nil, appErrors.Clone(appErrors.ErrConflict, "a pending solicitud already exists for this record")
	} else if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check pending solicitudes")
	}

	solicitud := &models.EliminacionSolicitud{
		Tipo:          tipo,
		ObjetivoID:    objetivoID,
		PersonaID:     personaID,
		Motivo:        req.Motivo,
		Estado:        models.EliminacionPendiente,
		SolicitadoPor: actor.UserID,
	}
	if err := s.repo.Create(ctx, solicitud); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create solicitud")
	}
	return solicitud, nil
}

// List returns deletion requests. EMPLEADO actors only see their own.
func (s *EliminacionService) List(ctx context.Context, query dto.EliminacionQuery, actor *models.JWTClaims) ([]models.EliminacionSolicitud, error) {
	filter := models.EliminacionFilter{Estado: query.Estado, Tipo: query.Tipo}
	if actor != nil && !actor.Role.CanReviewVerification() {
		filter.SolicitadoPor = actor.UserID
	}
	solicitudes, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list solicitudes")
	}
	return solicitudes, nil
}

// Review settles a pending request. Approval applies the deletion through
// the target applier; rejection records the decision only. A request already
// settled cannot be reviewed again.
func (s *EliminacionService) Review(ctx context.Context, id string, req dto.ReviewEliminacionRequest, actor *models.JWTClaims) (*models.EliminacionSolicitud, error) {
	if req.Estado != models.EliminacionAprobada && req.Estado != models.EliminacionRechazada {
		return nil, appErrors.Clone(appErrors.ErrValidation, "estado must be APROBADA or RECHAZADA")
	}
	if actor == nil {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "")
	}

	solicitud, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "solicitud not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load solicitud")
	}
	if solicitud.Estado != models.EliminacionPendiente {
		return nil, appErrors.Clone(appErrors.ErrConflict, "solicitud has already been reviewed")
	}

	var nota *string
	if req.Nota != "" {
		nota = &req.Nota
	}
	if err := s.repo.Review(ctx, id, req.Estado, actor.UserID, nota); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "solicitud has already been reviewed")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to review solicitud")
	}

	if req.Estado == models.EliminacionAprobada {
		target := s.targets[solicitud.Tipo]
		if err := target.delete(ctx, solicitud.ObjetivoID); err != nil && !errors.Is(err, sql.ErrNoRows) {
			s.logger.Error("failed to apply approved eliminacion",
				zap.String("solicitud_id", id),
				zap.String("tipo", string(solicitud.Tipo)),
				zap.String("objetivo_id", solicitud.ObjetivoID),
				zap.Error(err))
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to apply eliminacion")
		}
		if s.notifier != nil {
			s.notifier.PersonaMutated(solicitud.PersonaID)
		}
	}

	reviewed, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to reload solicitud")
	}
	return reviewed, nil
}
