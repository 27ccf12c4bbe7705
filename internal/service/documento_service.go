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

type documentoRepository interface {
	ListByPersona(ctx context.Context, filter models.DocumentoFilter) ([]models.PersonaDocumento, error)
	FindByID(ctx context.Context, id string) (*models.PersonaDocumento, error)
	Create(ctx context.Context, documento *models.PersonaDocumento) error
	UpdateEstado(ctx context.Context, id string, estado models.EstadoVerificacion, observacion string) error
	Delete(ctx context.Context, id string) error
}

type archivoLookup interface {
	FindByID(ctx context.Context, id string) (*models.Archivo, error)
}

// DocumentoService handles persona document use-cases.
type DocumentoService struct {
	repo      documentoRepository
	archivos  archivoLookup
	notifier  legajoNotifier
	validator *validator.Validate
	logger    *zap.Logger
}

// NewDocumentoService constructs the documento service.
func NewDocumentoService(repo documentoRepository, archivos archivoLookup, notifier legajoNotifier, validate *validator.Validate, logger *zap.Logger) *DocumentoService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DocumentoService{repo: repo, archivos: archivos, notifier: notifier, validator: validate, logger: logger}
}

// List returns the documents of a persona.
func (s *DocumentoService) List(ctx context.Context, filter models.DocumentoFilter) ([]models.PersonaDocumento, error) {
	documentos, err := s.repo.ListByPersona(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list documentos")
	}
	return documentos, nil
}

// Get returns one documento.
func (s *DocumentoService) Get(ctx context.Context, id string) (*models.PersonaDocumento, error) {
	documento, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "documento not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load documento")
	}
	return documento, nil
}

// Create registers a document for a persona. New documents start in
// PENDIENTE unless the actor may review verifications and provided a state.
func (s *DocumentoService) Create(ctx context.Context, personaID string, req dto.CreateDocumentoRequest, actor *models.JWTClaims) (*models.PersonaDocumento, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid documento payload")
	}
	tipo := models.TipoDocumento(req.TipoDoc)
	if !tipo.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown tipo_doc")
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

	if req.IDArchivo != nil && s.archivos != nil {
		if _, err := s.archivos.FindByID(ctx, *req.IDArchivo); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, appErrors.Clone(appErrors.ErrValidation, "referenced archivo does not exist")
			}
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to verify archivo")
		}
	}

	vigente := true
	if req.Vigente != nil {
		vigente = *req.Vigente
	}

	documento := &models.PersonaDocumento{
		PersonaID:   personaID,
		TipoDoc:     tipo,
		IDArchivo:   req.IDArchivo,
		Estado:      estado,
		Vigente:     vigente,
		Observacion: observacion,
	}
	if err := s.repo.Create(ctx, documento); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create documento")
	}
	s.notify(personaID)
	return documento, nil
}

// ChangeEstado transitions a document's verification state. Any state can
// move to any other; RECHAZADO and OBSERVADO require an observacion. The new
// state is persisted before recalculation is triggered.
func (s *DocumentoService) ChangeEstado(ctx context.Context, id string, req dto.ChangeEstadoRequest) (*models.PersonaDocumento, error) {
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

	documento, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateEstado(ctx, id, estado, observacion); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "documento not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update estado")
	}

	documento.Estado = estado
	documento.Observacion = observacion
	s.notify(documento.PersonaID)
	return documento, nil
}

// Delete removes a document. Only roles with direct-delete permission may do
// this; everyone else must raise a deletion request.
func (s *DocumentoService) Delete(ctx context.Context, personaID, id string, actor *models.JWTClaims) error {
	if actor == nil || !actor.Role.CanDeleteDirect() {
		return appErrors.Clone(appErrors.ErrForbidden, "deletion requires a solicitud de eliminacion")
	}

	documento, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if documento.PersonaID != personaID {
		return appErrors.Clone(appErrors.ErrNotFound, "documento not found for persona")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "documento not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete documento")
	}
	s.notify(personaID)
	return nil
}

func (s *DocumentoService) notify(personaID string) {
	if s.notifier != nil {
		s.notifier.PersonaMutated(personaID)
	}
}
