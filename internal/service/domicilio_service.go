package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/rrhh-digital/legajo-api/internal/dto"
	"github.com/rrhh-digital/legajo-api/internal/models"
	appErrors "github.com/rrhh-digital/legajo-api/pkg/errors"
)

type domicilioRepository interface {
	ListDepartamentos(ctx context.Context) ([]models.DomDepartamento, error)
	ListLocalidades(ctx context.Context, departamentoID string) ([]models.DomLocalidad, error)
	FindLocalidadByID(ctx context.Context, id string) (*models.DomLocalidad, error)
	FindBarrioByID(ctx context.Context, id string) (*models.DomBarrio, error)
	CreateBarrio(ctx context.Context, barrio *models.DomBarrio) error
	ListByPersona(ctx context.Context, personaID string) ([]models.DomicilioDetail, error)
	FindByID(ctx context.Context, id string) (*models.Domicilio, error)
	Create(ctx context.Context, domicilio *models.Domicilio) error
	Delete(ctx context.Context, id string) error
}

// DomicilioService handles address and geography use-cases.
type DomicilioService struct {
	repo      domicilioRepository
	notifier  legajoNotifier
	validator *validator.Validate
	logger    *zap.Logger
}

// NewDomicilioService constructs the domicilio service.
func NewDomicilioService(repo domicilioRepository, notifier legajoNotifier, validate *validator.Validate, logger *zap.Logger) *DomicilioService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DomicilioService{repo: repo, notifier: notifier, validator: validate, logger: logger}
}

// ListDepartamentos returns the address geography roots.
func (s *DomicilioService) ListDepartamentos(ctx context.Context) ([]models.DomDepartamento, error) {
	departamentos, err := s.repo.ListDepartamentos(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list departamentos")
	}
	return departamentos, nil
}

// ListLocalidades returns localidades, optionally scoped to a departamento.
func (s *DomicilioService) ListLocalidades(ctx context.Context, departamentoID string) ([]models.DomLocalidad, error) {
	localidades, err := s.repo.ListLocalidades(ctx, departamentoID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list localidades")
	}
	return localidades, nil
}

// CreateBarrio registers a barrio under an existing localidad.
func (s *DomicilioService) CreateBarrio(ctx context.Context, localidadID string, req dto.CreateBarrioRequest) (*models.DomBarrio, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid barrio payload")
	}
	if _, err := s.repo.FindLocalidadByID(ctx, localidadID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "localidad not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load localidad")
	}

	barrio := &models.DomBarrio{
		IDLocalidad:  localidadID,
		Nombre:       req.Nombre,
		Manzana:      req.Manzana,
		Casa:         req.Casa,
		Departamento: req.Departamento,
		Piso:         req.Piso,
	}
	if err := s.repo.CreateBarrio(ctx, barrio); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create barrio")
	}
	return barrio, nil
}

// List returns the addresses of a persona with their geography chain.
func (s *DomicilioService) List(ctx context.Context, personaID string) ([]models.DomicilioDetail, error) {
	domicilios, err := s.repo.ListByPersona(ctx, personaID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list domicilios")
	}
	return domicilios, nil
}

// Create registers an address for a persona. Altura must be a positive
// street number and the barrio must exist.
func (s *DomicilioService) Create(ctx context.Context, personaID string, req dto.CreateDomicilioRequest) (*models.Domicilio, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid domicilio payload")
	}
	if req.Altura <= 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "altura must be a positive number")
	}
	if _, err := s.repo.FindBarrioByID(ctx, req.IDDomBarrio); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "barrio not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load barrio")
	}

	domicilio := &models.Domicilio{
		PersonaID:   personaID,
		IDDomBarrio: req.IDDomBarrio,
		Calle:       req.Calle,
		Altura:      req.Altura,
	}
	if err := s.repo.Create(ctx, domicilio); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create domicilio")
	}
	s.notify(personaID)
	return domicilio, nil
}

// Delete removes an address. Direct-delete permission is required.
func (s *DomicilioService) Delete(ctx context.Context, personaID, id string, actor *models.JWTClaims) error {
	if actor == nil || !actor.Role.CanDeleteDirect() {
		return appErrors.Clone(appErrors.ErrForbidden, "deletion requires a solicitud de eliminacion")
	}

	domicilio, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "domicilio not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load domicilio")
	}
	if domicilio.PersonaID != personaID {
		return appErrors.Clone(appErrors.ErrNotFound, "domicilio not found for persona")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "domicilio not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete domicilio")
	}
	s.notify(personaID)
	return nil
}

func (s *DomicilioService) notify(personaID string) {
	if s.notifier != nil {
		s.notifier.PersonaMutated(personaID)
	}
}
