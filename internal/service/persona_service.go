package service

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/rrhh-digital/legajo-api/internal/models"
	appErrors "github.com/rrhh-digital/legajo-api/pkg/errors"
)

// telefonoPattern accepts an optional leading + followed by 7 to 15 digits.
var telefonoPattern = regexp.MustCompile(`^\+?\d{7,15}$`)

type personaRepository interface {
	List(ctx context.Context, filter models.PersonaFilter) ([]models.Persona, int, error)
	FindByID(ctx context.Context, id string) (*models.Persona, error)
	Create(ctx context.Context, persona *models.Persona) error
	Update(ctx context.Context, persona *models.Persona) error
	Deactivate(ctx context.Context, id string) error
}

// CreatePersonaRequest holds payload for registering personas.
type CreatePersonaRequest struct {
	Nombre          string    `json:"nombre" validate:"required"`
	Apellido        string    `json:"apellido" validate:"required"`
	FechaNacimiento time.Time `json:"fecha_nacimiento" validate:"required"`
	Sexo            string    `json:"sexo" validate:"required,oneof=F M X"`
	Telefono        string    `json:"telefono"`
}

// UpdatePersonaRequest holds payload for updating personas. Only supplied
// fields change.
type UpdatePersonaRequest struct {
	Nombre          *string    `json:"nombre,omitempty"`
	Apellido        *string    `json:"apellido,omitempty"`
	FechaNacimiento *time.Time `json:"fecha_nacimiento,omitempty"`
	Sexo            *string    `json:"sexo,omitempty" validate:"omitempty,oneof=F M X"`
	Telefono        *string    `json:"telefono,omitempty"`
	Activo          *bool      `json:"activo,omitempty"`
}

// PersonaService handles persona use-cases.
type PersonaService struct {
	repo      personaRepository
	notifier  legajoNotifier
	validator *validator.Validate
	logger    *zap.Logger
}

// NewPersonaService constructs the persona service.
func NewPersonaService(repo personaRepository, notifier legajoNotifier, validate *validator.Validate, logger *zap.Logger) *PersonaService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PersonaService{repo: repo, notifier: notifier, validator: validate, logger: logger}
}

// List returns personas and pagination metadata.
func (s *PersonaService) List(ctx context.Context, filter models.PersonaFilter) ([]models.Persona, *models.Pagination, error) {
	personas, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list personas")
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = 20
	}
	pagination := &models.Pagination{Page: page, PageSize: size, TotalCount: total}
	return personas, pagination, nil
}

// Get returns one persona.
func (s *PersonaService) Get(ctx context.Context, id string) (*models.Persona, error) {
	persona, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "persona not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load persona")
	}
	return persona, nil
}

// Create registers a new persona.
func (s *PersonaService) Create(ctx context.Context, req CreatePersonaRequest) (*models.Persona, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid persona payload")
	}
	if req.Telefono != "" && !telefonoPattern.MatchString(req.Telefono) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "telefono must be 7 to 15 digits with optional leading +")
	}

	persona := &models.Persona{
		Nombre:          req.Nombre,
		Apellido:        req.Apellido,
		FechaNacimiento: req.FechaNacimiento,
		Sexo:            req.Sexo,
		Telefono:        req.Telefono,
		Activo:          true,
	}
	if err := s.repo.Create(ctx, persona); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create persona")
	}
	s.notify(persona.ID)
	return persona, nil
}

// Update modifies an existing persona.
func (s *PersonaService) Update(ctx context.Context, id string, req UpdatePersonaRequest) (*models.Persona, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid persona payload")
	}
	if req.Telefono != nil && *req.Telefono != "" && !telefonoPattern.MatchString(*req.Telefono) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "telefono must be 7 to 15 digits with optional leading +")
	}
	if req.Nombre != nil && *req.Nombre == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "nombre must not be empty")
	}
	if req.Apellido != nil && *req.Apellido == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "apellido must not be empty")
	}

	persona, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "persona not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load persona")
	}

	if req.Nombre != nil {
		persona.Nombre = *req.Nombre
	}
	if req.Apellido != nil {
		persona.Apellido = *req.Apellido
	}
	if req.FechaNacimiento != nil {
		persona.FechaNacimiento = *req.FechaNacimiento
	}
	if req.Sexo != nil {
		persona.Sexo = *req.Sexo
	}
	if req.Telefono != nil {
		persona.Telefono = *req.Telefono
	}
	if req.Activo != nil {
		persona.Activo = *req.Activo
	}

	if err := s.repo.Update(ctx, persona); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update persona")
	}
	s.notify(persona.ID)
	return persona, nil
}

// Deactivate marks a persona inactive. Persona rows are never hard-deleted.
func (s *PersonaService) Deactivate(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Deactivate(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to deactivate persona")
	}
	s.notify(id)
	return nil
}

func (s *PersonaService) notify(personaID string) {
	if s.notifier != nil {
		s.notifier.PersonaMutated(personaID)
	}
}
