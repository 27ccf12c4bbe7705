package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/rrhh-digital/legajo-api/internal/dto"
	"github.com/rrhh-digital/legajo-api/internal/models"
	appErrors "github.com/rrhh-digital/legajo-api/pkg/errors"
)

type registroDomicilios interface {
	CreateBarrio(ctx context.Context, localidadID string, req dto.CreateBarrioRequest) (*models.DomBarrio, error)
	Create(ctx context.Context, personaID string, req dto.CreateDomicilioRequest) (*models.Domicilio, error)
}

type registroTitulos interface {
	Create(ctx context.Context, req dto.CreateTituloRequest, actor *models.JWTClaims) (*models.Titulo, error)
}

// RegistroService finalizes the registration wizard for a persona. The steps
// run in sequence without a surrounding transaction: a failure aborts the
// remaining steps but already-created records stay.
type RegistroService struct {
	personas   legajoPersonaReader
	domicilios registroDomicilios
	titulos    registroTitulos
	notifier   legajoNotifier
	validator  *validator.Validate
	logger     *zap.Logger
}

// NewRegistroService constructs the registro service.
func NewRegistroService(personas legajoPersonaReader, domicilios registroDomicilios, titulos registroTitulos, notifier legajoNotifier, validate *validator.Validate, logger *zap.Logger) *RegistroService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RegistroService{
		personas:   personas,
		domicilios: domicilios,
		titulos:    titulos,
		notifier:   notifier,
		validator:  validate,
		logger:     logger,
	}
}

// Finalizar runs the wizard submission: barrio (optional), domicilio, titulo
// (optional). A titulo draft missing its type or name is silently skipped.
func (s *RegistroService) Finalizar(ctx context.Context, personaID string, req dto.RegistroRequest, actor *models.JWTClaims) (*dto.RegistroResult, error) {
	if _, err := s.personas.FindByID(ctx, personaID); err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "persona not found")
	}
	if err := validateDomicilioDraft(req.Domicilio); err != nil {
		return nil, err
	}

	result := &dto.RegistroResult{}

	barrioID := ""
	if req.Domicilio.BarrioNuevo != nil {
		nuevo := req.Domicilio.BarrioNuevo
		barrio, err := s.domicilios.CreateBarrio(ctx, nuevo.IDLocalidad, dto.CreateBarrioRequest{
			Nombre:       nuevo.Nombre,
			Manzana:      nuevo.Manzana,
			Casa:         nuevo.Casa,
			Departamento: nuevo.Departamento,
			Piso:         nuevo.Piso,
		})
		if err != nil {
			return nil, err
		}
		barrioID = barrio.ID
		result.BarrioID = barrio.ID
	} else {
		barrioID = *req.Domicilio.IDDomBarrio
	}

	domicilio, err := s.domicilios.Create(ctx, personaID, dto.CreateDomicilioRequest{
		IDDomBarrio: barrioID,
		Calle:       req.Domicilio.Calle,
		Altura:      req.Domicilio.Altura,
	})
	if err != nil {
		return result, err
	}
	result.Domicilio = domicilio

	if req.Titulo != nil {
		if req.Titulo.IDTipoTitulo == "" || req.Titulo.NombreTitulo == "" {
			result.TituloOmitido = true
		} else {
			titulo, err := s.titulos.Create(ctx, dto.CreateTituloRequest{
				PersonaID:     personaID,
				IDTipoTitulo:  req.Titulo.IDTipoTitulo,
				NombreTitulo:  req.Titulo.NombreTitulo,
				Institucion:   req.Titulo.Institucion,
				FechaEmision:  req.Titulo.FechaEmision,
				MatriculaProf: req.Titulo.MatriculaProf,
				IDArchivo:     req.Titulo.IDArchivo,
			}, actor)
			if err != nil {
				return result, err
			}
			result.Titulo = titulo
		}
	}

	if s.notifier != nil {
		s.notifier.PersonaMutated(personaID)
	}
	return result, nil
}

func validateDomicilioDraft(draft dto.DomicilioDraft) error {
	if draft.BarrioNuevo != nil {
		nuevo := draft.BarrioNuevo
		if nuevo.IDDepartamento == "" || nuevo.IDLocalidad == "" || nuevo.Nombre == "" {
			return appErrors.Clone(appErrors.ErrValidation, "barrio_nuevo requires id_departamento, id_localidad and nombre")
		}
	} else if draft.IDDomBarrio == nil || *draft.IDDomBarrio == "" {
		return appErrors.Clone(appErrors.ErrValidation, "domicilio requires id_dom_barrio or barrio_nuevo")
	}
	if draft.Calle == "" {
		return appErrors.Clone(appErrors.ErrValidation, "calle is required")
	}
	if draft.Altura <= 0 {
		return appErrors.Clone(appErrors.ErrValidation, "altura must be a positive number")
	}
	return nil
}
