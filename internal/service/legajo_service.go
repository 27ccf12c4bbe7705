package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/rrhh-digital/legajo-api/internal/models"
	"github.com/rrhh-digital/legajo-api/pkg/config"
	appErrors "github.com/rrhh-digital/legajo-api/pkg/errors"
)

type legajoRepository interface {
	FindByPersona(ctx context.Context, personaID string) (*models.LegajoEstado, error)
	Upsert(ctx context.Context, estado *models.LegajoEstado) error
	UpdateCodigo(ctx context.Context, personaID string, codigo models.LegajoCodigo, observacion string) error
}

type legajoPersonaReader interface {
	FindByID(ctx context.Context, id string) (*models.Persona, error)
}

type legajoDocumentoReader interface {
	ListByPersona(ctx context.Context, filter models.DocumentoFilter) ([]models.PersonaDocumento, error)
}

type legajoDomicilioReader interface {
	CountByPersona(ctx context.Context, personaID string) (int, error)
}

type legajoTituloReader interface {
	List(ctx context.Context, filter models.TituloFilter) ([]models.Titulo, error)
}

type legajoCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

// LegajoService maintains the aggregate dossier state for personas.
type LegajoService struct {
	repo       legajoRepository
	personas   legajoPersonaReader
	documentos legajoDocumentoReader
	domicilios legajoDomicilioReader
	titulos    legajoTituloReader
	cache      legajoCache
	cacheTTL   time.Duration
	validator  *validator.Validate
	logger     *zap.Logger
}

// NewLegajoService constructs the legajo service.
func NewLegajoService(repo legajoRepository, personas legajoPersonaReader, documentos legajoDocumentoReader, domicilios legajoDomicilioReader, titulos legajoTituloReader, cache legajoCache, cfg config.LegajoConfig, validate *validator.Validate, logger *zap.Logger) *LegajoService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &LegajoService{
		repo:       repo,
		personas:   personas,
		documentos: documentos,
		domicilios: domicilios,
		titulos:    titulos,
		cache:      cache,
		cacheTTL:   ttl,
		validator:  validate,
		logger:     logger,
	}
}

func legajoCacheKey(personaID string) string {
	return fmt.Sprintf("legajo:estado:%s", personaID)
}

// Recalcular recomputes the checklist and derives the aggregate code from the
// persona's current rows. A manual BLOQUEADO is sticky and survives
// recalculation; only the checklist is refreshed in that case.
func (s *LegajoService) Recalcular(ctx context.Context, personaID string) (*models.LegajoEstadoView, error) {
	persona, err := s.personas.FindByID(ctx, personaID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "persona not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load persona")
	}

	documentos, err := s.documentos.ListByPersona(ctx, models.DocumentoFilter{PersonaID: personaID})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load documentos")
	}
	domicilioCount, err := s.domicilios.CountByPersona(ctx, personaID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count domicilios")
	}
	titulos, err := s.titulos.List(ctx, models.TituloFilter{PersonaID: personaID})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load titulos")
	}

	checklist := buildChecklist(persona, documentos, domicilioCount, titulos)
	codigo := deriveCodigo(checklist, documentos, titulos)

	previous, err := s.repo.FindByPersona(ctx, personaID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load legajo estado")
	}
	observacion := ""
	if previous != nil {
		observacion = previous.Observacion
		if previous.Codigo == models.LegajoBloqueado {
			codigo = models.LegajoBloqueado
		}
	}

	estado := &models.LegajoEstado{
		PersonaID:     personaID,
		Codigo:        codigo,
		OkPersona:     checklist.OkPersona,
		OkIdent:       checklist.OkIdent,
		OkDocs:        checklist.OkDocs,
		OkDomicilio:   checklist.OkDomicilio,
		OkTitulos:     checklist.OkTitulos,
		Observacion:   observacion,
		ActualizadoEn: time.Now().UTC(),
	}
	if err := s.repo.Upsert(ctx, estado); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist legajo estado")
	}
	s.invalidate(ctx, personaID)

	view := viewFromEstado(estado)
	return view, nil
}

// GetEstado returns the aggregate view, read-through cached. A persona that
// was never evaluated gets recalculated on first read.
func (s *LegajoService) GetEstado(ctx context.Context, personaID string) (*models.LegajoEstadoView, error) {
	key := legajoCacheKey(personaID)
	if s.cache != nil {
		var cached models.LegajoEstadoView
		if err := s.cache.Get(ctx, key, &cached); err == nil {
			return &cached, nil
		} else if !errors.Is(err, appErrors.ErrCacheMiss) {
			s.logger.Warn("legajo cache read failed", zap.String("persona_id", personaID), zap.Error(err))
		}
	}

	estado, err := s.repo.FindByPersona(ctx, personaID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return s.Recalcular(ctx, personaID)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load legajo estado")
	}

	view := viewFromEstado(estado)
	if s.cache != nil {
		if err := s.cache.Set(ctx, key, view, s.cacheTTL); err != nil {
			s.logger.Warn("legajo cache write failed", zap.String("persona_id", personaID), zap.Error(err))
		}
	}
	return view, nil
}

// SetEstado manually overrides the aggregate code. Any code can be set; the
// checklist from the last recalculation is preserved.
func (s *LegajoService) SetEstado(ctx context.Context, personaID string, codigo models.LegajoCodigo, observacion string) (*models.LegajoEstadoView, error) {
	if !codigo.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown legajo codigo")
	}

	if err := s.repo.UpdateCodigo(ctx, personaID, codigo, observacion); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// No evaluation yet: seed the row, then apply the override.
			if _, recalcErr := s.Recalcular(ctx, personaID); recalcErr != nil {
				return nil, recalcErr
			}
			if err := s.repo.UpdateCodigo(ctx, personaID, codigo, observacion); err != nil {
				return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to set legajo estado")
			}
		} else {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to set legajo estado")
		}
	}
	s.invalidate(ctx, personaID)

	estado, err := s.repo.FindByPersona(ctx, personaID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to reload legajo estado")
	}
	return viewFromEstado(estado), nil
}

func (s *LegajoService) invalidate(ctx context.Context, personaID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteByPattern(ctx, legajoCacheKey(personaID)); err != nil {
		s.logger.Warn("legajo cache invalidation failed", zap.String("persona_id", personaID), zap.Error(err))
	}
}

func viewFromEstado(estado *models.LegajoEstado) *models.LegajoEstadoView {
	checklist := estado.Checklist()
	return &models.LegajoEstadoView{
		Codigo:      estado.Codigo,
		Nombre:      estado.Codigo.Nombre(),
		Checklist:   checklist,
		Completitud: checklist.Completitud(),
	}
}

func buildChecklist(persona *models.Persona, documentos []models.PersonaDocumento, domicilioCount int, titulos []models.Titulo) models.LegajoChecklist {
	okPersona := persona.Nombre != "" && persona.Apellido != "" && !persona.FechaNacimiento.IsZero() && persona.Sexo != ""

	byTipo := make(map[models.TipoDocumento]bool, len(documentos))
	dniOK := false
	cuilOK := false
	for _, d := range documentos {
		if d.Vigente {
			byTipo[d.TipoDoc] = true
		}
		if d.Vigente && d.Estado == models.VerificacionAprobado {
			switch d.TipoDoc {
			case models.DocDNI:
				dniOK = true
			case models.DocCUIL:
				cuilOK = true
			}
		}
	}
	okIdent := dniOK && cuilOK

	okDocs := true
	for _, tipo := range models.TiposDocumentoRequeridos {
		if !byTipo[tipo] {
			okDocs = false
			break
		}
	}

	okDomicilio := domicilioCount > 0

	okTitulos := false
	for _, t := range titulos {
		if t.Estado != models.VerificacionRechazado {
			okTitulos = true
			break
		}
	}

	return models.LegajoChecklist{
		OkPersona:   &okPersona,
		OkIdent:     &okIdent,
		OkDocs:      &okDocs,
		OkDomicilio: &okDomicilio,
		OkTitulos:   &okTitulos,
	}
}

func deriveCodigo(checklist models.LegajoChecklist, documentos []models.PersonaDocumento, titulos []models.Titulo) models.LegajoCodigo {
	for _, flag := range []*bool{checklist.OkPersona, checklist.OkIdent, checklist.OkDocs, checklist.OkDomicilio, checklist.OkTitulos} {
		if flag != nil && !*flag {
			return models.LegajoIncompleto
		}
	}

	revision := false
	pendiente := false
	for _, d := range documentos {
		switch d.Estado {
		case models.VerificacionRechazado, models.VerificacionObservado:
			revision = true
		case models.VerificacionPendiente:
			pendiente = true
		}
	}
	for _, t := range titulos {
		switch t.Estado {
		case models.VerificacionRechazado, models.VerificacionObservado:
			revision = true
		case models.VerificacionPendiente:
			pendiente = true
		}
	}

	switch {
	case revision:
		return models.LegajoRevision
	case pendiente:
		return models.LegajoPendiente
	default:
		return models.LegajoValidado
	}
}
