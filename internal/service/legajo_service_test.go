package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rrhh-digital/legajo-api/internal/models"
	"github.com/rrhh-digital/legajo-api/pkg/config"
	appErrors "github.com/rrhh-digital/legajo-api/pkg/errors"
)

type mockLegajoRepo struct {
	estados map[string]models.LegajoEstado
}

func (m *mockLegajoRepo) FindByPersona(ctx context.Context, personaID string) (*models.LegajoEstado, error) {
	if e, ok := m.estados[personaID]; ok {
		copy := e
		return &copy, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockLegajoRepo) Upsert(ctx context.Context, estado *models.LegajoEstado) error {
	if m.estados == nil {
		m.estados = make(map[string]models.LegajoEstado)
	}
	m.estados[estado.PersonaID] = *estado
	return nil
}

func (m *mockLegajoRepo) UpdateCodigo(ctx context.Context, personaID string, codigo models.LegajoCodigo, observacion string) error {
	e, ok := m.estados[personaID]
	if !ok {
		return sql.ErrNoRows
	}
	e.Codigo = codigo
	e.Observacion = observacion
	m.estados[personaID] = e
	return nil
}

type mockPersonaReader struct {
	personas map[string]models.Persona
}

func (m *mockPersonaReader) FindByID(ctx context.Context, id string) (*models.Persona, error) {
	if p, ok := m.personas[id]; ok {
		copy := p
		return &copy, nil
	}
	return nil, sql.ErrNoRows
}

type mockDocumentoReader struct {
	documentos []models.PersonaDocumento
}

func (m *mockDocumentoReader) ListByPersona(ctx context.Context, filter models.DocumentoFilter) ([]models.PersonaDocumento, error) {
	return m.documentos, nil
}

type mockDomicilioCounter struct {
	count int
}

func (m *mockDomicilioCounter) CountByPersona(ctx context.Context, personaID string) (int, error) {
	return m.count, nil
}

type mockTituloReader struct {
	titulos []models.Titulo
}

func (m *mockTituloReader) List(ctx context.Context, filter models.TituloFilter) ([]models.Titulo, error) {
	return m.titulos, nil
}

type mockCache struct {
	values      map[string][]byte
	invalidated []string
}

func (m *mockCache) Get(ctx context.Context, key string, dest interface{}) error {
	return appErrors.ErrCacheMiss
}

func (m *mockCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return nil
}

func (m *mockCache) DeleteByPattern(ctx context.Context, pattern string) error {
	m.invalidated = append(m.invalidated, pattern)
	return nil
}

func completePersona() models.Persona {
	return models.Persona{
		ID:              "p1",
		Nombre:          "Ana",
		Apellido:        "Gomez",
		FechaNacimiento: time.Date(1990, 3, 14, 0, 0, 0, 0, time.UTC),
		Sexo:            "F",
		Activo:          true,
	}
}

func fullDocumentoSet(estado models.EstadoVerificacion) []models.PersonaDocumento {
	docs := make([]models.PersonaDocumento, 0, len(models.TiposDocumentoRequeridos))
	for _, tipo := range models.TiposDocumentoRequeridos {
		docs = append(docs, models.PersonaDocumento{
			ID:        "doc-" + string(tipo),
			PersonaID: "p1",
			TipoDoc:   tipo,
			Estado:    estado,
			Vigente:   true,
		})
	}
	return docs
}

func newLegajoFixture(documentos []models.PersonaDocumento, domicilios int, titulos []models.Titulo) (*LegajoService, *mockLegajoRepo) {
	repo := &mockLegajoRepo{estados: make(map[string]models.LegajoEstado)}
	svc := NewLegajoService(
		repo,
		&mockPersonaReader{personas: map[string]models.Persona{"p1": completePersona()}},
		&mockDocumentoReader{documentos: documentos},
		&mockDomicilioCounter{count: domicilios},
		&mockTituloReader{titulos: titulos},
		&mockCache{},
		config.LegajoConfig{CacheTTL: time.Minute},
		validator.New(),
		zap.NewNop(),
	)
	return svc, repo
}

func TestLegajoRecalcularEmptyPersonaIsIncompleto(t *testing.T) {
	svc, _ := newLegajoFixture(nil, 0, nil)

	view, err := svc.Recalcular(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, models.LegajoIncompleto, view.Codigo)
	assert.False(t, *view.Checklist.OkDocs)
	assert.False(t, *view.Checklist.OkDomicilio)
	assert.False(t, *view.Checklist.OkTitulos)
	assert.True(t, *view.Checklist.OkPersona)
}

func TestLegajoRecalcularPendienteWhenDocsAwaitReview(t *testing.T) {
	titulos := []models.Titulo{{ID: "t1", PersonaID: "p1", Estado: models.VerificacionAprobado}}
	docs := fullDocumentoSet(models.VerificacionAprobado)
	// one required doc still pending review
	docs[2].Estado = models.VerificacionPendiente

	svc, _ := newLegajoFixture(docs, 1, titulos)

	view, err := svc.Recalcular(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, models.LegajoPendiente, view.Codigo)
}

func TestLegajoRecalcularRevisionBeatsPendiente(t *testing.T) {
	titulos := []models.Titulo{{ID: "t1", PersonaID: "p1", Estado: models.VerificacionAprobado}}
	docs := fullDocumentoSet(models.VerificacionAprobado)
	docs[2].Estado = models.VerificacionPendiente
	docs[3].Estado = models.VerificacionObservado

	svc, _ := newLegajoFixture(docs, 1, titulos)

	view, err := svc.Recalcular(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, models.LegajoRevision, view.Codigo)
}

func TestLegajoRecalcularValidado(t *testing.T) {
	titulos := []models.Titulo{{ID: "t1", PersonaID: "p1", Estado: models.VerificacionAprobado}}
	svc, _ := newLegajoFixture(fullDocumentoSet(models.VerificacionAprobado), 1, titulos)

	view, err := svc.Recalcular(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, models.LegajoValidado, view.Codigo)
	assert.Equal(t, 100, view.Completitud)
}

func TestLegajoRecalcularBloqueadoIsSticky(t *testing.T) {
	titulos := []models.Titulo{{ID: "t1", PersonaID: "p1", Estado: models.VerificacionAprobado}}
	svc, repo := newLegajoFixture(fullDocumentoSet(models.VerificacionAprobado), 1, titulos)
	repo.estados["p1"] = models.LegajoEstado{PersonaID: "p1", Codigo: models.LegajoBloqueado, Observacion: "bloqueo manual"}

	view, err := svc.Recalcular(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, models.LegajoBloqueado, view.Codigo)
}

func TestLegajoSetEstadoOverride(t *testing.T) {
	svc, repo := newLegajoFixture(nil, 0, nil)

	view, err := svc.SetEstado(context.Background(), "p1", models.LegajoBloqueado, "sumario abierto")
	require.NoError(t, err)
	assert.Equal(t, models.LegajoBloqueado, view.Codigo)
	assert.Equal(t, "sumario abierto", repo.estados["p1"].Observacion)
}

func TestLegajoSetEstadoRejectsUnknownCodigo(t *testing.T) {
	svc, _ := newLegajoFixture(nil, 0, nil)

	_, err := svc.SetEstado(context.Background(), "p1", models.LegajoCodigo("ARCHIVADO"), "")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestLegajoGetEstadoRecalculatesOnFirstRead(t *testing.T) {
	svc, repo := newLegajoFixture(nil, 0, nil)

	view, err := svc.GetEstado(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, models.LegajoIncompleto, view.Codigo)
	_, persisted := repo.estados["p1"]
	assert.True(t, persisted)
}

func TestLegajoChecklistCompletitud(t *testing.T) {
	yes := true
	no := false

	empty := models.LegajoChecklist{}
	assert.Equal(t, 0, empty.Completitud())

	partial := models.LegajoChecklist{OkPersona: &yes, OkDocs: &no, OkDomicilio: &yes}
	assert.Equal(t, 67, partial.Completitud())

	full := models.LegajoChecklist{OkPersona: &yes, OkIdent: &yes, OkDocs: &yes, OkDomicilio: &yes, OkTitulos: &yes}
	assert.Equal(t, 100, full.Completitud())
}
