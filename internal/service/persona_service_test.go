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
	appErrors "github.com/rrhh-digital/legajo-api/pkg/errors"
)

type mockPersonaRepo struct {
	personas    map[string]models.Persona
	deactivated []string
	lastFilter  models.PersonaFilter
}

func (m *mockPersonaRepo) List(ctx context.Context, filter models.PersonaFilter) ([]models.Persona, int, error) {
	m.lastFilter = filter
	var out []models.Persona
	for _, p := range m.personas {
		out = append(out, p)
	}
	return out, len(out), nil
}

func (m *mockPersonaRepo) FindByID(ctx context.Context, id string) (*models.Persona, error) {
	if p, ok := m.personas[id]; ok {
		copy := p
		return &copy, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockPersonaRepo) Create(ctx context.Context, persona *models.Persona) error {
	if persona.ID == "" {
		persona.ID = "p-new"
	}
	if m.personas == nil {
		m.personas = make(map[string]models.Persona)
	}
	m.personas[persona.ID] = *persona
	return nil
}

func (m *mockPersonaRepo) Update(ctx context.Context, persona *models.Persona) error {
	if _, ok := m.personas[persona.ID]; !ok {
		return sql.ErrNoRows
	}
	m.personas[persona.ID] = *persona
	return nil
}

func (m *mockPersonaRepo) Deactivate(ctx context.Context, id string) error {
	p, ok := m.personas[id]
	if !ok {
		return sql.ErrNoRows
	}
	p.Activo = false
	m.personas[id] = p
	m.deactivated = append(m.deactivated, id)
	return nil
}

func validCreatePersona() CreatePersonaRequest {
	return CreatePersonaRequest{
		Nombre:          "Ana",
		Apellido:        "Gomez",
		FechaNacimiento: time.Date(1990, 3, 14, 0, 0, 0, 0, time.UTC),
		Sexo:            "F",
		Telefono:        "+5492644123456",
	}
}

func TestPersonaCreate(t *testing.T) {
	repo := &mockPersonaRepo{}
	notifier := &recordingNotifier{}
	svc := NewPersonaService(repo, notifier, validator.New(), zap.NewNop())

	persona, err := svc.Create(context.Background(), validCreatePersona())
	require.NoError(t, err)
	assert.NotEmpty(t, persona.ID)
	assert.True(t, persona.Activo)
	assert.Equal(t, []string{persona.ID}, notifier.personas)
}

func TestPersonaCreateInvalidTelefono(t *testing.T) {
	svc := NewPersonaService(&mockPersonaRepo{}, &recordingNotifier{}, validator.New(), zap.NewNop())

	for _, telefono := range []string{"abc", "123", "+54 264 4123456", "12345678901234567"} {
		req := validCreatePersona()
		req.Telefono = telefono
		_, err := svc.Create(context.Background(), req)
		require.Error(t, err, "telefono %q should be rejected", telefono)
		assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	}
}

func TestPersonaCreateInvalidSexo(t *testing.T) {
	svc := NewPersonaService(&mockPersonaRepo{}, &recordingNotifier{}, validator.New(), zap.NewNop())

	req := validCreatePersona()
	req.Sexo = "Z"
	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestPersonaUpdatePatchSemantics(t *testing.T) {
	repo := &mockPersonaRepo{personas: map[string]models.Persona{"p1": completePersona()}}
	notifier := &recordingNotifier{}
	svc := NewPersonaService(repo, notifier, validator.New(), zap.NewNop())

	telefono := "2644555666"
	persona, err := svc.Update(context.Background(), "p1", UpdatePersonaRequest{Telefono: &telefono})
	require.NoError(t, err)
	assert.Equal(t, "2644555666", persona.Telefono)
	// untouched fields keep their values
	assert.Equal(t, "Ana", persona.Nombre)
	assert.Equal(t, "Gomez", persona.Apellido)
	assert.Equal(t, []string{"p1"}, notifier.personas)
}

func TestPersonaUpdateRejectsEmptyNombre(t *testing.T) {
	repo := &mockPersonaRepo{personas: map[string]models.Persona{"p1": completePersona()}}
	svc := NewPersonaService(repo, &recordingNotifier{}, validator.New(), zap.NewNop())

	empty := ""
	_, err := svc.Update(context.Background(), "p1", UpdatePersonaRequest{Nombre: &empty})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Equal(t, "Ana", repo.personas["p1"].Nombre)
}

func TestPersonaUpdateNotFound(t *testing.T) {
	svc := NewPersonaService(&mockPersonaRepo{}, &recordingNotifier{}, validator.New(), zap.NewNop())

	nombre := "Maria"
	_, err := svc.Update(context.Background(), "ghost", UpdatePersonaRequest{Nombre: &nombre})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestPersonaDeactivate(t *testing.T) {
	repo := &mockPersonaRepo{personas: map[string]models.Persona{"p1": completePersona()}}
	notifier := &recordingNotifier{}
	svc := NewPersonaService(repo, notifier, validator.New(), zap.NewNop())

	require.NoError(t, svc.Deactivate(context.Background(), "p1"))
	assert.False(t, repo.personas["p1"].Activo)
	assert.Equal(t, []string{"p1"}, notifier.personas)

	err := svc.Deactivate(context.Background(), "ghost")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestPersonaListPagination(t *testing.T) {
	repo := &mockPersonaRepo{personas: map[string]models.Persona{"p1": completePersona()}}
	svc := NewPersonaService(repo, &recordingNotifier{}, validator.New(), zap.NewNop())

	personas, pagination, err := svc.List(context.Background(), models.PersonaFilter{})
	require.NoError(t, err)
	assert.Len(t, personas, 1)
	assert.Equal(t, 1, pagination.Page)
	assert.Equal(t, 20, pagination.PageSize)
	assert.Equal(t, 1, pagination.TotalCount)
}
