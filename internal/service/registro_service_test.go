package service

import (
	"context"
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rrhh-digital/legajo-api/internal/dto"
	"github.com/rrhh-digital/legajo-api/internal/models"
	appErrors "github.com/rrhh-digital/legajo-api/pkg/errors"
)

type mockRegistroDomicilios struct {
	barrios    []dto.CreateBarrioRequest
	domicilios []dto.CreateDomicilioRequest
	createErr  error
}

func (m *mockRegistroDomicilios) CreateBarrio(ctx context.Context, localidadID string, req dto.CreateBarrioRequest) (*models.DomBarrio, error) {
	m.barrios = append(m.barrios, req)
	return &models.DomBarrio{ID: "b-new", IDLocalidad: localidadID, Nombre: req.Nombre}, nil
}

func (m *mockRegistroDomicilios) Create(ctx context.Context, personaID string, req dto.CreateDomicilioRequest) (*models.Domicilio, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	m.domicilios = append(m.domicilios, req)
	return &models.Domicilio{ID: "dom-1", PersonaID: personaID, IDDomBarrio: req.IDDomBarrio, Calle: req.Calle, Altura: req.Altura}, nil
}

type mockRegistroTitulos struct {
	titulos   []dto.CreateTituloRequest
	createErr error
}

func (m *mockRegistroTitulos) Create(ctx context.Context, req dto.CreateTituloRequest, actor *models.JWTClaims) (*models.Titulo, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	m.titulos = append(m.titulos, req)
	return &models.Titulo{ID: "t-1", PersonaID: req.PersonaID, NombreTitulo: req.NombreTitulo}, nil
}

func newRegistroFixture(domicilios *mockRegistroDomicilios, titulos *mockRegistroTitulos) (*RegistroService, *recordingNotifier) {
	notifier := &recordingNotifier{}
	personas := &mockPersonaReader{personas: map[string]models.Persona{"p1": completePersona()}}
	return NewRegistroService(personas, domicilios, titulos, notifier, validator.New(), zap.NewNop()), notifier
}

func existingBarrioDraft() dto.DomicilioDraft {
	barrioID := "b-1"
	return dto.DomicilioDraft{IDDomBarrio: &barrioID, Calle: "San Martin", Altura: 450}
}

func TestRegistroFinalizarWithoutTitulo(t *testing.T) {
	domicilios := &mockRegistroDomicilios{}
	titulos := &mockRegistroTitulos{}
	svc, notifier := newRegistroFixture(domicilios, titulos)

	result, err := svc.Finalizar(context.Background(), "p1", dto.RegistroRequest{Domicilio: existingBarrioDraft()}, empleadoActor())
	require.NoError(t, err)
	require.NotNil(t, result.Domicilio)
	assert.Empty(t, result.BarrioID)
	assert.Nil(t, result.Titulo)
	assert.Empty(t, titulos.titulos)
	assert.Equal(t, []string{"p1"}, notifier.personas)
}

func TestRegistroFinalizarCreatesBarrio(t *testing.T) {
	domicilios := &mockRegistroDomicilios{}
	svc, _ := newRegistroFixture(domicilios, &mockRegistroTitulos{})

	req := dto.RegistroRequest{Domicilio: dto.DomicilioDraft{
		BarrioNuevo: &dto.BarrioNuevo{IDDepartamento: "dep-1", IDLocalidad: "loc-1", Nombre: "Centro"},
		Calle:       "Belgrano",
		Altura:      120,
	}}
	result, err := svc.Finalizar(context.Background(), "p1", req, empleadoActor())
	require.NoError(t, err)
	assert.Equal(t, "b-new", result.BarrioID)
	require.Len(t, domicilios.domicilios, 1)
	assert.Equal(t, "b-new", domicilios.domicilios[0].IDDomBarrio)
}

func TestRegistroFinalizarDomicilioGate(t *testing.T) {
	svc, notifier := newRegistroFixture(&mockRegistroDomicilios{}, &mockRegistroTitulos{})

	cases := []dto.DomicilioDraft{
		{Calle: "San Martin", Altura: 450},
		{BarrioNuevo: &dto.BarrioNuevo{IDLocalidad: "loc-1", Nombre: "Centro"}, Calle: "San Martin", Altura: 450},
		func() dto.DomicilioDraft { d := existingBarrioDraft(); d.Calle = ""; return d }(),
		func() dto.DomicilioDraft { d := existingBarrioDraft(); d.Altura = 0; return d }(),
	}
	for _, draft := range cases {
		_, err := svc.Finalizar(context.Background(), "p1", dto.RegistroRequest{Domicilio: draft}, empleadoActor())
		require.Error(t, err)
		assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	}
	assert.Empty(t, notifier.personas)
}

func TestRegistroFinalizarSkipsPartialTitulo(t *testing.T) {
	titulos := &mockRegistroTitulos{}
	svc, _ := newRegistroFixture(&mockRegistroDomicilios{}, titulos)

	req := dto.RegistroRequest{
		Domicilio: existingBarrioDraft(),
		Titulo:    &dto.TituloDraft{NombreTitulo: "Enfermero"},
	}
	result, err := svc.Finalizar(context.Background(), "p1", req, empleadoActor())
	require.NoError(t, err)
	assert.True(t, result.TituloOmitido)
	assert.Nil(t, result.Titulo)
	assert.Empty(t, titulos.titulos)
}

func TestRegistroFinalizarNoRollback(t *testing.T) {
	titulos := &mockRegistroTitulos{createErr: errors.New("boom")}
	svc, notifier := newRegistroFixture(&mockRegistroDomicilios{}, titulos)

	req := dto.RegistroRequest{
		Domicilio: existingBarrioDraft(),
		Titulo:    &dto.TituloDraft{IDTipoTitulo: "tt-1", NombreTitulo: "Enfermero"},
	}
	result, err := svc.Finalizar(context.Background(), "p1", req, empleadoActor())
	require.Error(t, err)
	// domicilio from the earlier step stays reachable in the result
	require.NotNil(t, result)
	assert.NotNil(t, result.Domicilio)
	assert.Empty(t, notifier.personas)
}

func TestRegistroFinalizarUnknownPersona(t *testing.T) {
	svc, _ := newRegistroFixture(&mockRegistroDomicilios{}, &mockRegistroTitulos{})

	_, err := svc.Finalizar(context.Background(), "ghost", dto.RegistroRequest{Domicilio: existingBarrioDraft()}, empleadoActor())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
