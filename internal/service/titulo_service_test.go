package service

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rrhh-digital/legajo-api/internal/dto"
	"github.com/rrhh-digital/legajo-api/internal/models"
	appErrors "github.com/rrhh-digital/legajo-api/pkg/errors"
)

type mockTituloRepo struct {
	titulos map[string]models.Titulo
	nextID  int
}

func (m *mockTituloRepo) List(ctx context.Context, filter models.TituloFilter) ([]models.Titulo, error) {
	var out []models.Titulo
	for _, t := range m.titulos {
		if filter.PersonaID != "" && t.PersonaID != filter.PersonaID {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func (m *mockTituloRepo) FindByID(ctx context.Context, id string) (*models.Titulo, error) {
	t, ok := m.titulos[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &t, nil
}

func (m *mockTituloRepo) Create(ctx context.Context, titulo *models.Titulo) error {
	m.nextID++
	titulo.ID = fmt.Sprintf("t-%d", m.nextID)
	m.titulos[titulo.ID] = *titulo
	return nil
}

func (m *mockTituloRepo) UpdateEstado(ctx context.Context, id string, estado models.EstadoVerificacion, observacion string) error {
	t, ok := m.titulos[id]
	if !ok {
		return sql.ErrNoRows
	}
	t.Estado = estado
	t.Observacion = observacion
	m.titulos[id] = t
	return nil
}

func (m *mockTituloRepo) Delete(ctx context.Context, id string) error {
	if _, ok := m.titulos[id]; !ok {
		return sql.ErrNoRows
	}
	delete(m.titulos, id)
	return nil
}

func newTituloFixture(repo *mockTituloRepo) (*TituloService, *recordingNotifier) {
	notifier := &recordingNotifier{}
	return NewTituloService(repo, &mockArchivoLookup{}, notifier, validator.New(), zap.NewNop()), notifier
}

func TestTituloChangeEstadoObservacionGate(t *testing.T) {
	repo := &mockTituloRepo{titulos: map[string]models.Titulo{
		"t1": {ID: "t1", PersonaID: "p1", IDTipoTitulo: models.TituloUniversitario, NombreTitulo: "Licenciatura", Estado: models.VerificacionPendiente},
	}}
	svc, notifier := newTituloFixture(repo)

	for _, estado := range []models.EstadoVerificacion{models.VerificacionRechazado, models.VerificacionObservado} {
		for _, observacion := range []string{"", "   ", "\t\n"} {
			_, err := svc.ChangeEstado(context.Background(), "t1", dto.ChangeEstadoRequest{Estado: string(estado), Observacion: observacion})
			require.Error(t, err)
			assert.Equal(t, appErrors.ErrObservacionRequerida.Code, appErrors.FromError(err).Code)
		}
	}
	assert.Equal(t, models.VerificacionPendiente, repo.titulos["t1"].Estado)
	assert.Empty(t, notifier.personas)
}

func TestTituloChangeEstadoTrimsObservacion(t *testing.T) {
	repo := &mockTituloRepo{titulos: map[string]models.Titulo{
		"t1": {ID: "t1", PersonaID: "p1", IDTipoTitulo: models.TituloUniversitario, NombreTitulo: "Licenciatura", Estado: models.VerificacionPendiente},
	}}
	svc, notifier := newTituloFixture(repo)

	titulo, err := svc.ChangeEstado(context.Background(), "t1", dto.ChangeEstadoRequest{Estado: string(models.VerificacionObservado), Observacion: " matricula vencida "})
	require.NoError(t, err)
	assert.Equal(t, "matricula vencida", titulo.Observacion)
	assert.Equal(t, models.VerificacionObservado, repo.titulos["t1"].Estado)
	assert.Equal(t, []string{"p1"}, notifier.personas)
}

func TestTituloCreateObservacionGate(t *testing.T) {
	repo := &mockTituloRepo{titulos: map[string]models.Titulo{}}
	svc, _ := newTituloFixture(repo)

	_, err := svc.Create(context.Background(), dto.CreateTituloRequest{
		PersonaID:    "p1",
		IDTipoTitulo: string(models.TituloUniversitario),
		NombreTitulo: "Licenciatura",
		Estado:       string(models.VerificacionRechazado),
		Observacion:  "   ",
	}, rrhhActor())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrObservacionRequerida.Code, appErrors.FromError(err).Code)
	assert.Empty(t, repo.titulos)
}
