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

type mockChatRepo struct {
	consultas []models.ChatConsulta
}

func (m *mockChatRepo) Create(ctx context.Context, consulta *models.ChatConsulta) error {
	if consulta.ID == "" {
		consulta.ID = "c-1"
	}
	m.consultas = append(m.consultas, *consulta)
	return nil
}

func (m *mockChatRepo) ListByUser(ctx context.Context, userID string, limit int) ([]models.ChatConsulta, error) {
	var out []models.ChatConsulta
	for _, c := range m.consultas {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

type fakeProvider struct {
	chunks     []string
	err        error
	lastPrompt string
}

func (f *fakeProvider) StreamAnswer(ctx context.Context, prompt string) (<-chan string, <-chan error) {
	f.lastPrompt = prompt
	chunks := make(chan string, len(f.chunks))
	errs := make(chan error, 1)
	for _, c := range f.chunks {
		chunks <- c
	}
	close(chunks)
	errs <- f.err
	close(errs)
	return chunks, errs
}

func (f *fakeProvider) Close() error { return nil }

type stubLegajoView struct{}

func (stubLegajoView) GetEstado(ctx context.Context, personaID string) (*models.LegajoEstadoView, error) {
	return &models.LegajoEstadoView{Codigo: models.LegajoValidado, Nombre: models.LegajoValidado.Nombre(), Completitud: 100}, nil
}

func newChatFixture(provider *fakeProvider) (*ChatService, *mockChatRepo) {
	repo := &mockChatRepo{}
	personas := &mockPersonaReader{personas: map[string]models.Persona{"p1": completePersona()}}
	documentos := &mockDocumentoReader{documentos: []models.PersonaDocumento{
		{ID: "d1", PersonaID: "p1", TipoDoc: models.DocDNI, Estado: models.VerificacionAprobado},
	}}
	var svc *ChatService
	if provider == nil {
		svc = NewChatService(repo, nil, personas, stubLegajoView{}, documentos, validator.New(), zap.NewNop())
	} else {
		svc = NewChatService(repo, provider, personas, stubLegajoView{}, documentos, validator.New(), zap.NewNop())
	}
	return svc, repo
}

func TestChatConsultar(t *testing.T) {
	provider := &fakeProvider{chunks: []string{"El legajo ", "está completo."}}
	svc, repo := newChatFixture(provider)

	resp, err := svc.Consultar(context.Background(), dto.ConsultaRequest{Pregunta: "¿Está completo el legajo?"}, rrhhActor())
	require.NoError(t, err)
	assert.Equal(t, "El legajo está completo.", resp.Respuesta)
	require.Len(t, repo.consultas, 1)
	assert.Equal(t, "u-rrhh", repo.consultas[0].UserID)
}

func TestChatConsultarGroundsPersona(t *testing.T) {
	provider := &fakeProvider{chunks: []string{"ok"}}
	svc, _ := newChatFixture(provider)

	personaID := "p1"
	_, err := svc.Consultar(context.Background(), dto.ConsultaRequest{PersonaID: &personaID, Pregunta: "estado?"}, rrhhActor())
	require.NoError(t, err)
	assert.Contains(t, provider.lastPrompt, "Ana Gomez")
	assert.Contains(t, provider.lastPrompt, "completitud 100%")
	assert.Contains(t, provider.lastPrompt, string(models.DocDNI))
}

func TestChatConsultarUnknownPersona(t *testing.T) {
	svc, _ := newChatFixture(&fakeProvider{chunks: []string{"ok"}})

	personaID := "ghost"
	_, err := svc.Consultar(context.Background(), dto.ConsultaRequest{PersonaID: &personaID, Pregunta: "estado?"}, rrhhActor())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestChatConsultarProviderError(t *testing.T) {
	svc, repo := newChatFixture(&fakeProvider{err: errors.New("quota exceeded")})

	_, err := svc.Consultar(context.Background(), dto.ConsultaRequest{Pregunta: "hola"}, rrhhActor())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrProveedorChat.Code, appErrors.FromError(err).Code)
	assert.Empty(t, repo.consultas)
}

func TestChatConsultarDisabled(t *testing.T) {
	svc, _ := newChatFixture(nil)

	assert.False(t, svc.Enabled())
	_, err := svc.Consultar(context.Background(), dto.ConsultaRequest{Pregunta: "hola"}, rrhhActor())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrProveedorChat.Code, appErrors.FromError(err).Code)
}

func TestChatHistorial(t *testing.T) {
	provider := &fakeProvider{chunks: []string{"respuesta"}}
	svc, _ := newChatFixture(provider)

	_, err := svc.Consultar(context.Background(), dto.ConsultaRequest{Pregunta: "una"}, rrhhActor())
	require.NoError(t, err)

	historial, err := svc.Historial(context.Background(), rrhhActor(), 10)
	require.NoError(t, err)
	assert.Len(t, historial, 1)

	otros, err := svc.Historial(context.Background(), empleadoActor(), 10)
	require.NoError(t, err)
	assert.Empty(t, otros)
}
