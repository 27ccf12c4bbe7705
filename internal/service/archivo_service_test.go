package service

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rrhh-digital/legajo-api/internal/models"
	"github.com/rrhh-digital/legajo-api/pkg/config"
	appErrors "github.com/rrhh-digital/legajo-api/pkg/errors"
	"github.com/rrhh-digital/legajo-api/pkg/storage"
)

type mockArchivoRepo struct {
	archivos  map[string]models.Archivo
	createErr error
}

func (m *mockArchivoRepo) Create(ctx context.Context, archivo *models.Archivo) error {
	if m.createErr != nil {
		return m.createErr
	}
	if archivo.ID == "" {
		archivo.ID = fmt.Sprintf("a-%d", len(m.archivos)+1)
	}
	if m.archivos == nil {
		m.archivos = make(map[string]models.Archivo)
	}
	m.archivos[archivo.ID] = *archivo
	return nil
}

func (m *mockArchivoRepo) FindByID(ctx context.Context, id string) (*models.Archivo, error) {
	if a, ok := m.archivos[id]; ok {
		copy := a
		return &copy, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockArchivoRepo) ListByPersona(ctx context.Context, personaID string) ([]models.Archivo, error) {
	var out []models.Archivo
	for _, a := range m.archivos {
		if a.PersonaID == personaID {
			out = append(out, a)
		}
	}
	return out, nil
}

func newArchivoFixture(t *testing.T, repo *mockArchivoRepo) *ArchivoService {
	t.Helper()
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	cfg := config.ArchivosConfig{
		MaxFileSizeBytes: 1024,
		AllowedMIMEs:     []string{"application/pdf", "image/jpeg"},
		SignedURLTTL:     time.Minute,
	}
	signer := storage.NewSignedURLSigner("test-secret", cfg.SignedURLTTL)
	return NewArchivoService(repo, store, signer, cfg, zap.NewNop())
}

func TestArchivoUpload(t *testing.T) {
	repo := &mockArchivoRepo{}
	svc := newArchivoFixture(t, repo)

	archivo, err := svc.Upload(context.Background(), "p1", "dni.pdf", "application/pdf", 11, strings.NewReader("pdf content"), rrhhActor())
	require.NoError(t, err)
	assert.NotEmpty(t, archivo.ID)
	assert.Equal(t, "dni.pdf", archivo.NombreOriginal)
	assert.Equal(t, "u-rrhh", archivo.SubidoPor)
	assert.Contains(t, archivo.Ruta, "personas/p1/")
}

func TestArchivoUploadRejectsMime(t *testing.T) {
	svc := newArchivoFixture(t, &mockArchivoRepo{})

	_, err := svc.Upload(context.Background(), "p1", "script.sh", "application/x-sh", 5, strings.NewReader("#!/bin"), rrhhActor())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestArchivoUploadRejectsSize(t *testing.T) {
	svc := newArchivoFixture(t, &mockArchivoRepo{})

	_, err := svc.Upload(context.Background(), "p1", "big.pdf", "application/pdf", 4096, strings.NewReader("x"), rrhhActor())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	_, err = svc.Upload(context.Background(), "p1", "empty.pdf", "application/pdf", 0, strings.NewReader(""), rrhhActor())
	require.Error(t, err)
}

func TestArchivoSignURLAndOpen(t *testing.T) {
	repo := &mockArchivoRepo{}
	svc := newArchivoFixture(t, repo)

	archivo, err := svc.Upload(context.Background(), "p1", "dni.pdf", "application/pdf", 11, strings.NewReader("pdf content"), rrhhActor())
	require.NoError(t, err)

	signed, err := svc.SignURL(context.Background(), archivo.ID)
	require.NoError(t, err)
	assert.Equal(t, archivo.ID, signed.ArchivoID)
	assert.NotEmpty(t, signed.Token)
	assert.True(t, signed.ExpiresAt.After(time.Now()))

	loaded, f, err := svc.OpenByToken(context.Background(), archivo.ID, signed.Token)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, archivo.ID, loaded.ID)
}

func TestArchivoOpenByTokenMismatch(t *testing.T) {
	repo := &mockArchivoRepo{}
	svc := newArchivoFixture(t, repo)

	first, err := svc.Upload(context.Background(), "p1", "dni.pdf", "application/pdf", 3, strings.NewReader("one"), rrhhActor())
	require.NoError(t, err)
	second, err := svc.Upload(context.Background(), "p1", "cuil.pdf", "application/pdf", 3, strings.NewReader("two"), rrhhActor())
	require.NoError(t, err)

	signed, err := svc.SignURL(context.Background(), first.ID)
	require.NoError(t, err)

	// a token for one archivo cannot download another
	_, _, err = svc.OpenByToken(context.Background(), second.ID, signed.Token)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}

func TestArchivoOpenByTokenTampered(t *testing.T) {
	repo := &mockArchivoRepo{}
	svc := newArchivoFixture(t, repo)

	archivo, err := svc.Upload(context.Background(), "p1", "dni.pdf", "application/pdf", 3, strings.NewReader("one"), rrhhActor())
	require.NoError(t, err)

	signed, err := svc.SignURL(context.Background(), archivo.ID)
	require.NoError(t, err)

	_, _, err = svc.OpenByToken(context.Background(), archivo.ID, signed.Token+"tampered")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}
