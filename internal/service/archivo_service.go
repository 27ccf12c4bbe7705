package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"time"

	"go.uber.org/zap"

	"github.com/rrhh-digital/legajo-api/internal/models"
	"github.com/rrhh-digital/legajo-api/pkg/config"
	appErrors "github.com/rrhh-digital/legajo-api/pkg/errors"
	"github.com/rrhh-digital/legajo-api/pkg/storage"
)

type archivoRepository interface {
	Create(ctx context.Context, archivo *models.Archivo) error
	FindByID(ctx context.Context, id string) (*models.Archivo, error)
	ListByPersona(ctx context.Context, personaID string) ([]models.Archivo, error)
}

// SignedURL is the download grant returned to clients.
type SignedURL struct {
	ArchivoID string    `json:"id_archivo"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ArchivoService handles file uploads and signed download URLs.
type ArchivoService struct {
	repo    archivoRepository
	storage *storage.LocalStorage
	signer  *storage.SignedURLSigner
	cfg     config.ArchivosConfig
	logger  *zap.Logger
}

// NewArchivoService constructs the archivo service.
func NewArchivoService(repo archivoRepository, store *storage.LocalStorage, signer *storage.SignedURLSigner, cfg config.ArchivosConfig, logger *zap.Logger) *ArchivoService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ArchivoService{repo: repo, storage: store, signer: signer, cfg: cfg, logger: logger}
}

// Upload stores the file stream and records its metadata. The caller passes
// the declared MIME type and size from the multipart header; both are checked
// against the configured limits before anything touches disk.
func (s *ArchivoService) Upload(ctx context.Context, personaID, filename, mimeType string, size int64, r io.Reader, actor *models.JWTClaims) (*models.Archivo, error) {
	if filename == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "filename is required")
	}
	if size <= 0 || size > s.cfg.MaxFileSizeBytes {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("file size must be between 1 and %d bytes", s.cfg.MaxFileSizeBytes))
	}
	if !s.mimeAllowed(mimeType) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "file type not allowed")
	}

	archivo := &models.Archivo{
		PersonaID:      personaID,
		NombreOriginal: filename,
		MimeType:       mimeType,
	}
	if actor != nil {
		archivo.SubidoPor = actor.UserID
	}

	relPath := path.Join("personas", personaID, fmt.Sprintf("%d_%s", time.Now().UnixNano(), filename))
	stored, err := s.storage.SaveStream(relPath, io.LimitReader(r, s.cfg.MaxFileSizeBytes))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store file")
	}
	archivo.Ruta = stored
	archivo.TamanioBytes = size

	if err := s.repo.Create(ctx, archivo); err != nil {
		if cleanupErr := s.storage.Delete(stored); cleanupErr != nil {
			s.logger.Warn("failed to remove orphan upload", zap.String("path", stored), zap.Error(cleanupErr))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist archivo")
	}
	return archivo, nil
}

// Get returns archivo metadata.
func (s *ArchivoService) Get(ctx context.Context, id string) (*models.Archivo, error) {
	archivo, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "archivo not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load archivo")
	}
	return archivo, nil
}

// ListByPersona returns upload metadata for a persona.
func (s *ArchivoService) ListByPersona(ctx context.Context, personaID string) ([]models.Archivo, error) {
	archivos, err := s.repo.ListByPersona(ctx, personaID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list archivos")
	}
	return archivos, nil
}

// SignURL issues a time-limited download token for the archivo.
func (s *ArchivoService) SignURL(ctx context.Context, id string) (*SignedURL, error) {
	archivo, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	token, expiresAt, err := s.signer.Generate(archivo.ID, archivo.Ruta)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign url")
	}
	return &SignedURL{ArchivoID: archivo.ID, Token: token, ExpiresAt: expiresAt}, nil
}

// OpenByToken validates the signed token and opens the underlying file.
// The archivo id in the URL must match the one embedded in the token.
func (s *ArchivoService) OpenByToken(ctx context.Context, id, token string) (*models.Archivo, *os.File, error) {
	archivoID, relPath, _, err := s.signer.Parse(token, false)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid or expired download token")
	}
	if archivoID != id {
		return nil, nil, appErrors.Clone(appErrors.ErrUnauthorized, "token does not match archivo")
	}

	archivo, err := s.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if archivo.Ruta != relPath {
		return nil, nil, appErrors.Clone(appErrors.ErrUnauthorized, "token does not match archivo")
	}

	f, err := s.storage.Open(archivo.Ruta)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to open stored file")
	}
	return archivo, f, nil
}

func (s *ArchivoService) mimeAllowed(mimeType string) bool {
	if len(s.cfg.AllowedMIMEs) == 0 {
		return true
	}
	for _, allowed := range s.cfg.AllowedMIMEs {
		if allowed == mimeType {
			return true
		}
	}
	return false
}
