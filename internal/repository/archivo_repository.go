package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/rrhh-digital/legajo-api/internal/models"
)

// ArchivoRepository manages metadata for uploaded files.
type ArchivoRepository struct {
	db *sqlx.DB
}

// NewArchivoRepository constructs an ArchivoRepository.
func NewArchivoRepository(db *sqlx.DB) *ArchivoRepository {
	return &ArchivoRepository{db: db}
}

// Create inserts metadata for an uploaded file.
func (r *ArchivoRepository) Create(ctx context.Context, archivo *models.Archivo) error {
	if archivo.ID == "" {
		archivo.ID = uuid.NewString()
	}
	if archivo.CreatedAt.IsZero() {
		archivo.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO archivos (id, persona_id, nombre_original, ruta, mime_type, tamanio_bytes, subido_por, created_at)
        VALUES (:id, :persona_id, :nombre_original, :ruta, :mime_type, :tamanio_bytes, :subido_por, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, archivo); err != nil {
		return fmt.Errorf("create archivo: %w", err)
	}
	return nil
}

// FindByID fetches an archivo by ID.
func (r *ArchivoRepository) FindByID(ctx context.Context, id string) (*models.Archivo, error) {
	const query = `SELECT id, persona_id, nombre_original, ruta, mime_type, tamanio_bytes, subido_por, created_at
        FROM archivos WHERE id = $1`
	var archivo models.Archivo
	if err := r.db.GetContext(ctx, &archivo, query, id); err != nil {
		return nil, err
	}
	return &archivo, nil
}

// ListByPersona returns all uploads for a persona.
func (r *ArchivoRepository) ListByPersona(ctx context.Context, personaID string) ([]models.Archivo, error) {
	const query = `SELECT id, persona_id, nombre_original, ruta, mime_type, tamanio_bytes, subido_por, created_at
        FROM archivos WHERE persona_id = $1 ORDER BY created_at DESC`
	var archivos []models.Archivo
	if err := r.db.SelectContext(ctx, &archivos, query, personaID); err != nil {
		return nil, fmt.Errorf("list archivos: %w", err)
	}
	return archivos, nil
}
