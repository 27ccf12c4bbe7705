package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/rrhh-digital/legajo-api/internal/models"
)

// DocumentoRepository manages persistence for persona documents.
type DocumentoRepository struct {
	db *sqlx.DB
}

// NewDocumentoRepository constructs a DocumentoRepository.
func NewDocumentoRepository(db *sqlx.DB) *DocumentoRepository {
	return &DocumentoRepository{db: db}
}

// ListByPersona returns documents for a persona matching the filter.
func (r *DocumentoRepository) ListByPersona(ctx context.Context, filter models.DocumentoFilter) ([]models.PersonaDocumento, error) {
	conditions := []string{"persona_id = $1"}
	args := []interface{}{filter.PersonaID}

	if filter.TipoDoc != "" {
		conditions = append(conditions, fmt.Sprintf("tipo_doc = $%d", len(args)+1))
		args = append(args, filter.TipoDoc)
	}
	if filter.Estado != "" {
		conditions = append(conditions, fmt.Sprintf("estado_verificacion = $%d", len(args)+1))
		args = append(args, filter.Estado)
	}
	if filter.Vigente != nil {
		conditions = append(conditions, fmt.Sprintf("vigente = $%d", len(args)+1))
		args = append(args, *filter.Vigente)
	}

	query := fmt.Sprintf(`SELECT id, persona_id, tipo_doc, id_archivo, estado_verificacion, vigente, observacion, creado_en, updated_at
        FROM persona_documentos WHERE %s ORDER BY creado_en DESC`, strings.Join(conditions, " AND "))

	var documentos []models.PersonaDocumento
	if err := r.db.SelectContext(ctx, &documentos, query, args...); err != nil {
		return nil, fmt.Errorf("list documentos: %w", err)
	}
	return documentos, nil
}

// FindByID fetches a documento by ID.
func (r *DocumentoRepository) FindByID(ctx context.Context, id string) (*models.PersonaDocumento, error) {
	const query = `SELECT id, persona_id, tipo_doc, id_archivo, estado_verificacion, vigente, observacion, creado_en, updated_at
        FROM persona_documentos WHERE id = $1`
	var documento models.PersonaDocumento
	if err := r.db.GetContext(ctx, &documento, query, id); err != nil {
		return nil, err
	}
	return &documento, nil
}

// Create inserts a new documento record.
func (r *DocumentoRepository) Create(ctx context.Context, documento *models.PersonaDocumento) error {
	if documento.ID == "" {
		documento.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if documento.CreadoEn.IsZero() {
		documento.CreadoEn = now
	}
	documento.UpdatedAt = now
	const query = `INSERT INTO persona_documentos (id, persona_id, tipo_doc, id_archivo, estado_verificacion, vigente, observacion, creado_en, updated_at)
        VALUES (:id, :persona_id, :tipo_doc, :id_archivo, :estado_verificacion, :vigente, :observacion, :creado_en, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, documento); err != nil {
		return fmt.Errorf("create documento: %w", err)
	}
	return nil
}

// UpdateEstado persists a verification state transition.
func (r *DocumentoRepository) UpdateEstado(ctx context.Context, id string, estado models.EstadoVerificacion, observacion string) error {
	const query = `UPDATE persona_documentos SET estado_verificacion = $2, observacion = $3, updated_at = $4 WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id, estado, observacion, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update documento estado: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a documento record.
func (r *DocumentoRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM persona_documentos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete documento: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
