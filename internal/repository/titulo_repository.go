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

// TituloRepository manages persistence for academic titles.
type TituloRepository struct {
	db *sqlx.DB
}

// NewTituloRepository constructs a TituloRepository.
func NewTituloRepository(db *sqlx.DB) *TituloRepository {
	return &TituloRepository{db: db}
}

// List returns titles matching the filter.
func (r *TituloRepository) List(ctx context.Context, filter models.TituloFilter) ([]models.Titulo, error) {
	conditions := []string{"1=1"}
	args := []interface{}{}

	if filter.PersonaID != "" {
		conditions = append(conditions, fmt.Sprintf("persona_id = $%d", len(args)+1))
		args = append(args, filter.PersonaID)
	}
	if filter.Estado != "" {
		conditions = append(conditions, fmt.Sprintf("estado_verificacion = $%d", len(args)+1))
		args = append(args, filter.Estado)
	}

	query := fmt.Sprintf(`SELECT id, persona_id, id_tipo_titulo, nombre_titulo, institucion, fecha_emision, matricula_prof,
        id_archivo, estado_verificacion, observacion, creado_en, updated_at
        FROM titulos WHERE %s ORDER BY creado_en DESC`, strings.Join(conditions, " AND "))

	var titulos []models.Titulo
	if err := r.db.SelectContext(ctx, &titulos, query, args...); err != nil {
		return nil, fmt.Errorf("list titulos: %w", err)
	}
	return titulos, nil
}

// FindByID fetches a titulo by ID.
func (r *TituloRepository) FindByID(ctx context.Context, id string) (*models.Titulo, error) {
	const query = `SELECT id, persona_id, id_tipo_titulo, nombre_titulo, institucion, fecha_emision, matricula_prof,
        id_archivo, estado_verificacion, observacion, creado_en, updated_at
        FROM titulos WHERE id = $1`
	var titulo models.Titulo
	if err := r.db.GetContext(ctx, &titulo, query, id); err != nil {
		return nil, err
	}
	return &titulo, nil
}

// Create inserts a new titulo record.
func (r *TituloRepository) Create(ctx context.Context, titulo *models.Titulo) error {
	if titulo.ID == "" {
		titulo.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if titulo.CreadoEn.IsZero() {
		titulo.CreadoEn = now
	}
	titulo.UpdatedAt = now
	const query = `INSERT INTO titulos (id, persona_id, id_tipo_titulo, nombre_titulo, institucion, fecha_emision, matricula_prof,
        id_archivo, estado_verificacion, observacion, creado_en, updated_at)
        VALUES (:id, :persona_id, :id_tipo_titulo, :nombre_titulo, :institucion, :fecha_emision, :matricula_prof,
        :id_archivo, :estado_verificacion, :observacion, :creado_en, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, titulo); err != nil {
		return fmt.Errorf("create titulo: %w", err)
	}
	return nil
}

// UpdateEstado persists a verification state transition.
func (r *TituloRepository) UpdateEstado(ctx context.Context, id string, estado models.EstadoVerificacion, observacion string) error {
	const query = `UPDATE titulos SET estado_verificacion = $2, observacion = $3, updated_at = $4 WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id, estado, observacion, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update titulo estado: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a titulo record.
func (r *TituloRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM titulos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete titulo: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
